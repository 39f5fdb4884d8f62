package pager

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("cmd %02d", i)
	}
	return out
}

func TestPageSizeFor(t *testing.T) {
	assert.Equal(t, 7, PageSizeFor(10, 3))
	assert.Equal(t, 1, PageSizeFor(3, 3))
	assert.Equal(t, 1, PageSizeFor(0, 3))
	assert.Equal(t, 1, New(0).PageSize())
}

func TestPageCount(t *testing.T) {
	p := New(7)
	assert.Equal(t, 4, p.PageCount(23))
	assert.Equal(t, 1, p.PageCount(7))
	assert.Equal(t, 2, p.PageCount(8))
	assert.Equal(t, 1, p.PageCount(0))
}

func TestEntries(t *testing.T) {
	all := entries(23)
	p := New(7)

	tests := []struct {
		page     int
		expected []string
	}{
		{1, all[0:7]},
		{2, all[7:14]},
		{3, all[14:21]},
		{4, all[21:23]},
		{5, []string{}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d", tt.page), func(t *testing.T) {
			p.page = tt.page
			assert.Equal(t, tt.expected, p.Entries(all))
		})
	}
}

func TestTurnPage(t *testing.T) {
	tests := []struct {
		current  int
		dir      Direction
		expected int
	}{
		{1, Forward, 2},
		{2, Forward, 3},
		{3, Forward, 4},
		{4, Forward, 1},
		{4, Backward, 3},
		{3, Backward, 2},
		{2, Backward, 1},
		{1, Backward, 4},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d%+d", tt.current, tt.dir), func(t *testing.T) {
			p := New(7)
			p.page = tt.current
			p.TurnPage(23, tt.dir)
			assert.Equal(t, tt.expected, p.PageNumber())
		})
	}

	t.Run("empty view stays on page one", func(t *testing.T) {
		p := New(7)
		p.TurnPage(0, Forward)
		assert.Equal(t, 1, p.PageNumber())
		p.TurnPage(0, Backward)
		assert.Equal(t, 1, p.PageNumber())
	})
}

func TestMoveSelected(t *testing.T) {
	t.Run("moves within a page", func(t *testing.T) {
		p := New(7)
		p.MoveSelected(23, Forward)
		p.MoveSelected(23, Forward)
		assert.Equal(t, 2, p.Selected())
		p.MoveSelected(23, Backward)
		assert.Equal(t, 1, p.Selected())
		assert.Equal(t, 1, p.PageNumber())
	})

	t.Run("forward past last row turns the page", func(t *testing.T) {
		p := New(7)
		p.selected = 6
		p.MoveSelected(23, Forward)
		assert.Equal(t, 2, p.PageNumber())
		assert.Equal(t, 0, p.Selected())
	})

	t.Run("forward on the last page wraps to page one", func(t *testing.T) {
		p := New(7)
		p.page = 4
		p.selected = 1
		p.MoveSelected(23, Forward)
		assert.Equal(t, 1, p.PageNumber())
		assert.Equal(t, 0, p.Selected())
	})

	t.Run("backward before first row goes to last row of previous page", func(t *testing.T) {
		p := New(7)
		p.page = 2
		p.MoveSelected(23, Backward)
		assert.Equal(t, 1, p.PageNumber())
		assert.Equal(t, 6, p.Selected())
	})

	t.Run("backward from page one lands on the short last page", func(t *testing.T) {
		p := New(7)
		p.MoveSelected(23, Backward)
		assert.Equal(t, 4, p.PageNumber())
		assert.Equal(t, 1, p.Selected())
	})

	t.Run("empty page is a no-op", func(t *testing.T) {
		p := New(7)
		p.MoveSelected(0, Forward)
		p.MoveSelected(0, Backward)
		assert.Equal(t, 1, p.PageNumber())
		assert.Equal(t, 0, p.Selected())
	})

	t.Run("single page wraps onto itself", func(t *testing.T) {
		p := New(7)
		p.selected = 4
		p.MoveSelected(5, Forward)
		assert.Equal(t, 1, p.PageNumber())
		assert.Equal(t, 0, p.Selected())
	})
}

func TestSelectedEntry(t *testing.T) {
	all := entries(23)
	p := New(7)
	p.page = 2
	p.selected = 3

	entry, err := p.SelectedEntry(all)
	require.NoError(t, err)
	assert.Equal(t, "cmd 10", entry)

	_, err = p.SelectedEntry(nil)
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestRetainSelectedAfterRemoval(t *testing.T) {
	t.Run("last row removed moves cursor up", func(t *testing.T) {
		p := New(7)
		p.selected = 4
		// page had 5 rows, now 4
		p.RetainSelectedAfterRemoval(4)
		assert.Equal(t, 3, p.Selected())
	})

	t.Run("middle row removed keeps cursor", func(t *testing.T) {
		p := New(7)
		p.selected = 2
		p.RetainSelectedAfterRemoval(4)
		assert.Equal(t, 2, p.Selected())
	})

	t.Run("only row of last page removed moves to previous page", func(t *testing.T) {
		p := New(7)
		p.page = 2
		p.RetainSelectedAfterRemoval(7)
		assert.Equal(t, 1, p.PageNumber())
		assert.Equal(t, 0, p.Selected())
	})

	t.Run("view becomes empty", func(t *testing.T) {
		p := New(7)
		p.RetainSelectedAfterRemoval(0)
		assert.Equal(t, 1, p.PageNumber())
		assert.Equal(t, 0, p.Selected())
	})
}

func TestResize(t *testing.T) {
	p := New(7)
	p.page = 4
	p.selected = 1

	p.Resize(12, 23)
	assert.Equal(t, 12, p.PageSize())
	assert.Equal(t, 2, p.PageNumber())
	assert.Equal(t, 1, p.Selected())

	p.Resize(30, 23)
	assert.Equal(t, 1, p.PageNumber())

	p.selected = 20
	p.Resize(5, 23)
	assert.Equal(t, 1, p.PageNumber())
	assert.Equal(t, 4, p.Selected())
}

func TestReset(t *testing.T) {
	p := New(7)
	p.page = 3
	p.selected = 5
	p.Reset()
	assert.Equal(t, 1, p.PageNumber())
	assert.Equal(t, 0, p.Selected())
}
