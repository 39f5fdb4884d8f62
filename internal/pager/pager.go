// Package pager splits the active view into terminal sized pages and tracks
// the selection cursor, wrapping across page boundaries.
package pager

import "errors"

// Direction is the sign of a navigation step
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

// ErrEmptySelection is returned when an action needs an entry under the
// cursor and the current page is empty.
var ErrEmptySelection = errors.New("no entry under the cursor")

// Pager holds the pagination state. Page numbers are 1-based; the selection
// is an index into the current page.
type Pager struct {
	pageSize int
	page     int
	selected int
}

// New creates a pager starting on the first row of the first page
func New(pageSize int) *Pager {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Pager{pageSize: pageSize, page: 1}
}

// PageSizeFor returns the rows left for entries once the status and search
// bars are drawn. Never less than one.
func PageSizeFor(rows, reserved int) int {
	if size := rows - reserved; size > 1 {
		return size
	}
	return 1
}

func (p *Pager) PageSize() int { return p.pageSize }
func (p *Pager) PageNumber() int { return p.page }
func (p *Pager) Selected() int { return p.selected }

// PageCount returns the number of pages for n entries. An empty view still
// has one (empty) page.
func (p *Pager) PageCount(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + p.pageSize - 1) / p.pageSize
}

// bounds returns the [start, end) range of the current page for n entries
func (p *Pager) bounds(n int) (int, int) {
	start := (p.page - 1) * p.pageSize
	if start >= n || start < 0 {
		return 0, 0
	}
	end := start + p.pageSize
	if end > n {
		end = n
	}
	return start, end
}

// PageLen returns the number of entries on the current page
func (p *Pager) PageLen(n int) int {
	start, end := p.bounds(n)
	return end - start
}

// Entries returns the slice of entries visible on the current page
func (p *Pager) Entries(entries []string) []string {
	start, end := p.bounds(len(entries))
	return entries[start:end:end]
}

// TurnPage moves one page in the given direction, wrapping from the last
// page to the first and vice versa.
func (p *Pager) TurnPage(n int, dir Direction) {
	if n <= 0 {
		p.page = 1
		return
	}
	next := p.page - 1 + int(dir)
	p.page = euclidMod(next, p.PageCount(n)) + 1
}

// MoveSelected moves the cursor one row. Moving past the last row continues
// on the first row of the next page; moving before the first row continues on
// the last row of the previous page. No-op on an empty page.
func (p *Pager) MoveSelected(n int, dir Direction) {
	size := p.PageLen(n)
	if size == 0 {
		return
	}

	p.selected = euclidMod(p.selected+int(dir), size)

	switch {
	case dir == Forward && p.selected == 0:
		p.TurnPage(n, Forward)
	case dir == Backward && p.selected == size-1:
		p.TurnPage(n, Backward)
		p.selected = p.PageLen(n) - 1
	}
}

// SelectedEntry returns the entry under the cursor
func (p *Pager) SelectedEntry(entries []string) (string, error) {
	page := p.Entries(entries)
	if p.selected < 0 || p.selected >= len(page) {
		return "", ErrEmptySelection
	}
	return page[p.selected], nil
}

// RetainSelectedAfterRemoval keeps the cursor on a valid row after the
// current page lost an entry. n is the entry count after the removal.
func (p *Pager) RetainSelectedAfterRemoval(n int) {
	if size := p.PageLen(n); p.selected > 0 && p.selected == size {
		p.selected--
	}
	p.Clamp(n)
}

// Reset returns to the first row of the first page
func (p *Pager) Reset() {
	p.page = 1
	p.selected = 0
}

// Resize changes the page size and clamps the position to the new layout
func (p *Pager) Resize(pageSize, n int) {
	if pageSize < 1 {
		pageSize = 1
	}
	p.pageSize = pageSize
	p.Clamp(n)
}

// Clamp forces the page number into [1, PageCount(n)] and the cursor onto an
// existing row of that page.
func (p *Pager) Clamp(n int) {
	if count := p.PageCount(n); p.page > count {
		p.page = count
	}
	if p.page < 1 {
		p.page = 1
	}

	size := p.PageLen(n)
	switch {
	case size == 0 || p.selected < 0:
		p.selected = 0
	case p.selected >= size:
		p.selected = size - 1
	}
}

func euclidMod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}
