package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRank(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Rank(nil))
		assert.NotNil(t, Rank(nil))
	})

	t.Run("frequency first", func(t *testing.T) {
		history := []string{"ls", "git status", "ls", "make", "git status", "ls"}
		assert.Equal(t, []string{"ls", "git status", "make"}, Rank(history))
	})

	t.Run("ties keep first-seen order", func(t *testing.T) {
		history := []string{"a", "b", "c", "a", "b", "c", "b"}
		// b:3, then a and c with 2 each in first-seen order
		assert.Equal(t, []string{"b", "a", "c"}, Rank(history))
		assert.Equal(t, []string{"a", "b", "c"}, Rank([]string{"a", "b", "c", "a", "b", "c"}))
	})

	t.Run("single occurrences keep history order", func(t *testing.T) {
		assert.Equal(t, []string{"one", "two", "three"}, Rank([]string{"one", "two", "three"}))
	})

	t.Run("idempotent", func(t *testing.T) {
		inputs := [][]string{
			{"a", "b", "c", "a", "b", "c"},
			{"one", "two"},
			{"cat spam", "ls -la", "cat spam", "pytest", "ls -la", "cargo test", "ls -la"},
			{"x", "y", "y", "z", "z", "z", "x"},
		}
		for _, xs := range inputs {
			once := Rank(xs)
			assert.Equal(t, once, Rank(once), "%v", xs)
		}
	})

	t.Run("deduplicates", func(t *testing.T) {
		ranked := Rank([]string{"x", "x", "x"})
		assert.Equal(t, []string{"x"}, ranked)
	})

	t.Run("deterministic", func(t *testing.T) {
		history := []string{"cat spam", "ls -la", "cat spam", "pytest", "ls -la", "cargo test"}
		first := Rank(history)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, Rank(history))
		}
	})

	t.Run("does not modify input", func(t *testing.T) {
		history := []string{"b", "a", "b"}
		Rank(history)
		assert.Equal(t, []string{"b", "a", "b"}, history)
	})
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Unique([]string{"a", "b", "a", "c", "b"}))
	assert.Empty(t, Unique(nil))
}
