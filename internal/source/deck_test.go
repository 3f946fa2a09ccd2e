package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDeck(t *testing.T) {
	d := NewDeck()
	assert.Equal(t, 1, d.Len())
	assert.Equal(t, "", d.Current())

	d = NewDeck("a", "b")
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, "a", d.Current())
	assert.Equal(t, "", d.Page(5))
}

func TestDeckNavigation(t *testing.T) {
	d := NewDeck("a", "b", "c")

	_, ok := d.Prev()
	assert.False(t, ok)

	d, ok = d.Next()
	assert.True(t, ok)
	assert.Equal(t, 1, d.Index())
	d, _ = d.Next()
	_, ok = d.Next()
	assert.False(t, ok)
	assert.Equal(t, "c", d.Current())

	d, ok = d.Prev()
	assert.True(t, ok)
	assert.Equal(t, "b", d.Current())
}

func TestDeckEditsAreValues(t *testing.T) {
	orig := NewDeck("ab", "c")
	edited := orig.Append('x')

	assert.Equal(t, "ab", orig.Current())
	assert.Equal(t, "abx", edited.Current())

	back, ok := edited.Backspace()
	assert.True(t, ok)
	back, _ = back.Backspace()
	assert.Equal(t, "a", back.Current())
	assert.Equal(t, "abx", edited.Current())

	empty := NewDeck("")
	_, ok = empty.Backspace()
	assert.False(t, ok)
}

func TestDeckBackspaceMultibyte(t *testing.T) {
	d, ok := NewDeck("héé").Backspace()
	assert.True(t, ok)
	assert.Equal(t, "hé", d.Current())
}

func TestDeckLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, NewDeck("a\nb").Lines())
}

func TestZeroDeck(t *testing.T) {
	var d Deck
	assert.Equal(t, 1, d.Len())
	assert.Equal(t, "x", d.Append('x').Current())
}
