package source

import "strings"

// Deck is an ordered set of text pages with a current page.
type Deck struct {
	pages   []string
	current int
}

// NewDeck creates a deck. An empty list yields a single blank page.
func NewDeck(pages ...string) Deck {
	if len(pages) == 0 {
		pages = []string{""}
	}
	return Deck{pages: append([]string(nil), pages...)}
}

// Len returns the number of pages.
func (d Deck) Len() int {
	if len(d.pages) == 0 {
		return 1
	}
	return len(d.pages)
}

// Index returns the current page index.
func (d Deck) Index() int {
	return d.current
}

// Page returns the text of page i, or "" if out of range.
func (d Deck) Page(i int) string {
	if i < 0 || i >= len(d.pages) {
		return ""
	}
	return d.pages[i]
}

// Current returns the text of the current page.
func (d Deck) Current() string {
	return d.Page(d.current)
}

// Pages returns a copy of all pages.
func (d Deck) Pages() []string {
	return append([]string(nil), d.pages...)
}

// Lines returns the current page split into lines.
func (d Deck) Lines() []string {
	return strings.Split(d.Current(), "\n")
}

// Next returns the deck advanced by one page.
// The second result is false at the last page.
func (d Deck) Next() (Deck, bool) {
	if d.current >= d.Len()-1 {
		return d, false
	}
	d.current++
	return d, true
}

// Prev returns the deck moved back by one page.
// The second result is false at the first page.
func (d Deck) Prev() (Deck, bool) {
	if d.current <= 0 {
		return d, false
	}
	d.current--
	return d, true
}

// WithCurrent returns the deck with the current page replaced by text.
func (d Deck) WithCurrent(text string) Deck {
	pages := d.Pages()
	if len(pages) == 0 {
		pages = []string{""}
	}
	pages[d.current] = text
	d.pages = pages
	return d
}

// Append returns the deck with r appended to the current page.
func (d Deck) Append(r rune) Deck {
	return d.WithCurrent(d.Current() + string(r))
}

// Backspace returns the deck with the last rune of the current page removed.
// The second result is false if the page is empty.
func (d Deck) Backspace() (Deck, bool) {
	runes := []rune(d.Current())
	if len(runes) == 0 {
		return d, false
	}
	return d.WithCurrent(string(runes[:len(runes)-1])), true
}
