// Package source provides the page deck edited in the terminal host and
// the loaders that refill it on refresh.
//
// A Deck is a value: edits return a new Deck and never modify the
// receiver, so decks can be stored as undo history entries without
// copying.
//
// Pages files come in two formats. Plain text files separate pages with a
// line containing only "---". JSON files are queried with a gjson path
// that must yield an array of strings, by default "pages.#.body".
package source
