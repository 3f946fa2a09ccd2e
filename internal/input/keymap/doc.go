// Package keymap maps terminal key presses to pager actions.
//
// Key specifications can be written in several notations:
//
//	"u"        - Single character
//	"Ctrl+Z"   - Readable notation
//	"<C-z>"    - Vim notation
//	"Left"     - Special key name
//	"<Esc>"    - Special key in Vim notation
//
// Bindings are looked up by Chord, a normalized form of a key press that
// treats Ctrl+letter the same whether the terminal reports it as a control
// code or as a modified rune.
package keymap
