// Package history provides bounded undo/redo state for editable values.
//
// A Stack holds the present value together with the values it replaced
// (past) and the values that were undone (future). Every edit goes
// through Set:
//
//	stack := history.New(10, deck) // keep at most 10 undo entries
//
//	stack.Set(edited)
//	stack.Undo() // present == deck
//	stack.Redo() // present == edited
//
// # Linear Timeline
//
// Set always discards the redo entries. Once an edit diverges from an
// undone state the undone branch is gone; there is no history tree.
// No equality check is made, so setting the present value again is still
// a transition and still drops redo entries.
//
// # Bound
//
// The past holds at most MaxEntries values. Pushing beyond the bound
// silently evicts the oldest entry. Redo pushes onto the past with the
// same eviction rule.
//
// # Reset
//
// Reset replaces the whole state with a single present value. It is used
// after loading new source data, when earlier edits no longer apply.
//
// # Thread Safety
//
// Stack is safe for concurrent use. Operations never fail; undo and redo
// with nothing to restore are no-ops that report false.
package history
