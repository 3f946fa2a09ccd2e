// Package backend wraps the tcell terminal screen used by the host.
//
// Besides drawing, the Terminal is the host's haptic device: a committed
// gesture rings the terminal bell, which terminals may render as a sound
// or a visual flash, or ignore.
package backend
