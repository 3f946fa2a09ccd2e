// Package mouse turns terminal mouse input into touch gestures.
//
// Terminals report a mouse press, motion while the button is held, and a
// release. The Router maps these onto the touch phases of the gesture
// recognizers: press is touch start, held motion is touch move, release
// is touch end. Losing terminal focus or resizing the terminal cancels
// the gesture in progress.
//
// # Axis Lock
//
// A press does not start a gesture by itself. The first motion beyond the
// slop distance decides the axis by the dominant direction of travel:
//
//   - Horizontal travel routes the gesture to the swipe recognizer.
//   - Vertical travel routes the gesture to the pull-to-refresh coordinator.
//
// The chosen recognizer then sees a touch start at the press position and
// every following move. The other recognizer sees nothing until the next
// press, so at most one gesture is active at a time. If the chosen
// recognizer refuses the start (for example while a refresh is running
// or the surface is scrolled), the rest of the gesture is dropped.
//
// # Units
//
// Cell coordinates are scaled by the configured cell width and height, so
// thresholds are expressed in pixel-like units rather than cells.
//
// # Scroll Wheel
//
// Wheel events are not gestures. They are reported as line deltas to the
// scroll callback so the host can move its scrollable surface.
package mouse
