// Package gesture recognizes single-pointer touch gestures and turns them
// into discrete intents.
//
// Two recognizers are provided:
//
//   - SwipeRecognizer tracks the horizontal axis and reports a swipe left
//     or right once the released drag exceeds a threshold.
//   - PullRefresh tracks the vertical axis on a scrollable surface that
//     sits at its top edge and starts an asynchronous refresh once the
//     released pull reaches a threshold.
//
// # Touch Phases
//
// Each recognizer receives three kinds of calls per gesture: one
// TouchStart, zero or more TouchMove, and one TouchEnd. A cancelled
// gesture (focus loss, resize, system interruption) must be reported with
// TouchCancel, which resets the same state TouchEnd does. A track left
// active forever would swallow every later gesture.
//
// Calls that arrive out of order are no-ops. TouchMove or TouchEnd without
// a preceding TouchStart does nothing, and a TouchStart while a track is
// already active is refused.
//
// # Haptics
//
// Committed gestures request a short pulse from a HapticDevice. A nil
// device means the host has no such capability and is silently tolerated.
//
// # Refresh Sessions
//
// PullRefresh runs the refresh function on its own goroutine and returns a
// Session for it. At most one session is outstanding; pulls completed
// while it runs are ignored. When the function returns, fails or panics,
// the coordinator leaves the refreshing state and resets the pull distance
// before the session is marked done. The error is handed back untouched
// through Session.Err and the OnSettled callback.
//
// # Thread Safety
//
// Recognizers are safe for concurrent use. Callbacks are invoked without
// holding the recognizer's lock, so they may read recognizer state.
package gesture
