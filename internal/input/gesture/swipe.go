package gesture

import (
	"math"
	"sync"
)

// DefaultSwipeThreshold is the minimum horizontal travel for a swipe.
const DefaultSwipeThreshold = 100.0

// Direction is the outcome of a swipe gesture.
type Direction uint8

const (
	// DirectionNone indicates the gesture was aborted.
	DirectionNone Direction = iota
	// DirectionLeft indicates a swipe toward negative x.
	DirectionLeft
	// DirectionRight indicates a swipe toward positive x.
	DirectionRight
)

// String returns a string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

// SwipeOption configures a SwipeRecognizer.
type SwipeOption func(*SwipeRecognizer)

// WithSwipeThreshold sets the minimum absolute travel. Non-positive values are ignored.
func WithSwipeThreshold(threshold float64) SwipeOption {
	return func(r *SwipeRecognizer) {
		if threshold > 0 {
			r.threshold = threshold
		}
	}
}

// OnSwipeLeft sets the callback for swipes toward negative x.
func OnSwipeLeft(fn func()) SwipeOption {
	return func(r *SwipeRecognizer) {
		r.onLeft = fn
	}
}

// OnSwipeRight sets the callback for swipes toward positive x.
func OnSwipeRight(fn func()) SwipeOption {
	return func(r *SwipeRecognizer) {
		r.onRight = fn
	}
}

// WithSwipeHaptics sets the device pulsed when a swipe commits.
func WithSwipeHaptics(d HapticDevice) SwipeOption {
	return func(r *SwipeRecognizer) {
		r.haptics = d
	}
}

// SwipeRecognizer detects horizontal swipes.
//
// Only the displacement at release counts. A slow long drag and a fast
// flick of the same distance produce the same result.
type SwipeRecognizer struct {
	mu sync.Mutex

	track     Track
	threshold float64

	onLeft  func()
	onRight func()
	haptics HapticDevice
}

// NewSwipeRecognizer creates a swipe recognizer.
func NewSwipeRecognizer(opts ...SwipeOption) *SwipeRecognizer {
	r := &SwipeRecognizer{threshold: DefaultSwipeThreshold}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TouchStart begins tracking at x.
// Returns false if a gesture is already being tracked.
func (r *SwipeRecognizer) TouchStart(x float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.track.Begin(x)
}

// TouchMove updates the live offset. No-op while no gesture is tracked.
func (r *SwipeRecognizer) TouchMove(x float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.track.Move(x)
}

// TouchEnd finishes the gesture and fires the matching callback if the
// offset exceeds the threshold. The offset is reset to zero in all cases.
func (r *SwipeRecognizer) TouchEnd() Direction {
	r.mu.Lock()
	offset, ok := r.track.End()
	threshold := r.threshold
	haptics, onLeft, onRight := r.haptics, r.onLeft, r.onRight
	r.mu.Unlock()

	if !ok || math.Abs(offset) <= threshold {
		return DirectionNone
	}

	pulse(haptics)
	if offset < 0 {
		if onLeft != nil {
			onLeft()
		}
		return DirectionLeft
	}
	if onRight != nil {
		onRight()
	}
	return DirectionRight
}

// TouchCancel discards the gesture without firing callbacks.
func (r *SwipeRecognizer) TouchCancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.track.Clear()
}

// Offset returns the live drag offset, zero while idle.
func (r *SwipeRecognizer) Offset() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.track.Offset()
}

// Active returns true while a gesture is tracked.
func (r *SwipeRecognizer) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.track.Active()
}

// Threshold returns the current threshold.
func (r *SwipeRecognizer) Threshold() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.threshold
}

// SetThreshold changes the threshold. Non-positive values are ignored.
func (r *SwipeRecognizer) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.threshold = threshold
}

// SetHaptics replaces the haptic device. Nil disables feedback.
func (r *SwipeRecognizer) SetHaptics(d HapticDevice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.haptics = d
}
