package history

import "sync"

// DefaultMaxEntries is the undo depth used when a non-positive bound is given.
const DefaultMaxEntries = 10

// Stack manages undo/redo state for a value of type T.
type Stack[T any] struct {
	mu sync.Mutex

	// past is ordered oldest first.
	past    []T
	present T
	// future is ordered most recently undone first.
	future []T

	maxEntries int
}

// New creates a stack holding initial as its present value.
func New[T any](maxEntries int, initial T) *Stack[T] {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Stack[T]{
		present:    initial,
		maxEntries: maxEntries,
	}
}

// Set records v as the new present value.
// The previous present is pushed onto the past and the future is cleared.
func (s *Stack[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pushPastLocked(s.present)
	s.present = v
	s.future = nil
}

// pushPastLocked appends to the past and evicts the oldest entries beyond the bound.
func (s *Stack[T]) pushPastLocked(v T) {
	s.past = append(s.past, v)
	if excess := len(s.past) - s.maxEntries; excess > 0 {
		// Copy so evicted values are not pinned by the backing array.
		trimmed := make([]T, s.maxEntries)
		copy(trimmed, s.past[excess:])
		s.past = trimmed
	}
}

// Undo restores the most recent past value.
// Returns false and leaves the state unchanged if there is nothing to undo.
func (s *Stack[T]) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.past) == 0 {
		return false
	}

	last := len(s.past) - 1
	prev := s.past[last]
	var zero T
	s.past[last] = zero
	s.past = s.past[:last]

	s.future = append([]T{s.present}, s.future...)
	s.present = prev
	return true
}

// Redo restores the most recently undone value.
// Returns false and leaves the state unchanged if there is nothing to redo.
func (s *Stack[T]) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.future) == 0 {
		return false
	}

	next := s.future[0]
	s.future = s.future[1:]
	if len(s.future) == 0 {
		s.future = nil
	}

	s.pushPastLocked(s.present)
	s.present = next
	return true
}

// Reset discards all history and makes v the present value.
func (s *Stack[T]) Reset(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.past = nil
	s.present = v
	s.future = nil
}

// Present returns the current value.
func (s *Stack[T]) Present() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.present
}

// CanUndo returns true if undo is available.
func (s *Stack[T]) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.past) > 0
}

// CanRedo returns true if redo is available.
func (s *Stack[T]) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.future) > 0
}

// UndoCount returns the number of undo operations available.
func (s *Stack[T]) UndoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.past)
}

// RedoCount returns the number of redo operations available.
func (s *Stack[T]) RedoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.future)
}

// SetMaxEntries changes the maximum number of undo entries.
// If the past is larger, oldest entries are removed.
func (s *Stack[T]) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.maxEntries = max
	if excess := len(s.past) - max; excess > 0 {
		trimmed := make([]T, max)
		copy(trimmed, s.past[excess:])
		s.past = trimmed
	}
}

// MaxEntries returns the maximum number of undo entries.
func (s *Stack[T]) MaxEntries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxEntries
}

// State is a point-in-time copy of a stack.
type State[T any] struct {
	Past    []T
	Present T
	Future  []T
}

// Snapshot returns a copy of the current state.
func (s *Stack[T]) Snapshot() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State[T]{Present: s.present}
	if len(s.past) > 0 {
		st.Past = append([]T(nil), s.past...)
	}
	if len(s.future) > 0 {
		st.Future = append([]T(nil), s.future...)
	}
	return st
}
