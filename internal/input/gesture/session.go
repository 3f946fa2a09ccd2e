package gesture

import (
	"time"

	"github.com/google/uuid"
)

// Session is one invocation of a refresh function.
type Session struct {
	// ID uniquely identifies the session.
	ID string

	// StartedAt is when the refresh function was invoked.
	StartedAt time.Time

	done      chan struct{}
	err       error
	settledAt time.Time
}

func newSession() *Session {
	return &Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		done:      make(chan struct{}),
	}
}

// Done returns a channel that is closed once the refresh function has
// returned and the coordinator state has been reset.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Err returns the error the refresh function returned.
// It is nil until Done is closed.
func (s *Session) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

// Wait blocks until the session settles and returns its error.
func (s *Session) Wait() error {
	<-s.done
	return s.err
}

// Settled returns true once the refresh function has returned.
func (s *Session) Settled() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Duration returns how long the refresh ran, or has been running.
func (s *Session) Duration() time.Duration {
	select {
	case <-s.done:
		return s.settledAt.Sub(s.StartedAt)
	default:
		return time.Since(s.StartedAt)
	}
}
