package anim

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Default spring parameters.
const (
	DefaultFPS       = 60
	DefaultFrequency = 8.0
	DefaultDamping   = 1.0
)

// epsilon is the distance and speed below which the spring is at rest.
const epsilon = 0.5

// Settle drives a value back to zero with a spring.
type Settle struct {
	mu     sync.Mutex
	spring harmonica.Spring
	frame  time.Duration

	pos    float64
	vel    float64
	active bool
}

// NewSettle creates a spring stepped fps times per second.
func NewSettle(fps int, frequency, damping float64) *Settle {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Settle{
		spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
		frame:  time.Second / time.Duration(fps),
	}
}

// Frame returns the interval between steps.
func (s *Settle) Frame() time.Duration {
	return s.frame
}

// Start begins settling from value. A zero value does not start.
func (s *Settle) Start(from float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if math.Abs(from) < epsilon {
		s.stopLocked()
		return false
	}
	s.pos = from
	s.vel = 0
	s.active = true
	return true
}

// Step advances one frame and returns the new value.
// The second result is true once the spring is at rest.
func (s *Settle) Step() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return 0, true
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, 0)
	if math.Abs(s.pos) < epsilon && math.Abs(s.vel) < epsilon {
		s.stopLocked()
		return 0, true
	}
	return s.pos, false
}

// Stop ends the animation at zero.
func (s *Settle) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Settle) stopLocked() {
	s.pos = 0
	s.vel = 0
	s.active = false
}

// Value returns the current value.
func (s *Settle) Value() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

// Active returns true while the spring is moving.
func (s *Settle) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}
