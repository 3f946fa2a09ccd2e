package gesture

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultPullThreshold is the pull distance that commits a refresh.
const DefaultPullThreshold = 80.0

// pullResistance caps the pull distance at this multiple of the threshold.
const pullResistance = 1.5

// RefreshFunc reloads content. It owns its own retry and error reporting.
type RefreshFunc func(ctx context.Context) error

// PullState is the state of a PullRefresh coordinator.
type PullState uint8

const (
	// StateIdle indicates no pull is tracked and no refresh is running.
	StateIdle PullState = iota
	// StatePulling indicates a pull gesture is tracked.
	StatePulling
	// StateRefreshing indicates a refresh session is outstanding.
	StateRefreshing
)

// String returns a string representation of the state.
func (s PullState) String() string {
	switch s {
	case StatePulling:
		return "pulling"
	case StateRefreshing:
		return "refreshing"
	default:
		return "idle"
	}
}

// PullOption configures a PullRefresh.
type PullOption func(*PullRefresh)

// WithPullThreshold sets the commit distance. Non-positive values are ignored.
func WithPullThreshold(threshold float64) PullOption {
	return func(p *PullRefresh) {
		if threshold > 0 {
			p.threshold = threshold
		}
	}
}

// WithPullHaptics sets the device pulsed when a refresh commits.
func WithPullHaptics(d HapticDevice) PullOption {
	return func(p *PullRefresh) {
		p.haptics = d
	}
}

// WithScrollTop sets the probe reporting whether the scrollable surface
// is at its top edge. Without a probe the surface is always at the top.
func WithScrollTop(atTop func() bool) PullOption {
	return func(p *PullRefresh) {
		p.atTop = atTop
	}
}

// OnSettled sets a callback invoked after each session settles and the
// coordinator state has been reset.
func OnSettled(fn func(*Session)) PullOption {
	return func(p *PullRefresh) {
		p.onSettled = fn
	}
}

// PullRefresh coordinates pull-to-refresh on a vertical scrollable surface.
type PullRefresh struct {
	mu sync.Mutex

	track     Track
	threshold float64
	distance  float64
	session   *Session

	refresh   RefreshFunc
	atTop     func() bool
	haptics   HapticDevice
	onSettled func(*Session)

	wg sync.WaitGroup
}

// NewPullRefresh creates a coordinator that runs refresh when a pull commits.
func NewPullRefresh(refresh RefreshFunc, opts ...PullOption) *PullRefresh {
	p := &PullRefresh{
		threshold: DefaultPullThreshold,
		refresh:   refresh,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// TouchStart begins a pull at y.
// The pull is refused while a refresh is outstanding, while another pull
// is tracked, or when the surface is scrolled away from its top.
func (p *PullRefresh) TouchStart(y float64) bool {
	p.mu.Lock()
	atTop := p.atTop
	busy := p.session != nil || p.track.Active()
	p.mu.Unlock()

	if busy {
		return false
	}
	if atTop != nil && !atTop() {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session != nil {
		return false
	}
	return p.track.Begin(y)
}

// TouchMove updates the pull distance for downward travel.
// Upward travel leaves the distance unchanged.
func (p *PullRefresh) TouchMove(y float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session != nil || !p.track.Move(y) {
		return
	}
	delta := p.track.Offset()
	if delta > 0 {
		p.distance = min(delta, p.threshold*pullResistance)
	}
}

// TouchEnd finishes the pull. If the distance reached the threshold a
// refresh session is started on its own goroutine and returned; otherwise
// the distance is reset and nil is returned.
func (p *PullRefresh) TouchEnd(ctx context.Context) *Session {
	if ctx == nil {
		ctx = context.Background()
	}

	p.mu.Lock()
	if _, ok := p.track.End(); !ok || p.session != nil {
		p.mu.Unlock()
		return nil
	}
	if p.distance < p.threshold {
		p.distance = 0
		p.mu.Unlock()
		return nil
	}

	s := newSession()
	p.session = s
	haptics := p.haptics
	p.wg.Add(1)
	p.mu.Unlock()

	pulse(haptics)
	go p.run(ctx, s)
	return s
}

// TouchCancel discards a tracked pull without refreshing.
func (p *PullRefresh) TouchCancel() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.track.Active() {
		return
	}
	p.track.Clear()
	if p.session == nil {
		p.distance = 0
	}
}

// run invokes the refresh function and always releases the session.
func (p *PullRefresh) run(ctx context.Context, s *Session) {
	defer p.wg.Done()
	defer p.settle(s)
	defer func() {
		if r := recover(); r != nil {
			s.err = fmt.Errorf("%w: %v", ErrRefreshPanic, r)
		}
	}()

	if p.refresh != nil {
		s.err = p.refresh(ctx)
	}
}

// settle resets the coordinator and marks s done.
func (p *PullRefresh) settle(s *Session) {
	p.mu.Lock()
	p.session = nil
	p.distance = 0
	onSettled := p.onSettled
	p.mu.Unlock()

	s.settledAt = time.Now()
	close(s.done)

	if onSettled != nil {
		onSettled(s)
	}
}

// Wait blocks until no refresh session is outstanding.
func (p *PullRefresh) Wait() {
	p.wg.Wait()
}

// State returns the coordinator state.
func (p *PullRefresh) State() PullState {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case p.session != nil:
		return StateRefreshing
	case p.track.Active():
		return StatePulling
	default:
		return StateIdle
	}
}

// Refreshing returns true while a refresh session is outstanding.
func (p *PullRefresh) Refreshing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session != nil
}

// Session returns the outstanding session, or nil.
func (p *PullRefresh) Session() *Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session
}

// PullDistance returns the live pull distance in [0, threshold*1.5].
func (p *PullRefresh) PullDistance() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.distance
}

// Progress returns the pull distance relative to the threshold, in [0, 1.5].
// Values of 1 and above mean releasing now would refresh.
func (p *PullRefresh) Progress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.distance / p.threshold
}

// Threshold returns the current threshold.
func (p *PullRefresh) Threshold() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.threshold
}

// SetThreshold changes the threshold. Non-positive values are ignored.
func (p *PullRefresh) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.threshold = threshold
}

// SetHaptics replaces the haptic device. Nil disables feedback.
func (p *PullRefresh) SetHaptics(d HapticDevice) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.haptics = d
}
