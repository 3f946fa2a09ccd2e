package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// HandlerFunc handles a delivered event.
type HandlerFunc func(ctx context.Context, ev Event) error

// Subscription is a registered handler for a topic pattern.
type Subscription struct {
	id      uint64
	pattern Topic
	handler HandlerFunc
	bus     *Bus
}

// Pattern returns the topic pattern of the subscription.
func (s *Subscription) Pattern() Topic {
	return s.pattern
}

// Unsubscribe removes the subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.remove(s.id)
}

// Stats contains bus statistics.
type Stats struct {
	Published     uint64
	Delivered     uint64
	Unhandled     uint64
	HandlerErrors uint64
	HandlerPanics uint64
	Subscriptions int
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger sets the logger used for handler failures.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithSource sets the default source recorded on published events.
func WithSource(source string) Option {
	return func(b *Bus) {
		b.source = source
	}
}

// Bus delivers events synchronously to subscribers.
type Bus struct {
	mu     sync.RWMutex
	subs   []*Subscription
	nextID uint64
	closed bool

	logger *slog.Logger
	source string

	published     atomic.Uint64
	delivered     atomic.Uint64
	unhandled     atomic.Uint64
	handlerErrors atomic.Uint64
	handlerPanics atomic.Uint64
}

// NewBus creates a new event bus.
func NewBus(opts ...Option) *Bus {
	b := &Bus{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers fn for topics matching pattern.
func (b *Bus) Subscribe(pattern Topic, fn HandlerFunc) (*Subscription, error) {
	if !pattern.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTopic, pattern)
	}
	if fn == nil {
		return nil, ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrBusClosed
	}
	b.nextID++
	sub := &Subscription{
		id:      b.nextID,
		pattern: pattern,
		handler: fn,
		bus:     b,
	}
	b.subs = append(b.subs, sub)
	return sub, nil
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subs {
		if sub.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers an event on topic to every matching subscriber.
func (b *Bus) Publish(ctx context.Context, topic Topic, payload any) error {
	return b.PublishEvent(ctx, New(topic, payload, b.source))
}

// PublishEvent delivers a prepared event to every matching subscriber.
func (b *Bus) PublishEvent(ctx context.Context, ev Event) error {
	if !ev.Topic.IsValid() || ev.Topic.IsWildcard() {
		return fmt.Errorf("%w: %q", ErrInvalidTopic, ev.Topic)
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBusClosed
	}
	var matched []*Subscription
	for _, sub := range b.subs {
		if ev.Topic.Matches(sub.pattern) {
			matched = append(matched, sub)
		}
	}
	b.mu.RUnlock()

	b.published.Add(1)
	if len(matched) == 0 {
		b.unhandled.Add(1)
		return nil
	}

	var errs []error
	for _, sub := range matched {
		if err := b.deliver(ctx, sub, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// deliver runs one handler, converting a panic into ErrHandlerPanic.
func (b *Bus) deliver(ctx context.Context, sub *Subscription, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
			err = fmt.Errorf("%w: %s: %v", ErrHandlerPanic, sub.pattern, r)
			b.logger.Error("event handler panicked",
				"topic", ev.Topic, "pattern", sub.pattern, "panic", r)
		}
	}()

	b.delivered.Add(1)
	if err := sub.handler(ctx, ev); err != nil {
		b.handlerErrors.Add(1)
		b.logger.Warn("event handler failed",
			"topic", ev.Topic, "pattern", sub.pattern, "error", err)
		return err
	}
	return nil
}

// Close releases all subscriptions. Later calls to Publish and
// Subscribe return ErrBusClosed.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.subs = nil
}

// Stats returns current bus statistics.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	count := len(b.subs)
	b.mu.RUnlock()

	return Stats{
		Published:     b.published.Load(),
		Delivered:     b.delivered.Load(),
		Unhandled:     b.unhandled.Load(),
		HandlerErrors: b.handlerErrors.Load(),
		HandlerPanics: b.handlerPanics.Load(),
		Subscriptions: count,
	}
}
