package app

import (
	"context"
	"fmt"

	"github.com/dshills/tactile/internal/config"
	"github.com/dshills/tactile/internal/event"
	"github.com/dshills/tactile/internal/input/gesture"
	"github.com/dshills/tactile/internal/source"
)

// Interrupt payloads delivered to the event loop from other goroutines.
type (
	pagesLoaded struct {
		pages []string
	}
	refreshSettled struct {
		session *gesture.Session
	}
	configReloaded struct {
		cfg config.Config
	}
	configFailed struct {
		err error
	}
	animFrame   struct{}
	quitRequest struct{}
)

func (a *Application) subscribe() error {
	handlers := []struct {
		pattern event.Topic
		fn      event.HandlerFunc
	}{
		{event.TopicUndo, a.onUndo},
		{event.TopicRedo, a.onRedo},
		{event.TopicSwipeLeft, a.onSwipeLeft},
		{event.TopicSwipeRight, a.onSwipeRight},
		{event.TopicRefreshRequested, a.onRefreshRequested},
		{event.TopicRefreshCompleted, a.onRefreshCompleted},
		{event.TopicRefreshFailed, a.onRefreshFailed},
		{"**", a.traceEvent},
	}
	for _, h := range handlers {
		sub, err := a.bus.Subscribe(h.pattern, h.fn)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", h.pattern, err)
		}
		a.subs = append(a.subs, sub)
	}
	return nil
}

func (a *Application) traceEvent(_ context.Context, ev event.Event) error {
	a.logger.Debug("event", "topic", ev.Topic, "id", ev.ID, "source", ev.Source)
	return nil
}

func (a *Application) onUndo(context.Context, event.Event) error {
	if a.history.Undo() {
		a.setStatus("undo")
		a.clampScroll()
	}
	return nil
}

func (a *Application) onRedo(context.Context, event.Event) error {
	if a.history.Redo() {
		a.setStatus("redo")
		a.clampScroll()
	}
	return nil
}

func (a *Application) onSwipeLeft(context.Context, event.Event) error {
	return a.turnPage((source.Deck).Next)
}

func (a *Application) onSwipeRight(context.Context, event.Event) error {
	return a.turnPage((source.Deck).Prev)
}

func (a *Application) turnPage(step func(source.Deck) (source.Deck, bool)) error {
	next, ok := step(a.history.Present())
	if !ok {
		a.setStatus("no more pages")
		return nil
	}
	a.history.Set(next)
	a.scroll = 0
	a.setStatus(fmt.Sprintf("page %d", next.Index()+1))
	return nil
}

func (a *Application) onRefreshRequested(_ context.Context, ev event.Event) error {
	if s, ok := ev.Payload.(*gesture.Session); ok {
		a.logger.Info("refresh started", "session", s.ID)
	}
	a.setStatus("refreshing")
	return nil
}

func (a *Application) onRefreshCompleted(_ context.Context, ev event.Event) error {
	s, _ := ev.Payload.(*gesture.Session)
	if s != nil {
		a.logger.Info("refresh completed", "session", s.ID, "duration", s.Duration())
	}
	a.setStatus("refreshed")
	return nil
}

func (a *Application) onRefreshFailed(_ context.Context, ev event.Event) error {
	s, _ := ev.Payload.(*gesture.Session)
	if s == nil {
		return nil
	}
	a.logger.Error("refresh failed", "session", s.ID, "error", s.Err())
	a.setError(fmt.Errorf("refresh: %w", s.Err()))
	return nil
}

// handleInterrupt applies a result posted from another goroutine.
func (a *Application) handleInterrupt(data any) {
	switch d := data.(type) {
	case pagesLoaded:
		a.history.Reset(source.NewDeck(d.pages...))
		a.scroll = 0
	case refreshSettled:
		if d.session.Err() != nil {
			a.publish(event.TopicRefreshFailed, d.session)
		} else {
			a.publish(event.TopicRefreshCompleted, d.session)
		}
	case configReloaded:
		if err := a.applyConfig(d.cfg); err != nil {
			a.logger.Warn("config reload rejected", "error", err)
			a.setError(err)
			return
		}
		a.setStatus("config reloaded")
	case configFailed:
		a.logger.Warn("config reload failed", "error", d.err)
		a.setError(d.err)
	case animFrame:
		a.settle.Step()
	}
}
