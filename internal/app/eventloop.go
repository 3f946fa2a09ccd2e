package app

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tactile/internal/event"
	"github.com/dshills/tactile/internal/input/gesture"
	"github.com/dshills/tactile/internal/input/keymap"
	"github.com/dshills/tactile/internal/source"
)

// HandleEvent processes a single backend event. Returns ErrQuit when the
// user asks to exit.
func (a *Application) HandleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse, *tcell.EventFocus, *tcell.EventResize:
		a.handlePointer(ev)
	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(quitRequest); ok {
			return ErrQuit
		}
		a.handleInterrupt(ev.Data())
	case *tcell.EventPaste:
		// Paste start and end markers carry no text.
	}
	return nil
}

func (a *Application) handlePointer(ev tcell.Event) {
	res := a.router.Handle(a.ctx, ev)

	if _, ok := ev.(*tcell.EventResize); ok || res.Scroll != 0 {
		a.scroll += res.Scroll
		a.clampScroll()
	}
	if res.Session != nil {
		a.publish(event.TopicRefreshRequested, res.Session)
	}
	// An uncommitted swipe springs back from where it was released.
	if res.Swipe == gesture.DirectionNone && res.Offset != 0 && !a.swipe.Active() {
		if a.settle.Start(res.Offset) {
			a.animate()
		}
	}
	if res.Swipe != gesture.DirectionNone {
		a.settle.Stop()
	}
}

// animate posts frames until the spring settles.
func (a *Application) animate() {
	if !a.animating.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer a.animating.Store(false)
		ticker := time.NewTicker(a.settle.Frame())
		defer ticker.Stop()
		for a.settle.Active() {
			select {
			case <-a.ctx.Done():
				return
			case <-ticker.C:
				a.post(animFrame{})
			}
		}
	}()
}

var interruptChord = keymap.Chord{Key: tcell.KeyRune, Rune: 'c', Mod: tcell.ModCtrl}

func (a *Application) handleKey(ev *tcell.EventKey) error {
	// Ctrl+C always quits, whatever the bindings say.
	if keymap.FromEvent(ev) == interruptChord {
		return ErrQuit
	}
	if a.mode == ModeEdit && a.handleEditKey(ev) {
		return nil
	}

	action, ok := a.keys.Lookup(ev)
	if !ok {
		return nil
	}
	return a.runAction(action)
}

func (a *Application) runAction(action keymap.Action) error {
	switch action {
	case keymap.ActionQuit:
		return ErrQuit
	case keymap.ActionUndo:
		a.publish(event.TopicUndo, nil)
	case keymap.ActionRedo:
		a.publish(event.TopicRedo, nil)
	case keymap.ActionNextPage:
		a.publish(event.TopicSwipeLeft, nil)
	case keymap.ActionPrevPage:
		a.publish(event.TopicSwipeRight, nil)
	case keymap.ActionScrollUp:
		a.scrollBy(-1)
	case keymap.ActionScrollDown:
		a.scrollBy(1)
	case keymap.ActionPageUp:
		a.scrollBy(-a.bodyHeight())
	case keymap.ActionPageDown:
		a.scrollBy(a.bodyHeight())
	case keymap.ActionEdit:
		a.mode = ModeEdit
		a.setStatus("")
	}
	return nil
}

// handleEditKey applies text editing keys. Returns false for keys that
// should go through the keymap.
func (a *Application) handleEditKey(ev *tcell.EventKey) bool {
	deck := a.history.Present()
	chord := keymap.FromEvent(ev)
	switch {
	case chord.Key == tcell.KeyEscape && chord.Mod == 0:
		a.mode = ModeView
	case chord.Key == tcell.KeyEnter && chord.Mod == 0:
		a.edit(deck.Append('\n'))
	case chord.Key == tcell.KeyTab && chord.Mod == 0:
		a.edit(deck.Append('\t'))
	case chord.Key == tcell.KeyBackspace:
		if next, ok := deck.Backspace(); ok {
			a.edit(next)
		}
	case chord.Key == tcell.KeyRune && chord.Mod&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) == 0:
		a.edit(deck.Append(chord.Rune))
	default:
		return false
	}
	return true
}

func (a *Application) edit(next source.Deck) {
	a.history.Set(next)
	a.errMsg = ""
}

func (a *Application) scrollBy(n int) {
	a.scroll += n
	a.clampScroll()
}

func (a *Application) clampScroll() {
	limit := len(a.history.Present().Lines()) - a.bodyHeight()
	if a.scroll > limit {
		a.scroll = limit
	}
	if a.scroll < 0 {
		a.scroll = 0
	}
}
