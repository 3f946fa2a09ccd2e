package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/tactile/internal/config"
	"github.com/dshills/tactile/internal/event"
	"github.com/dshills/tactile/internal/input/gesture"
	"github.com/dshills/tactile/internal/renderer/backend"
	"github.com/dshills/tactile/internal/source"
)

type harness struct {
	app    *Application
	posted chan any
}

func newHarness(t *testing.T, cfg config.Config, loader source.Loader) *harness {
	t.Helper()
	h := &harness{posted: make(chan any, 256)}
	app, err := New(Options{NoWatch: true},
		WithConfig(cfg),
		WithLoader(loader),
		WithPoster(func(d any) {
			select {
			case h.posted <- d:
			default:
			}
		}),
	)
	require.NoError(t, err)
	t.Cleanup(app.Shutdown)
	h.app = app
	return h
}

func pages(p ...string) source.Loader {
	return source.Static(p...)
}

func (h *harness) key(t *testing.T, k tcell.Key) error {
	t.Helper()
	return h.app.HandleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func (h *harness) runes(t *testing.T, s string) {
	t.Helper()
	for _, r := range s {
		require.NoError(t, h.app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)))
	}
}

func (h *harness) drag(t *testing.T, from, to [2]int) {
	t.Helper()
	steps := 4
	require.NoError(t, h.app.HandleEvent(tcell.NewEventMouse(from[0], from[1], tcell.Button1, tcell.ModNone)))
	for i := 1; i <= steps; i++ {
		x := from[0] + (to[0]-from[0])*i/steps
		y := from[1] + (to[1]-from[1])*i/steps
		require.NoError(t, h.app.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone)))
	}
	require.NoError(t, h.app.HandleEvent(tcell.NewEventMouse(to[0], to[1], tcell.ButtonNone, tcell.ModNone)))
}

// pump feeds posted results to the event loop until done reports true.
func (h *harness) pump(t *testing.T, done func() bool) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for !done() {
		select {
		case d := <-h.posted:
			require.NoError(t, h.app.HandleEvent(tcell.NewEventInterrupt(d)))
		case <-deadline:
			t.Fatal("timed out waiting for the event loop")
		}
	}
}

func TestNewLoadsInitialDeck(t *testing.T) {
	h := newHarness(t, config.Default(), pages("one", "two"))
	deck := h.app.Deck()
	assert.Equal(t, 2, deck.Len())
	assert.Equal(t, "one", deck.Current())
	assert.False(t, h.app.History().CanUndo())
	assert.Equal(t, ModeView, h.app.Mode())
}

func TestNewFallsBackToSample(t *testing.T) {
	failing := source.LoaderFunc(func(context.Context) ([]string, error) {
		return nil, errors.New("unreachable")
	})
	h := newHarness(t, config.Default(), failing)
	assert.Equal(t, source.Sample(), h.app.Deck().Pages())
	assert.Contains(t, h.app.Status(), "unreachable")
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Swipe.Threshold = 0
	_, err := New(Options{NoWatch: true}, WithConfig(cfg), WithLoader(pages("x")))
	var ierr *InitError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, "config", ierr.Component)
	assert.ErrorIs(t, err, config.ErrValidationFailed)
}

func TestOptionsOverrideConfig(t *testing.T) {
	cfg := config.Default()
	app, err := New(Options{NoWatch: true, NoHaptics: true, LogLevel: "debug", PagesPath: "p.txt"},
		WithConfig(cfg), WithLoader(pages("x")))
	require.NoError(t, err)
	defer app.Shutdown()

	assert.False(t, app.Config().Haptics.Enabled)
	assert.Equal(t, "debug", app.Config().Log.Level)
	assert.Equal(t, "p.txt", app.Config().Refresh.Pages)
}

func TestScriptSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refresh.lua")
	require.NoError(t, os.WriteFile(path, []byte(`function refresh() return {"from lua", "again"} end`), 0o644))

	app, err := New(Options{NoWatch: true, ScriptPath: path}, WithConfig(config.Default()))
	require.NoError(t, err)
	defer app.Shutdown()
	assert.Equal(t, []string{"from lua", "again"}, app.Deck().Pages())
}

func TestPagesFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pages.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"pages":[{"body":"a"},{"body":"b"}]}`), 0o644))

	app, err := New(Options{NoWatch: true, PagesPath: path}, WithConfig(config.Default()))
	require.NoError(t, err)
	defer app.Shutdown()
	assert.Equal(t, []string{"a", "b"}, app.Deck().Pages())
}

func TestSwipeTurnsPagesWithUndo(t *testing.T) {
	h := newHarness(t, config.Default(), pages("one", "two", "three"))

	// 20 cells at 10 units per cell clears the 100 unit threshold.
	h.drag(t, [2]int{40, 5}, [2]int{20, 5})
	assert.Equal(t, 1, h.app.Deck().Index())
	assert.True(t, h.app.History().CanUndo())

	h.drag(t, [2]int{20, 5}, [2]int{40, 5})
	assert.Equal(t, 0, h.app.Deck().Index())
	assert.Equal(t, 2, h.app.History().UndoCount())

	require.NoError(t, h.key(t, tcell.KeyCtrlZ))
	assert.Equal(t, 1, h.app.Deck().Index())
	require.NoError(t, h.key(t, tcell.KeyCtrlZ))
	assert.Equal(t, 0, h.app.Deck().Index())
	assert.False(t, h.app.History().CanUndo())

	require.NoError(t, h.key(t, tcell.KeyCtrlY))
	assert.Equal(t, 1, h.app.Deck().Index())
	assert.True(t, h.app.History().CanRedo())
}

func TestSwipePastLastPage(t *testing.T) {
	h := newHarness(t, config.Default(), pages("only"))
	h.drag(t, [2]int{40, 5}, [2]int{10, 5})
	assert.Equal(t, 0, h.app.Deck().Index())
	assert.False(t, h.app.History().CanUndo())
	assert.Equal(t, "no more pages", h.app.Status())
}

func TestShortSwipeSettles(t *testing.T) {
	h := newHarness(t, config.Default(), pages("one", "two"))
	h.drag(t, [2]int{40, 5}, [2]int{45, 5})

	assert.Equal(t, 0, h.app.Deck().Index())
	require.True(t, h.app.settle.Active())
	assert.NotZero(t, h.app.swipeShift())

	h.pump(t, func() bool { return !h.app.settle.Active() })
	assert.Zero(t, h.app.swipeShift())
}

func TestShortSwipeSettlesFromReleasePosition(t *testing.T) {
	h := newHarness(t, config.Default(), pages("one", "two"))
	require.NoError(t, h.app.HandleEvent(tcell.NewEventMouse(40, 5, tcell.Button1, tcell.ModNone)))
	require.NoError(t, h.app.HandleEvent(tcell.NewEventMouse(42, 5, tcell.Button1, tcell.ModNone)))
	require.NoError(t, h.app.HandleEvent(tcell.NewEventMouse(45, 5, tcell.ButtonNone, tcell.ModNone)))

	assert.Equal(t, 0, h.app.Deck().Index())
	require.True(t, h.app.settle.Active())
	assert.Equal(t, 50.0, h.app.settle.Value())
}

func TestEditingWithUndoRedo(t *testing.T) {
	h := newHarness(t, config.Default(), pages(""))

	h.runes(t, "i")
	require.Equal(t, ModeEdit, h.app.Mode())
	h.runes(t, "hey")
	assert.Equal(t, "hey", h.app.Deck().Current())

	require.NoError(t, h.key(t, tcell.KeyBackspace2))
	assert.Equal(t, "he", h.app.Deck().Current())

	require.NoError(t, h.key(t, tcell.KeyCtrlZ))
	assert.Equal(t, "hey", h.app.Deck().Current())
	require.NoError(t, h.key(t, tcell.KeyCtrlZ))
	assert.Equal(t, "he", h.app.Deck().Current())
	require.NoError(t, h.key(t, tcell.KeyCtrlY))
	assert.Equal(t, "hey", h.app.Deck().Current())

	// A new edit discards the redo branch.
	require.NoError(t, h.key(t, tcell.KeyCtrlZ))
	h.runes(t, "!")
	assert.Equal(t, "he!", h.app.Deck().Current())
	assert.False(t, h.app.History().CanRedo())

	require.NoError(t, h.key(t, tcell.KeyEscape))
	assert.Equal(t, ModeView, h.app.Mode())
	h.runes(t, "u")
	assert.Equal(t, "he", h.app.Deck().Current())
	h.runes(t, "r")
	assert.Equal(t, "he!", h.app.Deck().Current())
}

func TestBackspaceOnEmptyPageIsNotAnEdit(t *testing.T) {
	h := newHarness(t, config.Default(), pages(""))
	h.runes(t, "i")
	require.NoError(t, h.key(t, tcell.KeyBackspace))
	assert.False(t, h.app.History().CanUndo())
}

func TestHistoryBound(t *testing.T) {
	cfg := config.Default()
	cfg.History.MaxEntries = 2
	h := newHarness(t, cfg, pages(""))

	h.runes(t, "iabcde")
	assert.Equal(t, 2, h.app.History().UndoCount())

	require.NoError(t, h.key(t, tcell.KeyCtrlZ))
	require.NoError(t, h.key(t, tcell.KeyCtrlZ))
	require.NoError(t, h.key(t, tcell.KeyCtrlZ))
	assert.Equal(t, "abc", h.app.Deck().Current())
}

func TestPullRefreshResetsHistory(t *testing.T) {
	var calls atomic.Int32
	loader := source.LoaderFunc(func(context.Context) ([]string, error) {
		if calls.Add(1) == 1 {
			return []string{"old one", "old two"}, nil
		}
		return []string{"fresh"}, nil
	})
	h := newHarness(t, config.Default(), loader)

	h.drag(t, [2]int{40, 5}, [2]int{20, 5})
	require.True(t, h.app.History().CanUndo())

	var requested, completed int
	_, err := h.app.Bus().Subscribe(event.TopicRefreshRequested, func(context.Context, event.Event) error {
		requested++
		return nil
	})
	require.NoError(t, err)
	_, err = h.app.Bus().Subscribe(event.TopicRefreshCompleted, func(context.Context, event.Event) error {
		completed++
		return nil
	})
	require.NoError(t, err)

	// Five rows at 20 units per row clears the 80 unit threshold.
	h.drag(t, [2]int{5, 0}, [2]int{5, 5})
	assert.Equal(t, 1, requested)
	h.pump(t, func() bool { return completed == 1 })

	assert.Equal(t, []string{"fresh"}, h.app.Deck().Pages())
	assert.False(t, h.app.History().CanUndo())
	assert.False(t, h.app.History().CanRedo())
	assert.False(t, h.app.Pull().Refreshing())
	assert.Zero(t, h.app.Pull().PullDistance())
	assert.Equal(t, "refreshed", h.app.Status())
}

func TestPullRefreshFailureKeepsDeck(t *testing.T) {
	var calls atomic.Int32
	loader := source.LoaderFunc(func(context.Context) ([]string, error) {
		if calls.Add(1) == 1 {
			return []string{"a", "b"}, nil
		}
		return nil, errors.New("offline")
	})
	h := newHarness(t, config.Default(), loader)
	h.drag(t, [2]int{40, 5}, [2]int{20, 5})

	failed := false
	_, err := h.app.Bus().Subscribe(event.TopicRefreshFailed, func(_ context.Context, ev event.Event) error {
		s := ev.Payload.(*gesture.Session)
		assert.EqualError(t, s.Err(), "offline")
		failed = true
		return nil
	})
	require.NoError(t, err)

	h.drag(t, [2]int{5, 0}, [2]int{5, 5})
	h.pump(t, func() bool { return failed })

	assert.Equal(t, 1, h.app.Deck().Index())
	assert.True(t, h.app.History().CanUndo())
	assert.False(t, h.app.Pull().Refreshing())
	assert.Contains(t, h.app.Status(), "offline")
}

func TestPullBelowThresholdDoesNothing(t *testing.T) {
	var calls atomic.Int32
	loader := source.LoaderFunc(func(context.Context) ([]string, error) {
		calls.Add(1)
		return []string{"x"}, nil
	})
	h := newHarness(t, config.Default(), loader)
	h.drag(t, [2]int{5, 0}, [2]int{5, 3})

	assert.Nil(t, h.app.Pull().Session())
	assert.Zero(t, h.app.Pull().PullDistance())
	assert.Equal(t, int32(1), calls.Load())
}

func TestPullRequiresTopOfPage(t *testing.T) {
	long := strings.Repeat("line\n", 100)
	h := newHarness(t, config.Default(), pages(long))

	require.NoError(t, h.key(t, tcell.KeyDown))
	require.Equal(t, 1, h.app.Scroll())

	h.drag(t, [2]int{5, 0}, [2]int{5, 8})
	assert.Nil(t, h.app.Pull().Session())
	assert.Equal(t, gesture.StateIdle, h.app.Pull().State())

	require.NoError(t, h.key(t, tcell.KeyUp))
	h.drag(t, [2]int{5, 0}, [2]int{5, 8})
	require.NotNil(t, h.app.Pull().Session())
	h.pump(t, func() bool { return !h.app.Pull().Refreshing() && h.app.Status() == "refreshed" })
}

func TestWheelScrollClamped(t *testing.T) {
	h := newHarness(t, config.Default(), pages(strings.Repeat("l\n", 30)))
	wheel := func(b tcell.ButtonMask) {
		require.NoError(t, h.app.HandleEvent(tcell.NewEventMouse(0, 0, b, tcell.ModNone)))
	}
	wheel(tcell.WheelUp)
	assert.Zero(t, h.app.Scroll())
	for i := 0; i < 10; i++ {
		wheel(tcell.WheelDown)
	}
	// 31 lines in a 22 line body.
	assert.Equal(t, 9, h.app.Scroll())
}

func TestConfigReloadAppliesThresholds(t *testing.T) {
	h := newHarness(t, config.Default(), pages("one", "two"))

	reloaded := 0
	_, err := h.app.Bus().Subscribe(event.TopicConfigReloaded, func(context.Context, event.Event) error {
		reloaded++
		return nil
	})
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Swipe.Threshold = 500
	cfg.History.MaxEntries = 1
	require.NoError(t, h.app.HandleEvent(tcell.NewEventInterrupt(configReloaded{cfg: cfg})))
	assert.Equal(t, 1, reloaded)
	assert.Equal(t, "config reloaded", h.app.Status())
	assert.Equal(t, 1, h.app.History().MaxEntries())

	h.drag(t, [2]int{40, 5}, [2]int{20, 5})
	assert.Equal(t, 0, h.app.Deck().Index(), "200 units no longer commits")
}

func TestConfigReloadRejectsInvalid(t *testing.T) {
	h := newHarness(t, config.Default(), pages("one"))
	cfg := config.Default()
	cfg.Pull.Threshold = -5
	require.NoError(t, h.app.HandleEvent(tcell.NewEventInterrupt(configReloaded{cfg: cfg})))
	assert.Equal(t, config.Default().Pull.Threshold, h.app.Config().Pull.Threshold)
	assert.Contains(t, h.app.Status(), "pull.threshold")
	assert.NotContains(t, h.app.Status(), "config reloaded")
}

func TestQuitKeys(t *testing.T) {
	h := newHarness(t, config.Default(), pages("one"))
	assert.ErrorIs(t, h.key(t, tcell.KeyCtrlC), ErrQuit)
	assert.ErrorIs(t, h.key(t, tcell.KeyEscape), ErrQuit)
	assert.ErrorIs(t, h.app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)), ErrQuit)

	// In edit mode q is text and Esc leaves the mode.
	h.runes(t, "iq")
	assert.Equal(t, "oneq", h.app.Deck().Current())
	assert.NoError(t, h.key(t, tcell.KeyEscape))
}

func TestCustomKeyBindings(t *testing.T) {
	cfg := config.Default()
	cfg.Keys = map[string][]string{"undo": {"x"}, "quit": {}}
	h := newHarness(t, cfg, pages("one", "two"))

	require.NoError(t, h.key(t, tcell.KeyRight))
	require.Equal(t, 1, h.app.Deck().Index())

	h.runes(t, "u")
	assert.Equal(t, 1, h.app.Deck().Index(), "u is no longer bound")
	h.runes(t, "x")
	assert.Equal(t, 0, h.app.Deck().Index())

	assert.NoError(t, h.app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.ErrorIs(t, h.key(t, tcell.KeyCtrlC), ErrQuit)
}

func TestInvalidKeyBindings(t *testing.T) {
	cfg := config.Default()
	cfg.Keys = map[string][]string{"teleport": {"t"}}
	_, err := New(Options{NoWatch: true}, WithConfig(cfg), WithLoader(pages("x")))
	var ierr *InitError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, "keymap", ierr.Component)
}

func TestFocusLossCancelsGesture(t *testing.T) {
	h := newHarness(t, config.Default(), pages("one", "two"))
	require.NoError(t, h.app.HandleEvent(tcell.NewEventMouse(40, 5, tcell.Button1, tcell.ModNone)))
	require.NoError(t, h.app.HandleEvent(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone)))
	require.NoError(t, h.app.HandleEvent(tcell.NewEventFocus(false)))
	require.NoError(t, h.app.HandleEvent(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone)))
	assert.Equal(t, 0, h.app.Deck().Index())
}

func TestStatusLine(t *testing.T) {
	h := newHarness(t, config.Default(), pages("one", "two"))
	line := h.app.statusLine()
	assert.Contains(t, line, "VIEW")
	assert.Contains(t, line, "page 1/2")
	assert.Contains(t, line, "undo - redo -")

	require.NoError(t, h.key(t, tcell.KeyRight))
	line = h.app.statusLine()
	assert.Contains(t, line, "page 2/2")
	assert.Contains(t, line, "undo 1 redo -")

	require.NoError(t, h.app.HandleEvent(tcell.NewEventMouse(5, 0, tcell.Button1, tcell.ModNone)))
	require.NoError(t, h.app.HandleEvent(tcell.NewEventMouse(5, 2, tcell.Button1, tcell.ModNone)))
	assert.Contains(t, h.app.statusLine(), "pull  50%")
	assert.Contains(t, h.app.headerLine(80), "pull to refresh")
	require.NoError(t, h.app.HandleEvent(tcell.NewEventMouse(5, 5, tcell.Button1, tcell.ModNone)))
	assert.Contains(t, h.app.headerLine(80), "release to refresh")
	require.NoError(t, h.app.HandleEvent(tcell.NewEventResize(80, 24)))
	assert.Empty(t, h.app.headerLine(80))
}

func TestRenderOnSimulationScreen(t *testing.T) {
	h := newHarness(t, config.Default(), pages("hello\nworld", "two"))
	screen := tcell.NewSimulationScreen("UTF-8")
	term := backend.NewTerminalWithScreen(screen)
	require.NoError(t, term.Init())
	defer term.Shutdown()

	h.app.SetBackend(term)
	assert.NotPanics(t, h.app.render)

	require.NoError(t, h.app.HandleEvent(tcell.NewEventMouse(40, 5, tcell.Button1, tcell.ModNone)))
	require.NoError(t, h.app.HandleEvent(tcell.NewEventMouse(30, 5, tcell.Button1, tcell.ModNone)))
	assert.Equal(t, -10, h.app.swipeShift())
	assert.NotPanics(t, h.app.render)
}

func TestRunWithoutBackend(t *testing.T) {
	h := newHarness(t, config.Default(), pages("one"))
	assert.ErrorIs(t, h.app.Run(), ErrNoBackend)
}

func TestShutdownIdempotent(t *testing.T) {
	h := newHarness(t, config.Default(), pages("one"))
	h.app.Shutdown()
	assert.NotPanics(t, h.app.Shutdown)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", ParseLogLevel("debug").String())
	assert.Equal(t, "WARN", ParseLogLevel("Warning").String())
	assert.Equal(t, "ERROR", ParseLogLevel("error").String())
	assert.Equal(t, "INFO", ParseLogLevel("nonsense").String())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "VIEW", ModeView.String())
	assert.Equal(t, "EDIT", ModeEdit.String())
}
