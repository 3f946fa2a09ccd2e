// Package app wires the history stack, gesture recognizers and terminal
// backend into the interactive pager.
package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/tactile/internal/config"
	"github.com/dshills/tactile/internal/engine/history"
	"github.com/dshills/tactile/internal/event"
	"github.com/dshills/tactile/internal/input/gesture"
	"github.com/dshills/tactile/internal/input/keymap"
	"github.com/dshills/tactile/internal/input/mouse"
	"github.com/dshills/tactile/internal/plugin/lua"
	"github.com/dshills/tactile/internal/renderer/anim"
	"github.com/dshills/tactile/internal/renderer/backend"
	"github.com/dshills/tactile/internal/source"
)

// Mode selects how keys are interpreted.
type Mode uint8

const (
	// ModeView treats keys as commands.
	ModeView Mode = iota
	// ModeEdit inserts typed runes into the current page.
	ModeEdit
)

// String returns the mode name shown in the status line.
func (m Mode) String() string {
	if m == ModeEdit {
		return "EDIT"
	}
	return "VIEW"
}

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty uses the default
	// location if it exists.
	ConfigPath string

	// PagesPath overrides refresh.pages.
	PagesPath string

	// ScriptPath overrides refresh.script.
	ScriptPath string

	// LogLevel overrides log.level.
	LogLevel string

	// LogFile overrides log.file.
	LogFile string

	// NoHaptics disables haptic feedback.
	NoHaptics bool

	// NoWatch disables config file watching.
	NoWatch bool
}

// Option customizes an Application beyond Options.
type Option func(*Application)

// WithConfig uses cfg instead of loading configuration.
func WithConfig(cfg config.Config) Option {
	return func(a *Application) {
		a.cfg = cfg
		a.cfgSet = true
	}
}

// WithLoader sets the page source used at startup and on refresh.
func WithLoader(l source.Loader) Option {
	return func(a *Application) {
		a.loader = l
	}
}

// WithPoster replaces delivery of background results to the event loop.
// The default posts tcell interrupt events to the backend.
func WithPoster(fn func(any)) Option {
	return func(a *Application) {
		a.post = fn
	}
}

// Application is the pager. All fields below mu are owned by the event
// loop goroutine.
type Application struct {
	opts   Options
	cfg    config.Config
	cfgSet bool

	logger    *slog.Logger
	logLevel  *slog.LevelVar
	logCloser io.Closer

	bus     *event.Bus
	subs    []*event.Subscription
	history *history.Stack[source.Deck]
	swipe   *gesture.SwipeRecognizer
	pull    *gesture.PullRefresh
	router  *mouse.Router
	keys    *keymap.Keymap
	settle  *anim.Settle
	loader  source.Loader
	watcher *config.Watcher

	term *backend.Terminal
	post func(any)

	ctx    context.Context
	cancel context.CancelFunc

	// refreshTimeout is read by refresh goroutines.
	refreshTimeout atomic.Int64
	animating      atomic.Bool
	running        atomic.Bool
	shutdownOnce   sync.Once

	mode   Mode
	scroll int
	status string
	errMsg string
}

// New creates an application. The terminal backend is attached separately
// with SetBackend so the application can be driven without one.
func New(opts Options, extra ...Option) (*Application, error) {
	a := &Application{
		opts:     opts,
		logLevel: new(slog.LevelVar),
	}
	for _, opt := range extra {
		opt(a)
	}

	if err := a.bootstrap(); err != nil {
		a.Shutdown()
		return nil, err
	}
	return a, nil
}

func (a *Application) bootstrap() error {
	a.ctx, a.cancel = context.WithCancel(context.Background())

	if !a.cfgSet {
		cfg, err := a.loadConfig()
		if err != nil {
			return &InitError{Component: "config", Err: err}
		}
		a.cfg = cfg
	}
	a.applyOverrides(&a.cfg)
	if err := a.cfg.Validate(); err != nil {
		return &InitError{Component: "config", Err: err}
	}

	keys, err := keymap.FromConfig(a.cfg.Keys)
	if err != nil {
		return &InitError{Component: "keymap", Err: err}
	}
	a.keys = keys

	a.logger, a.logCloser = newLogger(a.cfg.Log, a.logLevel)
	a.bus = event.NewBus(event.WithLogger(a.logger.With("component", "event")), event.WithSource("app"))

	if a.loader == nil {
		a.loader = a.defaultLoader()
	}
	a.refreshTimeout.Store(int64(a.cfg.Refresh.Timeout.Std()))

	a.history = history.New(a.cfg.History.MaxEntries, a.initialDeck())

	a.swipe = gesture.NewSwipeRecognizer(
		gesture.WithSwipeThreshold(a.cfg.Swipe.Threshold),
		gesture.OnSwipeLeft(func() { a.publish(event.TopicSwipeLeft, nil) }),
		gesture.OnSwipeRight(func() { a.publish(event.TopicSwipeRight, nil) }),
	)
	a.pull = gesture.NewPullRefresh(a.refresh,
		gesture.WithPullThreshold(a.cfg.Pull.Threshold),
		gesture.WithScrollTop(func() bool { return a.scroll == 0 }),
		gesture.OnSettled(func(s *gesture.Session) { a.post(refreshSettled{session: s}) }),
	)
	a.router = mouse.NewRouter(routerConfig(a.cfg.Input), a.swipe, a.pull)
	a.settle = anim.NewSettle(anim.DefaultFPS, anim.DefaultFrequency, anim.DefaultDamping)

	if a.post == nil {
		a.post = func(data any) {
			if a.term != nil {
				a.term.PostInterrupt(data)
			}
		}
	}

	if err := a.subscribe(); err != nil {
		return &InitError{Component: "event bus", Err: err}
	}

	if !a.opts.NoWatch {
		a.startWatcher()
	}

	a.logger.Info("application initialized",
		"pages", a.history.Present().Len(),
		"history", a.cfg.History.MaxEntries,
	)
	return nil
}

func (a *Application) loadConfig() (config.Config, error) {
	path := a.opts.ConfigPath
	opts := []config.LoaderOption{}
	if path == "" {
		path = config.DefaultPath()
		opts = append(opts, config.WithOptionalFile())
	}
	return config.NewLoader(path, opts...).Load()
}

// applyOverrides applies command line options on top of cfg.
func (a *Application) applyOverrides(cfg *config.Config) {
	if a.opts.PagesPath != "" {
		cfg.Refresh.Pages = a.opts.PagesPath
	}
	if a.opts.ScriptPath != "" {
		cfg.Refresh.Script = a.opts.ScriptPath
	}
	if a.opts.LogLevel != "" {
		cfg.Log.Level = a.opts.LogLevel
	}
	if a.opts.LogFile != "" {
		cfg.Log.File = a.opts.LogFile
	}
	if a.opts.NoHaptics {
		cfg.Haptics.Enabled = false
	}
}

// defaultLoader picks the refresh source: a Lua script, then a pages
// file, then the built-in sample.
func (a *Application) defaultLoader() source.Loader {
	switch {
	case a.cfg.Refresh.Script != "":
		return lua.NewRefresher(a.cfg.Refresh.Script, lua.WithLogger(a.logger.With("component", "lua")))
	case a.cfg.Refresh.Pages != "":
		return &source.FileLoader{Path: a.cfg.Refresh.Pages, JSONPath: a.cfg.Refresh.JSONPath}
	default:
		return source.Static(source.Sample()...)
	}
}

func (a *Application) initialDeck() source.Deck {
	ctx, cancel := a.refreshContext(a.ctx)
	defer cancel()

	pages, err := a.loader.Load(ctx)
	if err != nil {
		a.logger.Warn("initial load failed, using sample", "error", err)
		a.setError(err)
		return source.NewDeck(source.Sample()...)
	}
	return source.NewDeck(pages...)
}

func (a *Application) refreshContext(parent context.Context) (context.Context, context.CancelFunc) {
	if d := time.Duration(a.refreshTimeout.Load()); d > 0 {
		return context.WithTimeout(parent, d)
	}
	return context.WithCancel(parent)
}

// refresh runs on the pull coordinator's goroutine. Loaded pages are
// handed to the event loop, which owns the history stack's present deck.
func (a *Application) refresh(ctx context.Context) error {
	ctx, cancel := a.refreshContext(ctx)
	defer cancel()

	pages, err := a.loader.Load(ctx)
	if err != nil {
		return err
	}
	a.post(pagesLoaded{pages: pages})
	return nil
}

func (a *Application) startWatcher() {
	path := a.opts.ConfigPath
	if path == "" {
		return
	}
	w, err := config.NewWatcher(config.NewLoader(path))
	if err != nil {
		a.logger.Warn("config watch disabled", "error", err)
		return
	}
	w.OnChange(func(cfg config.Config) { a.post(configReloaded{cfg: cfg}) })
	w.OnError(func(err error) { a.post(configFailed{err: err}) })
	a.watcher = w

	go func() {
		if err := w.Run(a.ctx); err != nil {
			a.logger.Error("config watcher stopped", "error", err)
		}
	}()
}

// SetBackend attaches the terminal and enables haptics on it.
func (a *Application) SetBackend(term *backend.Terminal) {
	a.term = term
	a.applyHaptics()
}

func (a *Application) applyHaptics() {
	var d gesture.HapticDevice
	if a.cfg.Haptics.Enabled && a.term != nil {
		d = a.term
	}
	a.swipe.SetHaptics(d)
	a.pull.SetHaptics(d)
}

// applyConfig applies a reloaded configuration. Sources are fixed for the
// lifetime of the application.
func (a *Application) applyConfig(cfg config.Config) error {
	a.applyOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	keys, err := keymap.FromConfig(cfg.Keys)
	if err != nil {
		return err
	}
	cfg.Refresh = a.cfg.Refresh
	cfg.Log.File = a.cfg.Log.File

	a.cfg = cfg
	a.logLevel.Set(ParseLogLevel(cfg.Log.Level))
	a.history.SetMaxEntries(cfg.History.MaxEntries)
	a.swipe.SetThreshold(cfg.Swipe.Threshold)
	a.pull.SetThreshold(cfg.Pull.Threshold)
	a.router.SetConfig(routerConfig(cfg.Input))
	a.keys = keys
	a.applyHaptics()

	a.publish(event.TopicConfigReloaded, cfg)
	return nil
}

func routerConfig(in config.InputConfig) mouse.Config {
	return mouse.Config{
		Slop:        in.Slop,
		CellWidth:   in.CellWidth,
		CellHeight:  in.CellHeight,
		ScrollLines: in.ScrollLines,
	}
}

// Run runs the event loop until quit or the backend closes.
func (a *Application) Run() error {
	if a.term == nil {
		return ErrNoBackend
	}
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	if err := a.term.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	defer a.term.Shutdown()

	a.render()
	for {
		ev := a.term.PollEvent()
		if ev == nil {
			return nil
		}
		if err := a.HandleEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		a.render()
	}
}

// Quit asks a running event loop to exit. Safe from any goroutine.
func (a *Application) Quit() {
	a.post(quitRequest{})
}

// Shutdown stops background work and releases resources. Safe to call
// more than once.
func (a *Application) Shutdown() {
	a.shutdownOnce.Do(func() {
		if a.cancel != nil {
			a.cancel()
		}
		if a.pull != nil {
			a.pull.Wait()
		}
		for _, sub := range a.subs {
			sub.Unsubscribe()
		}
		if a.bus != nil {
			a.bus.Close()
		}
		if a.logger != nil {
			a.logger.Info("application shutdown")
		}
		if a.logCloser != nil {
			_ = a.logCloser.Close()
		}
	})
}

// Config returns the active configuration.
func (a *Application) Config() config.Config {
	return a.cfg
}

// Deck returns the present deck.
func (a *Application) Deck() source.Deck {
	return a.history.Present()
}

// History returns the deck history.
func (a *Application) History() *history.Stack[source.Deck] {
	return a.history
}

// Bus returns the intent bus.
func (a *Application) Bus() *event.Bus {
	return a.bus
}

// Pull returns the pull-to-refresh coordinator.
func (a *Application) Pull() *gesture.PullRefresh {
	return a.pull
}

// Mode returns the current key mode.
func (a *Application) Mode() Mode {
	return a.mode
}

// Status returns the status message, or the last error if one is pending.
func (a *Application) Status() string {
	if a.errMsg != "" {
		return a.errMsg
	}
	return a.status
}

// Scroll returns the body scroll offset in lines.
func (a *Application) Scroll() int {
	return a.scroll
}

func (a *Application) publish(topic event.Topic, payload any) {
	if err := a.bus.Publish(a.ctx, topic, payload); err != nil {
		a.logger.Error("publish failed", "topic", topic, "error", err)
		a.setError(err)
	}
}

func (a *Application) setStatus(msg string) {
	a.status = msg
	a.errMsg = ""
}

func (a *Application) setError(err error) {
	a.errMsg = "error: " + err.Error()
}
