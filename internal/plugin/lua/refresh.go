package lua

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	lua "github.com/yuin/gopher-lua"
)

// RefreshFunction is the global the script must define.
const RefreshFunction = "refresh"

// Errors returned by script refresh.
var (
	// ErrNoRefreshFunction indicates the script does not define refresh().
	ErrNoRefreshFunction = errors.New("script does not define refresh()")

	// ErrBadResult indicates refresh() returned something other than an array of strings.
	ErrBadResult = errors.New("refresh() must return an array of strings")
)

// ScriptError wraps an error raised while running a script.
type ScriptError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("lua %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}

// Refresher loads pages by running a Lua script.
type Refresher struct {
	path   string
	source string
	logger *slog.Logger
}

// RefresherOption configures a Refresher.
type RefresherOption func(*Refresher)

// WithLogger sets the logger behind tactile.log.
func WithLogger(logger *slog.Logger) RefresherOption {
	return func(r *Refresher) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRefresher creates a refresher for the script at path.
// The file is read on every Load so edits take effect on the next refresh.
func NewRefresher(path string, opts ...RefresherOption) *Refresher {
	r := &Refresher{path: path, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewRefresherFromString creates a refresher for inline script source.
func NewRefresherFromString(name, source string, opts ...RefresherOption) *Refresher {
	r := NewRefresher(name, opts...)
	r.source = source
	return r
}

// Load runs the script and returns the pages refresh() produced.
// Cancelling ctx aborts a running script.
func (r *Refresher) Load(ctx context.Context) (pages []string, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	code := r.source
	if code == "" {
		data, err := os.ReadFile(r.path)
		if err != nil {
			return nil, fmt.Errorf("reading script %s: %w", r.path, err)
		}
		code = string(data)
	}

	L := newState(ctx, r.logger)
	defer L.Close()

	defer func() {
		if rec := recover(); rec != nil {
			err = &ScriptError{Path: r.path, Err: fmt.Errorf("lua panic: %v", rec)}
		}
	}()

	if err := L.DoString(code); err != nil {
		return nil, r.wrap(ctx, err)
	}

	fn := L.GetGlobal(RefreshFunction)
	if fn.Type() != lua.LTFunction {
		return nil, &ScriptError{Path: r.path, Err: ErrNoRefreshFunction}
	}
	if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}); err != nil {
		return nil, r.wrap(ctx, err)
	}
	ret := L.Get(-1)
	L.Pop(1)

	pages, err = toPages(ret)
	if err != nil {
		return nil, &ScriptError{Path: r.path, Err: err}
	}
	return pages, nil
}

// wrap prefers the context error when the script was cancelled.
func (r *Refresher) wrap(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return &ScriptError{Path: r.path, Err: err}
}

func toPages(v lua.LValue) ([]string, error) {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w (got %s)", ErrBadResult, v.Type())
	}
	n := tbl.Len()
	pages := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		s, ok := tbl.RawGetInt(i).(lua.LString)
		if !ok {
			return nil, fmt.Errorf("%w (element %d is %s)", ErrBadResult, i, tbl.RawGetInt(i).Type())
		}
		pages = append(pages, string(s))
	}
	return pages, nil
}
