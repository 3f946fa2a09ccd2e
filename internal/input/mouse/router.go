package mouse

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tactile/internal/input/gesture"
)

// Position represents a screen coordinate in cells.
type Position struct {
	X int
	Y int
}

// Axis is the axis a gesture has been locked to.
type Axis uint8

const (
	// AxisNone indicates the gesture has not moved past the slop yet.
	AxisNone Axis = iota
	// AxisHorizontal routes to the swipe recognizer.
	AxisHorizontal
	// AxisVertical routes to the pull-to-refresh coordinator.
	AxisVertical
)

// String returns a string representation of the axis.
func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return "none"
	}
}

// Config configures the router.
type Config struct {
	// Slop is the travel in cells before a press becomes a gesture.
	Slop int

	// CellWidth is the horizontal size of one cell in gesture units.
	CellWidth float64

	// CellHeight is the vertical size of one cell in gesture units.
	CellHeight float64

	// ScrollLines is the number of lines per wheel tick.
	ScrollLines int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Slop:        1,
		CellWidth:   10,
		CellHeight:  20,
		ScrollLines: 3,
	}
}

// Result reports what a single event produced.
type Result struct {
	// Consumed is true if the event belonged to a gesture or the wheel.
	Consumed bool

	// Swipe is the committed swipe direction on release.
	Swipe gesture.Direction

	// Session is the refresh session started on release, if any.
	Session *gesture.Session

	// Scroll is the wheel delta in lines, negative is up.
	Scroll int

	// Cancelled is true if a gesture in progress was cancelled.
	Cancelled bool

	// Offset is the swipe offset at release or cancel, after the final move.
	Offset float64
}

// Router routes mouse events to one gesture recognizer per press.
type Router struct {
	mu     sync.Mutex
	config Config

	swipe *gesture.SwipeRecognizer
	pull  *gesture.PullRefresh

	pressed  bool
	origin   Position
	axis     Axis
	rejected bool
}

// NewRouter creates a router. Either recognizer may be nil.
func NewRouter(config Config, swipe *gesture.SwipeRecognizer, pull *gesture.PullRefresh) *Router {
	def := DefaultConfig()
	if config.Slop < 0 {
		config.Slop = 0
	}
	if config.CellWidth <= 0 {
		config.CellWidth = def.CellWidth
	}
	if config.CellHeight <= 0 {
		config.CellHeight = def.CellHeight
	}
	if config.ScrollLines <= 0 {
		config.ScrollLines = def.ScrollLines
	}
	return &Router{
		config: config,
		swipe:  swipe,
		pull:   pull,
	}
}

// Handle processes a terminal event. ctx is passed to a refresh started
// by this event.
func (r *Router) Handle(ctx context.Context, ev tcell.Event) Result {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		x, y := ev.Position()
		return r.handleMouse(ctx, Position{X: x, Y: y}, ev.Buttons())
	case *tcell.EventFocus:
		if !ev.Focused {
			return r.Cancel()
		}
	case *tcell.EventResize:
		return r.Cancel()
	}
	return Result{}
}

func (r *Router) handleMouse(ctx context.Context, pos Position, buttons tcell.ButtonMask) Result {
	if buttons&tcell.WheelUp != 0 {
		return Result{Consumed: true, Scroll: -r.config.ScrollLines}
	}
	if buttons&tcell.WheelDown != 0 {
		return Result{Consumed: true, Scroll: r.config.ScrollLines}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	held := buttons&tcell.Button1 != 0
	switch {
	case held && !r.pressed:
		r.pressed = true
		r.origin = pos
		r.axis = AxisNone
		r.rejected = false
		return Result{Consumed: true}
	case held:
		r.moveLocked(pos)
		return Result{Consumed: true}
	case r.pressed:
		return r.releaseLocked(ctx, pos)
	}
	return Result{}
}

// moveLocked locks the axis on the first motion past the slop and
// forwards the move to the locked recognizer.
func (r *Router) moveLocked(pos Position) {
	if r.rejected {
		return
	}
	if r.axis == AxisNone {
		dx := abs(pos.X - r.origin.X)
		dy := abs(pos.Y - r.origin.Y)
		if max(dx, dy) <= r.config.Slop {
			return
		}
		if float64(dx)*r.config.CellWidth >= float64(dy)*r.config.CellHeight {
			r.axis = AxisHorizontal
			r.rejected = r.swipe == nil || !r.swipe.TouchStart(r.unitX(r.origin.X))
		} else {
			r.axis = AxisVertical
			r.rejected = r.pull == nil || !r.pull.TouchStart(r.unitY(r.origin.Y))
		}
		if r.rejected {
			return
		}
	}

	switch r.axis {
	case AxisHorizontal:
		r.swipe.TouchMove(r.unitX(pos.X))
	case AxisVertical:
		r.pull.TouchMove(r.unitY(pos.Y))
	}
}

func (r *Router) releaseLocked(ctx context.Context, pos Position) Result {
	// Terminals may report the release position without a final motion.
	if r.axis != AxisNone && !r.rejected && !pos.Equal(r.origin) {
		r.moveLocked(pos)
	}

	res := Result{Consumed: true}
	if !r.rejected {
		switch r.axis {
		case AxisHorizontal:
			res.Offset = r.swipe.Offset()
			res.Swipe = r.swipe.TouchEnd()
		case AxisVertical:
			res.Session = r.pull.TouchEnd(ctx)
		}
	}
	r.resetLocked()
	return res
}

// Cancel abandons the gesture in progress, if any.
func (r *Router) Cancel() Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.pressed {
		return Result{}
	}
	res := Result{Consumed: true, Cancelled: true}
	if !r.rejected {
		switch r.axis {
		case AxisHorizontal:
			res.Offset = r.swipe.Offset()
			r.swipe.TouchCancel()
		case AxisVertical:
			r.pull.TouchCancel()
		}
	}
	r.resetLocked()
	return res
}

func (r *Router) resetLocked() {
	r.pressed = false
	r.origin = Position{}
	r.axis = AxisNone
	r.rejected = false
}

// Axis returns the axis of the gesture in progress.
func (r *Router) Axis() Axis {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.axis
}

// Pressed returns true while the primary button is held.
func (r *Router) Pressed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pressed
}

// SetConfig replaces the unit scaling and slop for subsequent gestures.
func (r *Router) SetConfig(config Config) {
	def := DefaultConfig()
	r.mu.Lock()
	defer r.mu.Unlock()
	if config.Slop >= 0 {
		r.config.Slop = config.Slop
	}
	if config.CellWidth > 0 {
		r.config.CellWidth = config.CellWidth
	}
	if config.CellHeight > 0 {
		r.config.CellHeight = config.CellHeight
	}
	if config.ScrollLines > 0 {
		r.config.ScrollLines = config.ScrollLines
	} else {
		r.config.ScrollLines = def.ScrollLines
	}
}

func (r *Router) unitX(x int) float64 {
	return float64(x) * r.config.CellWidth
}

func (r *Router) unitY(y int) float64 {
	return float64(y) * r.config.CellHeight
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
