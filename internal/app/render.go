package app

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tactile/internal/input/gesture"
)

// Fallback screen size when no backend is attached.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

var (
	styleBody    = tcell.StyleDefault
	styleHeader  = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleStatus  = tcell.StyleDefault.Reverse(true)
	styleError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
	styleGutter  = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

func (a *Application) size() (int, int) {
	if a.term == nil {
		return defaultWidth, defaultHeight
	}
	return a.term.Size()
}

// bodyHeight is the number of page rows between the header and status line.
func (a *Application) bodyHeight() int {
	_, h := a.size()
	return max(h-2, 1)
}

// swipeShift returns the horizontal body shift in cells.
func (a *Application) swipeShift() int {
	offset := a.swipe.Offset()
	if offset == 0 && a.settle.Active() {
		offset = a.settle.Value()
	}
	cw := a.cfg.Input.CellWidth
	if cw <= 0 {
		cw = 1
	}
	return int(math.Round(offset / cw))
}

// pullRows returns how many rows the body is pushed down by a pull.
func (a *Application) pullRows() int {
	ch := a.cfg.Input.CellHeight
	if ch <= 0 {
		ch = 1
	}
	return int(a.pull.PullDistance() / ch)
}

func (a *Application) render() {
	if a.term == nil {
		return
	}
	w, h := a.term.Size()
	a.term.Clear()

	a.term.DrawText(0, 0, a.headerLine(w), styleHeader)

	shift := a.swipeShift()
	top := 1 + a.pullRows()
	lines := a.history.Present().Lines()
	for row := top; row < h-1; row++ {
		i := a.scroll + row - top
		if i >= len(lines) {
			a.term.DrawText(0, row, "~", styleGutter)
			continue
		}
		a.term.DrawText(shift, row, strings.ReplaceAll(lines[i], "\t", "    "), styleBody)
	}

	style := styleStatus
	if a.errMsg != "" {
		style = styleError
	}
	a.term.Fill(0, h-1, ' ', style)
	a.term.DrawText(0, h-1, a.statusLine(), style)
	a.term.Show()
}

// headerLine shows pull progress while pulling or refreshing.
func (a *Application) headerLine(width int) string {
	switch a.pull.State() {
	case gesture.StateRefreshing:
		return "⟳ refreshing…"
	case gesture.StatePulling:
		p := min(a.pull.Progress(), 1)
		bar := max(width/4, 10)
		filled := int(p * float64(bar))
		label := "↓ pull to refresh"
		if p >= 1 {
			label = "↑ release to refresh"
		}
		return fmt.Sprintf("%s [%s%s]", label, strings.Repeat("█", filled), strings.Repeat("·", bar-filled))
	}
	return ""
}

// statusLine renders mode, page position, history availability and the
// current message.
func (a *Application) statusLine() string {
	deck := a.history.Present()
	undo, redo := "-", "-"
	if a.history.CanUndo() {
		undo = fmt.Sprintf("%d", a.history.UndoCount())
	}
	if a.history.CanRedo() {
		redo = fmt.Sprintf("%d", a.history.RedoCount())
	}

	parts := []string{
		" " + a.mode.String(),
		fmt.Sprintf("page %d/%d", deck.Index()+1, deck.Len()),
		fmt.Sprintf("undo %s redo %s", undo, redo),
	}
	if a.pull.State() == gesture.StatePulling {
		parts = append(parts, fmt.Sprintf("pull %3.0f%%", a.pull.Progress()*100))
	}
	if a.pull.Refreshing() {
		parts = append(parts, "refreshing")
	}
	if msg := a.Status(); msg != "" {
		parts = append(parts, msg)
	}
	return strings.Join(parts, " │ ")
}
