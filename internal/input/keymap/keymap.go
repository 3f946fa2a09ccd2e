package keymap

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Action names a pager command.
type Action string

// Pager actions.
const (
	ActionUndo       Action = "undo"
	ActionRedo       Action = "redo"
	ActionNextPage   Action = "next-page"
	ActionPrevPage   Action = "prev-page"
	ActionScrollUp   Action = "scroll-up"
	ActionScrollDown Action = "scroll-down"
	ActionPageUp     Action = "page-up"
	ActionPageDown   Action = "page-down"
	ActionEdit       Action = "edit"
	ActionQuit       Action = "quit"
)

// ErrUnknownAction is returned when binding an action that does not exist.
var ErrUnknownAction = errors.New("unknown action")

// Actions returns all actions in a stable order.
func Actions() []Action {
	return []Action{
		ActionUndo, ActionRedo,
		ActionNextPage, ActionPrevPage,
		ActionScrollUp, ActionScrollDown, ActionPageUp, ActionPageDown,
		ActionEdit, ActionQuit,
	}
}

// Valid returns true if a is a known action.
func (a Action) Valid() bool {
	for _, known := range Actions() {
		if a == known {
			return true
		}
	}
	return false
}

// defaultBindings are the built-in key specifications per action.
var defaultBindings = map[Action][]string{
	ActionUndo:       {"Ctrl+Z", "u"},
	ActionRedo:       {"Ctrl+Y", "r"},
	ActionNextPage:   {"Right", "n", "l"},
	ActionPrevPage:   {"Left", "p", "h"},
	ActionScrollUp:   {"Up", "k"},
	ActionScrollDown: {"Down", "j"},
	ActionPageUp:     {"PgUp"},
	ActionPageDown:   {"PgDn", "Space"},
	ActionEdit:       {"i"},
	ActionQuit:       {"Ctrl+C", "Ctrl+Q", "Esc", "q"},
}

// Keymap maps chords to actions. The zero value is an empty keymap.
type Keymap struct {
	bindings map[Chord]Action
}

// New creates an empty keymap.
func New() *Keymap {
	return &Keymap{bindings: make(map[Chord]Action)}
}

// Default returns the built-in keymap.
func Default() *Keymap {
	km := New()
	for action, specs := range defaultBindings {
		for _, spec := range specs {
			if err := km.Bind(spec, action); err != nil {
				panic("keymap: invalid default binding " + spec + ": " + err.Error())
			}
		}
	}
	return km
}

// FromConfig returns the default keymap with the actions named in
// overrides rebound. An action listed with no keys is unbound.
func FromConfig(overrides map[string][]string) (*Keymap, error) {
	km := Default()

	var errs []error
	for name, specs := range overrides {
		action := Action(strings.ToLower(strings.TrimSpace(name)))
		if !action.Valid() {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownAction, name))
			continue
		}
		km.Unbind(action)
		for _, spec := range specs {
			if err := km.Bind(spec, action); err != nil {
				errs = append(errs, fmt.Errorf("keys.%s: %w", action, err))
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return km, nil
}

// Bind binds spec to action, replacing any existing binding for the chord.
func (k *Keymap) Bind(spec string, action Action) error {
	if !action.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	c, err := Parse(spec)
	if err != nil {
		return err
	}
	if k.bindings == nil {
		k.bindings = make(map[Chord]Action)
	}
	k.bindings[c] = action
	return nil
}

// Unbind removes every chord bound to action.
func (k *Keymap) Unbind(action Action) {
	for c, a := range k.bindings {
		if a == action {
			delete(k.bindings, c)
		}
	}
}

// Lookup returns the action bound to the key event.
func (k *Keymap) Lookup(ev *tcell.EventKey) (Action, bool) {
	a, ok := k.bindings[FromEvent(ev)]
	return a, ok
}

// LookupChord returns the action bound to c.
func (k *Keymap) LookupChord(c Chord) (Action, bool) {
	a, ok := k.bindings[c]
	return a, ok
}

// Keys returns the chords bound to action in readable notation, sorted.
func (k *Keymap) Keys(action Action) []string {
	var keys []string
	for c, a := range k.bindings {
		if a == action {
			keys = append(keys, c.String())
		}
	}
	sort.Strings(keys)
	return keys
}
