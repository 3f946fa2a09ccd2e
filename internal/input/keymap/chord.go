package keymap

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Chord is a normalized key press.
type Chord struct {
	// Key is tcell.KeyRune for character keys.
	Key tcell.Key

	// Rune is the character for KeyRune chords.
	Rune rune

	// Mod holds Ctrl, Alt and Meta. Shift is folded into Rune for
	// character keys.
	Mod tcell.ModMask
}

const chordMods = tcell.ModCtrl | tcell.ModAlt | tcell.ModMeta | tcell.ModShift

// control codes that double as named keys
var controlAliases = map[tcell.Key]tcell.Key{
	tcell.KeyCtrlH: tcell.KeyBackspace,
	tcell.KeyCtrlI: tcell.KeyTab,
	tcell.KeyCtrlM: tcell.KeyEnter,
}

// FromEvent normalizes a tcell key event.
func FromEvent(ev *tcell.EventKey) Chord {
	k := ev.Key()
	mod := ev.Modifiers() & chordMods

	if alias, ok := controlAliases[k]; ok {
		return Chord{Key: alias, Mod: mod &^ tcell.ModCtrl}
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return Chord{Key: tcell.KeyRune, Rune: rune('a' + k - tcell.KeyCtrlA), Mod: (mod | tcell.ModCtrl) &^ tcell.ModShift}
	}
	if k == tcell.KeyRune {
		r := ev.Rune()
		if mod&tcell.ModCtrl != 0 {
			r = unicode.ToLower(r)
		}
		return Chord{Key: tcell.KeyRune, Rune: r, Mod: mod &^ tcell.ModShift}
	}
	if k == tcell.KeyBackspace2 {
		k = tcell.KeyBackspace
	}
	return Chord{Key: k, Mod: mod}
}

// String returns the chord in readable notation.
func (c Chord) String() string {
	var parts []string
	if c.Mod&tcell.ModCtrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if c.Mod&tcell.ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if c.Mod&tcell.ModMeta != 0 {
		parts = append(parts, "Meta")
	}
	if c.Mod&tcell.ModShift != 0 {
		parts = append(parts, "Shift")
	}

	switch {
	case c.Key == tcell.KeyRune && c.Rune == ' ':
		parts = append(parts, "Space")
	case c.Key == tcell.KeyRune:
		parts = append(parts, string(c.Rune))
	default:
		name, ok := displayNames[c.Key]
		if !ok {
			name = fmt.Sprintf("Key(%d)", c.Key)
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, "+")
}

// keyNames maps lowercase key names to keys.
var keyNames = map[string]tcell.Key{
	"esc":       tcell.KeyEscape,
	"escape":    tcell.KeyEscape,
	"enter":     tcell.KeyEnter,
	"return":    tcell.KeyEnter,
	"cr":        tcell.KeyEnter,
	"tab":       tcell.KeyTab,
	"bs":        tcell.KeyBackspace,
	"backspace": tcell.KeyBackspace,
	"del":       tcell.KeyDelete,
	"delete":    tcell.KeyDelete,
	"ins":       tcell.KeyInsert,
	"insert":    tcell.KeyInsert,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pgup":      tcell.KeyPgUp,
	"pageup":    tcell.KeyPgUp,
	"pgdn":      tcell.KeyPgDn,
	"pagedown":  tcell.KeyPgDn,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"f1":        tcell.KeyF1,
	"f2":        tcell.KeyF2,
	"f3":        tcell.KeyF3,
	"f4":        tcell.KeyF4,
	"f5":        tcell.KeyF5,
	"f6":        tcell.KeyF6,
	"f7":        tcell.KeyF7,
	"f8":        tcell.KeyF8,
	"f9":        tcell.KeyF9,
	"f10":       tcell.KeyF10,
	"f11":       tcell.KeyF11,
	"f12":       tcell.KeyF12,
}

var displayNames = map[tcell.Key]string{
	tcell.KeyEscape:    "Esc",
	tcell.KeyEnter:     "Enter",
	tcell.KeyTab:       "Tab",
	tcell.KeyBackspace: "Backspace",
	tcell.KeyDelete:    "Delete",
	tcell.KeyInsert:    "Insert",
	tcell.KeyHome:      "Home",
	tcell.KeyEnd:       "End",
	tcell.KeyPgUp:      "PgUp",
	tcell.KeyPgDn:      "PgDn",
	tcell.KeyUp:        "Up",
	tcell.KeyDown:      "Down",
	tcell.KeyLeft:      "Left",
	tcell.KeyRight:     "Right",
	tcell.KeyF1:        "F1",
	tcell.KeyF2:        "F2",
	tcell.KeyF3:        "F3",
	tcell.KeyF4:        "F4",
	tcell.KeyF5:        "F5",
	tcell.KeyF6:        "F6",
	tcell.KeyF7:        "F7",
	tcell.KeyF8:        "F8",
	tcell.KeyF9:        "F9",
	tcell.KeyF10:       "F10",
	tcell.KeyF11:       "F11",
	tcell.KeyF12:       "F12",
}

var modifierNames = map[string]tcell.ModMask{
	"ctrl":    tcell.ModCtrl,
	"control": tcell.ModCtrl,
	"c":       tcell.ModCtrl,
	"alt":     tcell.ModAlt,
	"option":  tcell.ModAlt,
	"a":       tcell.ModAlt,
	"meta":    tcell.ModMeta,
	"cmd":     tcell.ModMeta,
	"m":       tcell.ModMeta,
	"d":       tcell.ModMeta,
	"shift":   tcell.ModShift,
	"s":       tcell.ModShift,
}

// Parse parses a key specification into a Chord.
func Parse(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, ErrEmptySpec
	}

	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseParts(strings.Split(spec[1:len(spec)-1], "-"), spec)
	}
	if len(spec) > 1 && strings.Contains(spec, "+") {
		parts := strings.Split(spec, "+")
		// "Ctrl++" binds the plus key.
		if strings.HasSuffix(spec, "++") {
			parts = append(parts[:len(parts)-2], "+")
		}
		return parseParts(parts, spec)
	}
	return parseParts([]string{spec}, spec)
}

func parseParts(parts []string, spec string) (Chord, error) {
	var mod tcell.ModMask
	for _, p := range parts[:len(parts)-1] {
		m, ok := modifierNames[strings.ToLower(strings.TrimSpace(p))]
		if !ok {
			return Chord{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidSpec, p, spec)
		}
		mod |= m
	}

	keyPart := strings.TrimSpace(parts[len(parts)-1])
	if keyPart == "" {
		return Chord{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
	}

	lower := strings.ToLower(keyPart)
	if k, ok := keyNames[lower]; ok {
		return Chord{Key: k, Mod: mod}, nil
	}
	if lower == "space" {
		return Chord{Key: tcell.KeyRune, Rune: ' ', Mod: mod &^ tcell.ModShift}, nil
	}

	runes := []rune(keyPart)
	if len(runes) != 1 {
		return Chord{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidSpec, keyPart, spec)
	}
	r := runes[0]
	if mod&tcell.ModCtrl != 0 {
		r = unicode.ToLower(r)
	} else if mod&tcell.ModShift != 0 {
		r = unicode.ToUpper(r)
	}
	return Chord{Key: tcell.KeyRune, Rune: r, Mod: mod &^ tcell.ModShift}, nil
}
