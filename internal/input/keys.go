package input

import (
	"fmt"
	"strings"
)

// Key identifies a physical key independent of the window backend.
type Key int

const (
	KeyUnknown Key = iota
	KeySpace
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	keyNamedEnd
)

// Printable keys occupy the range after the named ones, keyed by their
// lower-case ASCII rune.
const keyRuneBase = Key(1000)

// KeyFromRune maps a-z, 0-9 and ASCII punctuation. Upper-case letters map to
// their lower-case key.
func KeyFromRune(r rune) Key {
	switch {
	case r == ' ':
		return KeySpace
	case r >= 'A' && r <= 'Z':
		return keyRuneBase + Key(r-'A'+'a')
	case r > ' ' && r < 0x7f:
		return keyRuneBase + Key(r)
	}
	return KeyUnknown
}

// Rune returns the printable rune for a rune key, or 0.
func (k Key) Rune() rune {
	if k > keyRuneBase && k < keyRuneBase+0x7f {
		return rune(k - keyRuneBase)
	}
	return 0
}

var keyNames = map[Key]string{
	KeyUnknown:   "unknown",
	KeySpace:     "space",
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if r := k.Rune(); r != 0 {
		return string(r)
	}
	return fmt.Sprintf("key(%d)", int(k))
}

// ParseKey accepts the names produced by String, case-insensitively.
func ParseKey(s string) (Key, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range keyNames {
		if name == s && k != KeyUnknown {
			return k, nil
		}
	}
	if r := []rune(s); len(r) == 1 {
		if k := KeyFromRune(r[0]); k != KeyUnknown {
			return k, nil
		}
	}
	return KeyUnknown, fmt.Errorf("unknown key %q", s)
}
