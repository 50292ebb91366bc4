package keys

import (
	"fmt"
	"strings"
)

// Key is a physical key on the Clevy keyboard, independent of the host layout.
type Key int

const (
	Unknown Key = iota
	Esc
	CapsLock
	Up
	Down
	Left
	Right
	Backspace
	Space
	Enter
	Tab
	Dot
	Comma
	One
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Zero
	OpenBracket
	CloseBracket
	Semicolon
	Apostrophe
	Backslash
	Minus
	Slash
	Equal
	Backtick
	Ins
	Del
	Home
	End
	PageUp
	PageDown
	A
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	Shift
	Ctrl
	Alt
	AltGr
	WinCmd
)

var names = [...]string{
	Unknown:      "Unknown",
	Esc:          "Esc",
	CapsLock:     "CapsLock",
	Up:           "Up",
	Down:         "Down",
	Left:         "Left",
	Right:        "Right",
	Backspace:    "Backspace",
	Space:        "Space",
	Enter:        "Enter",
	Tab:          "Tab",
	Dot:          "Dot",
	Comma:        "Comma",
	One:          "One",
	Two:          "Two",
	Three:        "Three",
	Four:         "Four",
	Five:         "Five",
	Six:          "Six",
	Seven:        "Seven",
	Eight:        "Eight",
	Nine:         "Nine",
	Zero:         "Zero",
	OpenBracket:  "OpenBracket",
	CloseBracket: "CloseBracket",
	Semicolon:    "Semicolon",
	Apostrophe:   "Apostrophe",
	Backslash:    "Backslash",
	Minus:        "Minus",
	Slash:        "Slash",
	Equal:        "Equal",
	Backtick:     "Backtick",
	Ins:          "Ins",
	Del:          "Del",
	Home:         "Home",
	End:          "End",
	PageUp:       "PageUp",
	PageDown:     "PageDown",
	A:            "A",
	B:            "B",
	C:            "C",
	D:            "D",
	E:            "E",
	F:            "F",
	G:            "G",
	H:            "H",
	I:            "I",
	J:            "J",
	K:            "K",
	L:            "L",
	M:            "M",
	N:            "N",
	O:            "O",
	P:            "P",
	Q:            "Q",
	R:            "R",
	S:            "S",
	T:            "T",
	U:            "U",
	V:            "V",
	W:            "W",
	X:            "X",
	Y:            "Y",
	Z:            "Z",
	F1:           "F1",
	F2:           "F2",
	F3:           "F3",
	F4:           "F4",
	F5:           "F5",
	F6:           "F6",
	F7:           "F7",
	F8:           "F8",
	F9:           "F9",
	F10:          "F10",
	F11:          "F11",
	F12:          "F12",
	Shift:        "Shift",
	Ctrl:         "Ctrl",
	Alt:          "Alt",
	AltGr:        "AltGr",
	WinCmd:       "WinCmd",
}

var byName = func() map[string]Key {
	m := make(map[string]Key, len(names))
	for k, name := range names {
		m[strings.ToLower(name)] = Key(k)
	}
	return m
}()

func (k Key) String() string {
	if k < 0 || int(k) >= len(names) {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return names[k]
}

// Parse looks a key up by its name, case-insensitively.
func Parse(name string) (Key, error) {
	k, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok || k == Unknown {
		return Unknown, fmt.Errorf("unknown key %q", name)
	}
	return k, nil
}

func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsModifier reports whether the key only changes modifier state.
func (k Key) IsModifier() bool {
	switch k {
	case Shift, Ctrl, Alt, AltGr:
		return true
	}
	return false
}

type EventType int

const (
	KeyDown EventType = iota
	KeyUp
)

func (t EventType) String() string {
	if t == KeyUp {
		return "up"
	}
	return "down"
}

// Modifiers is the live modifier state at the time of an event.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
	AltGr bool
}

// Event is a physical key event as delivered by an input source.
type Event struct {
	Key       Key
	Type      EventType
	Modifiers Modifiers
	CapsLock  bool
}
