package keys

import (
	"fmt"
	"strings"
)

// KeyStroke is one synthetic key press to inject, with the modifiers held around it.
type KeyStroke struct {
	Key   Key
	Shift bool
	Ctrl  bool
	Alt   bool
}

func (s KeyStroke) HasModifiers() bool {
	return s.Shift || s.Ctrl || s.Alt
}

// String renders the stroke as "Shift+Ctrl+Alt+Key", omitting unset modifiers.
func (s KeyStroke) String() string {
	var parts []string
	if s.Shift {
		parts = append(parts, "Shift")
	}
	if s.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if s.Alt {
		parts = append(parts, "Alt")
	}
	parts = append(parts, s.Key.String())
	return strings.Join(parts, "+")
}

func ParseKeyStroke(text string) (KeyStroke, error) {
	fields := strings.Split(text, "+")
	var stroke KeyStroke
	for i, field := range fields {
		if i == len(fields)-1 {
			k, err := Parse(field)
			if err != nil {
				return KeyStroke{}, fmt.Errorf("parse keystroke %q: %w", text, err)
			}
			stroke.Key = k
			break
		}

		switch strings.ToLower(strings.TrimSpace(field)) {
		case "shift":
			stroke.Shift = true
		case "ctrl":
			stroke.Ctrl = true
		case "alt":
			stroke.Alt = true
		default:
			return KeyStroke{}, fmt.Errorf("parse keystroke %q: unknown modifier %q", text, field)
		}
	}
	return stroke, nil
}

func (s *KeyStroke) UnmarshalText(text []byte) error {
	parsed, err := ParseKeyStroke(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s KeyStroke) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
