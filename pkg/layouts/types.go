package layouts

import (
	"codeberg.org/miketth/dyscover/pkg/keys"
	"fmt"
	"strings"
)

type CapsLock int

const (
	CapsIgnore CapsLock = iota
	CapsActive
	CapsInactive
)

func (c CapsLock) String() string {
	switch c {
	case CapsActive:
		return "active"
	case CapsInactive:
		return "inactive"
	default:
		return "ignore"
	}
}

func (c *CapsLock) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "ignore":
		*c = CapsIgnore
	case "active":
		*c = CapsActive
	case "inactive":
		*c = CapsInactive
	default:
		return fmt.Errorf("invalid caps lock condition %q", text)
	}
	return nil
}

func (c CapsLock) matches(active bool) bool {
	switch c {
	case CapsActive:
		return active
	case CapsInactive:
		return !active
	default:
		return true
	}
}

// Action is what a matched entry produces.
type Action struct {
	Keystrokes   []keys.KeyStroke
	Sound        string
	EndsSentence bool
}

// Empty reports whether the action does nothing at all.
func (a Action) Empty() bool {
	return len(a.Keystrokes) == 0 && a.Sound == "" && !a.EndsSentence
}

type Entry struct {
	Key      keys.Key         `yaml:"key"`
	Shift    bool             `yaml:"shift"`
	Ctrl     bool             `yaml:"ctrl"`
	Alt      bool             `yaml:"alt"`
	CapsLock CapsLock         `yaml:"caps"`
	Output   []keys.KeyStroke `yaml:"out"`
	Sound    string           `yaml:"sound"`
	Sentence bool             `yaml:"sentence"`
}

func (e Entry) matches(key keys.Key, capsLock, shift, ctrl, alt bool) bool {
	return e.Key == key &&
		e.Shift == shift &&
		e.Ctrl == ctrl &&
		e.Alt == alt &&
		e.CapsLock.matches(capsLock)
}

func (e Entry) action() Action {
	return Action{
		Keystrokes:   e.Output,
		Sound:        e.Sound,
		EndsSentence: e.Sentence,
	}
}

// Layout is an immutable, ordered list of translation entries.
type Layout struct {
	Name     string  `yaml:"name"`
	Language string  `yaml:"language"`
	Entries  []Entry `yaml:"entries"`
}

// Translate returns the action of the first entry matching the key and modifier state.
// The zero Action is returned when nothing matches.
func (l *Layout) Translate(key keys.Key, capsLock, shift, ctrl, alt bool) Action {
	if l == nil {
		return Action{}
	}

	for _, e := range l.Entries {
		if e.matches(key, capsLock, shift, ctrl, alt) {
			return e.action()
		}
	}

	return Action{}
}
