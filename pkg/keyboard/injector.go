package keyboard

import (
	"codeberg.org/miketth/dyscover/pkg/keys"
	"errors"
)

var ErrUnmappedKey = errors.New("key has no injection code")

// Injector types a whole keystroke: modifiers down, key down and up, modifiers up.
type Injector interface {
	SendKeyStroke(stroke keys.KeyStroke) error
}
