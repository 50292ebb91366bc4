package keyboard

import (
	"codeberg.org/miketth/dyscover/pkg/keys"
	"context"
)

// EventHandler receives every key event in order and returns true to swallow it.
type EventHandler func(ev keys.Event) bool

// Source delivers physical key events from the Clevy keyboard.
type Source interface {
	ProcessEvents(ctx context.Context, handle EventHandler) error
}
