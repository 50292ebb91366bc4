package keyboard

import (
	"codeberg.org/miketth/dyscover/pkg/keys"
	"sync"
)

// Tracker follows modifier and caps lock state from the raw key stream.
type Tracker struct {
	mu   sync.Mutex
	mods keys.Modifiers
	caps bool
}

func NewTracker(capsLock bool) *Tracker {
	return &Tracker{caps: capsLock}
}

// Process updates state for one key event and returns the event annotated with
// the resulting state.
func (t *Tracker) Process(key keys.Key, eventType keys.EventType) keys.Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	down := eventType == keys.KeyDown
	switch key {
	case keys.CapsLock:
		if down {
			t.caps = !t.caps
		}
	case keys.Shift:
		t.mods.Shift = down
	case keys.Ctrl:
		t.mods.Ctrl = down
	case keys.Alt:
		t.mods.Alt = down
	case keys.AltGr:
		t.mods.AltGr = down
	}

	return keys.Event{
		Key:       key,
		Type:      eventType,
		Modifiers: t.mods,
		CapsLock:  t.caps,
	}
}

func (t *Tracker) SetCapsLock(active bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.caps = active
}

func (t *Tracker) CapsLock() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.caps
}
