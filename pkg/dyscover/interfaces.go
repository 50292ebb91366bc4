package dyscover

import (
	"codeberg.org/miketth/dyscover/pkg/keys"
	"codeberg.org/miketth/dyscover/pkg/layouts"
)

// Settings is polled on every event, never pushed.
type Settings interface {
	Enabled() bool
	Words() bool
	Sentences() bool
	Selection() bool
	Letters() bool
	Speed() float32
	Layout() string
	AccumulateOnKeyDown() bool
	RequireKeyboard() bool
}

type Translator interface {
	Translate(key keys.Key, capsLock, shift, ctrl, alt bool) layouts.Action
}

type LayoutSelector interface {
	SetActiveLayout(name string) bool
	ActiveName() string
}

type Speaker interface {
	Speak(text string)
	Stop()
	SetSpeed(speed float32) error
}

type SoundPlayer interface {
	PlaySoundFile(name string)
}

type KeyHandler interface {
	Translate(key keys.Key, mods keys.Modifiers) string
	SendKey(key keys.Key, eventType keys.EventType) bool
}

type Injector interface {
	SendKeyStroke(stroke keys.KeyStroke) error
}

type Clipboard interface {
	ReadAll() (string, error)
}

type Notifier interface {
	OnKeyboardConnected()
	OnKeyboardDisconnected()
}

type ActiveLayoutStore interface {
	GetActiveLayout() (string, error)
	SetActiveLayout(name string) error
}
