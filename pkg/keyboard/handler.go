package keyboard

import "codeberg.org/miketth/dyscover/pkg/keys"

type PermissionState int

const (
	PermissionUnknown PermissionState = iota
	PermissionGranted
	PermissionDenied
	// PermissionLimited means keys can be observed but not injected.
	PermissionLimited
)

func (p PermissionState) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	case PermissionLimited:
		return "limited"
	default:
		return "unknown"
	}
}

// Handler is the host side of the keyboard: live caps state, text translation
// for speech, and synthetic key injection.
type Handler interface {
	IsCapsLockActive() bool
	// Translate returns the text key produces under mods, or "" if none.
	Translate(key keys.Key, mods keys.Modifiers) string
	// SendKey injects a single key event. False means injection is unavailable
	// and the caller should use another path.
	SendKey(key keys.Key, eventType keys.EventType) bool
	StartInterception()
	StopInterception()
	PermissionState() PermissionState
	Close() error
}
