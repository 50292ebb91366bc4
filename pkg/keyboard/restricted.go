package keyboard

import (
	"codeberg.org/miketth/dyscover/pkg/keys"
	"go.uber.org/zap"
	"os"
	"strings"
)

// Restricted serves sandboxed hosts: text translation works, nothing else does.
type Restricted struct {
	tracker *Tracker
	log     *zap.SugaredLogger
}

func NewRestricted(log *zap.SugaredLogger) *Restricted {
	return &Restricted{tracker: NewTracker(false), log: log}
}

func (r *Restricted) IsCapsLockActive() bool {
	return r.tracker.CapsLock()
}

func (r *Restricted) Translate(key keys.Key, mods keys.Modifiers) string {
	return TranslateUS(key, mods)
}

func (r *Restricted) SendKey(keys.Key, keys.EventType) bool {
	return false
}

func (r *Restricted) StartInterception() {
	r.log.Info("key interception is not permitted on this host")
}

func (r *Restricted) StopInterception() {}

func (r *Restricted) PermissionState() PermissionState {
	return PermissionDenied
}

func (r *Restricted) Close() error { return nil }

// isRestrictedHost detects ChromeOS-style sandboxes from an lsb-release file.
func isRestrictedHost(lsbRelease string) bool {
	raw, err := os.ReadFile(lsbRelease)
	if err != nil {
		return false
	}
	return strings.Contains(string(raw), "CHROMEOS_RELEASE")
}
