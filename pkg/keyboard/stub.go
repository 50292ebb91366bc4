package keyboard

import (
	"codeberg.org/miketth/dyscover/pkg/keys"
	"go.uber.org/zap"
)

// Stub is used on hosts without a native backend. It translates but cannot
// inject, and leaves permission Unknown.
type Stub struct {
	log *zap.SugaredLogger
}

func NewStub(log *zap.SugaredLogger) *Stub {
	return &Stub{log: log}
}

func (s *Stub) IsCapsLockActive() bool { return false }

func (s *Stub) Translate(key keys.Key, mods keys.Modifiers) string {
	return TranslateUS(key, mods)
}

func (s *Stub) SendKey(keys.Key, keys.EventType) bool { return false }

func (s *Stub) StartInterception() {
	s.log.Debug("no key interception backend")
}

func (s *Stub) StopInterception() {}

func (s *Stub) PermissionState() PermissionState { return PermissionUnknown }

func (s *Stub) Close() error { return nil }
