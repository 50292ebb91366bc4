//go:build !linux

package keyboard

import (
	"context"
	"go.uber.org/zap"
)

type idleSource struct {
	log *zap.SugaredLogger
}

// NewSource returns a source that never produces events on this platform.
func NewSource(_ Handler, log *zap.SugaredLogger) Source {
	return &idleSource{log: log}
}

func (s *idleSource) ProcessEvents(ctx context.Context, _ EventHandler) error {
	s.log.Warn("no keyboard input backend on this platform")
	<-ctx.Done()
	return ctx.Err()
}
