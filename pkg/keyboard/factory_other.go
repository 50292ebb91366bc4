//go:build !linux

package keyboard

import "go.uber.org/zap"

func New(log *zap.SugaredLogger) Handler {
	return NewStub(log)
}
