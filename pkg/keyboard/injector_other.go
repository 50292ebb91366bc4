//go:build !linux

package keyboard

import (
	"errors"
	"go.uber.org/zap"
)

func NewLegacyInjector(*zap.SugaredLogger) (Injector, error) {
	return nil, errors.New("legacy injection is not supported on this platform")
}
