package keyboard

import (
	"codeberg.org/miketth/dyscover/pkg/device"
	"codeberg.org/miketth/dyscover/pkg/keys"
	"context"
	"errors"
	"fmt"
	"github.com/holoplot/go-evdev"
	"go.uber.org/zap"
	"time"
)

const reopenDelay = time.Second

var ErrNoKeyboard = errors.New("no supported keyboard found")

type forwarder interface {
	Forward(ev *evdev.InputEvent) error
	CanForward() bool
}

// EvdevSource reads the supported keyboard's event device. When the handler can
// pass events through, the device is grabbed so swallowed keys never reach the desktop.
type EvdevSource struct {
	handler Handler
	log     *zap.SugaredLogger
}

func NewSource(handler Handler, log *zap.SugaredLogger) Source {
	return &EvdevSource{handler: handler, log: log}
}

// ProcessEvents runs until ctx is done, reopening the keyboard whenever it goes away.
func (s *EvdevSource) ProcessEvents(ctx context.Context, handle EventHandler) error {
	for {
		dev, err := openSupportedKeyboard()
		if err == nil {
			err = s.process(ctx, dev, handle)
			_ = dev.Close()
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil && !errors.Is(err, ErrNoKeyboard) {
			s.log.Warnw("keyboard input interrupted", "error", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reopenDelay):
		}
	}
}

func openSupportedKeyboard() (*evdev.InputDevice, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("list input devices: %w", err)
	}

	for _, p := range paths {
		dev, err := evdev.Open(p.Path)
		if err != nil {
			continue
		}

		id, err := dev.InputID()
		if err == nil &&
			device.IsSupported(fmt.Sprintf("%04X", id.Vendor), fmt.Sprintf("%04X", id.Product)) &&
			len(dev.CapableEvents(evdev.EV_KEY)) > 0 {
			return dev, nil
		}
		_ = dev.Close()
	}

	return nil, ErrNoKeyboard
}

func (s *EvdevSource) process(ctx context.Context, dev *evdev.InputDevice, handle EventHandler) error {
	fwd, ok := s.handler.(forwarder)
	grabbed := false
	if ok && fwd.CanForward() {
		if err := dev.Grab(); err != nil {
			s.log.Warnw("cannot grab keyboard, observing only", "error", err)
		} else {
			grabbed = true
			defer dev.Ungrab()
		}
	}

	name, _ := dev.Name()
	s.log.Infow("reading keyboard", "name", name, "grabbed", grabbed)

	tracker := NewTracker(s.handler.IsCapsLockActive())

	events := make(chan *evdev.InputEvent)
	errCh := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev, err := dev.ReadOne()
			if err != nil {
				errCh <- err
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errCh:
			return fmt.Errorf("read event: %w", err)
		case ev := <-events:
			swallowed := false
			if ev.Type == evdev.EV_KEY {
				swallowed = s.dispatch(ev, tracker, handle)
			}
			if grabbed && !swallowed {
				if err := fwd.Forward(ev); err != nil {
					s.log.Debugw("forward event", "error", err)
				}
			}
		}
	}
}

func (s *EvdevSource) dispatch(ev *evdev.InputEvent, tracker *Tracker, handle EventHandler) bool {
	key := keyForCode(ev.Code)
	if key == keys.Unknown {
		return false
	}

	// value 2 is auto-repeat, delivered like a fresh key-down
	eventType := keys.KeyDown
	if ev.Value == 0 {
		eventType = keys.KeyUp
	}

	return handle(tracker.Process(key, eventType))
}
