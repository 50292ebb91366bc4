package keyboard

import (
	"codeberg.org/miketth/dyscover/pkg/keys"
	"fmt"
	"github.com/holoplot/go-evdev"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
	"sync"
)

const (
	uinputPath        = "/dev/uinput"
	virtualDeviceName = "dyscover virtual keyboard"
)

// EvdevHandler injects through a uinput device and reads caps lock from the
// LED state of a physical keyboard.
type EvdevHandler struct {
	log *zap.SugaredLogger

	mu         sync.Mutex
	virtual    *evdev.InputDevice
	led        *evdev.InputDevice
	permission PermissionState
	capsCached bool
}

func NewEvdevHandler(log *zap.SugaredLogger) *EvdevHandler {
	h := &EvdevHandler{log: log}

	virtual, err := createVirtualKeyboard()
	if err != nil {
		log.Warnw("cannot create virtual keyboard, injection disabled", "error", err)
		h.permission = PermissionLimited
	} else {
		h.virtual = virtual
	}

	return h
}

func createVirtualKeyboard() (*evdev.InputDevice, error) {
	codes := make([]evdev.EvCode, 0, len(evdevCodes))
	for _, code := range evdevCodes {
		codes = append(codes, code)
	}

	dev, err := evdev.CreateDevice(virtualDeviceName, evdev.InputID{
		BusType: 0x06, // BUS_VIRTUAL
		Vendor:  0x1209,
		Product: 0xD15C,
		Version: 1,
	}, map[evdev.EvType][]evdev.EvCode{
		evdev.EV_KEY: codes,
	})
	if err != nil {
		return nil, fmt.Errorf("create uinput device: %w", err)
	}
	return dev, nil
}

func (h *EvdevHandler) IsCapsLockActive() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.led == nil {
		h.led = findLEDKeyboard()
		if h.led == nil {
			return h.capsCached
		}
	}

	state, err := h.led.State(evdev.EV_LED)
	if err != nil {
		h.log.Debugw("read led state", "error", err)
		_ = h.led.Close()
		h.led = nil
		return h.capsCached
	}

	h.capsCached = state[evdev.LED_CAPSL]
	return h.capsCached
}

// findLEDKeyboard opens the first input device with a caps lock LED.
func findLEDKeyboard() *evdev.InputDevice {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil
	}

	for _, p := range paths {
		dev, err := evdev.Open(p.Path)
		if err != nil {
			continue
		}
		for _, code := range dev.CapableEvents(evdev.EV_LED) {
			if code == evdev.LED_CAPSL {
				return dev
			}
		}
		_ = dev.Close()
	}

	return nil
}

func (h *EvdevHandler) Translate(key keys.Key, mods keys.Modifiers) string {
	return TranslateUS(key, mods)
}

func (h *EvdevHandler) SendKey(key keys.Key, eventType keys.EventType) bool {
	code, ok := codeForKey(key)
	if !ok {
		return false
	}

	value := int32(1)
	if eventType == keys.KeyUp {
		value = 0
	}

	err := h.write(&evdev.InputEvent{Type: evdev.EV_KEY, Code: code, Value: value})
	if err != nil {
		h.log.Debugw("inject key", "key", key, "error", err)
		return false
	}
	return true
}

// Forward passes a raw event from a grabbed keyboard through unchanged.
func (h *EvdevHandler) Forward(ev *evdev.InputEvent) error {
	if ev.Type == evdev.EV_SYN {
		return nil
	}
	return h.write(ev)
}

// CanForward reports whether grabbed keyboards can be passed through.
func (h *EvdevHandler) CanForward() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.virtual != nil
}

func (h *EvdevHandler) write(ev *evdev.InputEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.virtual == nil {
		return fmt.Errorf("no virtual keyboard")
	}

	if err := h.virtual.WriteOne(ev); err != nil {
		return fmt.Errorf("write event: %w", err)
	}

	syn := &evdev.InputEvent{Type: evdev.EV_SYN, Code: evdev.SYN_REPORT}
	if err := h.virtual.WriteOne(syn); err != nil {
		return fmt.Errorf("write sync: %w", err)
	}
	return nil
}

// StartInterception probes whether input devices can be read and injected into.
func (h *EvdevHandler) StartInterception() {
	readable := false
	paths, err := evdev.ListDevicePaths()
	if err == nil {
		for _, p := range paths {
			if dev, err := evdev.Open(p.Path); err == nil {
				_ = dev.Close()
				readable = true
				break
			}
		}
	}
	writable := unix.Access(uinputPath, unix.W_OK) == nil

	h.mu.Lock()
	switch {
	case readable && writable && h.virtual != nil:
		h.permission = PermissionGranted
	case readable:
		h.permission = PermissionLimited
	default:
		h.permission = PermissionDenied
	}
	permission := h.permission
	h.mu.Unlock()

	h.log.Infow("keyboard permissions probed", "state", permission, "readable", readable, "uinput", writable)
}

func (h *EvdevHandler) StopInterception() {}

func (h *EvdevHandler) PermissionState() PermissionState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.permission
}

func (h *EvdevHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.led != nil {
		_ = h.led.Close()
		h.led = nil
	}
	if h.virtual != nil {
		err := h.virtual.Close()
		h.virtual = nil
		if err != nil {
			return fmt.Errorf("close virtual keyboard: %w", err)
		}
	}
	return nil
}
