package device

import "strings"

// Capabilities describes how a detector learns about hotplug.
type Capabilities uint32

const (
	// HotplugEvents is set when the platform pushes attach/detach notifications.
	HotplugEvents Capabilities = 1 << 0
	// PollingOnly is set by the Poller when presence is emulated by polling.
	PollingOnly Capabilities = 1 << 2
)

func (c Capabilities) Has(flag Capabilities) bool {
	return c&flag == flag
}

func (c Capabilities) String() string {
	var parts []string
	if c.Has(HotplugEvents) {
		parts = append(parts, "hotplug")
	}
	if c.Has(PollingOnly) {
		parts = append(parts, "polling")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

type Listener interface {
	OnDevicePresenceChanged(present bool)
}

type ListenerFunc func(present bool)

func (f ListenerFunc) OnDevicePresenceChanged(present bool) {
	f(present)
}

// Enumerator performs a point-in-time scan for a supported keyboard.
type Enumerator interface {
	IsPresent() bool
}

// Detector tracks whether a supported keyboard is attached.
//
// StartMonitoring reports the current presence to the listener exactly once.
// Refresh re-enumerates and notifies only when presence changed.
type Detector interface {
	Enumerator
	StartMonitoring() error
	StopMonitoring() error
	Refresh()
	Capabilities() Capabilities
}
