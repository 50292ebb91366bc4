package device

import (
	"fmt"
	"go.uber.org/zap"
	"os"
	"path/filepath"
	"strings"
)

const DefaultSysfsRoot = "/sys/bus/usb/devices"

type USBDevice struct {
	Path      string
	VendorID  string
	ProductID string
}

// SysfsEnumerator scans the USB devices exposed in sysfs.
type SysfsEnumerator struct {
	Root string
	log  *zap.SugaredLogger
}

func NewSysfsEnumerator(root string, log *zap.SugaredLogger) *SysfsEnumerator {
	if root == "" {
		root = DefaultSysfsRoot
	}
	return &SysfsEnumerator{Root: root, log: log}
}

// Devices lists every USB device that exposes vendor and product IDs.
func (e *SysfsEnumerator) Devices() ([]USBDevice, error) {
	entries, err := os.ReadDir(e.Root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", e.Root, err)
	}

	var devices []USBDevice
	for _, entry := range entries {
		devPath := filepath.Join(e.Root, entry.Name())

		vid, err := readAttr(devPath, "idVendor")
		if err != nil {
			continue
		}
		pid, err := readAttr(devPath, "idProduct")
		if err != nil {
			continue
		}

		devices = append(devices, USBDevice{Path: devPath, VendorID: vid, ProductID: pid})
	}

	return devices, nil
}

// IsPresent treats enumeration failures as "not present".
func (e *SysfsEnumerator) IsPresent() bool {
	devices, err := e.Devices()
	if err != nil {
		e.log.Debugw("usb enumeration failed", "error", err)
		return false
	}

	for _, dev := range devices {
		if supported, ok := Lookup(dev.VendorID, dev.ProductID); ok {
			e.log.Debugw("found supported keyboard",
				"path", dev.Path,
				"vid", supported.VendorID,
				"pid", supported.ProductID,
				"description", supported.Description,
			)
			return true
		}
	}

	return false
}

func readAttr(devPath, name string) (string, error) {
	raw, err := os.ReadFile(filepath.Join(devPath, name))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

// EnumeratorDetector turns an Enumerator into a Detector without hotplug support.
// Wrap it in a Poller to get change notifications.
type EnumeratorDetector struct {
	enum     Enumerator
	presence *presence
}

func NewEnumeratorDetector(enum Enumerator, listener Listener) *EnumeratorDetector {
	return &EnumeratorDetector{enum: enum, presence: newPresence(listener)}
}

func (d *EnumeratorDetector) IsPresent() bool {
	return d.enum.IsPresent()
}

func (d *EnumeratorDetector) StartMonitoring() error {
	d.presence.announce(d.enum.IsPresent())
	return nil
}

func (d *EnumeratorDetector) StopMonitoring() error {
	return nil
}

func (d *EnumeratorDetector) Refresh() {
	d.presence.update(d.enum.IsPresent())
}

func (d *EnumeratorDetector) Capabilities() Capabilities {
	return 0
}
