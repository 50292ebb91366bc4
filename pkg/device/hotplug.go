package device

import (
	"fmt"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const DefaultWatchDir = "/dev/bus/usb"

// settleDelay gives sysfs time to catch up with the device node.
const settleDelay = 100 * time.Millisecond

// HotplugDetector re-enumerates whenever a USB device node appears or disappears.
type HotplugDetector struct {
	enum     Enumerator
	watchDir string
	presence *presence
	log      *zap.SugaredLogger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

func NewHotplugDetector(enum Enumerator, watchDir string, listener Listener, log *zap.SugaredLogger) *HotplugDetector {
	if watchDir == "" {
		watchDir = DefaultWatchDir
	}
	return &HotplugDetector{
		enum:     enum,
		watchDir: watchDir,
		presence: newPresence(listener),
		log:      log,
	}
}

func (d *HotplugDetector) IsPresent() bool {
	return d.enum.IsPresent()
}

func (d *HotplugDetector) StartMonitoring() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.watcher != nil {
		return ErrAlreadyMonitoring
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	if err := d.watchTree(watcher); err != nil {
		_ = watcher.Close()
		return err
	}

	d.presence.announce(d.enum.IsPresent())

	d.watcher = watcher
	d.stopCh = make(chan struct{})
	d.wg.Add(1)
	go d.loop(watcher, d.stopCh)

	return nil
}

// watchTree watches the bus directory and each per-bus subdirectory.
func (d *HotplugDetector) watchTree(watcher *fsnotify.Watcher) error {
	if err := watcher.Add(d.watchDir); err != nil {
		return fmt.Errorf("watch %s: %w", d.watchDir, err)
	}

	entries, err := os.ReadDir(d.watchDir)
	if err != nil {
		return fmt.Errorf("read %s: %w", d.watchDir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(d.watchDir, entry.Name())
		if err := watcher.Add(path); err != nil {
			d.log.Warnw("cannot watch usb bus", "path", path, "error", err)
		}
	}

	return nil
}

func (d *HotplugDetector) StopMonitoring() error {
	d.mu.Lock()
	watcher, stopCh := d.watcher, d.stopCh
	d.watcher, d.stopCh = nil, nil
	d.mu.Unlock()

	if watcher == nil {
		return nil
	}

	close(stopCh)
	err := watcher.Close()
	d.wg.Wait()

	if err != nil {
		return fmt.Errorf("close watcher: %w", err)
	}
	return nil
}

func (d *HotplugDetector) Refresh() {
	d.presence.update(d.enum.IsPresent())
}

func (d *HotplugDetector) Capabilities() Capabilities {
	return HotplugEvents
}

func (d *HotplugDetector) loop(watcher *fsnotify.Watcher, stopCh chan struct{}) {
	defer d.wg.Done()

	var settle <-chan time.Time
	for {
		select {
		case <-stopCh:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) {
				settle = time.After(settleDelay)
			}

		case <-settle:
			settle = nil
			d.Refresh()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			d.log.Warnw("usb watcher error", "error", err)
		}
	}
}
