package device

import (
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"time"
)

type Options struct {
	SysfsRoot    string
	WatchDir     string
	PollInterval time.Duration
	// Stub replaces detection with an always-present keyboard.
	Stub bool
}

// New builds the detector for this platform. When native hotplug notifications
// are unavailable the enumerator is wrapped in a Poller.
func New(opts Options, listener Listener, log *zap.SugaredLogger) Detector {
	if opts.Stub || !platformEnumerationSupported {
		log.Info("usb enumeration unavailable, assuming keyboard is present")
		return NewStub(true, listener)
	}

	enum := NewSysfsEnumerator(opts.SysfsRoot, log)

	hotplug := NewHotplugDetector(enum, opts.WatchDir, listener, log)
	if hotplug.probe() {
		return hotplug
	}

	log.Infow("hotplug notifications unavailable, polling", "interval", opts.PollInterval)
	return NewPoller(NewEnumeratorDetector(enum, nil), listener, opts.PollInterval, log)
}

// probe reports whether the watch directory can be watched at all.
func (d *HotplugDetector) probe() bool {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return false
	}
	defer watcher.Close()

	return watcher.Add(d.watchDir) == nil
}
