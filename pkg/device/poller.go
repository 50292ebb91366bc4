package device

import (
	"errors"
	"go.uber.org/zap"
	"sync"
	"time"
)

const DefaultPollInterval = 500 * time.Millisecond

var ErrAlreadyMonitoring = errors.New("already monitoring")

// Poller emulates hotplug notifications for detectors that lack them by
// polling IsPresent on a fixed interval.
type Poller struct {
	inner    Detector
	interval time.Duration
	presence *presence
	log      *zap.SugaredLogger

	mu     sync.Mutex
	stopCh chan struct{}
	wg     sync.WaitGroup
}

func NewPoller(inner Detector, listener Listener, interval time.Duration, log *zap.SugaredLogger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		inner:    inner,
		interval: interval,
		presence: newPresence(listener),
		log:      log,
	}
}

func (p *Poller) IsPresent() bool {
	return p.inner.IsPresent()
}

func (p *Poller) StartMonitoring() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopCh != nil {
		return ErrAlreadyMonitoring
	}

	p.presence.announce(p.inner.IsPresent())

	p.stopCh = make(chan struct{})
	p.wg.Add(1)
	go p.loop(p.stopCh)

	p.log.Debugw("polling for device presence", "interval", p.interval)
	return nil
}

// StopMonitoring returns only after the polling goroutine has exited, so the
// listener is never called afterwards.
func (p *Poller) StopMonitoring() error {
	p.mu.Lock()
	stopCh := p.stopCh
	p.stopCh = nil
	p.mu.Unlock()

	if stopCh == nil {
		return nil
	}

	close(stopCh)
	p.wg.Wait()
	return nil
}

func (p *Poller) Refresh() {
	p.presence.update(p.inner.IsPresent())
}

func (p *Poller) Capabilities() Capabilities {
	return p.inner.Capabilities() | PollingOnly
}

func (p *Poller) loop(stopCh chan struct{}) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if p.presence.update(p.inner.IsPresent()) {
				p.log.Debug("device presence changed")
			}
		}
	}
}
