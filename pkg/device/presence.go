package device

import "sync"

// presence remembers the last reported state and filters no-change updates.
type presence struct {
	mu       sync.Mutex
	known    bool
	present  bool
	listener Listener
}

func newPresence(listener Listener) *presence {
	return &presence{listener: listener}
}

// announce reports state unconditionally.
func (p *presence) announce(present bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.known = true
	p.present = present
	p.notify(present)
}

// update reports state only when it differs from the last known one.
func (p *presence) update(present bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.known && p.present == present {
		return false
	}

	p.known = true
	p.present = present
	p.notify(present)
	return true
}

func (p *presence) notify(present bool) {
	if p.listener != nil {
		p.listener.OnDevicePresenceChanged(present)
	}
}
