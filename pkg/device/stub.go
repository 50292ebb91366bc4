package device

// Stub is used where no USB enumeration exists. It reports a fixed presence.
type Stub struct {
	present  bool
	presence *presence
}

func NewStub(present bool, listener Listener) *Stub {
	return &Stub{present: present, presence: newPresence(listener)}
}

func (s *Stub) IsPresent() bool { return s.present }

func (s *Stub) StartMonitoring() error {
	s.presence.announce(s.present)
	return nil
}

func (s *Stub) StopMonitoring() error { return nil }

func (s *Stub) Refresh() { s.presence.update(s.present) }

// Capabilities claims hotplug so nobody wraps it in a Poller; nothing would ever change.
func (s *Stub) Capabilities() Capabilities { return HotplugEvents }
