package keyboard

import "go.uber.org/zap"

const lsbRelease = "/etc/lsb-release"

// New picks the handler for this host.
func New(log *zap.SugaredLogger) Handler {
	if isRestrictedHost(lsbRelease) {
		return NewRestricted(log)
	}
	return NewEvdevHandler(log)
}
