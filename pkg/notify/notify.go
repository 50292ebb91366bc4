package notify

import (
	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/gen2brain/beeep"
	"go.uber.org/zap"
)

const title = "Dyscover"

// Notifier tells the desktop and the service manager about keyboard hotplug.
type Notifier struct {
	log     *zap.SugaredLogger
	desktop bool

	alert  func(title, message, icon string) error
	status func(state string) (bool, error)
}

func New(desktop bool, log *zap.SugaredLogger) *Notifier {
	return &Notifier{
		log:     log,
		desktop: desktop,
		alert:   beeep.Notify,
		status: func(state string) (bool, error) {
			return daemon.SdNotify(false, state)
		},
	}
}

func (n *Notifier) OnKeyboardConnected() {
	n.send("Clevy keyboard connected")
}

func (n *Notifier) OnKeyboardDisconnected() {
	n.send("Clevy keyboard disconnected")
}

func (n *Notifier) send(message string) {
	if _, err := n.status("STATUS=" + message); err != nil {
		n.log.Debugw("sd_notify status", "error", err)
	}

	if !n.desktop {
		return
	}
	if err := n.alert(title, message, ""); err != nil {
		n.log.Debugw("desktop notification", "error", err)
	}
}
