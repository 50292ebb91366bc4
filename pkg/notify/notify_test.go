package notify

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
	"testing"
)

type recorder struct {
	alerts   []string
	statuses []string
	fail     bool
}

func (r *recorder) notifier(t *testing.T, desktop bool) *Notifier {
	n := New(desktop, zaptest.NewLogger(t).Sugar())
	n.alert = func(title, message, icon string) error {
		r.alerts = append(r.alerts, title+": "+message)
		if r.fail {
			return errors.New("no notification daemon")
		}
		return nil
	}
	n.status = func(state string) (bool, error) {
		r.statuses = append(r.statuses, state)
		return false, nil
	}
	return n
}

func TestNotifier(t *testing.T) {
	r := &recorder{}
	n := r.notifier(t, true)

	n.OnKeyboardConnected()
	n.OnKeyboardDisconnected()

	assert.Equal(t, []string{
		"STATUS=Clevy keyboard connected",
		"STATUS=Clevy keyboard disconnected",
	}, r.statuses)
	assert.Equal(t, []string{
		"Dyscover: Clevy keyboard connected",
		"Dyscover: Clevy keyboard disconnected",
	}, r.alerts)
}

func TestNotifierWithoutDesktop(t *testing.T) {
	r := &recorder{fail: true}
	n := r.notifier(t, false)

	n.OnKeyboardConnected()

	assert.Len(t, r.statuses, 1)
	assert.Empty(t, r.alerts)
}

func TestNotifierDesktopFailure(t *testing.T) {
	r := &recorder{fail: true}
	n := r.notifier(t, true)

	assert.NotPanics(t, n.OnKeyboardConnected)
	assert.Len(t, r.alerts, 1)
}
