package keyboard

import (
	"codeberg.org/miketth/dyscover/pkg/keys"
	"fmt"
	"github.com/micmonay/keybd_event"
	"go.uber.org/zap"
	"sync"
	"time"
)

// uinputSettle is how long the kernel and desktop need to pick up a new uinput device.
const uinputSettle = 2 * time.Second

type LegacyInjector struct {
	mu  sync.Mutex
	kb  keybd_event.KeyBonding
	log *zap.SugaredLogger
}

func NewLegacyInjector(log *zap.SugaredLogger) (*LegacyInjector, error) {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, fmt.Errorf("create key bonding: %w", err)
	}

	time.Sleep(uinputSettle)

	return &LegacyInjector{kb: kb, log: log}, nil
}

func (i *LegacyInjector) SendKeyStroke(stroke keys.KeyStroke) error {
	code, ok := codeForKey(stroke.Key)
	if !ok {
		return fmt.Errorf("inject %s: %w", stroke, ErrUnmappedKey)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	i.kb.Clear()
	i.kb.SetKeys(int(code))
	i.kb.HasSHIFT(stroke.Shift)
	i.kb.HasCTRL(stroke.Ctrl)
	i.kb.HasALT(stroke.Alt)

	if err := i.kb.Launching(); err != nil {
		return fmt.Errorf("inject %s: %w", stroke, err)
	}

	i.log.Debugw("injected keystroke", "stroke", stroke)
	return nil
}
