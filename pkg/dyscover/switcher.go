package dyscover

import (
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
)

const DefaultLayout = "dutchdefault"

var ErrUnknownLayout = errors.New("unknown layout")

// Switcher keeps the active layout in line with the configuration and
// remembers the last one applied.
type Switcher struct {
	selector LayoutSelector
	store    ActiveLayoutStore
	settings Settings
	log      *zap.SugaredLogger
}

func NewSwitcher(
	selector LayoutSelector,
	store ActiveLayoutStore,
	settings Settings,
	log *zap.SugaredLogger,
) *Switcher {
	return &Switcher{
		selector: selector,
		store:    store,
		settings: settings,
		log:      log,
	}
}

// Restore picks the starting layout: override, then configuration, then the
// stored one, then DefaultLayout.
func (s *Switcher) Restore(override string) error {
	name := override
	if name == "" {
		name = s.settings.Layout()
	}
	if name == "" {
		stored, err := s.store.GetActiveLayout()
		if err != nil {
			s.log.Warnw("cannot read stored layout", "error", err)
		}
		name = stored
	}
	if name == "" {
		name = DefaultLayout
	}

	return s.Apply(name)
}

// Apply activates the named layout and stores it. An unknown name leaves no
// layout active.
func (s *Switcher) Apply(name string) error {
	if !s.selector.SetActiveLayout(name) {
		return fmt.Errorf("activate %q: %w", name, ErrUnknownLayout)
	}
	s.log.Infow("layout active", "layout", name)

	if err := s.store.SetActiveLayout(name); err != nil {
		return fmt.Errorf("store active layout: %w", err)
	}
	return nil
}

// ProcessChanges re-checks the configured layout on every notification until
// ctx is done.
func (s *Switcher) ProcessChanges(ctx context.Context, changes <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			if err := s.sync(); err != nil {
				s.log.Warnw("cannot switch layout", "error", err)
			}
		}
	}
}

func (s *Switcher) sync() error {
	name := s.settings.Layout()
	if name == "" || name == s.selector.ActiveName() {
		return nil
	}
	return s.Apply(name)
}
