package layouts

import (
	"codeberg.org/miketth/dyscover/pkg/keys"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

var ErrDuplicateLayout = errors.New("layout already registered")

// Registry maps layout names to layouts and tracks which one is active.
// Registration is expected at start-up; SetActiveLayout may race with Translate.
type Registry struct {
	mu      sync.RWMutex
	layouts map[string]*Layout

	active atomic.Pointer[Layout]
}

func NewRegistry() *Registry {
	return &Registry{
		layouts: make(map[string]*Layout),
	}
}

func (r *Registry) Register(layout *Layout) error {
	if layout == nil || layout.Name == "" {
		return errors.New("layout has no name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.layouts[layout.Name]; ok {
		return fmt.Errorf("register %q: %w", layout.Name, ErrDuplicateLayout)
	}

	// entries are shared with every reader from here on
	entries := make([]Entry, len(layout.Entries))
	copy(entries, layout.Entries)
	r.layouts[layout.Name] = &Layout{
		Name:     layout.Name,
		Language: layout.Language,
		Entries:  entries,
	}

	return nil
}

func (r *Registry) Layout(name string) (*Layout, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.layouts[name]
	return l, ok
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.layouts))
	for name := range r.layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetActiveLayout selects the layout used by Translate. An unknown name clears the
// selection, which makes every translation a no-op, and returns false.
func (r *Registry) SetActiveLayout(name string) bool {
	l, ok := r.Layout(name)
	if !ok {
		r.active.Store(nil)
		return false
	}

	r.active.Store(l)
	return true
}

// ActiveLayout returns the active layout, or nil when none is selected.
func (r *Registry) ActiveLayout() *Layout {
	return r.active.Load()
}

func (r *Registry) ActiveName() string {
	l := r.active.Load()
	if l == nil {
		return ""
	}
	return l.Name
}

func (r *Registry) Translate(key keys.Key, capsLock, shift, ctrl, alt bool) Action {
	return r.active.Load().Translate(key, capsLock, shift, ctrl, alt)
}
