package memory

import "sync"

// LayoutStore keeps the active layout for the lifetime of the process only.
type LayoutStore struct {
	mu   sync.Mutex
	name string
}

func NewLayoutStore() *LayoutStore {
	return &LayoutStore{}
}

func (s *LayoutStore) GetActiveLayout() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name, nil
}

func (s *LayoutStore) SetActiveLayout(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
	return nil
}
