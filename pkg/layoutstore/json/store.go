package json

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

const saveInterval = time.Minute

type state struct {
	ActiveLayout string    `json:"active_layout"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LayoutStore keeps the active layout in a JSON file. Changes are written by
// SaveLooper, at most once per interval and once more on shutdown.
type LayoutStore struct {
	state state
	file  *os.File
	lock  sync.Mutex
	dirty bool
}

func NewLayoutStore(filename string) (*LayoutStore, error) {
	info, err := os.Stat(filename)
	fileExists := err == nil && info.Size() > 0

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	store := &LayoutStore{file: file}

	if fileExists {
		if err := store.load(); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("load: %w", err)
		}
	}

	return store, nil
}

func (s *LayoutStore) Close() error {
	return s.file.Close()
}

func (s *LayoutStore) load() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, err := s.file.Seek(0, 0); err != nil {
		return fmt.Errorf("seek to start of file: %w", err)
	}

	if err := json.NewDecoder(s.file).Decode(&s.state); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}

	return nil
}

// Save writes pending changes to disk.
func (s *LayoutStore) Save() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.dirty {
		return nil
	}

	if _, err := s.file.Seek(0, 0); err != nil {
		return fmt.Errorf("seek to start of file: %w", err)
	}
	if err := s.file.Truncate(0); err != nil {
		return fmt.Errorf("truncate file: %w", err)
	}

	enc := json.NewEncoder(s.file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.state); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("sync file: %w", err)
	}

	s.dirty = false
	return nil
}

// SaveLooper saves periodically until ctx is done, then saves once more and
// closes the file.
func (s *LayoutStore) SaveLooper(ctx context.Context) error {
	defer s.file.Close()

	ticker := time.NewTicker(saveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := s.Save(); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			return ctx.Err()
		case <-ticker.C:
			if err := s.Save(); err != nil {
				return fmt.Errorf("save: %w", err)
			}
		}
	}
}

func (s *LayoutStore) GetActiveLayout() (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.state.ActiveLayout, nil
}

func (s *LayoutStore) SetActiveLayout(name string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.state.ActiveLayout == name {
		return nil
	}
	s.state = state{ActiveLayout: name, UpdatedAt: time.Now().UTC()}
	s.dirty = true
	return nil
}
