package sqlite

import (
	"codeberg.org/miketth/dyscover/pkg/layoutstore/sqlite/migrations"
	"context"
	"database/sql"
	"errors"
	"fmt"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

type LayoutStore struct {
	db      *sql.DB
	querier *Queries
}

func NewLayoutStore(filename string, log *zap.SugaredLogger) (*LayoutStore, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// one connection keeps in-memory databases alive and serializes writes
	db.SetMaxOpenConns(1)

	if err := migrations.Migrate(db, log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &LayoutStore{
		db:      db,
		querier: New(db),
	}, nil
}

func (s *LayoutStore) Close() error {
	return s.db.Close()
}

func (s *LayoutStore) GetActiveLayout() (string, error) {
	name, err := s.querier.GetActiveLayout(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("sqlite select: %w", err)
	}
	return name, nil
}

func (s *LayoutStore) SetActiveLayout(name string) error {
	if err := s.querier.SetActiveLayout(context.Background(), name); err != nil {
		return fmt.Errorf("sqlite upsert: %w", err)
	}
	return nil
}
