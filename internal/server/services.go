package server

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/reelops/reelsweep/internal/db"
	"github.com/reelops/reelsweep/internal/journal"
)

type Services struct {
	DB      *sqlx.DB
	Journal *journal.Store
}

func NewServices(config *Config) (*Services, error) {
	database, err := db.NewSqliteDb(db.WithPath(config.DBPath))
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}

	store, err := journal.New(database)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("init journal: %w", err)
	}

	return &Services{
		DB:      database,
		Journal: store,
	}, nil
}

func (s *Services) Shutdown(ctx context.Context) error {
	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("close journal db: %w", err)
	}
	return nil
}
