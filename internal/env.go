package internal

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/starford/stickynote/internal/index"
	"github.com/starford/stickynote/internal/models"
	"github.com/starford/stickynote/internal/noteservice"
	"github.com/starford/stickynote/internal/storage"
)

// Env is the opened note store shared by the window and the CLI commands.
type Env struct {
	Store *storage.FS
	DB    *index.DB
	Notes *noteservice.Service
	State models.State
}

// OpenEnv creates the data dir if needed, opens the index and reconciles
// it with the note files.
func OpenEnv(cfg *Config, logger *slog.Logger) (*Env, error) {
	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	store, err := storage.NewFS(cfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	db, err := index.Open(cfg.Data.DBPath())
	if err != nil {
		return nil, fmt.Errorf("init index: %w", err)
	}

	svc := noteservice.NewService(store, db, logger)
	st, err := svc.Bootstrap()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap notes: %w", err)
	}

	return &Env{Store: store, DB: db, Notes: svc, State: st}, nil
}

// Close releases the index.
func (e *Env) Close() error {
	return e.DB.Close()
}
