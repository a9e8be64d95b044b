// Package storage opens the configured backend and hands out its repositories.
package storage

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/exp/slog"

	"vinylscan/internal/app/server/config"
	"vinylscan/internal/domain/record"
	"vinylscan/internal/domain/session"
	"vinylscan/internal/domain/user"
	"vinylscan/internal/infrastructure/storage/postgres"
	"vinylscan/internal/infrastructure/storage/sqlite"
)

// Repositories are the stores one backend provides.
type Repositories struct {
	Users    user.Repository
	Records  record.Repository
	Sessions session.Store

	closer io.Closer
}

func (r *Repositories) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Open connects to the configured database. The session store is the
// database unless the config asks for process memory.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Repositories, error) {
	var repos Repositories

	switch cfg.DB.Driver {
	case config.DriverPostgres:
		db, err := postgres.New(ctx, cfg.DB.DatabaseURI)
		if err != nil {
			return nil, err
		}
		repos = Repositories{
			Users:    postgres.NewUserRepository(db.Pool(), log),
			Records:  postgres.NewRecordRepository(db.Pool(), log),
			Sessions: postgres.NewSessionRepository(db.Pool(), log),
			closer:   db,
		}
	case config.DriverSQLite:
		db, err := sqlite.New(ctx, cfg.DB.DatabaseURI)
		if err != nil {
			return nil, err
		}
		repos = Repositories{
			Users:    sqlite.NewUserRepository(db.DB(), log),
			Records:  sqlite.NewRecordRepository(db.DB(), log),
			Sessions: sqlite.NewSessionRepository(db.DB(), log),
			closer:   db,
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}

	if cfg.Session.Store == config.SessionStoreMemory {
		repos.Sessions = session.NewMemoryStore()
	}

	log.Info("storage opened",
		slog.String("driver", cfg.DB.Driver),
		slog.String("session_store", cfg.Session.Store),
	)
	return &repos, nil
}
