// Package server wires configuration, storage and domain services into a
// running HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"vinylscan/internal/app/server/api"
	"vinylscan/internal/app/server/config"
	"vinylscan/internal/domain/lookup"
	"vinylscan/internal/domain/record"
	"vinylscan/internal/domain/session"
	"vinylscan/internal/domain/user"
	"vinylscan/internal/infrastructure/discogs"
	"vinylscan/internal/infrastructure/migration"
	"vinylscan/internal/infrastructure/storage"
	"vinylscan/internal/utils/logger"
)

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 15 * time.Second
	purgeInterval   = 10 * time.Minute
)

// expiredPurger is implemented by database session stores.
type expiredPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

type App struct {
	cfg     *config.Config
	log     *slog.Logger
	repos   *storage.Repositories
	discogs *discogs.Client
	server  *http.Server
}

// Migrate applies pending schema migrations for the configured database.
func Migrate(cfg *config.Config) error {
	return migration.NewMigration(cfg.DB.Driver, cfg.DB.DatabaseURI, migration.DefaultEngine).Up()
}

// New opens storage and builds every service behind the HTTP server.
// Migrations are expected to be applied already.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	repos, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	client := discogs.NewClient(discogs.Config{
		BaseURL:   cfg.Discogs.BaseURL,
		Token:     cfg.Discogs.Token,
		UserAgent: cfg.Discogs.UserAgent,
		Timeout:   cfg.Discogs.Timeout,
	}, log)
	breaker := discogs.NewBreaker(client, discogs.DefaultBreakerSettings(), log)

	services := api.Services{
		Lookup:  lookup.NewService(breaker, log),
		Users:   user.NewService(repos.Users, user.NewCredentialsValidator(), log),
		Session: session.NewService(repos.Sessions, session.NewTokenIssuer(cfg.Session.Secret), cfg.Session.TTL, log),
		Records: record.NewService(repos.Records, log),
	}

	return &App{
		cfg:     cfg,
		log:     log,
		repos:   repos,
		discogs: client,
		server: &http.Server{
			Addr:         cfg.Server.RunAddress,
			Handler:      api.New(cfg, services, log),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
	}, nil
}

// Handler exposes the router, mostly for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting server",
		slog.String("env", a.cfg.Env),
		slog.Bool("debug", a.cfg.Verbose()),
		slog.String("address", a.cfg.Server.RunAddress),
		slog.String("database", a.cfg.DB.Driver),
		slog.String("session_store", a.cfg.Session.Store),
		slog.Bool("discogs_token", a.cfg.Discogs.Token != ""),
	)

	if purger, ok := a.repos.Sessions.(expiredPurger); ok {
		go a.purgeSessions(ctx, purger)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen %s: %w", a.cfg.Server.RunAddress, err)
	case <-ctx.Done():
	}

	a.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func (a *App) purgeSessions(ctx context.Context, purger expiredPurger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := purger.PurgeExpired(ctx)
			if err != nil {
				a.log.Error("purge expired sessions", logger.Err(err))
				continue
			}
			if n > 0 {
				a.log.Debug("expired sessions purged", slog.Int64("count", n))
			}
		}
	}
}

// Close releases the store and the Discogs client.
func (a *App) Close() error {
	a.discogs.Close()
	return a.repos.Close()
}
