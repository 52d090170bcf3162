// Package repomanager opens the configured storage backend, applies its
// schema and vends the matching repository implementation.
package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/toomanytabs/internal/common"
	"github.com/dmitrijs2005/toomanytabs/internal/dbx"
	"github.com/dmitrijs2005/toomanytabs/internal/filex"
	"github.com/dmitrijs2005/toomanytabs/internal/logging"
	"github.com/dmitrijs2005/toomanytabs/internal/server/config"
	"github.com/dmitrijs2005/toomanytabs/internal/server/repositories/entries"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// RepositoryManager owns the database handle for the process lifetime.
type RepositoryManager interface {
	Entries() entries.Repository
	Ping(ctx context.Context) error
	Close() error
}

// Manager is the RepositoryManager returned by the constructors below.
type Manager struct {
	db      *sql.DB
	guard   dbx.Guard
	entries entries.Repository
}

// openDB is a seam for tests.
var openDB = sql.Open

// ensureSchema is a seam for tests.
var ensureSchema = func(ctx context.Context, repo entries.Repository) error {
	return repo.EnsureSchema(ctx)
}

// Open picks the backend named in cfg.
func Open(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Manager, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return NewSQLiteRepositoryManager(ctx, cfg.DataDir, logger)
	case config.BackendPostgres:
		return NewPostgresRepositoryManager(ctx, cfg.PostgresDSN(), logger)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// NewSQLiteRepositoryManager opens (creating if needed) the database file
// inside dataDir. A single connection is shared and every repository call
// holds it exclusively.
func NewSQLiteRepositoryManager(ctx context.Context, dataDir string, logger logging.Logger) (*Manager, error) {
	dir, err := filex.EnsureDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("%w: data dir: %w", common.ErrUnavailable, err)
	}
	path := filepath.Join(dir, common.DatabaseFileName)

	db, err := openDB("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %w", common.ErrUnavailable, err)
	}
	db.SetMaxOpenConns(1)

	guard := dbx.NewExclusive(db)
	return newManager(ctx, db, guard, entries.NewSQLiteRepository(guard, logger))
}

// NewPostgresRepositoryManager connects with the pgx stdlib driver. The pool
// is shared without extra locking.
func NewPostgresRepositoryManager(ctx context.Context, dsn string, logger logging.Logger) (*Manager, error) {
	db, err := openDB("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open postgres: %w", common.ErrUnavailable, err)
	}

	guard := dbx.NewShared(db)
	return newManager(ctx, db, guard, entries.NewPostgresRepository(guard, logger))
}

func newManager(ctx context.Context, db *sql.DB, guard dbx.Guard, repo entries.Repository) (*Manager, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping: %w", common.ErrUnavailable, err)
	}
	if err := ensureSchema(ctx, repo); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Manager{db: db, guard: guard, entries: repo}, nil
}

func (m *Manager) Entries() entries.Repository { return m.entries }

// DB exposes the handle for pool statistics.
func (m *Manager) DB() *sql.DB { return m.db }

// Ping checks that the store still answers.
func (m *Manager) Ping(ctx context.Context) error {
	return m.guard.Run(ctx, func(ctx context.Context, _ dbx.DBTX) error {
		if err := m.db.PingContext(ctx); err != nil {
			return errors.Join(common.ErrUnavailable, err)
		}
		return nil
	})
}

// Close releases the database handle.
func (m *Manager) Close() error {
	return m.db.Close()
}
