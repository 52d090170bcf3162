// Package dbx provides tiny DB abstractions shared by repositories:
// a minimal interface (DBTX) implemented by both *sql.DB and *sql.Tx, and
// guards that decide whether statements against a handle are serialized.
package dbx

import (
	"context"
	"database/sql"
	"sync"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Guard runs one logical data-access call against a shared handle.
//
// Typical use:
//
//	err := guard.Run(ctx, func(ctx context.Context, db dbx.DBTX) error {
//	    rows, err := db.QueryContext(ctx, "SELECT ...")
//	    ...
//	})
//
// fn must finish with the handle (rows closed) before returning.
type Guard interface {
	Run(ctx context.Context, fn func(ctx context.Context, db DBTX) error) error
	DB() *sql.DB
}

// Exclusive serializes every Run call with a mutex. It is meant for a single
// shared embedded-database connection.
type Exclusive struct {
	mu sync.Mutex
	db *sql.DB
}

// NewExclusive wraps db in an Exclusive guard.
func NewExclusive(db *sql.DB) *Exclusive {
	return &Exclusive{db: db}
}

// Run holds the lock for the duration of fn, including on error and panic.
func (g *Exclusive) Run(ctx context.Context, fn func(ctx context.Context, db DBTX) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(ctx, g.db)
}

func (g *Exclusive) DB() *sql.DB { return g.db }

// Shared hands the pool straight to fn; the driver manages concurrency.
type Shared struct {
	db *sql.DB
}

// NewShared wraps db in a pass-through guard.
func NewShared(db *sql.DB) *Shared {
	return &Shared{db: db}
}

func (g *Shared) Run(ctx context.Context, fn func(ctx context.Context, db DBTX) error) error {
	return fn(ctx, g.db)
}

func (g *Shared) DB() *sql.DB { return g.db }
