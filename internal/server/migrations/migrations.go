// Package migrations embeds the schema for every supported backend and
// applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/toomanytabs/internal/logging"
	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// Dialect pairs a goose dialect with the embedded directory holding its files.
type Dialect struct {
	Name string
	Dir  string
}

var (
	Postgres = Dialect{Name: "postgres", Dir: "postgres"}
	SQLite   = Dialect{Name: "sqlite3", Dir: "sqlite"}
)

// goose keeps its settings in package globals.
var mu sync.Mutex

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Up applies every pending migration for d. Already applied versions are
// skipped, so calling it on each startup is safe.
func Up(ctx context.Context, db *sql.DB, d Dialect, logger logging.Logger) error {
	mu.Lock()
	defer mu.Unlock()

	goose.SetBaseFS(Migrations)
	goose.SetLogger(gooseLogger{ctx: ctx, l: logger})
	if err := goose.SetDialect(d.Name); err != nil {
		return fmt.Errorf("set goose dialect %s: %w", d.Name, err)
	}

	if err := gooseUpContext(ctx, db, d.Dir); err != nil {
		return fmt.Errorf("apply %s migrations: %w", d.Dir, err)
	}
	return nil
}

// gooseLogger routes goose output through our Logger.
type gooseLogger struct {
	ctx context.Context
	l   logging.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.l.Debug(g.ctx, fmt.Sprintf(format, v...), "component", "goose")
}

// Fatalf does not exit; Up reports the failure through its error.
func (g gooseLogger) Fatalf(format string, v ...any) {
	g.l.Error(g.ctx, fmt.Sprintf(format, v...), "component", "goose")
}
