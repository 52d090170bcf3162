package entries

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/toomanytabs/internal/dbx"
	"github.com/dmitrijs2005/toomanytabs/internal/logging"
	"github.com/dmitrijs2005/toomanytabs/internal/server/migrations"
	"github.com/dmitrijs2005/toomanytabs/internal/server/models"
)

// PostgresRepository implements Repository for PostgreSQL via pgx's
// database/sql driver. Statements run through a dbx.Guard, normally a
// pass-through dbx.Shared.
type PostgresRepository struct {
	guard  dbx.Guard
	logger logging.Logger
}

// NewPostgresRepository constructs a repository bound to the given guard.
func NewPostgresRepository(guard dbx.Guard, logger logging.Logger) *PostgresRepository {
	return &PostgresRepository{guard: guard, logger: logger}
}

// EnsureSchema applies the embedded postgres migrations.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if err := migrations.Up(ctx, r.guard.DB(), migrations.Postgres, r.logger); err != nil {
		return classify("ensure schema", err)
	}
	return nil
}

// List returns every entry, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]models.DbEntry, error) {
	query := `SELECT ` + selectColumns + ` FROM entries ORDER BY created_at DESC, id DESC`

	var result []models.DbEntry
	err := r.guard.Run(ctx, func(ctx context.Context, db dbx.DBTX) error {
		rows, err := db.QueryContext(ctx, query)
		if err != nil {
			return classify("list entries", err)
		}
		defer rows.Close()

		result, err = decodeEntries(rows)
		if err != nil {
			return classify("list entries", err)
		}
		return nil
	})
	return result, err
}

// Get loads one entry. found is false when no row has the id.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (models.DbEntry, bool, error) {
	query := `SELECT ` + selectColumns + ` FROM entries WHERE id = $1`

	var result []models.DbEntry
	err := r.guard.Run(ctx, func(ctx context.Context, db dbx.DBTX) error {
		rows, err := db.QueryContext(ctx, query, id)
		if err != nil {
			return classify("get entry", err)
		}
		defer rows.Close()

		result, err = decodeEntries(rows)
		if err != nil {
			return classify("get entry", err)
		}
		return nil
	})
	if err != nil || len(result) == 0 {
		return models.DbEntry{}, false, err
	}
	return result[0], true, nil
}

// Create inserts e and returns the new id.
func (r *PostgresRepository) Create(ctx context.Context, e models.Entry) (int64, error) {
	query := `INSERT INTO entries (url, title, notes) VALUES ($1, $2, $3) RETURNING id`

	var id int64
	err := r.guard.Run(ctx, func(ctx context.Context, db dbx.DBTX) error {
		if err := db.QueryRowContext(ctx, query, e.URL, e.Title, e.Notes).Scan(&id); err != nil {
			return classify("create entry", err)
		}
		return nil
	})
	return id, err
}

// Update overwrites url, title and notes of entry id and returns the number
// of affected rows.
func (r *PostgresRepository) Update(ctx context.Context, id int64, e models.Entry) (int64, error) {
	query := `UPDATE entries SET url = $1, title = $2, notes = $3 WHERE id = $4`
	return r.exec(ctx, "update entry", query, e.URL, e.Title, e.Notes, id)
}

// Delete removes entry id and returns the number of affected rows.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query := `DELETE FROM entries WHERE id = $1`
	return r.exec(ctx, "delete entry", query, id)
}

func (r *PostgresRepository) exec(ctx context.Context, op, query string, args ...any) (int64, error) {
	var n int64
	err := r.guard.Run(ctx, func(ctx context.Context, db dbx.DBTX) error {
		res, err := db.ExecContext(ctx, query, args...)
		if err != nil {
			return classify(op, err)
		}
		n, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%s: rows affected: %w", op, err)
		}
		return nil
	})
	return n, err
}
