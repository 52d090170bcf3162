package entries

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/toomanytabs/internal/common"
	"github.com/dmitrijs2005/toomanytabs/internal/dbx"
	"github.com/dmitrijs2005/toomanytabs/internal/logging"
	"github.com/dmitrijs2005/toomanytabs/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewPostgresRepository(dbx.NewShared(db), logging.Nop()), mock
}

var pgCols = []string{"id", "url", "title", "notes", "created_at", "updated_at"}

func TestPostgres_List(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	berlin := time.FixedZone("CET", 3600)
	t1 := time.Date(2024, 5, 1, 13, 0, 0, 0, berlin)
	t2 := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, url, title, notes, created_at, updated_at FROM entries ORDER BY created_at DESC, id DESC`).
		WillReturnRows(sqlmock.NewRows(pgCols).
			AddRow(int64(2), "https://b", "B", "nb", t1, t1).
			AddRow(int64(1), "https://a", "A", "na", t2, t2))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, "https://b", got[0].URL)
	assert.Equal(t, time.UTC, got[0].CreatedAt.Location())
	assert.True(t, got[0].CreatedAt.Equal(t1))
	assert.Equal(t, int64(1), got[1].ID)
}

func TestPostgres_ListEmpty(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT .* FROM entries`).WillReturnRows(sqlmock.NewRows(pgCols))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPostgres_ListDecodeFailure(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT .* FROM entries`).
		WillReturnRows(sqlmock.NewRows(pgCols).
			AddRow(int64(1), "u", "t", "n", "yesterday", "yesterday"))

	_, err := repo.List(context.Background())
	require.ErrorIs(t, err, common.ErrDecode)
}

func TestPostgres_ListConnectionLostMidStream(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT .* FROM entries`).
		WillReturnRows(sqlmock.NewRows(pgCols).
			AddRow(int64(2), "u", "t", "n", time.Now(), time.Now()).
			AddRow(int64(1), "u", "t", "n", time.Now(), time.Now()).
			RowError(1, &net.OpError{Op: "read", Net: "tcp", Err: errors.New("connection reset by peer")}))

	_, err := repo.List(context.Background())
	require.ErrorIs(t, err, common.ErrUnavailable)
	assert.Contains(t, err.Error(), "iterate rows")
	assert.NotErrorIs(t, err, common.ErrDecode)
}

func TestPostgres_Get(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .* FROM entries WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(pgCols).AddRow(int64(7), "u", "t", "n", now, now))

	got, found, err := repo.Get(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.DbEntry{ID: 7, URL: "u", Title: "t", Notes: "n", CreatedAt: now, UpdatedAt: now}, got)
}

func TestPostgres_GetNotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT .* FROM entries WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(pgCols))

	_, found, err := repo.Get(context.Background(), 404)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPostgres_Create(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO entries \(url, title, notes\) VALUES \(\$1, \$2, \$3\) RETURNING id`).
		WithArgs("https://go.dev", "Go", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	id, err := repo.Create(context.Background(), models.Entry{URL: "https://go.dev", Title: "Go"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestPostgres_CreateConstraintViolation(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO entries`).
		WithArgs("u", "t", "n").
		WillReturnError(&pgconn.PgError{Code: "23502", Message: "null value in column"})

	_, err := repo.Create(context.Background(), models.Entry{URL: "u", Title: "t", Notes: "n"})
	require.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestPostgres_CreateConnectivityFailure(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO entries`).
		WithArgs("u", "t", "n").
		WillReturnError(&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")})

	_, err := repo.Create(context.Background(), models.Entry{URL: "u", Title: "t", Notes: "n"})
	require.ErrorIs(t, err, common.ErrUnavailable)
	assert.NotErrorIs(t, err, common.ErrInvalidInput)
}

func TestPostgres_UpdateAffected(t *testing.T) {
	for _, n := range []int64{0, 1, 2} {
		repo, mock := newRepoWithMock(t)

		mock.ExpectExec(`UPDATE entries SET url = \$1, title = \$2, notes = \$3 WHERE id = \$4`).
			WithArgs("u", "t", "n", int64(3)).
			WillReturnResult(sqlmock.NewResult(0, n))

		got, err := repo.Update(context.Background(), 3, models.Entry{URL: "u", Title: "t", Notes: "n"})
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}
}

func TestPostgres_UpdateDataException(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`UPDATE entries`).
		WillReturnError(&pgconn.PgError{Code: "22001", Message: "value too long"})

	_, err := repo.Update(context.Background(), 3, models.Entry{})
	require.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestPostgres_DeleteAffected(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`DELETE FROM entries WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.Delete(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPostgres_DeleteErrors(t *testing.T) {
	t.Run("exec error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(`DELETE FROM entries`).WillReturnError(sql.ErrConnDone)

		_, err := repo.Delete(context.Background(), 9)
		require.ErrorIs(t, err, common.ErrUnavailable)
	})

	t.Run("rows affected error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(`DELETE FROM entries`).
			WillReturnResult(sqlmock.NewErrorResult(errors.New("rows-err")))

		_, err := repo.Delete(context.Background(), 9)
		require.ErrorContains(t, err, "rows-err")
	})
}
