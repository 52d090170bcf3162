package entries

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/toomanytabs/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryRows(t *testing.T, rows *sqlmock.Rows) *sql.Rows {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT").WillReturnRows(rows)
	r, err := db.QueryContext(context.Background(), "SELECT")
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 3, 9, 17, 4, 5, 123000000, time.UTC)

	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"iso with Z", "2024-03-09T17:04:05.123Z", want},
		{"iso with offset", "2024-03-09T19:04:05.123+02:00", want},
		{"iso without fraction", "2024-03-09T17:04:05Z", want.Truncate(time.Second)},
		{"space with offset", "2024-03-09 18:04:05.123+01:00", want},
		{"space millis", "2024-03-09 17:04:05.123", want},
		{"space seconds", "2024-03-09 17:04:05", want.Truncate(time.Second)},
		{"bytes", []byte("2024-03-09T17:04:05.123Z"), want},
		{"time value", want.In(time.FixedZone("X", -5*3600)), want},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimestamp(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseTimestamp_Rejects(t *testing.T) {
	for _, in := range []any{"09/03/2024", "", nil, int64(1700000000), 3.14} {
		_, err := parseTimestamp(in)
		assert.Error(t, err, "%v", in)
	}
}

func TestDecodeEntries_ColumnsByName(t *testing.T) {
	rows := queryRows(t, sqlmock.NewRows([]string{"updated_at", "notes", "id", "extra", "title", "created_at", "url"}).
		AddRow("2024-01-02 03:04:05", "n", int64(5), "ignored", "t", "2024-01-01 00:00:00", "u"))

	got, err := decodeEntries(rows)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(5), got[0].ID)
	assert.Equal(t, "u", got[0].URL)
	assert.Equal(t, "t", got[0].Title)
	assert.Equal(t, "n", got[0].Notes)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), got[0].CreatedAt)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), got[0].UpdatedAt)
}

func TestDecodeEntries_NullTextBecomesEmpty(t *testing.T) {
	rows := queryRows(t, sqlmock.NewRows(pgCols).
		AddRow(int64(1), nil, nil, nil, "2024-01-01 00:00:00", "2024-01-01 00:00:00"))

	got, err := decodeEntries(rows)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].URL)
}

func TestDecodeEntries_Failures(t *testing.T) {
	t.Run("missing column", func(t *testing.T) {
		rows := queryRows(t, sqlmock.NewRows([]string{"id", "url", "title", "notes", "created_at"}).
			AddRow(int64(1), "u", "t", "n", "2024-01-01 00:00:00"))
		_, err := decodeEntries(rows)
		require.ErrorIs(t, err, common.ErrDecode)
		assert.Contains(t, err.Error(), "updated_at")
	})

	t.Run("bad id", func(t *testing.T) {
		rows := queryRows(t, sqlmock.NewRows(pgCols).
			AddRow("abc", "u", "t", "n", "2024-01-01 00:00:00", "2024-01-01 00:00:00"))
		_, err := decodeEntries(rows)
		require.ErrorIs(t, err, common.ErrDecode)
	})

	t.Run("one bad row fails the batch", func(t *testing.T) {
		rows := queryRows(t, sqlmock.NewRows(pgCols).
			AddRow(int64(1), "u", "t", "n", "2024-01-01 00:00:00", "2024-01-01 00:00:00").
			AddRow(int64(2), "u", "t", "n", "not a time", "2024-01-01 00:00:00"))
		got, err := decodeEntries(rows)
		require.ErrorIs(t, err, common.ErrDecode)
		assert.Nil(t, got)
	})

	t.Run("iteration error", func(t *testing.T) {
		errBroken := errors.New("stream broken")
		rows := queryRows(t, sqlmock.NewRows(pgCols).
			AddRow(int64(1), "u", "t", "n", "2024-01-01 00:00:00", "2024-01-01 00:00:00").
			AddRow(int64(2), "u", "t", "n", "2024-01-01 00:00:00", "2024-01-01 00:00:00").
			RowError(1, errBroken))
		got, err := decodeEntries(rows)
		require.ErrorIs(t, err, errBroken)
		assert.Contains(t, err.Error(), "iterate rows")
		assert.Nil(t, got)
	})
}
