package entries

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/toomanytabs/internal/common"
	"github.com/dmitrijs2005/toomanytabs/internal/server/models"
)

// timeLayouts are tried in order for timestamps stored as text.
var timeLayouts = []string{
	"2006-01-02T15:04:05.999Z07:00",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999",
	"2006-01-02 15:04:05",
}

var entryColumns = []string{"id", "url", "title", "notes", "created_at", "updated_at"}

// rowScanner is satisfied by *sql.Rows.
type rowScanner interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// decodeEntries reads every remaining row into DbEntry values. Columns are
// matched by name, so their order in the SELECT does not matter. Any
// mismatch fails the whole batch with common.ErrDecode.
func decodeEntries(rows rowScanner) ([]models.DbEntry, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: read columns: %v", common.ErrDecode, err)
	}

	index := make(map[string]int, len(cols))
	for i, c := range cols {
		index[c] = i
	}
	for _, want := range entryColumns {
		if _, ok := index[want]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", common.ErrDecode, want)
		}
	}

	result := make([]models.DbEntry, 0)
	for rows.Next() {
		var (
			e                  models.DbEntry
			url, title, notes  sql.NullString
			createdRaw, updRaw any
		)

		dest := make([]any, len(cols))
		for i := range dest {
			dest[i] = new(any)
		}
		dest[index["id"]] = &e.ID
		dest[index["url"]] = &url
		dest[index["title"]] = &title
		dest[index["notes"]] = &notes
		dest[index["created_at"]] = &createdRaw
		dest[index["updated_at"]] = &updRaw

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: scan row: %v", common.ErrDecode, err)
		}

		e.URL, e.Title, e.Notes = url.String, title.String, notes.String

		if e.CreatedAt, err = parseTimestamp(createdRaw); err != nil {
			return nil, fmt.Errorf("%w: entry %d created_at: %v", common.ErrDecode, e.ID, err)
		}
		if e.UpdatedAt, err = parseTimestamp(updRaw); err != nil {
			return nil, fmt.Errorf("%w: entry %d updated_at: %v", common.ErrDecode, e.ID, err)
		}

		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return result, nil
}

// parseTimestamp normalizes a driver value to UTC.
func parseTimestamp(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		return parseTimeText(t)
	case []byte:
		return parseTimeText(string(t))
	case nil:
		return time.Time{}, fmt.Errorf("null timestamp")
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", v)
	}
}

func parseTimeText(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
