// Package entries provides the SQL repositories for bookmark entries, one per
// supported backend, plus the row mapper and driver error classification
// they share.
package entries

import (
	"context"

	"github.com/dmitrijs2005/toomanytabs/internal/server/models"
)

// Repository is the data-access contract the service layer depends on.
//
// Update and Delete return the number of affected rows and leave their
// interpretation to the caller. Get reports a missing row with found=false
// and a nil error.
type Repository interface {
	EnsureSchema(ctx context.Context) error
	List(ctx context.Context) ([]models.DbEntry, error)
	Get(ctx context.Context, id int64) (entry models.DbEntry, found bool, err error)
	Create(ctx context.Context, e models.Entry) (int64, error)
	Update(ctx context.Context, id int64, e models.Entry) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

const selectColumns = `id, url, title, notes, created_at, updated_at`
