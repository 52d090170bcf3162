// Package httpserver maps HTTP routes onto the entry service and renders
// the HTML views.
package httpserver

import (
	"context"

	"github.com/dmitrijs2005/toomanytabs/internal/logging"
	"github.com/dmitrijs2005/toomanytabs/internal/server/models"
	"github.com/dmitrijs2005/toomanytabs/internal/server/views"
)

// EntryService is what the handlers need from the service layer.
type EntryService interface {
	List(ctx context.Context) ([]models.DbEntry, error)
	Get(ctx context.Context, id int64) (models.DbEntry, error)
	Create(ctx context.Context, e models.Entry) (int64, error)
	Update(ctx context.Context, id int64, e models.Entry) error
	Delete(ctx context.Context, id int64) error
}

// Pinger reports whether storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// State is built once at startup and shared read-only by every handler.
type State struct {
	Entries      EntryService
	Addr         string
	Views        views.Renderer
	Pinger       Pinger
	Logger       logging.Logger
	MaxBodyBytes int64
}
