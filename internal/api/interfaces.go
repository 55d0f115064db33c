package api

import (
	"context"

	"github.com/voyago/travel-dashboard/internal/query"
	"github.com/voyago/travel-dashboard/internal/travel"
	"github.com/voyago/travel-dashboard/internal/view"
)

// DestinationResolver defines the orchestration entry point the handlers need.
type DestinationResolver interface {
	Resolve(ctx context.Context, q travel.Query) *query.Snapshot
}

// ViewCache defines the cache operations needed by handlers.
type ViewCache interface {
	Get(ctx context.Context, q travel.Query) (*view.Destination, error)
	Set(ctx context.Context, q travel.Query, dest *view.Destination) error
	Delete(ctx context.Context, q travel.Query) error
}
