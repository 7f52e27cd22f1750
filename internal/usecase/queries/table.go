package queries

import (
	"context"
	"log/slog"

	"tablebook/internal/domain/table"
	"tablebook/internal/domain/tenant"
	"tablebook/internal/infra/nova"

	"github.com/google/uuid"
)

type TableReader interface {
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]table.Table, error)
	SyncExternal(ctx context.Context, restaurantID uuid.UUID, tables []table.Table) error
}

type TableStatusFetcher interface {
	FetchTableStatus(ctx context.Context, merchantRef string) ([]nova.Area, error)
}

type TableQueries interface {
	List(ctx context.Context, rest *tenant.Restaurant) ([]TableView, error)
}

type tableQueriesImpl struct {
	repo TableReader
	gw   TableStatusFetcher
}

func NewTableQueries(repo TableReader, gw TableStatusFetcher) TableQueries {
	return &tableQueriesImpl{repo: repo, gw: gw}
}

// List returns the floor view. Tenants linked to the external booking system
// get live occupancy proxied and reconciled into the local rows; a failed
// fetch degrades to the last synced snapshot instead of an empty floor.
func (q *tableQueriesImpl) List(ctx context.Context, rest *tenant.Restaurant) ([]TableView, error) {
	if rest.ExternalRef != nil {
		if err := q.refreshFromExternal(ctx, rest); err != nil {
			slog.Warn("table status refresh failed, serving last snapshot",
				"restaurant_id", rest.ID, "error", err)
		}
	}

	tables, err := q.repo.ListByRestaurant(ctx, rest.ID)
	if err != nil {
		return nil, err
	}

	views := make([]TableView, 0, len(tables))
	for _, t := range tables {
		views = append(views, NewTableView(t))
	}
	return views, nil
}

func (q *tableQueriesImpl) refreshFromExternal(ctx context.Context, rest *tenant.Restaurant) error {
	areas, err := q.gw.FetchTableStatus(ctx, *rest.ExternalRef)
	if err != nil {
		return err
	}

	var tables []table.Table
	for _, area := range areas {
		areaName := area.Name
		for _, ts := range area.Tables {
			tables = append(tables, table.Table{
				ID:           uuid.New(),
				RestaurantID: rest.ID,
				ExternalID:   ts.ID,
				Name:         ts.Name,
				Seats:        ts.Capacity,
				Occupied:     ts.Occupied,
				Area:         &areaName,
			})
		}
	}
	return q.repo.SyncExternal(ctx, rest.ID, tables)
}
