package repository

import (
	"context"

	"tablebook/internal/domain/table"
	"tablebook/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TableRepository struct {
	pool *pgxpool.Pool
}

func NewTableRepository(pool *pgxpool.Pool) *TableRepository {
	return &TableRepository{pool: pool}
}

func (r *TableRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]table.Table, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, restaurant_id, external_id, name, seats, occupied, area
		FROM tables
		WHERE restaurant_id = $1
		ORDER BY area NULLS FIRST, name ASC`,
		restaurantID,
	)
	if err != nil {
		return nil, wrapPg("failed to list tables", err)
	}
	defer rows.Close()

	var tables []table.Table
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, wrapPg("failed to scan table", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPg("failed to read tables", err)
	}
	return tables, nil
}

func (r *TableRepository) FindByID(ctx context.Context, restaurantID, id uuid.UUID) (table.Table, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, restaurant_id, external_id, name, seats, occupied, area
		FROM tables
		WHERE restaurant_id = $1 AND id = $2`,
		restaurantID, id,
	)
	t, err := scanTable(row)
	if err != nil {
		return table.Table{}, wrapPg("failed to find table", err)
	}
	return t, nil
}

func (r *TableRepository) SetOccupied(ctx context.Context, restaurantID, id uuid.UUID, occupied bool) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tables
		SET occupied = $3
		WHERE restaurant_id = $1 AND id = $2`,
		restaurantID, id, occupied,
	)
	if err != nil {
		return wrapPg("failed to update table occupancy", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("table not found", nil, infra.KindNotFound)
	}
	return nil
}

// SyncExternal reconciles the local table rows with a fresh external
// snapshot, keyed by external id. Rows absent from the snapshot are removed.
func (r *TableRepository) SyncExternal(ctx context.Context, restaurantID uuid.UUID, tables []table.Table) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapPg("failed to begin table sync", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	externalIDs := make([]string, 0, len(tables))
	for _, t := range tables {
		externalIDs = append(externalIDs, t.ExternalID)
		if _, err := tx.Exec(ctx, `
			INSERT INTO tables (id, restaurant_id, external_id, name, seats, occupied, area)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (restaurant_id, external_id)
			DO UPDATE SET name = $4, seats = $5, occupied = $6, area = $7`,
			t.ID, restaurantID, t.ExternalID, t.Name, t.Seats, t.Occupied, t.Area,
		); err != nil {
			return wrapPg("failed to upsert table", err)
		}
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM tables
		WHERE restaurant_id = $1
		  AND external_id <> ''
		  AND external_id <> ALL($2)`,
		restaurantID, externalIDs,
	); err != nil {
		return wrapPg("failed to prune stale tables", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return wrapPg("failed to commit table sync", err)
	}
	return nil
}

func scanTable(row pgx.Row) (table.Table, error) {
	var t table.Table
	err := row.Scan(&t.ID, &t.RestaurantID, &t.ExternalID, &t.Name, &t.Seats, &t.Occupied, &t.Area)
	return t, err
}
