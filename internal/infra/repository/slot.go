package repository

import (
	"context"

	"tablebook/internal/domain/schedule"
	"tablebook/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SlotRepository struct {
	pool *pgxpool.Pool
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

// ListByRestaurant returns every configured slot, templates and overrides
// alike. Selecting which apply to a given date is domain logic
// (schedule.ForDate), not a query concern.
func (r *SlotRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]schedule.Slot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, restaurant_id, day_of_week, date, start_time, end_time,
		       max_reservations, is_active, is_default
		FROM reservation_slots
		WHERE restaurant_id = $1
		ORDER BY start_time ASC`,
		restaurantID,
	)
	if err != nil {
		return nil, wrapPg("failed to list slots", err)
	}
	defer rows.Close()

	var slots []schedule.Slot
	for rows.Next() {
		var s schedule.Slot
		if err := rows.Scan(
			&s.ID, &s.RestaurantID, &s.DayOfWeek, &s.Date, &s.Start, &s.End,
			&s.MaxReservations, &s.Active, &s.Default,
		); err != nil {
			return nil, wrapPg("failed to scan slot", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPg("failed to read slots", err)
	}
	return slots, nil
}

func (r *SlotRepository) Create(ctx context.Context, s schedule.Slot) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reservation_slots (
			id, restaurant_id, day_of_week, date, start_time, end_time,
			max_reservations, is_active, is_default
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.RestaurantID, s.DayOfWeek, s.Date, s.Start, s.End,
		s.MaxReservations, s.Active, s.Default,
	)
	if err != nil {
		return wrapPg("failed to create slot", err)
	}
	return nil
}

func (r *SlotRepository) Update(ctx context.Context, s schedule.Slot) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE reservation_slots
		SET day_of_week = $3, date = $4, start_time = $5, end_time = $6,
		    max_reservations = $7, is_active = $8, is_default = $9
		WHERE restaurant_id = $1 AND id = $2`,
		s.RestaurantID, s.ID, s.DayOfWeek, s.Date, s.Start, s.End,
		s.MaxReservations, s.Active, s.Default,
	)
	if err != nil {
		return wrapPg("failed to update slot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	return nil
}
