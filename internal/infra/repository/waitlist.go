package repository

import (
	"context"

	"tablebook/internal/domain/waitlist"
	"tablebook/internal/infra"
	"tablebook/internal/pkg/phone"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WaitlistRepository struct {
	pool *pgxpool.Pool
}

func NewWaitlistRepository(pool *pgxpool.Pool) *WaitlistRepository {
	return &WaitlistRepository{pool: pool}
}

func (r *WaitlistRepository) Create(ctx context.Context, e *waitlist.Entry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO waitlist_entries (
			id, restaurant_id, name, phone_country_code, phone_number,
			party_size, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.RestaurantID, e.Name, e.Phone.CountryCode, e.Phone.MobileNumber,
		e.PartySize, e.Status,
	)
	if err != nil {
		return wrapPg("failed to create waitlist entry", err)
	}
	return nil
}

func (r *WaitlistRepository) FindByID(ctx context.Context, restaurantID, id uuid.UUID) (*waitlist.Entry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, restaurant_id, name, phone_country_code, phone_number,
		       party_size, status, created_at
		FROM waitlist_entries
		WHERE restaurant_id = $1 AND id = $2`,
		restaurantID, id,
	)
	e, err := scanWaitlistEntry(row)
	if err != nil {
		return nil, wrapPg("failed to find waitlist entry", err)
	}
	return e, nil
}

// ListActive returns waiting and notified entries in arrival order.
func (r *WaitlistRepository) ListActive(ctx context.Context, restaurantID uuid.UUID) ([]*waitlist.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, restaurant_id, name, phone_country_code, phone_number,
		       party_size, status, created_at
		FROM waitlist_entries
		WHERE restaurant_id = $1 AND status IN ('waiting', 'notified')
		ORDER BY created_at ASC`,
		restaurantID,
	)
	if err != nil {
		return nil, wrapPg("failed to list waitlist entries", err)
	}
	defer rows.Close()

	var result []*waitlist.Entry
	for rows.Next() {
		e, err := scanWaitlistEntry(rows)
		if err != nil {
			return nil, wrapPg("failed to scan waitlist entry", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPg("failed to read waitlist entries", err)
	}
	return result, nil
}

// UpdateStatus persists a transition already validated by Entry.Advance. The
// prior status is part of the guard so concurrent staff actions cannot
// resurrect a final entry.
func (r *WaitlistRepository) UpdateStatus(ctx context.Context, restaurantID, id uuid.UUID, from, to waitlist.Status) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE waitlist_entries
		SET status = $4
		WHERE restaurant_id = $1 AND id = $2 AND status = $3`,
		restaurantID, id, from, to,
	)
	if err != nil {
		return wrapPg("failed to update waitlist entry", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("waitlist entry changed concurrently", nil, infra.KindConflict)
	}
	return nil
}

func scanWaitlistEntry(row pgx.Row) (*waitlist.Entry, error) {
	var (
		e                         waitlist.Entry
		countryCode, mobileNumber string
	)
	err := row.Scan(
		&e.ID, &e.RestaurantID, &e.Name, &countryCode, &mobileNumber,
		&e.PartySize, &e.Status, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Phone = phone.Number{CountryCode: countryCode, MobileNumber: mobileNumber}
	return &e, nil
}
