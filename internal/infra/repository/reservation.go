package repository

import (
	"context"
	"time"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/infra"
	"tablebook/internal/pkg/phone"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reservationColumns = `
	id, restaurant_id, customer_ref, guest_name, phone_country_code,
	phone_number, email, party_size, date_time, slot_start, slot_end,
	status, table_id, payment_cents, occasion, special_request, created_at`

type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reservations (
			id, restaurant_id, customer_ref, guest_name, phone_country_code,
			phone_number, email, party_size, date_time, slot_start, slot_end,
			status, table_id, payment_cents, occasion, special_request
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		res.ID(), res.RestaurantID(), res.CustomerRef(),
		res.Guest().Name(), res.Guest().Phone().CountryCode, res.Guest().Phone().MobileNumber,
		res.Guest().Email(), res.PartySize().Value(), res.DateTime(),
		res.SlotStart(), res.SlotEnd(), res.Status().String(),
		res.TableID(), res.PaymentCents(), res.Occasion(), res.SpecialRequest().String(),
	)
	if err != nil {
		return wrapPg("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, restaurantID, id uuid.UUID) (*reservation.Reservation, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT`+reservationColumns+`
		FROM reservations
		WHERE restaurant_id = $1 AND id = $2`,
		restaurantID, id,
	)
	res, err := scanReservation(row)
	if err != nil {
		return nil, wrapPg("failed to find reservation", err)
	}
	return res, nil
}

// FindActiveByPhone returns the next upcoming non-terminal reservation for a
// guest phone number. Used by the guest self-cancel flow.
func (r *ReservationRepository) FindActiveByPhone(ctx context.Context, restaurantID uuid.UUID, num phone.Number, now time.Time) (*reservation.Reservation, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT`+reservationColumns+`
		FROM reservations
		WHERE restaurant_id = $1
		  AND phone_country_code = $2 AND phone_number = $3
		  AND status IN ('draft', 'confirmed', 'notified')
		  AND date_time >= $4
		ORDER BY date_time ASC
		LIMIT 1`,
		restaurantID, num.CountryCode, num.MobileNumber, now,
	)
	res, err := scanReservation(row)
	if err != nil {
		return nil, wrapPg("failed to find reservation by phone", err)
	}
	return res, nil
}

// CountInBucket counts reservations occupying one slot bucket on one local
// day. Statuses come from reservation.CountedStatuses so the capacity policy
// lives in exactly one place.
func (r *ReservationRepository) CountInBucket(ctx context.Context, restaurantID uuid.UUID, dayStart, dayEnd time.Time, slotStart, slotEnd string, statuses []reservation.Status) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM reservations
		WHERE restaurant_id = $1
		  AND date_time >= $2 AND date_time < $3
		  AND slot_start = $4 AND slot_end = $5
		  AND status = ANY($6)`,
		restaurantID, dayStart, dayEnd, slotStart, slotEnd, statusStrings(statuses),
	).Scan(&count)
	if err != nil {
		return 0, wrapPg("failed to count reservations in slot", err)
	}
	return count, nil
}

// CountsForDay returns per-bucket counts for one local day in a single
// query, keyed by schedule.BucketKey of the stored slot boundaries.
func (r *ReservationRepository) CountsForDay(ctx context.Context, restaurantID uuid.UUID, dayStart, dayEnd time.Time, statuses []reservation.Status) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT slot_start, slot_end, COUNT(*)
		FROM reservations
		WHERE restaurant_id = $1
		  AND date_time >= $2 AND date_time < $3
		  AND status = ANY($4)
		GROUP BY slot_start, slot_end`,
		restaurantID, dayStart, dayEnd, statusStrings(statuses),
	)
	if err != nil {
		return nil, wrapPg("failed to count reservations for day", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var slotStart, slotEnd string
		var count int
		if err := rows.Scan(&slotStart, &slotEnd, &count); err != nil {
			return nil, wrapPg("failed to scan slot count", err)
		}
		counts[schedule.BucketKey(slotStart, slotEnd)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPg("failed to read slot counts", err)
	}
	return counts, nil
}

// ListForDay returns all reservations for one local day, newest first within
// each time, for the staff dashboard.
func (r *ReservationRepository) ListForDay(ctx context.Context, restaurantID uuid.UUID, dayStart, dayEnd time.Time) ([]*reservation.Reservation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+reservationColumns+`
		FROM reservations
		WHERE restaurant_id = $1
		  AND date_time >= $2 AND date_time < $3
		ORDER BY date_time ASC, created_at DESC`,
		restaurantID, dayStart, dayEnd,
	)
	if err != nil {
		return nil, wrapPg("failed to list reservations", err)
	}
	defer rows.Close()

	var result []*reservation.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, wrapPg("failed to scan reservation", err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPg("failed to read reservations", err)
	}
	return result, nil
}

// ConfirmDraft promotes a draft to confirmed with a status-guarded update so
// a concurrent transition cannot be overwritten. clearPayment drops any
// stored deposit amount (manual staff confirm). A zero-row update reports
// CONFLICT.
func (r *ReservationRepository) ConfirmDraft(ctx context.Context, restaurantID, id uuid.UUID, clearPayment bool) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE reservations
		SET status = 'confirmed',
		    payment_cents = CASE WHEN $3 THEN NULL ELSE payment_cents END
		WHERE restaurant_id = $1 AND id = $2 AND status = 'draft'`,
		restaurantID, id, clearPayment,
	)
	if err != nil {
		return wrapPg("failed to confirm reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not in a confirmable status", nil, infra.KindConflict)
	}
	return nil
}

// MarkNotified records a successful guest message against the reservation.
func (r *ReservationRepository) MarkNotified(ctx context.Context, restaurantID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE reservations
		SET status = 'notified'
		WHERE restaurant_id = $1 AND id = $2 AND status IN ('confirmed', 'notified')`,
		restaurantID, id,
	)
	if err != nil {
		return wrapPg("failed to mark reservation notified", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not in a notifiable status", nil, infra.KindConflict)
	}
	return nil
}

// Seat assigns a table and moves to seated. The status guard in the WHERE
// clause makes concurrent seat and cancel race-safe: the loser touches zero
// rows and gets CONFLICT.
func (r *ReservationRepository) Seat(ctx context.Context, restaurantID, id, tableID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE reservations
		SET status = 'seated', table_id = $3
		WHERE restaurant_id = $1 AND id = $2 AND status IN ('confirmed', 'notified')`,
		restaurantID, id, tableID,
	)
	if err != nil {
		return wrapPg("failed to seat reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not in a seatable status", nil, infra.KindConflict)
	}
	return nil
}

func (r *ReservationRepository) Cancel(ctx context.Context, restaurantID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE reservations
		SET status = 'cancelled'
		WHERE restaurant_id = $1 AND id = $2 AND status IN ('draft', 'confirmed', 'notified')`,
		restaurantID, id,
	)
	if err != nil {
		return wrapPg("failed to cancel reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not in a cancellable status", nil, infra.KindConflict)
	}
	return nil
}

// SetCustomerRef records the external customer id created for the guest.
func (r *ReservationRepository) SetCustomerRef(ctx context.Context, restaurantID, id uuid.UUID, customerRef string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE reservations
		SET customer_ref = $3
		WHERE restaurant_id = $1 AND id = $2`,
		restaurantID, id, customerRef,
	)
	if err != nil {
		return wrapPg("failed to set customer ref", err)
	}
	return nil
}

func scanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var (
		id, restaurantID           uuid.UUID
		customerRef                *string
		guestName, email           string
		countryCode, mobileNumber  string
		partySize                  int
		dateTime, createdAt        time.Time
		slotStart, slotEnd, status string
		tableID                    *uuid.UUID
		paymentCents               *int64
		occasion                   *string
		specialRequest             string
	)
	err := row.Scan(
		&id, &restaurantID, &customerRef, &guestName, &countryCode,
		&mobileNumber, &email, &partySize, &dateTime, &slotStart, &slotEnd,
		&status, &tableID, &paymentCents, &occasion, &specialRequest, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	guest := reservation.ReconstructGuest(guestName, phone.Number{
		CountryCode:  countryCode,
		MobileNumber: mobileNumber,
	}, email)

	return reservation.Reconstruct(
		id, restaurantID, customerRef, guest,
		reservation.ReconstructPartySize(partySize),
		dateTime, slotStart, slotEnd,
		reservation.Status(status), tableID, paymentCents, occasion,
		reservation.NewSpecialRequest(specialRequest), createdAt,
	), nil
}

func statusStrings(statuses []reservation.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = s.String()
	}
	return out
}
