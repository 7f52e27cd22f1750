package repository

import (
	"context"

	"tablebook/internal/domain/message"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

// Append writes one audit row. History is append-only; there is no update or
// delete path on this table.
func (r *MessageRepository) Append(ctx context.Context, h *message.History) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO message_history (
			id, restaurant_id, reservation_id, phone, body, status
		) VALUES ($1, $2, $3, $4, $5, $6)`,
		h.ID, h.RestaurantID, h.ReservationID, h.Phone, h.Body, h.Status,
	)
	if err != nil {
		return wrapPg("failed to append message history", err)
	}
	return nil
}

func (r *MessageRepository) ListByReservation(ctx context.Context, restaurantID, reservationID uuid.UUID) ([]message.History, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, restaurant_id, reservation_id, phone, body, status, created_at
		FROM message_history
		WHERE restaurant_id = $1 AND reservation_id = $2
		ORDER BY created_at DESC`,
		restaurantID, reservationID,
	)
	if err != nil {
		return nil, wrapPg("failed to list message history", err)
	}
	defer rows.Close()

	var result []message.History
	for rows.Next() {
		var h message.History
		if err := rows.Scan(
			&h.ID, &h.RestaurantID, &h.ReservationID, &h.Phone, &h.Body,
			&h.Status, &h.CreatedAt,
		); err != nil {
			return nil, wrapPg("failed to scan message history", err)
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPg("failed to read message history", err)
	}
	return result, nil
}
