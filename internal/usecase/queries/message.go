package queries

import (
	"context"

	"tablebook/internal/domain/message"
	"tablebook/internal/domain/tenant"

	"github.com/google/uuid"
)

type MessageReader interface {
	ListByReservation(ctx context.Context, restaurantID, reservationID uuid.UUID) ([]message.History, error)
}

type MessageQueries interface {
	ListByReservation(ctx context.Context, rest *tenant.Restaurant, reservationID uuid.UUID) ([]MessageView, error)
}

type messageQueriesImpl struct {
	repo MessageReader
}

func NewMessageQueries(repo MessageReader) MessageQueries {
	return &messageQueriesImpl{repo: repo}
}

func (q *messageQueriesImpl) ListByReservation(ctx context.Context, rest *tenant.Restaurant, reservationID uuid.UUID) ([]MessageView, error) {
	history, err := q.repo.ListByReservation(ctx, rest.ID, reservationID)
	if err != nil {
		return nil, err
	}

	views := make([]MessageView, 0, len(history))
	for _, h := range history {
		views = append(views, NewMessageView(h))
	}
	return views, nil
}
