package queries

import (
	"context"

	"tablebook/internal/domain/tenant"
	"tablebook/internal/domain/waitlist"
	"tablebook/internal/pkg/clock"

	"github.com/google/uuid"
)

type WaitlistReader interface {
	ListActive(ctx context.Context, restaurantID uuid.UUID) ([]*waitlist.Entry, error)
}

type WaitlistQueries interface {
	ListActive(ctx context.Context, rest *tenant.Restaurant) ([]WaitlistView, error)
}

type waitlistQueriesImpl struct {
	repo  WaitlistReader
	clock clock.Clock
}

func NewWaitlistQueries(repo WaitlistReader, clock clock.Clock) WaitlistQueries {
	return &waitlistQueriesImpl{repo: repo, clock: clock}
}

func (q *waitlistQueriesImpl) ListActive(ctx context.Context, rest *tenant.Restaurant) ([]WaitlistView, error) {
	entries, err := q.repo.ListActive(ctx, rest.ID)
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	views := make([]WaitlistView, 0, len(entries))
	for _, e := range entries {
		views = append(views, NewWaitlistView(e, now))
	}
	return views, nil
}
