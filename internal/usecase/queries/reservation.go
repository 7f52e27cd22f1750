package queries

import (
	"context"
	"time"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/domain/tenant"
	"tablebook/internal/infra"
	"tablebook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrReservationNotFound = errs.New("reservation not found")

type ReservationReader interface {
	FindByID(ctx context.Context, restaurantID, id uuid.UUID) (*reservation.Reservation, error)
	ListForDay(ctx context.Context, restaurantID uuid.UUID, dayStart, dayEnd time.Time) ([]*reservation.Reservation, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, rest *tenant.Restaurant, id uuid.UUID) (*ReservationView, error)
	ListForDay(ctx context.Context, rest *tenant.Restaurant, date string) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	repo ReservationReader
}

func NewReservationQueries(repo ReservationReader) ReservationQueries {
	return &reservationQueriesImpl{repo: repo}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, rest *tenant.Restaurant, id uuid.UUID) (*ReservationView, error) {
	res, err := q.repo.FindByID(ctx, rest.ID, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return NewReservationView(res, rest.Reservation.Location()), nil
}

// ListForDay is the staff dashboard day view, bucketed by the tenant-local
// calendar date.
func (q *reservationQueriesImpl) ListForDay(ctx context.Context, rest *tenant.Restaurant, date string) ([]*ReservationView, error) {
	loc := rest.Reservation.Location()
	dayStart, dayEnd, err := schedule.DayWindow(date, loc)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDate)
	}

	list, err := q.repo.ListForDay(ctx, rest.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	views := make([]*ReservationView, 0, len(list))
	for _, res := range list {
		views = append(views, NewReservationView(res, loc))
	}
	return views, nil
}
