package queries

import (
	"context"
	"log/slog"
	"time"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/domain/tenant"
	"tablebook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidDate = errs.New("invalid availability date")

type SlotReader interface {
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]schedule.Slot, error)
}

// ReservationCounter returns per-bucket counts for one local day, keyed by
// schedule.BucketKey of the stored slot boundaries.
type ReservationCounter interface {
	CountsForDay(ctx context.Context, restaurantID uuid.UUID, dayStart, dayEnd time.Time, statuses []reservation.Status) (map[string]int, error)
}

// AvailabilityCache is the optional read-through cache in front of the slot
// listing. Implementations must tolerate being absent.
type AvailabilityCache interface {
	Get(ctx context.Context, restaurantID uuid.UUID, date string, out any) bool
	Set(ctx context.Context, restaurantID uuid.UUID, date string, value any)
}

type AvailabilityQueries interface {
	ListSlots(ctx context.Context, rest *tenant.Restaurant, date string) ([]SlotAvailability, error)
}

type availabilityQueriesImpl struct {
	slots        SlotReader
	reservations ReservationCounter
	cache        AvailabilityCache
}

func NewAvailabilityQueries(slots SlotReader, reservations ReservationCounter, cache AvailabilityCache) AvailabilityQueries {
	return &availabilityQueriesImpl{
		slots:        slots,
		reservations: reservations,
		cache:        cache,
	}
}

// ListSlots renders the public availability listing for one calendar date.
// Slot applicability (overrides over templates) is resolved in the domain;
// remaining capacity counts only the statuses in reservation.CountedStatuses,
// and slots with nothing left are excluded. A slot with an unparseable
// configured time is skipped with a warning rather than failing the whole
// listing.
func (q *availabilityQueriesImpl) ListSlots(ctx context.Context, rest *tenant.Restaurant, date string) ([]SlotAvailability, error) {
	loc := rest.Reservation.Location()

	dayStart, dayEnd, err := schedule.DayWindow(date, loc)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDate)
	}
	weekday, err := schedule.Weekday(date)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDate)
	}

	var cached []SlotAvailability
	if q.cache != nil && q.cache.Get(ctx, rest.ID, date, &cached) {
		return cached, nil
	}

	allSlots, err := q.slots.ListByRestaurant(ctx, rest.ID)
	if err != nil {
		return nil, err
	}

	counts, err := q.reservations.CountsForDay(ctx, rest.ID, dayStart, dayEnd, reservation.CountedStatuses)
	if err != nil {
		// Counts come from one aggregated query, so a failure leaves no slot
		// with a trustworthy number; excluding the affected slots means an
		// empty listing. The result is not cached so the next request
		// retries.
		slog.Warn("availability counts unavailable",
			"restaurant_id", rest.ID, "date", date, "error", err)
		return []SlotAvailability{}, nil
	}

	result := make([]SlotAvailability, 0)
	for _, s := range schedule.ForDate(allSlots, date, weekday) {
		if err := s.Validate(); err != nil {
			slog.Warn("skipping misconfigured slot",
				"restaurant_id", rest.ID, "slot_id", s.ID, "error", err)
			continue
		}
		remaining := schedule.Remaining(s.MaxReservations, counts[schedule.BucketKey(s.Start, s.End)])
		if remaining == 0 {
			continue
		}
		result = append(result, SlotAvailability{
			SlotStart:    s.Start,
			SlotEnd:      s.End,
			DisplayTime:  s.DisplayStart(),
			Remaining:    remaining,
			MaxPartySize: rest.Reservation.MaxPartySize,
		})
	}

	if q.cache != nil {
		q.cache.Set(ctx, rest.ID, date, result)
	}
	return result, nil
}
