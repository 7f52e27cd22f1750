//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase/queries"
	"tablebook/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSlotReader struct {
	slots  []schedule.Slot
	err    error
	called bool
}

func (s *stubSlotReader) ListByRestaurant(_ context.Context, _ uuid.UUID) ([]schedule.Slot, error) {
	s.called = true
	return s.slots, s.err
}

type stubCounter struct {
	counts   map[string]int
	err      error
	statuses []reservation.Status
}

func (s *stubCounter) CountsForDay(_ context.Context, _ uuid.UUID, _, _ time.Time, statuses []reservation.Status) (map[string]int, error) {
	s.statuses = statuses
	if s.err != nil {
		return nil, s.err
	}
	return s.counts, nil
}

type stubCache struct {
	hit    []queries.SlotAvailability
	stored []queries.SlotAvailability
}

func (s *stubCache) Get(_ context.Context, _ uuid.UUID, _ string, out any) bool {
	if s.hit == nil {
		return false
	}
	*(out.(*[]queries.SlotAvailability)) = s.hit
	return true
}

func (s *stubCache) Set(_ context.Context, _ uuid.UUID, _ string, value any) {
	s.stored = value.([]queries.SlotAvailability)
}

func TestListSlots(t *testing.T) {
	ctx := context.Background()
	// 2026-09-10 is a Thursday.
	const date = "2026-09-10"

	t.Run("renders remaining capacity per slot", func(t *testing.T) {
		rest := builder.NewRestaurantBuilder().Build()
		dinner := builder.NewSlotBuilder().WithWeekday(4).WithWindow("18:00", "21:00").Build()
		lunch := builder.NewSlotBuilder().WithWeekday(4).WithWindow("11:00", "14:00").Build()

		slots := &stubSlotReader{slots: []schedule.Slot{dinner, lunch}}
		counter := &stubCounter{counts: map[string]int{"18:00-21:00": 4}}
		cache := &stubCache{}

		q := queries.NewAvailabilityQueries(slots, counter, cache)
		got, err := q.ListSlots(ctx, rest, date)
		require.NoError(t, err)

		want := []queries.SlotAvailability{
			{SlotStart: "11:00", SlotEnd: "14:00", DisplayTime: "11:00 AM", Remaining: 10, MaxPartySize: 12},
			{SlotStart: "18:00", SlotEnd: "21:00", DisplayTime: "6:00 PM", Remaining: 6, MaxPartySize: 12},
		}
		assert.Empty(t, cmp.Diff(want, got))

		// Only capacity-consuming statuses are counted.
		assert.Equal(t, reservation.CountedStatuses, counter.statuses)
		// The rendered listing is written back to the cache.
		assert.Empty(t, cmp.Diff(want, cache.stored))
	})

	t.Run("full slot is left out of the listing", func(t *testing.T) {
		rest := builder.NewRestaurantBuilder().Build()
		dinner := builder.NewSlotBuilder().WithWeekday(4).WithWindow("18:00", "21:00").Build()
		lunch := builder.NewSlotBuilder().WithWeekday(4).WithWindow("11:00", "14:00").Build()

		q := queries.NewAvailabilityQueries(
			&stubSlotReader{slots: []schedule.Slot{dinner, lunch}},
			&stubCounter{counts: map[string]int{"18:00-21:00": 10}},
			&stubCache{},
		)

		got, err := q.ListSlots(ctx, rest, date)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "11:00", got[0].SlotStart)
	})

	t.Run("slots sharing a start time keep separate counts", func(t *testing.T) {
		rest := builder.NewRestaurantBuilder().Build()
		short := builder.NewSlotBuilder().WithWeekday(4).WithWindow("18:00", "20:00").Build()
		long := builder.NewSlotBuilder().WithWeekday(4).WithWindow("18:00", "22:00").Build()

		q := queries.NewAvailabilityQueries(
			&stubSlotReader{slots: []schedule.Slot{short, long}},
			&stubCounter{counts: map[string]int{"18:00-20:00": 10}},
			&stubCache{},
		)

		got, err := q.ListSlots(ctx, rest, date)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "22:00", got[0].SlotEnd)
		assert.Equal(t, 10, got[0].Remaining)
	})

	t.Run("count failure degrades to an empty uncached listing", func(t *testing.T) {
		rest := builder.NewRestaurantBuilder().Build()
		dinner := builder.NewSlotBuilder().WithWeekday(4).Build()
		cache := &stubCache{}

		q := queries.NewAvailabilityQueries(
			&stubSlotReader{slots: []schedule.Slot{dinner}},
			&stubCounter{err: errs.New("store down")},
			cache,
		)

		got, err := q.ListSlots(ctx, rest, date)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
		assert.Nil(t, cache.stored)
	})

	t.Run("cache hit skips the store entirely", func(t *testing.T) {
		rest := builder.NewRestaurantBuilder().Build()
		cached := []queries.SlotAvailability{{SlotStart: "18:00", Remaining: 2}}

		slots := &stubSlotReader{err: errs.New("store must not be reached")}
		q := queries.NewAvailabilityQueries(slots, &stubCounter{}, &stubCache{hit: cached})

		got, err := q.ListSlots(ctx, rest, date)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(cached, got))
		assert.False(t, slots.called)
	})

	t.Run("misconfigured slot is skipped, not fatal", func(t *testing.T) {
		rest := builder.NewRestaurantBuilder().Build()
		good := builder.NewSlotBuilder().WithWeekday(4).Build()
		broken := builder.NewSlotBuilder().WithWeekday(4).WithWindow("18:00", "25:00").Build()

		q := queries.NewAvailabilityQueries(
			&stubSlotReader{slots: []schedule.Slot{good, broken}},
			&stubCounter{counts: map[string]int{}},
			&stubCache{},
		)

		got, err := q.ListSlots(ctx, rest, date)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, good.Start, got[0].SlotStart)
	})

	t.Run("day with no slots renders an empty listing", func(t *testing.T) {
		rest := builder.NewRestaurantBuilder().Build()
		friday := builder.NewSlotBuilder().WithWeekday(5).Build()

		q := queries.NewAvailabilityQueries(
			&stubSlotReader{slots: []schedule.Slot{friday}},
			&stubCounter{counts: map[string]int{}},
			&stubCache{},
		)

		got, err := q.ListSlots(ctx, rest, date)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("invalid date", func(t *testing.T) {
		rest := builder.NewRestaurantBuilder().Build()
		q := queries.NewAvailabilityQueries(&stubSlotReader{}, &stubCounter{}, &stubCache{})

		_, err := q.ListSlots(ctx, rest, "09/10/2026")
		assert.ErrorIs(t, err, queries.ErrInvalidDate)
	})
}
