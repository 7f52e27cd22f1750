//go:build unit

package builder

import (
	"tablebook/internal/domain/schedule"

	"github.com/google/uuid"
)

type SlotBuilder struct {
	RestaurantID    uuid.UUID
	DayOfWeek       *int
	Date            *string
	Start           string
	End             string
	MaxReservations int
	Active          bool
}

func NewSlotBuilder() *SlotBuilder {
	dow := 4 // Thursday
	return &SlotBuilder{
		RestaurantID:    uuid.New(),
		DayOfWeek:       &dow,
		Start:           "18:00",
		End:             "21:00",
		MaxReservations: 10,
		Active:          true,
	}
}

func (b *SlotBuilder) With(mutate func(*SlotBuilder)) *SlotBuilder {
	mutate(b)
	return b
}

func (b *SlotBuilder) WithWeekday(dow int) *SlotBuilder {
	b.DayOfWeek = &dow
	b.Date = nil
	return b
}

func (b *SlotBuilder) WithDate(date string) *SlotBuilder {
	b.Date = &date
	b.DayOfWeek = nil
	return b
}

func (b *SlotBuilder) WithWindow(start, end string) *SlotBuilder {
	b.Start = start
	b.End = end
	return b
}

func (b *SlotBuilder) Build() schedule.Slot {
	return schedule.Slot{
		ID:              uuid.New(),
		RestaurantID:    b.RestaurantID,
		DayOfWeek:       b.DayOfWeek,
		Date:            b.Date,
		Start:           b.Start,
		End:             b.End,
		MaxReservations: b.MaxReservations,
		Active:          b.Active,
	}
}
