//go:build unit

package builder

import (
	"time"

	"tablebook/internal/domain/reservation"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	RestaurantID uuid.UUID
	GuestName    string
	Phone        string
	Email        string
	PartySize    int
	DateTime     time.Time
	SlotStart    string
	SlotEnd      string
	Status       reservation.Status
	PaymentCents *int64
	Occasion     *string
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		RestaurantID: uuid.New(),
		GuestName:    "Ava Harper",
		Phone:        "+14155550100",
		Email:        "ava@example.com",
		PartySize:    2,
		DateTime:     time.Date(2026, 9, 10, 18, 30, 0, 0, time.UTC),
		SlotStart:    "18:00",
		SlotEnd:      "21:00",
		Status:       reservation.StatusConfirmed,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) WithStatus(s reservation.Status) *ReservationBuilder {
	b.Status = s
	return b
}

func (b *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	guest, err := reservation.NewGuest(b.GuestName, b.Phone, b.Email)
	if err != nil {
		return nil, err
	}
	partySize, err := reservation.NewPartySize(b.PartySize, 0)
	if err != nil {
		return nil, err
	}
	return reservation.NewReservation(reservation.NewReservationParams{
		RestaurantID: b.RestaurantID,
		Guest:        guest,
		PartySize:    partySize,
		DateTime:     b.DateTime,
		SlotStart:    b.SlotStart,
		SlotEnd:      b.SlotEnd,
		Status:       b.Status,
		PaymentCents: b.PaymentCents,
		Occasion:     b.Occasion,
	})
}
