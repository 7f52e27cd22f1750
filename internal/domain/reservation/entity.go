package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrLeadTimeNotMet    = errors.New("lead time requirement not met")
	ErrPastCutoff        = errors.New("same-day booking cutoff has passed")
	ErrNegativeAmount    = errors.New("payment amount cannot be negative")
)

// Reservation is one guest booking. Scheduling carries both the UTC instant
// and the wall-clock slot bucket it was assigned to; the bucket is always
// derived from the instant in the tenant timezone at write time, never
// client-supplied.
type Reservation struct {
	id             uuid.UUID
	restaurantID   uuid.UUID
	customerRef    *string
	guest          Guest
	partySize      PartySize
	dateTime       time.Time
	slotStart      string
	slotEnd        string
	status         Status
	tableID        *uuid.UUID
	paymentCents   *int64
	occasion       *string
	specialRequest SpecialRequest
	createdAt      time.Time
}

type NewReservationParams struct {
	RestaurantID   uuid.UUID
	Guest          Guest
	PartySize      PartySize
	DateTime       time.Time
	SlotStart      string
	SlotEnd        string
	Status         Status
	PaymentCents   *int64
	Occasion       *string
	SpecialRequest SpecialRequest
}

func NewReservation(p NewReservationParams) (*Reservation, error) {
	if !p.Status.IsValid() {
		return nil, ErrInvalidTransition
	}
	if p.PaymentCents != nil && *p.PaymentCents < 0 {
		return nil, ErrNegativeAmount
	}

	return &Reservation{
		id:             uuid.New(),
		restaurantID:   p.RestaurantID,
		guest:          p.Guest,
		partySize:      p.PartySize,
		dateTime:       p.DateTime.UTC(),
		slotStart:      p.SlotStart,
		slotEnd:        p.SlotEnd,
		status:         p.Status,
		paymentCents:   p.PaymentCents,
		occasion:       p.Occasion,
		specialRequest: p.SpecialRequest,
	}, nil
}

func Reconstruct(
	id, restaurantID uuid.UUID,
	customerRef *string,
	guest Guest,
	partySize PartySize,
	dateTime time.Time,
	slotStart, slotEnd string,
	status Status,
	tableID *uuid.UUID,
	paymentCents *int64,
	occasion *string,
	specialRequest SpecialRequest,
	createdAt time.Time,
) *Reservation {
	return &Reservation{
		id:             id,
		restaurantID:   restaurantID,
		customerRef:    customerRef,
		guest:          guest,
		partySize:      partySize,
		dateTime:       dateTime,
		slotStart:      slotStart,
		slotEnd:        slotEnd,
		status:         status,
		tableID:        tableID,
		paymentCents:   paymentCents,
		occasion:       occasion,
		specialRequest: specialRequest,
		createdAt:      createdAt,
	}
}

// ValidateLeadTime rejects bookings closer to now than the tenant's lead
// time requires.
func ValidateLeadTime(now, dateTime time.Time, leadTimeMin int) error {
	if leadTimeMin < 0 {
		leadTimeMin = 0
	}
	if dateTime.Before(now.Add(time.Duration(leadTimeMin) * time.Minute)) {
		return ErrLeadTimeNotMet
	}
	return nil
}

func (r *Reservation) ID() uuid.UUID                  { return r.id }
func (r *Reservation) RestaurantID() uuid.UUID        { return r.restaurantID }
func (r *Reservation) CustomerRef() *string           { return r.customerRef }
func (r *Reservation) Guest() Guest                   { return r.guest }
func (r *Reservation) PartySize() PartySize           { return r.partySize }
func (r *Reservation) DateTime() time.Time            { return r.dateTime }
func (r *Reservation) SlotStart() string              { return r.slotStart }
func (r *Reservation) SlotEnd() string                { return r.slotEnd }
func (r *Reservation) Status() Status                 { return r.status }
func (r *Reservation) TableID() *uuid.UUID            { return r.tableID }
func (r *Reservation) PaymentCents() *int64           { return r.paymentCents }
func (r *Reservation) Occasion() *string              { return r.occasion }
func (r *Reservation) SpecialRequest() SpecialRequest { return r.specialRequest }
func (r *Reservation) CreatedAt() time.Time           { return r.createdAt }

// Confirm moves a draft to confirmed. clearPayment is set for the manual
// staff path so a stale draft deposit does not survive into the confirmed
// record; the payment-success return keeps the amount.
func (r *Reservation) Confirm(clearPayment bool) error {
	if !r.status.CanConfirm() {
		return ErrInvalidTransition
	}
	r.status = StatusConfirmed
	if clearPayment {
		r.paymentCents = nil
	}
	return nil
}

// MarkNotified records a successful guest message. Only reachable from
// confirmed; notified stays notified.
func (r *Reservation) MarkNotified() error {
	if !r.status.CanNotify() {
		return ErrInvalidTransition
	}
	r.status = StatusNotified
	return nil
}

// Seat assigns the table and moves to seated. Callers must only invoke this
// after the external booking call has succeeded.
func (r *Reservation) Seat(tableID uuid.UUID) error {
	if !r.status.CanSeat() {
		return ErrInvalidTransition
	}
	r.status = StatusSeated
	r.tableID = &tableID
	return nil
}

func (r *Reservation) Cancel() error {
	if !r.status.CanCancel() {
		return ErrInvalidTransition
	}
	r.status = StatusCancelled
	return nil
}
