package commands

import (
	"context"
	"time"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/domain/tenant"
	"tablebook/internal/infra"
	"tablebook/internal/infra/events"
	"tablebook/internal/infra/nova"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrDomainValidation   = errs.New("domain validation error")
	ErrOccasionNotAllowed = errs.New("occasion not offered by this restaurant")
	ErrNoSlotForTime      = errs.New("no bookable slot covers the requested time")
	ErrSlotFull           = errs.New("slot has no remaining capacity")
	ErrCheckoutFailed     = errs.New("checkout session could not be created")
	ErrReservationLookup  = errs.New("reservation not found")
	ErrNotConfirmable     = errs.New("reservation is not awaiting confirmation")
	ErrStoreFailed        = errs.New("store operation failed")
)

type CreateBookingInput struct {
	GuestName      string
	Phone          string
	Email          string
	PartySize      int
	DateTime       time.Time
	Occasion       *string
	SpecialRequest string
	ReturnURL      string
}

type BookingResult struct {
	ReservationID uuid.UUID
	Status        reservation.Status
	// CheckoutURL is set when the tenant requires a deposit; the guest must
	// complete payment there before the booking confirms.
	CheckoutURL string
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, rest *tenant.Restaurant, in CreateBookingInput) (*BookingResult, error)
	CompletePayment(ctx context.Context, rest *tenant.Restaurant, reservationID uuid.UUID) (*BookingResult, error)
	CancelByPhone(ctx context.Context, rest *tenant.Restaurant, rawPhone string) (uuid.UUID, error)
}

type bookingCommandsImpl struct {
	reservations ReservationRepository
	slots        SlotRepository
	messages     MessageRepository
	gateway      NovaGateway
	publisher    ChangePublisher
	cache        AvailabilityInvalidator
	clock        clock.Clock
}

func NewBookingCommands(
	reservations ReservationRepository,
	slots SlotRepository,
	messages MessageRepository,
	gateway NovaGateway,
	publisher ChangePublisher,
	cache AvailabilityInvalidator,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		reservations: reservations,
		slots:        slots,
		messages:     messages,
		gateway:      gateway,
		publisher:    publisher,
		cache:        cache,
		clock:        clock,
	}
}

// CreateBooking takes a guest booking. The slot bucket is derived here from
// the requested instant in the tenant timezone; the client never supplies
// it. Payment-gated tenants get a draft plus a checkout URL, everyone else
// gets an immediately confirmed booking with an optional auto-confirm SMS.
func (b *bookingCommandsImpl) CreateBooking(ctx context.Context, rest *tenant.Restaurant, in CreateBookingInput) (*BookingResult, error) {
	settings := rest.Reservation
	now := b.clock.Now()

	guest, err := reservation.NewGuest(in.GuestName, in.Phone, in.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	partySize, err := reservation.NewPartySize(in.PartySize, settings.MaxPartySize)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	if in.Occasion != nil && !settings.AllowsOccasion(*in.Occasion) {
		return nil, ErrOccasionNotAllowed
	}

	if err := reservation.ValidateLeadTime(now, in.DateTime, settings.LeadTimeMin); err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	if err := checkCutoff(now, in.DateTime, settings); err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	slot, dayStart, dayEnd, err := b.resolveSlot(ctx, rest, in.DateTime)
	if err != nil {
		return nil, err
	}

	counted, err := b.reservations.CountInBucket(ctx, rest.ID, dayStart, dayEnd, slot.Start, slot.End, reservation.CountedStatuses)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailed)
	}
	if schedule.Remaining(slot.MaxReservations, counted) == 0 {
		return nil, ErrSlotFull
	}

	status := reservation.StatusConfirmed
	var paymentCents *int64
	if rest.RequiresPayment() {
		status = reservation.StatusDraft
		deposit := rest.DepositCents(partySize.Value())
		paymentCents = &deposit
	}

	res, err := reservation.NewReservation(reservation.NewReservationParams{
		RestaurantID:   rest.ID,
		Guest:          guest,
		PartySize:      partySize,
		DateTime:       in.DateTime,
		SlotStart:      slot.Start,
		SlotEnd:        slot.End,
		Status:         status,
		PaymentCents:   paymentCents,
		Occasion:       in.Occasion,
		SpecialRequest: reservation.NewSpecialRequest(in.SpecialRequest),
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	if err := b.reservations.Create(ctx, res); err != nil {
		return nil, errs.Mark(err, ErrStoreFailed)
	}

	result := &BookingResult{ReservationID: res.ID(), Status: status}

	if status == reservation.StatusDraft {
		checkoutURL, err := b.gateway.CreateCheckoutSession(ctx, nova.CheckoutParams{
			MerchantRef:   derefOrEmpty(rest.ExternalRef),
			GatewayID:     settings.GatewayID,
			AmountCents:   *paymentCents,
			ReservationID: res.ID(),
			ReturnURL:     in.ReturnURL,
		})
		if err != nil {
			// The draft stays; the guest can retry payment or staff can
			// confirm manually.
			return nil, errs.Mark(err, ErrCheckoutFailed)
		}
		result.CheckoutURL = checkoutURL
	} else if settings.AutoConfirm {
		b.sendConfirmation(ctx, rest, res)
		result.Status = res.Status()
	}

	b.afterCapacityChange(ctx, rest, res.DateTime())
	return result, nil
}

// CompletePayment is the payment-success return. The status guard on the
// promote makes a replayed or stale return harmless.
func (b *bookingCommandsImpl) CompletePayment(ctx context.Context, rest *tenant.Restaurant, reservationID uuid.UUID) (*BookingResult, error) {
	res, err := b.reservations.FindByID(ctx, rest.ID, reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationLookup
		}
		return nil, errs.Mark(err, ErrStoreFailed)
	}

	if err := b.reservations.ConfirmDraft(ctx, rest.ID, reservationID, false); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, ErrNotConfirmable
		}
		return nil, errs.Mark(err, ErrStoreFailed)
	}

	b.sendConfirmation(ctx, rest, res)

	b.afterCapacityChange(ctx, rest, res.DateTime())

	status := reservation.StatusConfirmed
	if updated, err := b.reservations.FindByID(ctx, rest.ID, reservationID); err == nil {
		status = updated.Status()
	}
	return &BookingResult{ReservationID: reservationID, Status: status}, nil
}

// CancelByPhone lets a guest cancel their next upcoming booking with just
// the phone number they booked with.
func (b *bookingCommandsImpl) CancelByPhone(ctx context.Context, rest *tenant.Restaurant, rawPhone string) (uuid.UUID, error) {
	guest, err := reservation.NewGuest("lookup", rawPhone, "")
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	res, err := b.reservations.FindActiveByPhone(ctx, rest.ID, guest.Phone(), b.clock.Now())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, ErrReservationLookup
		}
		return uuid.Nil, errs.Mark(err, ErrStoreFailed)
	}

	if err := b.reservations.Cancel(ctx, rest.ID, res.ID()); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return uuid.Nil, ErrReservationLookup
		}
		return uuid.Nil, errs.Mark(err, ErrStoreFailed)
	}

	n := &notifier{gateway: b.gateway, messages: b.messages, reservations: b.reservations}
	n.cancellationNotice(ctx, rest, res)

	b.afterCapacityChange(ctx, rest, res.DateTime())
	return res.ID(), nil
}

func (b *bookingCommandsImpl) sendConfirmation(ctx context.Context, rest *tenant.Restaurant, res *reservation.Reservation) {
	n := &notifier{gateway: b.gateway, messages: b.messages, reservations: b.reservations}
	n.confirmationNotice(ctx, rest, res)
}

func (b *bookingCommandsImpl) resolveSlot(ctx context.Context, rest *tenant.Restaurant, at time.Time) (schedule.Slot, time.Time, time.Time, error) {
	loc := rest.Reservation.Location()
	date := schedule.LocalDate(at, loc)

	dayStart, dayEnd, err := schedule.DayWindow(date, loc)
	if err != nil {
		return schedule.Slot{}, time.Time{}, time.Time{}, errs.Mark(err, ErrDomainValidation)
	}
	weekday, err := schedule.Weekday(date)
	if err != nil {
		return schedule.Slot{}, time.Time{}, time.Time{}, errs.Mark(err, ErrDomainValidation)
	}

	allSlots, err := b.slots.ListByRestaurant(ctx, rest.ID)
	if err != nil {
		return schedule.Slot{}, time.Time{}, time.Time{}, errs.Mark(err, ErrStoreFailed)
	}

	minute := schedule.MinuteOfDay(at, loc)
	for _, s := range schedule.ForDate(allSlots, date, weekday) {
		if s.Contains(minute) {
			return s, dayStart, dayEnd, nil
		}
	}
	return schedule.Slot{}, time.Time{}, time.Time{}, ErrNoSlotForTime
}

func (b *bookingCommandsImpl) afterCapacityChange(ctx context.Context, rest *tenant.Restaurant, at time.Time) {
	date := schedule.LocalDate(at, rest.Reservation.Location())
	if b.cache != nil {
		b.cache.Invalidate(ctx, rest.ID, date)
	}
	if b.publisher != nil {
		b.publisher.Publish(ctx, rest.ID, events.CollectionReservations, "write")
	}
}

// checkCutoff enforces the tenant's same-day booking cutoff: once the local
// wall clock passes the configured time, bookings for the rest of that day
// are refused.
func checkCutoff(now, at time.Time, settings tenant.ReservationSettings) error {
	if settings.CutoffTime == "" {
		return nil
	}
	loc := settings.Location()
	if schedule.LocalDate(now, loc) != schedule.LocalDate(at, loc) {
		return nil
	}

	cutoff, err := schedule.ParseWallClock(settings.CutoffTime)
	if err != nil {
		// A broken cutoff setting should not block bookings.
		return nil
	}
	if schedule.MinuteOfDay(now, loc) >= cutoff {
		return reservation.ErrPastCutoff
	}
	return nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
