//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"tablebook/internal/domain/message"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/usecase/commands"
	"tablebook/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-09-10 is a Thursday; bookings land in the 18:00-21:00 dinner slot.
var (
	bookingNow = time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	bookingAt  = time.Date(2026, 9, 10, 18, 30, 0, 0, time.UTC)
)

type bookingFixture struct {
	reservations *fakeReservationRepo
	slots        *fakeSlotRepo
	messages     *fakeMessageRepo
	gateway      *fakeGateway
	publisher    *fakePublisher
	invalidator  *fakeInvalidator
	clock        *clock.MockClock
	commands     commands.BookingCommands
}

func newBookingFixture(slotMax int) *bookingFixture {
	f := &bookingFixture{
		reservations: newFakeReservationRepo(),
		slots:        &fakeSlotRepo{},
		messages:     &fakeMessageRepo{},
		gateway:      &fakeGateway{customerID: "cust-1", checkout: "https://pay.example/session"},
		publisher:    &fakePublisher{},
		invalidator:  &fakeInvalidator{},
		clock:        clock.NewMockClock(bookingNow),
	}
	f.slots.slots = append(f.slots.slots, thursdayDinner(uuid4(), slotMax))
	f.commands = commands.NewBookingCommands(
		f.reservations, f.slots, f.messages, f.gateway, f.publisher, f.invalidator, f.clock)
	return f
}

func validInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		GuestName: "Ava Harper",
		Phone:     "+14155550100",
		Email:     "ava@example.com",
		PartySize: 2,
		DateTime:  bookingAt,
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("auto-confirm tenant gets a confirmed booking and an SMS", func(t *testing.T) {
		f := newBookingFixture(10)
		rest := externalRestaurant()

		result, err := f.commands.CreateBooking(ctx, rest, validInput())
		require.NoError(t, err)

		require.Len(t, f.reservations.created, 1)
		created := f.reservations.created[0]
		assert.Equal(t, "18:00", created.SlotStart())
		assert.Equal(t, "21:00", created.SlotEnd())
		assert.Empty(t, result.CheckoutURL)

		// Confirmation went out, was audited, and promoted the booking.
		require.Len(t, f.gateway.sentSMS, 1)
		require.Len(t, f.messages.appended, 1)
		assert.Contains(t, f.gateway.sentSMS[0], "confirmed")
		assert.Equal(t, "cust-1", f.reservations.customerRefs[created.ID()])
		assert.Contains(t, f.reservations.notifiedIDs, created.ID())

		// Capacity changed: cache invalidated and dashboards notified.
		assert.Equal(t, []string{"2026-09-10"}, f.invalidator.dates)
		assert.Equal(t, []string{"reservations/write"}, f.publisher.published)
	})

	t.Run("tenant without external link skips the SMS but still books", func(t *testing.T) {
		f := newBookingFixture(10)

		result, err := f.commands.CreateBooking(ctx, localRestaurant(), validInput())
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusConfirmed, result.Status)
		assert.Empty(t, f.gateway.sentSMS)
	})

	t.Run("payment tenant gets a draft and a checkout URL", func(t *testing.T) {
		f := newBookingFixture(10)
		rest := externalRestaurant()
		rest.Reservation.PaymentRequired = true
		rest.Reservation.DepositPerGuestCents = 500
		rest.Reservation.GatewayID = "payline"

		in := validInput()
		in.PartySize = 4
		result, err := f.commands.CreateBooking(ctx, rest, in)
		require.NoError(t, err)

		assert.Equal(t, reservation.StatusDraft, result.Status)
		assert.Equal(t, "https://pay.example/session", result.CheckoutURL)

		require.Len(t, f.reservations.created, 1)
		deposit := f.reservations.created[0].PaymentCents()
		require.NotNil(t, deposit)
		assert.Equal(t, int64(2000), *deposit)

		// No confirmation SMS before payment completes.
		assert.Empty(t, f.gateway.sentSMS)
	})

	t.Run("checkout failure keeps the draft for retry", func(t *testing.T) {
		f := newBookingFixture(10)
		f.gateway.checkoutErr = assert.AnError
		rest := externalRestaurant()
		rest.Reservation.PaymentRequired = true
		rest.Reservation.DepositPerGuestCents = 500

		_, err := f.commands.CreateBooking(ctx, rest, validInput())
		assert.ErrorIs(t, err, commands.ErrCheckoutFailed)
		assert.Len(t, f.reservations.created, 1)
	})

	t.Run("full slot is rejected", func(t *testing.T) {
		f := newBookingFixture(5)
		f.reservations.bucketCount = 5

		_, err := f.commands.CreateBooking(ctx, externalRestaurant(), validInput())
		assert.ErrorIs(t, err, commands.ErrSlotFull)
		assert.Empty(t, f.reservations.created)
	})

	t.Run("no slot covers the requested time", func(t *testing.T) {
		f := newBookingFixture(10)
		in := validInput()
		in.DateTime = time.Date(2026, 9, 10, 15, 0, 0, 0, time.UTC) // between lunch and dinner

		_, err := f.commands.CreateBooking(ctx, externalRestaurant(), in)
		assert.ErrorIs(t, err, commands.ErrNoSlotForTime)
	})

	t.Run("slot bucket follows the tenant timezone", func(t *testing.T) {
		f := newBookingFixture(10)
		rest := externalRestaurant()
		rest.Reservation.Timezone = "America/New_York"

		// 22:30 UTC on Thursday is 18:30 in New York: inside dinner there,
		// outside it in UTC.
		in := validInput()
		in.DateTime = time.Date(2026, 9, 10, 22, 30, 0, 0, time.UTC)

		result, err := f.commands.CreateBooking(ctx, rest, in)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusConfirmed, result.Status)
		require.Len(t, f.reservations.created, 1)
		assert.Equal(t, "18:00", f.reservations.created[0].SlotStart())
	})

	t.Run("lead time not met", func(t *testing.T) {
		f := newBookingFixture(10)
		f.clock.Set(bookingAt.Add(-30 * time.Minute)) // 60 minute lead required

		_, err := f.commands.CreateBooking(ctx, externalRestaurant(), validInput())
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})

	t.Run("same-day cutoff passed", func(t *testing.T) {
		f := newBookingFixture(10)
		rest := externalRestaurant()
		rest.Reservation.CutoffTime = "12:00"
		f.clock.Set(time.Date(2026, 9, 10, 13, 0, 0, 0, time.UTC))

		_, err := f.commands.CreateBooking(ctx, rest, validInput())
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
		assert.ErrorIs(t, err, reservation.ErrPastCutoff)
	})

	t.Run("cutoff does not apply to future days", func(t *testing.T) {
		f := newBookingFixture(10)
		rest := externalRestaurant()
		rest.Reservation.CutoffTime = "09:00"
		f.clock.Set(time.Date(2026, 9, 9, 13, 0, 0, 0, time.UTC)) // day before

		_, err := f.commands.CreateBooking(ctx, rest, validInput())
		assert.NoError(t, err)
	})

	t.Run("occasion must be on the allowed list", func(t *testing.T) {
		f := newBookingFixture(10)
		rest := externalRestaurant()
		rest.Reservation.AllowedOccasions = []string{"birthday"}

		in := validInput()
		occasion := "graduation"
		in.Occasion = &occasion

		_, err := f.commands.CreateBooking(ctx, rest, in)
		assert.ErrorIs(t, err, commands.ErrOccasionNotAllowed)

		occasion = "birthday"
		_, err = f.commands.CreateBooking(ctx, rest, in)
		assert.NoError(t, err)
	})

	t.Run("party size over the tenant maximum", func(t *testing.T) {
		f := newBookingFixture(10)
		in := validInput()
		in.PartySize = 13

		_, err := f.commands.CreateBooking(ctx, externalRestaurant(), in)
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
		assert.ErrorIs(t, err, reservation.ErrPartyTooLarge)
	})
}

func TestCompletePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes the draft and keeps the deposit", func(t *testing.T) {
		f := newBookingFixture(10)
		rest := localRestaurant()

		deposit := int64(1000)
		draft, err := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) {
				b.Status = reservation.StatusDraft
				b.PaymentCents = &deposit
			}).BuildDomain()
		require.NoError(t, err)
		f.reservations.add(draft)

		result, err := f.commands.CompletePayment(ctx, rest, draft.ID())
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusConfirmed, result.Status)

		require.Len(t, f.reservations.clearFlags, 1)
		assert.False(t, f.reservations.clearFlags[0], "payment return must keep the deposit")
	})

	t.Run("confirmation goes out regardless of auto-confirm", func(t *testing.T) {
		f := newBookingFixture(10)
		rest := externalRestaurant()
		rest.Reservation.AutoConfirm = false

		draft, err := builder.NewReservationBuilder().
			With(func(b *builder.ReservationBuilder) {
				b.Status = reservation.StatusDraft
			}).BuildDomain()
		require.NoError(t, err)
		f.reservations.add(draft)

		_, err = f.commands.CompletePayment(ctx, rest, draft.ID())
		require.NoError(t, err)

		require.Len(t, f.gateway.sentSMS, 1)
		assert.Contains(t, f.gateway.sentSMS[0], "confirmed")
		require.Len(t, f.messages.appended, 1)
		assert.Equal(t, message.StatusSent, f.messages.appended[0].Status)
	})

	t.Run("replayed return is harmless", func(t *testing.T) {
		f := newBookingFixture(10)
		confirmed, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		f.reservations.add(confirmed)
		f.reservations.confirmErr = conflict()

		_, err = f.commands.CompletePayment(ctx, localRestaurant(), confirmed.ID())
		assert.ErrorIs(t, err, commands.ErrNotConfirmable)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newBookingFixture(10)
		_, err := f.commands.CompletePayment(ctx, localRestaurant(), uuid4())
		assert.ErrorIs(t, err, commands.ErrReservationLookup)
	})
}

func TestCancelByPhone(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels the next upcoming booking", func(t *testing.T) {
		f := newBookingFixture(10)
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		f.reservations.activeByPhone = res

		id, err := f.commands.CancelByPhone(ctx, localRestaurant(), "+14155550100")
		require.NoError(t, err)
		assert.Equal(t, res.ID(), id)
		assert.Contains(t, f.reservations.cancelledIDs, res.ID())
		assert.Equal(t, []string{"2026-09-10"}, f.invalidator.dates)
	})

	t.Run("linked tenant sends and audits the cancellation notice", func(t *testing.T) {
		f := newBookingFixture(10)
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		f.reservations.activeByPhone = res

		_, err = f.commands.CancelByPhone(ctx, externalRestaurant(), "+14155550100")
		require.NoError(t, err)

		require.Len(t, f.gateway.sentSMS, 1)
		assert.Contains(t, f.gateway.sentSMS[0], "cancelled")
		require.Len(t, f.messages.appended, 1)
		assert.Equal(t, message.StatusSent, f.messages.appended[0].Status)
		assert.Equal(t, res.ID(), f.messages.appended[0].ReservationID)
	})

	t.Run("no active booking for the number", func(t *testing.T) {
		f := newBookingFixture(10)
		_, err := f.commands.CancelByPhone(ctx, localRestaurant(), "+14155550100")
		assert.ErrorIs(t, err, commands.ErrReservationLookup)
	})

	t.Run("unparseable phone", func(t *testing.T) {
		f := newBookingFixture(10)
		_, err := f.commands.CancelByPhone(ctx, localRestaurant(), "12")
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
	})
}
