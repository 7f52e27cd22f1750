//go:build unit

package commands_test

import (
	"context"
	"strings"
	"testing"

	"tablebook/internal/domain/message"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/table"
	"tablebook/internal/infra/nova"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase/commands"
	"tablebook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lifecycleFixture struct {
	reservations *fakeReservationRepo
	tables       *fakeTableRepo
	messages     *fakeMessageRepo
	gateway      *fakeGateway
	publisher    *fakePublisher
	invalidator  *fakeInvalidator
	commands     commands.ReservationCommands
}

func newLifecycleFixture() *lifecycleFixture {
	f := &lifecycleFixture{
		reservations: newFakeReservationRepo(),
		tables:       newFakeTableRepo(),
		messages:     &fakeMessageRepo{},
		gateway:      &fakeGateway{customerID: "cust-1"},
		publisher:    &fakePublisher{},
		invalidator:  &fakeInvalidator{},
	}
	f.commands = commands.NewReservationCommands(
		f.reservations, f.tables, f.messages, f.gateway, f.publisher, f.invalidator)
	return f
}

func (f *lifecycleFixture) addReservation(t *testing.T, status reservation.Status) *reservation.Reservation {
	t.Helper()
	res, err := builder.NewReservationBuilder().WithStatus(status).BuildDomain()
	require.NoError(t, err)
	f.reservations.add(res)
	return res
}

func (f *lifecycleFixture) addTable(seats int, externalID string) table.Table {
	tbl := table.Table{ID: uuid.New(), Name: "T1", Seats: seats, ExternalID: externalID}
	f.tables.byID[tbl.ID] = tbl
	return tbl
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("clears any stale deposit", func(t *testing.T) {
		f := newLifecycleFixture()
		res := f.addReservation(t, reservation.StatusDraft)

		require.NoError(t, f.commands.Confirm(ctx, externalRestaurant(), res.ID()))
		require.Len(t, f.reservations.clearFlags, 1)
		assert.True(t, f.reservations.clearFlags[0])
		assert.Equal(t, []string{"reservations/write"}, f.publisher.published)
	})

	t.Run("texts the guest and audits the send", func(t *testing.T) {
		f := newLifecycleFixture()
		res := f.addReservation(t, reservation.StatusDraft)

		require.NoError(t, f.commands.Confirm(ctx, externalRestaurant(), res.ID()))

		require.Len(t, f.gateway.sentSMS, 1)
		assert.Contains(t, f.gateway.sentSMS[0], "is confirmed")
		require.Len(t, f.messages.appended, 1)
		assert.Equal(t, message.StatusSent, f.messages.appended[0].Status)
		assert.Contains(t, f.reservations.notifiedIDs, res.ID())
	})

	t.Run("unlinked tenant confirms without a notice", func(t *testing.T) {
		f := newLifecycleFixture()
		res := f.addReservation(t, reservation.StatusDraft)

		require.NoError(t, f.commands.Confirm(ctx, localRestaurant(), res.ID()))
		assert.Empty(t, f.gateway.sentSMS)
		assert.Empty(t, f.messages.appended)
	})

	t.Run("guard rejection maps to invalid transition", func(t *testing.T) {
		f := newLifecycleFixture()
		f.reservations.confirmErr = conflict()

		err := f.commands.Confirm(ctx, externalRestaurant(), uuid.New())
		assert.ErrorIs(t, err, commands.ErrInvalidTransition)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newLifecycleFixture()
		f.reservations.confirmErr = notFound()

		err := f.commands.Confirm(ctx, externalRestaurant(), uuid.New())
		assert.ErrorIs(t, err, commands.ErrReservationLookup)
	})
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers, audits and promotes to notified", func(t *testing.T) {
		f := newLifecycleFixture()
		res := f.addReservation(t, reservation.StatusConfirmed)

		require.NoError(t, f.commands.SendMessage(ctx, externalRestaurant(), res.ID(), "Your table is ready"))

		require.Len(t, f.gateway.sentSMS, 1)
		require.Len(t, f.messages.appended, 1)
		assert.Equal(t, message.StatusSent, f.messages.appended[0].Status)
		assert.Contains(t, f.reservations.notifiedIDs, res.ID())
	})

	t.Run("draft cannot be messaged, gateway never reached", func(t *testing.T) {
		f := newLifecycleFixture()
		res := f.addReservation(t, reservation.StatusDraft)

		err := f.commands.SendMessage(ctx, externalRestaurant(), res.ID(), "hello")
		assert.ErrorIs(t, err, commands.ErrInvalidTransition)
		assert.Empty(t, f.gateway.sentSMS)
		assert.Empty(t, f.messages.appended)
	})

	t.Run("failed delivery is still audited", func(t *testing.T) {
		f := newLifecycleFixture()
		f.gateway.smsErr = errs.New("provider down")
		res := f.addReservation(t, reservation.StatusConfirmed)

		err := f.commands.SendMessage(ctx, externalRestaurant(), res.ID(), "hello")
		assert.ErrorIs(t, err, commands.ErrMessageSendFailed)

		require.Len(t, f.messages.appended, 1)
		assert.Equal(t, message.StatusFailed, f.messages.appended[0].Status)
		assert.Empty(t, f.reservations.notifiedIDs)
	})

	t.Run("text over the SMS limit rejected before sending", func(t *testing.T) {
		f := newLifecycleFixture()
		res := f.addReservation(t, reservation.StatusConfirmed)

		err := f.commands.SendMessage(ctx, externalRestaurant(), res.ID(), strings.Repeat("a", 161))
		assert.ErrorIs(t, err, commands.ErrMessageInvalid)
		assert.Empty(t, f.gateway.sentSMS)
	})

	t.Run("unlinked tenant cannot send", func(t *testing.T) {
		f := newLifecycleFixture()
		res := f.addReservation(t, reservation.StatusConfirmed)

		err := f.commands.SendMessage(ctx, localRestaurant(), res.ID(), "hello")
		assert.ErrorIs(t, err, commands.ErrMessageSendFailed)
		assert.Empty(t, f.gateway.sentSMS)
	})
}

func TestSeat(t *testing.T) {
	ctx := context.Background()

	t.Run("external table books remotely before seating locally", func(t *testing.T) {
		f := newLifecycleFixture()
		res := f.addReservation(t, reservation.StatusConfirmed)
		tbl := f.addTable(4, "ext-7")

		require.NoError(t, f.commands.Seat(ctx, externalRestaurant(), res.ID(), tbl.ID))

		assert.Equal(t, []string{"ext-7"}, f.gateway.bookedTables)
		assert.Contains(t, f.reservations.seatedIDs, res.ID())
		assert.True(t, f.tables.occupiedSet[tbl.ID])
		assert.Contains(t, f.publisher.published, "tables/write")
	})

	t.Run("external booking registers the guest as a customer first", func(t *testing.T) {
		f := newLifecycleFixture()
		res := f.addReservation(t, reservation.StatusConfirmed)
		tbl := f.addTable(4, "ext-7")

		require.NoError(t, f.commands.Seat(ctx, externalRestaurant(), res.ID(), tbl.ID))

		assert.Equal(t, "cust-1", f.reservations.customerRefs[res.ID()])
		assert.Equal(t, []string{"ext-7"}, f.gateway.bookedTables)
	})

	t.Run("local table skips the external call", func(t *testing.T) {
		f := newLifecycleFixture()
		res := f.addReservation(t, reservation.StatusNotified)
		tbl := f.addTable(4, "")

		require.NoError(t, f.commands.Seat(ctx, externalRestaurant(), res.ID(), tbl.ID))
		assert.Empty(t, f.gateway.bookedTables)
		assert.Contains(t, f.reservations.seatedIDs, res.ID())
	})

	t.Run("status guard runs before any lookup", func(t *testing.T) {
		f := newLifecycleFixture()
		res := f.addReservation(t, reservation.StatusCancelled)
		tbl := f.addTable(4, "ext-7")

		err := f.commands.Seat(ctx, externalRestaurant(), res.ID(), tbl.ID)
		assert.ErrorIs(t, err, commands.ErrInvalidTransition)
		assert.Empty(t, f.gateway.bookedTables)
		assert.Empty(t, f.reservations.seatedIDs)
	})

	t.Run("table too small", func(t *testing.T) {
		f := newLifecycleFixture()
		res := f.addReservation(t, reservation.StatusConfirmed) // party of 2
		tbl := f.addTable(1, "")

		err := f.commands.Seat(ctx, externalRestaurant(), res.ID(), tbl.ID)
		assert.ErrorIs(t, err, commands.ErrTableTooSmall)
	})

	t.Run("locally occupied table", func(t *testing.T) {
		f := newLifecycleFixture()
		res := f.addReservation(t, reservation.StatusConfirmed)
		tbl := f.addTable(4, "")
		tbl.Occupied = true
		f.tables.byID[tbl.ID] = tbl

		err := f.commands.Seat(ctx, externalRestaurant(), res.ID(), tbl.ID)
		assert.ErrorIs(t, err, commands.ErrTableOccupied)
	})

	t.Run("stale snapshot: external rejection refreshes occupancy", func(t *testing.T) {
		f := newLifecycleFixture()
		f.gateway.bookTableErr = errs.Mark(errs.New("occupied"), nova.ErrTableAlreadyOccupied)
		res := f.addReservation(t, reservation.StatusConfirmed)
		tbl := f.addTable(4, "ext-7")

		err := f.commands.Seat(ctx, externalRestaurant(), res.ID(), tbl.ID)
		assert.ErrorIs(t, err, commands.ErrTableOccupied)

		// The reservation stays seatable and the local snapshot now shows
		// the table taken.
		assert.Empty(t, f.reservations.seatedIDs)
		assert.True(t, f.tables.occupiedSet[tbl.ID])
		assert.Contains(t, f.publisher.published, "tables/write")
	})

	t.Run("unknown table", func(t *testing.T) {
		f := newLifecycleFixture()
		res := f.addReservation(t, reservation.StatusConfirmed)

		err := f.commands.Seat(ctx, externalRestaurant(), res.ID(), uuid.New())
		assert.ErrorIs(t, err, commands.ErrTableNotFound)
	})
}

func TestStaffCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels and sends a best-effort notice", func(t *testing.T) {
		f := newLifecycleFixture()
		res := f.addReservation(t, reservation.StatusConfirmed)

		require.NoError(t, f.commands.Cancel(ctx, externalRestaurant(), res.ID()))

		assert.Contains(t, f.reservations.cancelledIDs, res.ID())
		require.Len(t, f.gateway.sentSMS, 1)
		assert.Contains(t, f.gateway.sentSMS[0], "cancelled")
		require.Len(t, f.messages.appended, 1)
		assert.Equal(t, message.StatusSent, f.messages.appended[0].Status)
		assert.Equal(t, []string{"2026-09-10"}, f.invalidator.dates)
	})

	t.Run("cancel stands even when the notice fails", func(t *testing.T) {
		f := newLifecycleFixture()
		f.gateway.smsErr = errs.New("provider down")
		res := f.addReservation(t, reservation.StatusConfirmed)

		require.NoError(t, f.commands.Cancel(ctx, externalRestaurant(), res.ID()))
		require.Len(t, f.messages.appended, 1)
		assert.Equal(t, message.StatusFailed, f.messages.appended[0].Status)
	})

	t.Run("guard rejection maps to invalid transition", func(t *testing.T) {
		f := newLifecycleFixture()
		f.reservations.cancelErr = conflict()
		res := f.addReservation(t, reservation.StatusSeated)

		err := f.commands.Cancel(ctx, externalRestaurant(), res.ID())
		assert.ErrorIs(t, err, commands.ErrInvalidTransition)
	})
}

func TestFreeTable(t *testing.T) {
	ctx := context.Background()

	t.Run("clears occupancy and notifies dashboards", func(t *testing.T) {
		f := newLifecycleFixture()
		tbl := f.addTable(4, "")

		require.NoError(t, f.commands.FreeTable(ctx, externalRestaurant(), tbl.ID))
		assert.False(t, f.tables.occupiedSet[tbl.ID])
		assert.Equal(t, []string{"tables/write"}, f.publisher.published)
	})

	t.Run("unknown table", func(t *testing.T) {
		f := newLifecycleFixture()
		f.tables.setErr = notFound()

		err := f.commands.FreeTable(ctx, externalRestaurant(), uuid.New())
		assert.ErrorIs(t, err, commands.ErrTableNotFound)
	})
}
