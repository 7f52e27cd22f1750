package commands

import (
	"context"
	"errors"
	"log/slog"

	"tablebook/internal/domain/message"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/domain/tenant"
	"tablebook/internal/infra"
	"tablebook/internal/infra/events"
	"tablebook/internal/infra/nova"
	"tablebook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errs.New("reservation status does not allow this action")
	ErrTableNotFound     = errs.New("table not found")
	ErrTableTooSmall     = errs.New("table does not fit the party")
	ErrTableOccupied     = errs.New("table is already occupied")
	ErrMessageInvalid    = errs.New("message text rejected")
	ErrMessageSendFailed = errs.New("message could not be delivered")
)

type ReservationCommands interface {
	Confirm(ctx context.Context, rest *tenant.Restaurant, id uuid.UUID) error
	SendMessage(ctx context.Context, rest *tenant.Restaurant, id uuid.UUID, text string) error
	Seat(ctx context.Context, rest *tenant.Restaurant, id, tableID uuid.UUID) error
	Cancel(ctx context.Context, rest *tenant.Restaurant, id uuid.UUID) error
	FreeTable(ctx context.Context, rest *tenant.Restaurant, tableID uuid.UUID) error
}

type reservationCommandsImpl struct {
	reservations ReservationRepository
	tables       TableRepository
	messages     MessageRepository
	gateway      NovaGateway
	publisher    ChangePublisher
	cache        AvailabilityInvalidator
}

func NewReservationCommands(
	reservations ReservationRepository,
	tables TableRepository,
	messages MessageRepository,
	gateway NovaGateway,
	publisher ChangePublisher,
	cache AvailabilityInvalidator,
) ReservationCommands {
	return &reservationCommandsImpl{
		reservations: reservations,
		tables:       tables,
		messages:     messages,
		gateway:      gateway,
		publisher:    publisher,
		cache:        cache,
	}
}

// Confirm is the manual staff path out of draft. Any deposit recorded on the
// draft is cleared: staff confirming around a stuck checkout must not leave
// a phantom amount on the booking. The guest gets the same confirmation text
// the automatic path sends.
func (c *reservationCommandsImpl) Confirm(ctx context.Context, rest *tenant.Restaurant, id uuid.UUID) error {
	if err := c.reservations.ConfirmDraft(ctx, rest.ID, id, true); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return ErrInvalidTransition
		}
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrReservationLookup
		}
		return errs.Mark(err, ErrStoreFailed)
	}

	if res, err := c.reservations.FindByID(ctx, rest.ID, id); err == nil {
		n := &notifier{gateway: c.gateway, messages: c.messages, reservations: c.reservations}
		n.confirmationNotice(ctx, rest, res)
	} else {
		slog.Warn("confirmed reservation could not be reloaded for the notice",
			"reservation_id", id, "error", err)
	}

	c.afterChange(ctx, rest, id)
	return nil
}

// SendMessage delivers staff free text to the guest. The status guard runs
// before the external call so an unsendable reservation never reaches the
// gateway; the attempt is audited whether or not delivery succeeds.
func (c *reservationCommandsImpl) SendMessage(ctx context.Context, rest *tenant.Restaurant, id uuid.UUID, text string) error {
	res, err := c.findReservation(ctx, rest, id)
	if err != nil {
		return err
	}
	if !res.Status().CanNotify() {
		return ErrInvalidTransition
	}

	body, err := message.FreeText(text)
	if err != nil {
		return errs.Mark(err, ErrMessageInvalid)
	}

	n := &notifier{gateway: c.gateway, messages: c.messages, reservations: c.reservations}
	if err := n.sendAndRecord(ctx, rest, res, body); err != nil {
		return errs.Mark(err, ErrMessageSendFailed)
	}

	c.afterChange(ctx, rest, id)
	return nil
}

// Seat assigns a table. For externally managed tables the booking call goes
// out first; only after it succeeds does the local status change, so a
// rejected table never produces a seated reservation. The occupancy snapshot
// is refreshed when the external side reports the table taken.
func (c *reservationCommandsImpl) Seat(ctx context.Context, rest *tenant.Restaurant, id, tableID uuid.UUID) error {
	res, err := c.findReservation(ctx, rest, id)
	if err != nil {
		return err
	}
	if !res.Status().CanSeat() {
		return ErrInvalidTransition
	}

	tbl, err := c.tables.FindByID(ctx, rest.ID, tableID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrTableNotFound
		}
		return errs.Mark(err, ErrStoreFailed)
	}
	if !tbl.Fits(res.PartySize().Value()) {
		return ErrTableTooSmall
	}
	if tbl.Occupied {
		return ErrTableOccupied
	}

	if tbl.ExternalID != "" && rest.ExternalRef != nil {
		n := &notifier{gateway: c.gateway, messages: c.messages, reservations: c.reservations}
		err := c.gateway.BookTable(ctx, tbl.ExternalID, nova.BookTableParams{
			CustomerID: n.ensureCustomer(ctx, rest, res),
			Date:       res.DateTime(),
			PartySize:  res.PartySize().Value(),
		})
		if err != nil {
			if errors.Is(err, nova.ErrTableAlreadyOccupied) {
				// Local snapshot was stale; record the occupancy we just
				// learned about.
				if updErr := c.tables.SetOccupied(ctx, rest.ID, tableID, true); updErr != nil {
					slog.Warn("failed to record table occupancy",
						"table_id", tableID, "error", updErr)
				}
				c.publishTables(ctx, rest)
				return ErrTableOccupied
			}
			return errs.Mark(err, ErrStoreFailed)
		}
	}

	if err := c.reservations.Seat(ctx, rest.ID, id, tableID); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return ErrInvalidTransition
		}
		return errs.Mark(err, ErrStoreFailed)
	}

	if err := c.tables.SetOccupied(ctx, rest.ID, tableID, true); err != nil {
		slog.Warn("failed to mark table occupied",
			"table_id", tableID, "error", err)
	}

	c.afterChange(ctx, rest, id)
	c.publishTables(ctx, rest)
	return nil
}

// Cancel is the staff cancel. A cancellation notice goes out best-effort;
// the cancel stands regardless.
func (c *reservationCommandsImpl) Cancel(ctx context.Context, rest *tenant.Restaurant, id uuid.UUID) error {
	res, err := c.findReservation(ctx, rest, id)
	if err != nil {
		return err
	}

	if err := c.reservations.Cancel(ctx, rest.ID, id); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return ErrInvalidTransition
		}
		return errs.Mark(err, ErrStoreFailed)
	}

	n := &notifier{gateway: c.gateway, messages: c.messages, reservations: c.reservations}
	n.cancellationNotice(ctx, rest, res)

	date := schedule.LocalDate(res.DateTime(), rest.Reservation.Location())
	if c.cache != nil {
		c.cache.Invalidate(ctx, rest.ID, date)
	}
	if c.publisher != nil {
		c.publisher.Publish(ctx, rest.ID, events.CollectionReservations, "write")
	}
	return nil
}

// FreeTable clears local occupancy after guests leave.
func (c *reservationCommandsImpl) FreeTable(ctx context.Context, rest *tenant.Restaurant, tableID uuid.UUID) error {
	if err := c.tables.SetOccupied(ctx, rest.ID, tableID, false); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrTableNotFound
		}
		return errs.Mark(err, ErrStoreFailed)
	}
	c.publishTables(ctx, rest)
	return nil
}

func (c *reservationCommandsImpl) findReservation(ctx context.Context, rest *tenant.Restaurant, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := c.reservations.FindByID(ctx, rest.ID, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationLookup
		}
		return nil, errs.Mark(err, ErrStoreFailed)
	}
	return res, nil
}

func (c *reservationCommandsImpl) afterChange(ctx context.Context, rest *tenant.Restaurant, id uuid.UUID) {
	if res, err := c.reservations.FindByID(ctx, rest.ID, id); err == nil && c.cache != nil {
		date := schedule.LocalDate(res.DateTime(), rest.Reservation.Location())
		c.cache.Invalidate(ctx, rest.ID, date)
	}
	if c.publisher != nil {
		c.publisher.Publish(ctx, rest.ID, events.CollectionReservations, "write")
	}
}

func (c *reservationCommandsImpl) publishTables(ctx context.Context, rest *tenant.Restaurant) {
	if c.publisher != nil {
		c.publisher.Publish(ctx, rest.ID, events.CollectionTables, "write")
	}
}
