package commands

import (
	"context"
	"log/slog"

	"tablebook/internal/domain/message"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/tenant"
	"tablebook/internal/pkg/errs"
)

var ErrExternalNotLinked = errs.New("restaurant is not linked to the booking system")

// notifier sends guest SMS through the external gateway and records every
// attempt in the message history, success or failure. On success the
// reservation is promoted to notified.
type notifier struct {
	gateway      NovaGateway
	messages     MessageRepository
	reservations ReservationRepository
}

func (n *notifier) sendAndRecord(ctx context.Context, rest *tenant.Restaurant, res *reservation.Reservation, text string) error {
	if rest.ExternalRef == nil {
		return ErrExternalNotLinked
	}

	sendErr := n.gateway.SendSMS(ctx, *rest.ExternalRef, res.Guest().Phone(), text)

	attempt := message.NewAttempt(rest.ID, res.ID(), res.Guest().Phone().String(), text, sendErr == nil)
	if err := n.messages.Append(ctx, attempt); err != nil {
		// The audit row must not mask the send outcome.
		slog.Error("failed to append message history",
			"reservation_id", res.ID(), "error", err)
	}

	if sendErr != nil {
		return sendErr
	}

	if err := n.reservations.MarkNotified(ctx, rest.ID, res.ID()); err != nil {
		// Message went out; a lost status promotion is recoverable by the
		// next send, so log instead of failing the operation.
		slog.Warn("failed to mark reservation notified",
			"reservation_id", res.ID(), "error", err)
	}
	return nil
}

// ensureCustomer returns the reservation's external customer id, creating it
// on the gateway first when the reservation has none yet. Failures are
// logged; the caller proceeds without a customer id.
func (n *notifier) ensureCustomer(ctx context.Context, rest *tenant.Restaurant, res *reservation.Reservation) string {
	if ref := res.CustomerRef(); ref != nil {
		return *ref
	}

	first, last := res.Guest().FirstLast()
	customerID, err := n.gateway.EnsureCustomer(ctx, *rest.ExternalRef, first, last, res.Guest().Phone())
	if err != nil {
		slog.Warn("failed to ensure external customer",
			"reservation_id", res.ID(), "error", err)
		return ""
	}
	if err := n.reservations.SetCustomerRef(ctx, rest.ID, res.ID(), customerID); err != nil {
		slog.Warn("failed to store customer ref",
			"reservation_id", res.ID(), "error", err)
	}
	return customerID
}

// confirmationNotice texts the guest that their booking is confirmed. Best
// effort: the confirm stands whether or not the message goes out, and the
// attempt is audited either way.
func (n *notifier) confirmationNotice(ctx context.Context, rest *tenant.Restaurant, res *reservation.Reservation) {
	if rest.ExternalRef == nil {
		return
	}

	n.ensureCustomer(ctx, rest, res)

	text := message.ConfirmationText(res.Guest().Name(), rest.Name, res.DateTime(), rest.Reservation.Location())
	if err := n.sendAndRecord(ctx, rest, res, text); err != nil {
		slog.Warn("confirmation sms failed",
			"reservation_id", res.ID(), "error", err)
	}
}

// cancellationNotice texts the guest that their booking was cancelled and
// audits the attempt. Unlike sendAndRecord it never promotes the
// reservation.
func (n *notifier) cancellationNotice(ctx context.Context, rest *tenant.Restaurant, res *reservation.Reservation) {
	if rest.ExternalRef == nil {
		return
	}

	text := message.CancellationText(res.Guest().Name(), rest.Name, res.DateTime(), rest.Reservation.Location())
	sendErr := n.gateway.SendSMS(ctx, *rest.ExternalRef, res.Guest().Phone(), text)

	attempt := message.NewAttempt(rest.ID, res.ID(), res.Guest().Phone().String(), text, sendErr == nil)
	if err := n.messages.Append(ctx, attempt); err != nil {
		slog.Error("failed to append message history",
			"reservation_id", res.ID(), "error", err)
	}
	if sendErr != nil {
		slog.Warn("cancellation sms failed",
			"reservation_id", res.ID(), "error", sendErr)
	}
}
