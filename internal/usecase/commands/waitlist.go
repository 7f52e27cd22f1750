package commands

import (
	"context"
	"log/slog"

	"tablebook/internal/domain/message"
	"tablebook/internal/domain/tenant"
	"tablebook/internal/domain/waitlist"
	"tablebook/internal/infra"
	"tablebook/internal/infra/events"
	"tablebook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrWaitlistValidation = errs.New("waitlist entry rejected")
	ErrWaitlistNotFound   = errs.New("waitlist entry not found")
	ErrWaitlistTransition = errs.New("waitlist entry does not allow this change")
)

type WaitlistCommands interface {
	Join(ctx context.Context, rest *tenant.Restaurant, name, rawPhone string, partySize int) (uuid.UUID, error)
	Advance(ctx context.Context, rest *tenant.Restaurant, id uuid.UUID, to waitlist.Status) error
}

type waitlistCommandsImpl struct {
	entries   WaitlistRepository
	messages  MessageRepository
	gateway   NovaGateway
	publisher ChangePublisher
}

func NewWaitlistCommands(entries WaitlistRepository, messages MessageRepository, gateway NovaGateway, publisher ChangePublisher) WaitlistCommands {
	return &waitlistCommandsImpl{
		entries:   entries,
		messages:  messages,
		gateway:   gateway,
		publisher: publisher,
	}
}

func (w *waitlistCommandsImpl) Join(ctx context.Context, rest *tenant.Restaurant, name, rawPhone string, partySize int) (uuid.UUID, error) {
	entry, err := waitlist.NewEntry(rest.ID, name, rawPhone, partySize)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrWaitlistValidation)
	}
	if err := w.entries.Create(ctx, entry); err != nil {
		return uuid.Nil, errs.Mark(err, ErrStoreFailed)
	}

	w.publish(ctx, rest)
	return entry.ID, nil
}

// Advance moves an entry through the waitlist lifecycle. The stored prior
// status guards the update so two staff members acting at once cannot both
// win. Moving to notified texts the guest best-effort.
func (w *waitlistCommandsImpl) Advance(ctx context.Context, rest *tenant.Restaurant, id uuid.UUID, to waitlist.Status) error {
	entry, err := w.entries.FindByID(ctx, rest.ID, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrWaitlistNotFound
		}
		return errs.Mark(err, ErrStoreFailed)
	}

	from := entry.Status
	if err := entry.Advance(to); err != nil {
		return errs.Mark(err, ErrWaitlistTransition)
	}

	if err := w.entries.UpdateStatus(ctx, rest.ID, id, from, to); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return ErrWaitlistTransition
		}
		return errs.Mark(err, ErrStoreFailed)
	}

	if to == waitlist.StatusNotified && rest.ExternalRef != nil {
		text := "Hi " + entry.Name + " your table at " + rest.Name + " is ready"
		sendErr := w.gateway.SendSMS(ctx, *rest.ExternalRef, entry.Phone, text)
		attempt := message.NewAttempt(rest.ID, entry.ID, entry.Phone.String(), text, sendErr == nil)
		if err := w.messages.Append(ctx, attempt); err != nil {
			slog.Error("failed to append message history",
				"entry_id", entry.ID, "error", err)
		}
		if sendErr != nil {
			slog.Warn("waitlist notify sms failed",
				"entry_id", entry.ID, "error", sendErr)
		}
	}

	w.publish(ctx, rest)
	return nil
}

func (w *waitlistCommandsImpl) publish(ctx context.Context, rest *tenant.Restaurant) {
	if w.publisher != nil {
		w.publisher.Publish(ctx, rest.ID, events.CollectionWaitlist, "write")
	}
}
