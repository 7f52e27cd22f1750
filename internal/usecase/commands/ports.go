package commands

import (
	"context"
	"time"

	"tablebook/internal/domain/message"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/domain/table"
	"tablebook/internal/domain/tenant"
	"tablebook/internal/domain/waitlist"
	"tablebook/internal/infra/nova"
	"tablebook/internal/pkg/phone"

	"github.com/google/uuid"
)

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	FindByID(ctx context.Context, restaurantID, id uuid.UUID) (*reservation.Reservation, error)
	FindActiveByPhone(ctx context.Context, restaurantID uuid.UUID, num phone.Number, now time.Time) (*reservation.Reservation, error)
	CountInBucket(ctx context.Context, restaurantID uuid.UUID, dayStart, dayEnd time.Time, slotStart, slotEnd string, statuses []reservation.Status) (int, error)
	ConfirmDraft(ctx context.Context, restaurantID, id uuid.UUID, clearPayment bool) error
	MarkNotified(ctx context.Context, restaurantID, id uuid.UUID) error
	Seat(ctx context.Context, restaurantID, id, tableID uuid.UUID) error
	Cancel(ctx context.Context, restaurantID, id uuid.UUID) error
	SetCustomerRef(ctx context.Context, restaurantID, id uuid.UUID, customerRef string) error
}

type SlotRepository interface {
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]schedule.Slot, error)
}

type SlotWriter interface {
	Create(ctx context.Context, s schedule.Slot) error
	Update(ctx context.Context, s schedule.Slot) error
}

type TableRepository interface {
	FindByID(ctx context.Context, restaurantID, id uuid.UUID) (table.Table, error)
	SetOccupied(ctx context.Context, restaurantID, id uuid.UUID, occupied bool) error
}

type MessageRepository interface {
	Append(ctx context.Context, h *message.History) error
}

type WaitlistRepository interface {
	Create(ctx context.Context, e *waitlist.Entry) error
	FindByID(ctx context.Context, restaurantID, id uuid.UUID) (*waitlist.Entry, error)
	UpdateStatus(ctx context.Context, restaurantID, id uuid.UUID, from, to waitlist.Status) error
}

type RestaurantRepository interface {
	Create(ctx context.Context, rest *tenant.Restaurant) error
	FindByID(ctx context.Context, id uuid.UUID) (*tenant.Restaurant, error)
	UpdateSettings(ctx context.Context, id uuid.UUID, settings tenant.ReservationSettings) error
	List(ctx context.Context) ([]*tenant.Restaurant, error)
}

// NovaGateway is the outbound surface of the external booking system. All
// calls are bounded by the client timeout and retried once on transport
// failure.
type NovaGateway interface {
	EnsureCustomer(ctx context.Context, merchantRef, firstName, lastName string, num phone.Number) (string, error)
	BookTable(ctx context.Context, tableID string, p nova.BookTableParams) error
	SendSMS(ctx context.Context, merchantRef string, num phone.Number, text string) error
	CreateCheckoutSession(ctx context.Context, p nova.CheckoutParams) (string, error)
}

// ChangePublisher fans tenant-scoped change notifications out to open
// dashboard sessions. Implementations are best-effort.
type ChangePublisher interface {
	Publish(ctx context.Context, restaurantID uuid.UUID, collection, op string)
}

// AvailabilityInvalidator drops the cached slot listing after a write that
// changes remaining capacity.
type AvailabilityInvalidator interface {
	Invalidate(ctx context.Context, restaurantID uuid.UUID, date string)
}
