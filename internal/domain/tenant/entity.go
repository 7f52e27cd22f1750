package tenant

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant is the multi-tenant boundary. Every reservation, slot, table,
// waitlist entry and message row is scoped by its ID.
type Restaurant struct {
	ID        uuid.UUID
	Name      string
	Subdomain string
	Slug      string
	// ExternalRef identifies the restaurant in the third-party booking
	// system. Required for table booking, SMS and payments; nil for tenants
	// that only use local tables.
	ExternalRef *string
	Reservation ReservationSettings
	Manager     ManagerSettings
	CreatedAt   time.Time
}

// RequiresPayment reports whether guest bookings must go through checkout
// before confirmation.
func (r *Restaurant) RequiresPayment() bool {
	return r.Reservation.PaymentRequired && r.Reservation.DepositPerGuestCents > 0
}

// DepositCents is the checkout amount for a party of the given size.
func (r *Restaurant) DepositCents(partySize int) int64 {
	return r.Reservation.DepositPerGuestCents * int64(partySize)
}
