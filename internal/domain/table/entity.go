package table

import "github.com/google/uuid"

// Table is one seating unit, represented uniformly whether it came from the
// local store or was proxied live from the external booking API.
type Table struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	// ExternalID is the table's id in the external booking system, used for
	// the book-table call. Empty for purely local tables.
	ExternalID string
	Name       string
	Seats      int
	Occupied   bool
	Area       *string
}

// Fits reports whether a party fits at this table.
func (t Table) Fits(partySize int) bool {
	return t.Seats >= partySize
}
