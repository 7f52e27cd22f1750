package waitlist

import (
	"errors"
	"strings"
	"time"

	"tablebook/internal/pkg/phone"

	"github.com/google/uuid"
)

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusNotified Status = "notified"
	StatusSeated   Status = "seated"
	StatusRemoved  Status = "removed"
)

var (
	ErrInvalidName       = errors.New("waitlist guest name is required")
	ErrInvalidPartySize  = errors.New("waitlist party size must be positive")
	ErrInvalidTransition = errors.New("invalid waitlist status transition")
)

// Entry is one walk-in guest waiting for a table.
type Entry struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	Name         string
	Phone        phone.Number
	PartySize    int
	Status       Status
	CreatedAt    time.Time
}

func NewEntry(restaurantID uuid.UUID, name, rawPhone string, partySize int) (*Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if partySize <= 0 {
		return nil, ErrInvalidPartySize
	}
	num, err := phone.Parse(rawPhone)
	if err != nil {
		return nil, err
	}
	return &Entry{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		Name:         name,
		Phone:        num,
		PartySize:    partySize,
		Status:       StatusWaiting,
	}, nil
}

// Advance validates a status change. Seated and removed entries are final.
func (e *Entry) Advance(to Status) error {
	switch e.Status {
	case StatusWaiting:
		if to == StatusNotified || to == StatusSeated || to == StatusRemoved {
			e.Status = to
			return nil
		}
	case StatusNotified:
		if to == StatusSeated || to == StatusRemoved {
			e.Status = to
			return nil
		}
	}
	return ErrInvalidTransition
}
