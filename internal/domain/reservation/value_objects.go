package reservation

import (
	"errors"
	"strings"

	"tablebook/internal/pkg/phone"
)

var (
	ErrInvalidGuestName = errors.New("guest name is required")
	ErrInvalidPartySize = errors.New("party size must be a positive integer")
	ErrPartyTooLarge    = errors.New("party size exceeds the maximum for this restaurant")
)

type Guest struct {
	name  string
	phone phone.Number
	email string
}

func NewGuest(name, rawPhone, email string) (Guest, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Guest{}, ErrInvalidGuestName
	}

	num, err := phone.Parse(rawPhone)
	if err != nil {
		return Guest{}, err
	}

	return Guest{
		name:  name,
		phone: num,
		email: strings.TrimSpace(email),
	}, nil
}

// ReconstructGuest rebuilds a guest from stored columns without re-running
// input validation.
func ReconstructGuest(name string, num phone.Number, email string) Guest {
	return Guest{name: name, phone: num, email: email}
}

func (g Guest) Name() string        { return g.name }
func (g Guest) Phone() phone.Number { return g.phone }
func (g Guest) Email() string       { return g.email }

// FirstLast splits the guest name for the external customer record.
// Single-word names become first name only.
func (g Guest) FirstLast() (string, string) {
	parts := strings.Fields(g.name)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

type PartySize struct {
	value int
}

func NewPartySize(value, max int) (PartySize, error) {
	if value <= 0 {
		return PartySize{}, ErrInvalidPartySize
	}
	if max > 0 && value > max {
		return PartySize{}, ErrPartyTooLarge
	}
	return PartySize{value: value}, nil
}

// ReconstructPartySize rebuilds a stored party size without re-checking the
// tenant maximum, which may have changed since the booking was taken.
func ReconstructPartySize(value int) PartySize {
	return PartySize{value: value}
}

func (p PartySize) Value() int { return p.value }

type SpecialRequest struct {
	value string
}

func NewSpecialRequest(value string) SpecialRequest {
	return SpecialRequest{value: strings.TrimSpace(value)}
}

func (r SpecialRequest) String() string { return r.value }
func (r SpecialRequest) IsEmpty() bool  { return r.value == "" }
