package message

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

const (
	// MaxFreeTextLen is the caller-enforced limit for staff free-text SMS.
	MaxFreeTextLen = 160
	// MaxTemplateLen is the limit for the sanitized confirmation template.
	MaxTemplateLen = 100
)

var (
	ErrEmptyText   = errors.New("message text is required")
	ErrTextTooLong = errors.New("message text exceeds 160 characters")
)

// History is one append-only audit record of an SMS send attempt. A row is
// written for every attempt whether or not the underlying call succeeded;
// rows are never updated or deleted.
type History struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	// ReservationID links the booking, or the waitlist entry, the text was
	// about.
	ReservationID uuid.UUID
	Phone         string
	Body          string
	Status        Status
	CreatedAt     time.Time
}

func NewAttempt(restaurantID, reservationID uuid.UUID, phoneNumber, body string, sent bool) *History {
	status := StatusFailed
	if sent {
		status = StatusSent
	}
	return &History{
		ID:            uuid.New(),
		RestaurantID:  restaurantID,
		ReservationID: reservationID,
		Phone:         phoneNumber,
		Body:          body,
		Status:        status,
	}
}

// FreeText validates staff-entered SMS text.
func FreeText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}
	if len(text) > MaxFreeTextLen {
		return "", ErrTextTooLong
	}
	return text, nil
}

// ConfirmationText builds the confirmation template for a booking. The
// external confirmation endpoint rejects punctuation and long bodies, so
// the text is sanitized and truncated to 100 characters.
func ConfirmationText(guestName, restaurantName string, at time.Time, loc *time.Location) string {
	local := at.In(loc)
	text := "Hi " + guestName + " your reservation at " + restaurantName +
		" is confirmed for " + local.Format("Jan 2 3:04 PM")
	return truncate(sanitize(text), MaxTemplateLen)
}

// CancellationText builds the cancellation notice sent best-effort on
// cancel.
func CancellationText(guestName, restaurantName string, at time.Time, loc *time.Location) string {
	local := at.In(loc)
	text := "Hi " + guestName + " your reservation at " + restaurantName +
		" for " + local.Format("Jan 2 3:04 PM") + " has been cancelled"
	return truncate(text, MaxFreeTextLen)
}

// sanitize strips punctuation, keeping letters, digits and spaces.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max])
}
