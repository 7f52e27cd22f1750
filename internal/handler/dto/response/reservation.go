package response

import (
	"time"

	"tablebook/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID             uuid.UUID  `json:"id"`
	GuestName      string     `json:"guestName"`
	Phone          string     `json:"phone"`
	Email          string     `json:"email,omitempty"`
	PartySize      int        `json:"partySize"`
	DateTime       time.Time  `json:"dateTime"`
	LocalTime      string     `json:"localTime"`
	SlotStart      string     `json:"slotStart"`
	Status         string     `json:"status"`
	TableID        *uuid.UUID `json:"tableId,omitempty"`
	PaymentCents   *int64     `json:"paymentCents,omitempty"`
	Occasion       *string    `json:"occasion,omitempty"`
	SpecialRequest string     `json:"specialRequest,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:             v.ID,
		GuestName:      v.GuestName,
		Phone:          v.Phone,
		Email:          v.Email,
		PartySize:      v.PartySize,
		DateTime:       v.DateTime,
		LocalTime:      v.LocalTime,
		SlotStart:      v.SlotStart,
		Status:         v.Status,
		TableID:        v.TableID,
		PaymentCents:   v.PaymentCents,
		Occasion:       v.Occasion,
		SpecialRequest: v.SpecialRequest,
		CreatedAt:      v.CreatedAt,
	}
}
