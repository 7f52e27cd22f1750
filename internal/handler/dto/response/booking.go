package response

import (
	"tablebook/internal/usecase/commands"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ReservationID uuid.UUID `json:"reservationId"`
	Status        string    `json:"status"`
	CheckoutURL   string    `json:"checkoutUrl,omitempty"`
}

func FromBookingResult(r *commands.BookingResult) *BookingResponse {
	return &BookingResponse{
		ReservationID: r.ReservationID,
		Status:        r.Status.String(),
		CheckoutURL:   r.CheckoutURL,
	}
}
