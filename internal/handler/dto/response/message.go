package response

import (
	"time"

	"tablebook/internal/usecase/queries"

	"github.com/google/uuid"
)

type MessageResponse struct {
	ID            uuid.UUID `json:"id"`
	ReservationID uuid.UUID `json:"reservationId"`
	Phone         string    `json:"phone"`
	Body          string    `json:"body"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

func FromMessageViews(views []queries.MessageView) []MessageResponse {
	out := make([]MessageResponse, len(views))
	for i, v := range views {
		out[i] = MessageResponse{
			ID:            v.ID,
			ReservationID: v.ReservationID,
			Phone:         v.Phone,
			Body:          v.Body,
			Status:        v.Status,
			CreatedAt:     v.CreatedAt,
		}
	}
	return out
}
