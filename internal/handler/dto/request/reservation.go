package request

import "github.com/google/uuid"

type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

type SeatReservationRequest struct {
	TableID uuid.UUID `json:"table_id" binding:"required"`
}
