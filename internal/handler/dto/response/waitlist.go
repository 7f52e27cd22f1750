package response

import (
	"time"

	"tablebook/internal/usecase/queries"

	"github.com/google/uuid"
)

type WaitlistEntryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	PartySize int       `json:"partySize"`
	Status    string    `json:"status"`
	WaitedMin int       `json:"waitedMin"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromWaitlistViews(views []queries.WaitlistView) []WaitlistEntryResponse {
	out := make([]WaitlistEntryResponse, len(views))
	for i, v := range views {
		out[i] = WaitlistEntryResponse{
			ID:        v.ID,
			Name:      v.Name,
			Phone:     v.Phone,
			PartySize: v.PartySize,
			Status:    v.Status,
			WaitedMin: v.WaitedMin,
			CreatedAt: v.CreatedAt,
		}
	}
	return out
}
