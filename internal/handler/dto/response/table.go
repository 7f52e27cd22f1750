package response

import (
	"tablebook/internal/usecase/queries"

	"github.com/google/uuid"
)

type TableResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Seats    int       `json:"seats"`
	Occupied bool      `json:"occupied"`
	Area     *string   `json:"area,omitempty"`
}

func FromTableViews(views []queries.TableView) []TableResponse {
	out := make([]TableResponse, len(views))
	for i, v := range views {
		out[i] = TableResponse{
			ID:       v.ID,
			Name:     v.Name,
			Seats:    v.Seats,
			Occupied: v.Occupied,
			Area:     v.Area,
		}
	}
	return out
}
