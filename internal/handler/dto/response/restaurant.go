package response

import (
	"time"

	"tablebook/internal/domain/schedule"
	"tablebook/internal/domain/tenant"

	"github.com/google/uuid"
)

type RestaurantResponse struct {
	ID          uuid.UUID                  `json:"id"`
	Name        string                     `json:"name"`
	Subdomain   string                     `json:"subdomain"`
	Slug        string                     `json:"slug"`
	ExternalRef *string                    `json:"externalRef,omitempty"`
	Settings    tenant.ReservationSettings `json:"settings"`
	CreatedAt   time.Time                  `json:"createdAt"`
}

func FromRestaurant(r *tenant.Restaurant) *RestaurantResponse {
	return &RestaurantResponse{
		ID:          r.ID,
		Name:        r.Name,
		Subdomain:   r.Subdomain,
		Slug:        r.Slug,
		ExternalRef: r.ExternalRef,
		Settings:    r.Reservation,
		CreatedAt:   r.CreatedAt,
	}
}

type SlotResponse struct {
	ID              uuid.UUID `json:"id"`
	DayOfWeek       *int      `json:"dayOfWeek,omitempty"`
	Date            *string   `json:"date,omitempty"`
	Start           string    `json:"start"`
	End             string    `json:"end"`
	MaxReservations int       `json:"maxReservations"`
	Active          bool      `json:"active"`
	Default         bool      `json:"default"`
}

func FromSlot(s schedule.Slot) *SlotResponse {
	return &SlotResponse{
		ID:              s.ID,
		DayOfWeek:       s.DayOfWeek,
		Date:            s.Date,
		Start:           s.Start,
		End:             s.End,
		MaxReservations: s.MaxReservations,
		Active:          s.Active,
		Default:         s.Default,
	}
}

func FromRestaurants(list []*tenant.Restaurant) []*RestaurantResponse {
	out := make([]*RestaurantResponse, len(list))
	for i, r := range list {
		out[i] = FromRestaurant(r)
	}
	return out
}
