package request

import (
	"tablebook/internal/domain/tenant"
	"tablebook/internal/usecase/commands"
)

type CreateRestaurantRequest struct {
	Name        string                      `json:"name" binding:"required"`
	Subdomain   string                      `json:"subdomain,omitempty"`
	Slug        string                      `json:"slug" binding:"required"`
	ExternalRef *string                     `json:"external_ref,omitempty"`
	Settings    *tenant.ReservationSettings `json:"settings,omitempty"`
}

func (r CreateRestaurantRequest) ToInput() commands.CreateRestaurantInput {
	return commands.CreateRestaurantInput{
		Name:        r.Name,
		Subdomain:   r.Subdomain,
		Slug:        r.Slug,
		ExternalRef: r.ExternalRef,
		Settings:    r.Settings,
	}
}

type UpdateSettingsRequest struct {
	Settings tenant.ReservationSettings `json:"settings" binding:"required"`
}

type SlotRequest struct {
	DayOfWeek       *int    `json:"day_of_week,omitempty"`
	Date            *string `json:"date,omitempty"`
	Start           string  `json:"start" binding:"required"`
	End             string  `json:"end" binding:"required"`
	MaxReservations int     `json:"max_reservations" binding:"required,min=1"`
	Active          bool    `json:"active"`
	Default         bool    `json:"default"`
}

func (r SlotRequest) ToInput() commands.SlotInput {
	return commands.SlotInput{
		DayOfWeek:       r.DayOfWeek,
		Date:            r.Date,
		Start:           r.Start,
		End:             r.End,
		MaxReservations: r.MaxReservations,
		Active:          r.Active,
		Default:         r.Default,
	}
}
