package request

import (
	"strings"
	"time"

	"tablebook/internal/usecase/commands"
)

type CreateBookingRequest struct {
	GuestName      string    `json:"guest_name" binding:"required"`
	Phone          string    `json:"phone" binding:"required"`
	Email          string    `json:"email,omitempty"`
	PartySize      int       `json:"party_size" binding:"required"`
	DateTime       time.Time `json:"date_time" binding:"required"`
	Occasion       *string   `json:"occasion,omitempty"`
	SpecialRequest *string   `json:"special_request,omitempty"`
	ReturnURL      string    `json:"return_url,omitempty"`
}

func (r CreateBookingRequest) ToInput() commands.CreateBookingInput {
	in := commands.CreateBookingInput{
		GuestName: r.GuestName,
		Phone:     r.Phone,
		Email:     r.Email,
		PartySize: r.PartySize,
		DateTime:  r.DateTime,
		Occasion:  r.GetOccasion(),
		ReturnURL: r.ReturnURL,
	}
	if r.SpecialRequest != nil {
		in.SpecialRequest = strings.TrimSpace(*r.SpecialRequest)
	}
	return in
}

func (r CreateBookingRequest) GetOccasion() *string {
	if r.Occasion == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.Occasion)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type CancelByPhoneRequest struct {
	Phone string `json:"phone" binding:"required"`
}
