package response

import "tablebook/internal/usecase/queries"

type SlotAvailabilityResponse struct {
	SlotStart    string `json:"slotStart"`
	SlotEnd      string `json:"slotEnd"`
	DisplayTime  string `json:"displayTime"`
	Remaining    int    `json:"remaining"`
	MaxPartySize int    `json:"maxPartySize"`
}

type AvailabilityResponse struct {
	Date  string                     `json:"date"`
	Slots []SlotAvailabilityResponse `json:"slots"`
}

func FromSlotAvailability(date string, slots []queries.SlotAvailability) *AvailabilityResponse {
	out := make([]SlotAvailabilityResponse, len(slots))
	for i, s := range slots {
		out[i] = SlotAvailabilityResponse{
			SlotStart:    s.SlotStart,
			SlotEnd:      s.SlotEnd,
			DisplayTime:  s.DisplayTime,
			Remaining:    s.Remaining,
			MaxPartySize: s.MaxPartySize,
		}
	}
	return &AvailabilityResponse{Date: date, Slots: out}
}
