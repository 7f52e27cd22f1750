package request

import "tablebook/internal/domain/waitlist"

type JoinWaitlistRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	PartySize int    `json:"party_size" binding:"required"`
}

type AdvanceWaitlistRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r AdvanceWaitlistRequest) ToStatus() (waitlist.Status, bool) {
	switch waitlist.Status(r.Status) {
	case waitlist.StatusNotified, waitlist.StatusSeated, waitlist.StatusRemoved:
		return waitlist.Status(r.Status), true
	default:
		return "", false
	}
}
