package response

import (
	"tablebook/internal/domain/staff"

	"github.com/google/uuid"
)

type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	ID            uuid.UUID   `json:"id"`
	Email         string      `json:"email"`
	Role          string      `json:"role"`
	RestaurantIDs []uuid.UUID `json:"restaurantIds,omitempty"`
}

func FromUser(u *staff.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email.Value(),
		Role:          u.Role.String(),
		RestaurantIDs: u.RestaurantIDs,
	}
}
