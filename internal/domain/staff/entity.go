package staff

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidRole  = errors.New("invalid role")
)

type Role string

const (
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

func NewRole(value string) (Role, error) {
	switch Role(value) {
	case RoleStaff, RoleAdmin:
		return Role(value), nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string { return string(r) }

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type Email struct {
	value string
}

func NewEmail(value string) (Email, error) {
	if !emailPattern.MatchString(value) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: value}, nil
}

func (e Email) Value() string { return e.value }

// User is a dashboard account. Restaurant membership lives in the
// user_restaurants association and is loaded alongside.
type User struct {
	ID            uuid.UUID
	Email         Email
	Role          Role
	RestaurantIDs []uuid.UUID
	IsActive      bool
	LastLogin     *time.Time
	CreatedAt     time.Time
}

// MemberOf reports whether the user belongs to the given restaurant.
// Admins have access to every tenant.
func (u *User) MemberOf(restaurantID uuid.UUID) bool {
	if u.Role == RoleAdmin {
		return true
	}
	for _, id := range u.RestaurantIDs {
		if id == restaurantID {
			return true
		}
	}
	return false
}
