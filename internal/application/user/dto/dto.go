package dto

import (
	"time"

	"github.com/civictrack/civictrack/internal/domain/user"
)

// UserDTO is the public view of an account. The password hash never leaves the domain.
type UserDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthResultDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *UserDTO  `json:"user"`
}

func ToUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.SID(),
		Name:      u.Name().String(),
		Email:     u.Email().String(),
		Phone:     u.Phone(),
		Address:   u.Address(),
		City:      u.City(),
		Role:      u.Role().String(),
		CreatedAt: u.CreatedAt(),
	}
}
