package dto

import (
	"time"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
)

// SignupRequest represents the API request for registering a user
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents a registered user
type UserResponse struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserResponse builds a UserResponse; the password hash is never exposed
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
}
