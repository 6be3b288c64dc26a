package entity

import (
	"time"

	coreport "github.com/amirhossein-jamali/personal-ledger/internal/domain/port/core"
)

// User represents an account holder
type User struct {
	ID           uint64 // Unique identifier for the user
	Username     string // Unique login name
	PasswordHash string // Encoded salted hash, never the password itself
	CreatedAt    time.Time
}

// NewUser creates a new user with an already hashed password
func NewUser(username string, passwordHash string, timeProvider coreport.TimeProvider) (*User, error) {
	username, err := NormalizeUsername(username)
	if err != nil {
		return nil, err
	}

	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    timeProvider.Now().UTC(),
	}, nil
}
