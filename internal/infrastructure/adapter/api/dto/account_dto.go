package dto

import (
	"time"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
)

// CreateAccountRequest represents the API request for opening an account
type CreateAccountRequest struct {
	Name string `json:"name" binding:"required"`
	Kind string `json:"kind" binding:"required"`
}

// AccountResponse represents an account with its current balance
type AccountResponse struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Balance   Amount    `json:"balance"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"createdAt"`
}

// AccountListResponse wraps the accounts of a user
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// NewAccountResponse builds an AccountResponse
func NewAccountResponse(a *entity.Account, f *MoneyFormatter) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Kind:      string(a.Kind),
		Balance:   f.Amount(a.Balance),
		Currency:  f.Currency(),
		CreatedAt: a.CreatedAt,
	}
}
