package dto

import (
	"time"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
)

// MovementRequest represents a deposit or withdrawal. Amount is decimal text such as "12.50".
type MovementRequest struct {
	Amount string `json:"amount" binding:"required"`
	Note   string `json:"note"`
}

// TransferRequest represents a transfer between two accounts of the caller
type TransferRequest struct {
	From   string `json:"from" binding:"required"`
	To     string `json:"to" binding:"required"`
	Amount string `json:"amount" binding:"required"`
	Note   string `json:"note"`
}

// BalanceResponse reports an account balance after a movement
type BalanceResponse struct {
	Account string `json:"account"`
	Balance Amount `json:"balance"`
}

// TransferResponse reports both balances after a transfer
type TransferResponse struct {
	From BalanceResponse `json:"from"`
	To   BalanceResponse `json:"to"`
}

// TransactionResponse represents one ledger entry
type TransactionResponse struct {
	ID           uint64    `json:"id"`
	Kind         string    `json:"kind"`
	Amount       Amount    `json:"amount"`
	BalanceAfter Amount    `json:"balanceAfter"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// HistoryResponse lists entries newest first
type HistoryResponse struct {
	Account      string                `json:"account"`
	Transactions []TransactionResponse `json:"transactions"`
}

// NewHistoryResponse builds a HistoryResponse
func NewHistoryResponse(account string, transactions []*entity.Transaction, f *MoneyFormatter) HistoryResponse {
	resp := HistoryResponse{
		Account:      account,
		Transactions: make([]TransactionResponse, 0, len(transactions)),
	}
	for _, t := range transactions {
		resp.Transactions = append(resp.Transactions, TransactionResponse{
			ID:           t.ID,
			Kind:         string(t.Kind),
			Amount:       f.Amount(t.Amount),
			BalanceAfter: f.Amount(t.BalanceAfter),
			Note:         t.Note,
			CreatedAt:    t.CreatedAt,
		})
	}
	return resp
}
