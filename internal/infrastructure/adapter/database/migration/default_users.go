package migration

import (
	"context"
	"errors"

	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/port/usecase"
)

// DemoUser describes a seeded user and the opening deposit of its default account
type DemoUser struct {
	Username string
	Password string
	Deposit  int64 // cents
}

// DefaultDemoUsers are seeded by "ledgerctl migrate -seed"
var DefaultDemoUsers = []DemoUser{
	{Username: "alice", Password: "alice-password", Deposit: 10000},
	{Username: "bob", Password: "bob-password", Deposit: 20000},
	{Username: "carol", Password: "carol-password", Deposit: 30000},
}

// SeedDemoUsers signs up each user that does not exist yet and funds its default
// account. Existing users are left untouched.
func SeedDemoUsers(
	ctx context.Context,
	users usecase.UserUseCase,
	transactions usecase.TransactionUseCase,
	demoUsers []DemoUser,
) (int, error) {
	created := 0

	for _, demo := range demoUsers {
		user, err := users.Signup(ctx, demo.Username, demo.Password)
		if errors.Is(err, errs.ErrDuplicateUser) {
			continue
		}
		if err != nil {
			return created, err
		}
		created++

		if demo.Deposit > 0 {
			if _, err := transactions.Deposit(ctx, user.ID, entity.DefaultAccountName, demo.Deposit, "opening balance"); err != nil {
				return created, err
			}
		}
	}

	return created, nil
}
