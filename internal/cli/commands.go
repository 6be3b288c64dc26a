package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/usecase/transaction"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/bootstrap"
)

type migrateCmd struct {
	env  *Env
	seed bool
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "bring the database schema up to date" }
func (*migrateCmd) Usage() string {
	return `migrate [-seed]

  Creates or updates tables, indexes and constraints. With -seed, demo users
  alice, bob and carol are created with funded Checking accounts.
`
}

func (c *migrateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.seed, "seed", false, "create demo users")
}

func (c *migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.env.withApp(ctx, true, func(app *bootstrap.App) error {
		fmt.Fprintln(c.env.Stdout, "schema up to date")
		if !c.seed {
			return nil
		}

		created, err := migration.SeedDemoUsers(ctx, app.Users, app.Transactions, migration.DefaultDemoUsers)
		if err != nil {
			return fmt.Errorf("seed demo users: %w", err)
		}
		fmt.Fprintf(c.env.Stdout, "seeded %d demo users\n", created)
		return nil
	})
}

type signupCmd struct {
	env  *Env
	user userFlags
}

func (*signupCmd) Name() string     { return "signup" }
func (*signupCmd) Synopsis() string { return "register a user with a Checking account" }
func (*signupCmd) Usage() string {
	return "signup -user <name>\n\n  The password is read from " + PasswordEnv + ".\n"
}

func (c *signupCmd) SetFlags(f *flag.FlagSet) { c.user.register(f) }

func (c *signupCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.user.username == "" {
		return c.env.usage("-user is required")
	}

	return c.env.withApp(ctx, false, func(app *bootstrap.App) error {
		u, err := app.Users.Signup(ctx, c.user.username, c.env.Getenv(PasswordEnv))
		if err != nil {
			return err
		}
		fmt.Fprintf(c.env.Stdout, "created user %s (id %d) with account %s\n", u.Username, u.ID, entity.DefaultAccountName)
		return nil
	})
}

type accountsCmd struct {
	env  *Env
	user userFlags
}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list accounts and balances" }
func (*accountsCmd) Usage() string    { return "accounts -user <name>\n" }

func (c *accountsCmd) SetFlags(f *flag.FlagSet) { c.user.register(f) }

func (c *accountsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.user.username == "" {
		return c.env.usage("-user is required")
	}

	return c.env.withApp(ctx, false, func(app *bootstrap.App) error {
		u, err := c.env.authenticated(ctx, app, c.user)
		if err != nil {
			return err
		}
		accounts, err := app.Accounts.ListAccounts(ctx, u.ID)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(c.env.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "NAME\tKIND\tBALANCE\t")
		for _, a := range accounts {
			fmt.Fprintf(w, "%s\t%s\t%s\t\n", a.Name, a.Kind, c.env.display(a.Balance))
		}
		return w.Flush()
	})
}

type openCmd struct {
	env  *Env
	user userFlags
	name string
	kind string
}

func (*openCmd) Name() string     { return "open" }
func (*openCmd) Synopsis() string { return "open a new account" }
func (*openCmd) Usage() string {
	return "open -user <name> -name <account> [-kind checking|savings]\n"
}

func (c *openCmd) SetFlags(f *flag.FlagSet) {
	c.user.register(f)
	f.StringVar(&c.name, "name", "", "account name (required)")
	f.StringVar(&c.kind, "kind", string(entity.AccountChecking), "account kind: checking or savings")
}

func (c *openCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.user.username == "" || c.name == "" {
		return c.env.usage("-user and -name are required")
	}

	return c.env.withApp(ctx, false, func(app *bootstrap.App) error {
		u, err := c.env.authenticated(ctx, app, c.user)
		if err != nil {
			return err
		}
		a, err := app.Accounts.CreateAccount(ctx, u.ID, c.name, c.kind)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.env.Stdout, "opened %s account %s\n", a.Kind, a.Name)
		return nil
	})
}

// movementCmd implements both deposit and withdraw
type movementCmd struct {
	env      *Env
	name     string
	synopsis string

	user    userFlags
	account string
	amount  string
	note    string
}

func (c *movementCmd) Name() string     { return c.name }
func (c *movementCmd) Synopsis() string { return c.synopsis }
func (c *movementCmd) Usage() string {
	return c.name + " -user <name> -amount <decimal> [-account <name>] [-note <text>]\n"
}

func (c *movementCmd) SetFlags(f *flag.FlagSet) {
	c.user.register(f)
	f.StringVar(&c.account, "account", entity.DefaultAccountName, "account name")
	f.StringVar(&c.amount, "amount", "", "amount with at most two decimals, e.g. 12.50 (required)")
	f.StringVar(&c.note, "note", "", "free text note")
}

func (c *movementCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.user.username == "" || c.amount == "" {
		return c.env.usage("-user and -amount are required")
	}
	amount, err := entity.ParseAmount(c.amount)
	if err != nil {
		return c.env.usage("%v", err)
	}

	return c.env.withApp(ctx, false, func(app *bootstrap.App) error {
		u, err := c.env.authenticated(ctx, app, c.user)
		if err != nil {
			return err
		}

		var balance int64
		if c.name == "withdraw" {
			balance, err = app.Transactions.Withdraw(ctx, u.ID, c.account, amount, c.note)
		} else {
			balance, err = app.Transactions.Deposit(ctx, u.ID, c.account, amount, c.note)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(c.env.Stdout, "%s balance: %s\n", c.account, c.env.display(balance))
		return nil
	})
}

type transferCmd struct {
	env    *Env
	user   userFlags
	from   string
	to     string
	amount string
	note   string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "move money between two of your accounts" }
func (*transferCmd) Usage() string {
	return "transfer -user <name> -from <account> -to <account> -amount <decimal> [-note <text>]\n"
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	c.user.register(f)
	f.StringVar(&c.from, "from", "", "source account (required)")
	f.StringVar(&c.to, "to", "", "destination account (required)")
	f.StringVar(&c.amount, "amount", "", "amount with at most two decimals (required)")
	f.StringVar(&c.note, "note", "", "free text note")
}

func (c *transferCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.user.username == "" || c.from == "" || c.to == "" || c.amount == "" {
		return c.env.usage("-user, -from, -to and -amount are required")
	}
	amount, err := entity.ParseAmount(c.amount)
	if err != nil {
		return c.env.usage("%v", err)
	}

	return c.env.withApp(ctx, false, func(app *bootstrap.App) error {
		u, err := c.env.authenticated(ctx, app, c.user)
		if err != nil {
			return err
		}
		result, err := app.Transactions.Transfer(ctx, u.ID, c.from, c.to, amount, c.note)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.env.Stdout, "%s balance: %s\n%s balance: %s\n",
			c.from, c.env.display(result.FromBalance),
			c.to, c.env.display(result.ToBalance))
		return nil
	})
}

type historyCmd struct {
	env     *Env
	user    userFlags
	account string
	limit   string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "show recent transactions, newest first" }
func (*historyCmd) Usage() string {
	return "history -user <name> [-account <name>] [-limit <n>]\n"
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	c.user.register(f)
	f.StringVar(&c.account, "account", entity.DefaultAccountName, "account name")
	f.StringVar(&c.limit, "limit", "", fmt.Sprintf("number of entries, %d to %d (default %d)",
		transaction.MinHistoryLimit, transaction.MaxHistoryLimit, transaction.DefaultHistoryLimit))
}

func (c *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.user.username == "" {
		return c.env.usage("-user is required")
	}
	limit, err := transaction.ParseHistoryLimit(c.limit)
	if err != nil {
		return c.env.usage("%v", err)
	}

	return c.env.withApp(ctx, false, func(app *bootstrap.App) error {
		u, err := c.env.authenticated(ctx, app, c.user)
		if err != nil {
			return err
		}
		entries, err := app.Transactions.GetHistory(ctx, u.ID, c.account, limit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(c.env.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTIME\tKIND\tAMOUNT\tBALANCE\tNOTE")
		for _, t := range entries {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				t.ID, t.CreatedAt.Format("2006-01-02 15:04:05"), t.Kind,
				c.env.display(t.Amount), c.env.display(t.BalanceAfter), t.Note)
		}
		return w.Flush()
	})
}
