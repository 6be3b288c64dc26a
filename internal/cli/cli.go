// Package cli implements the ledgerctl operator commands.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/google/subcommands"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/bootstrap"
)

// PasswordEnv names the variable holding the password of -user
const PasswordEnv = "LEDGER_PASSWORD"

// Env carries what every command needs from the outside world
type Env struct {
	// Open builds the application; migrate asks for schema migrations first
	Open      func(ctx context.Context, migrate bool) (*bootstrap.App, error)
	Getenv    func(key string) string
	Formatter *dto.MoneyFormatter
	Stdout    io.Writer
	Stderr    io.Writer
}

// Commands returns every ledgerctl command bound to env
func Commands(env *Env) []subcommands.Command {
	return []subcommands.Command{
		&migrateCmd{env: env},
		&signupCmd{env: env},
		&accountsCmd{env: env},
		&openCmd{env: env},
		&movementCmd{env: env, name: "deposit", synopsis: "deposit money into an account"},
		&movementCmd{env: env, name: "withdraw", synopsis: "withdraw money from an account"},
		&transferCmd{env: env},
		&historyCmd{env: env},
	}
}

// Run parses args and executes the selected command
func Run(ctx context.Context, env *Env, name string, args []string) subcommands.ExitStatus {
	topFlags := flag.NewFlagSet(name, flag.ContinueOnError)
	topFlags.SetOutput(env.Stderr)

	commander := subcommands.NewCommander(topFlags, name)
	commander.Output = env.Stdout
	commander.Error = env.Stderr
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range Commands(env) {
		commander.Register(c, "ledger")
	}

	if err := topFlags.Parse(args); err != nil {
		return subcommands.ExitUsageError
	}
	return commander.Execute(ctx)
}

// userFlags holds the credentials shared by authenticated commands
type userFlags struct {
	username string
}

func (u *userFlags) register(f *flag.FlagSet) {
	f.StringVar(&u.username, "user", "", "username to act as (required); password is read from "+PasswordEnv)
}

// withApp opens the application and runs fn, mapping errors to exit statuses
func (e *Env) withApp(ctx context.Context, migrate bool, fn func(app *bootstrap.App) error) subcommands.ExitStatus {
	app, err := e.Open(ctx, migrate)
	if err != nil {
		return e.fail(err)
	}
	defer func() { _ = app.Close() }()

	if err := fn(app); err != nil {
		return e.fail(err)
	}
	return subcommands.ExitSuccess
}

// authenticated resolves -user with the password from the environment
func (e *Env) authenticated(ctx context.Context, app *bootstrap.App, u userFlags) (*entity.User, error) {
	return app.Users.Authenticate(ctx, u.username, e.Getenv(PasswordEnv))
}

func (e *Env) usage(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(e.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}

func (e *Env) fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(e.Stderr, "Error:", err)
	return subcommands.ExitFailure
}

func (e *Env) display(cents int64) string {
	return e.Formatter.Amount(cents).Display
}
