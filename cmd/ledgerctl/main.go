package main

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/amirhossein-jamali/personal-ledger/internal/cli"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/logger"
	timeProvider "github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/bootstrap"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Operator output goes to stdout; only warnings and errors are logged
	appLogger := logger.NewFromConfig("console", "warn")
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()

	env := &cli.Env{
		Open: func(ctx context.Context, migrate bool) (*bootstrap.App, error) {
			return bootstrap.New(ctx, cfg, appLogger, tp, bootstrap.Options{Migrate: migrate})
		},
		Getenv:    os.Getenv,
		Formatter: dto.NewMoneyFormatter(cfg.Currency.Code),
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}

	os.Exit(int(cli.Run(context.Background(), env, path.Base(os.Args[0]), os.Args[1:])))
}
