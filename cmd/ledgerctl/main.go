package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rentdesk/backend/internal/bootstrap"
	"github.com/rentdesk/backend/internal/infrastructure/config"
	"github.com/rentdesk/backend/internal/infrastructure/logger"
	"github.com/rentdesk/backend/internal/interfaces/cli"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	open := func(ctx context.Context) (*bootstrap.Ledger, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		logCfg := logger.FromAppConfig(cfg.Log)
		logCfg.Output = "stderr"
		log, err := logger.New(logCfg)
		if err != nil {
			return nil, err
		}
		return bootstrap.Open(ctx, cfg, log, bootstrap.Options{
			// postgres schemas are owned by cmd/migrate
			Migrate: cfg.Database.Driver == config.DriverSQLite,
		})
	}

	if err := cli.NewRootCmd(cli.Env{Open: open}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
