package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"fulfillment-ledger/config"
	pgStorage "fulfillment-ledger/internal/adapter/storage/postgres"
	"fulfillment-ledger/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|down|status|version|redo|reset|up-to|down-to")
	version := flag.String("version", "", "target version for up-to and down-to")
	configPath := flag.String("config", os.Getenv("MFL_CONFIG"), "config file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty).With().Str("cmd", *cmd).Logger()

	var args []string
	switch *cmd {
	case "up", "down", "status", "version", "redo", "reset":
	case "up-to", "down-to":
		if *version == "" {
			fmt.Fprintf(os.Stderr, "missing -version for %s\n", *cmd)
			os.Exit(1)
		}
		args = append(args, *version)
	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	if err := pgStorage.Migrate(ctx, pool, log, *cmd, args...); err != nil {
		log.Error().Err(err).Msg("migration failed")
		pool.Close()
		os.Exit(1)
	}
}
