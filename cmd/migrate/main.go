package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/mpalashb/secureprime-digital-agency/migrations"
	"github.com/mpalashb/secureprime-digital-agency/pkg/logger"
)

const usage = `Usage: migrate [command]

Commands:
  up       apply pending migrations (default)
  down     roll back the latest migration
  status   list migrations and their state`

var errUsage = errors.New("unknown command")

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("LOG_LEVEL"))

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	if err := run(cmd, os.Getenv("DATABASE_URL")); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
		}
		logger.Log.Error("migration failed", "command", cmd, "error", err)
		os.Exit(1)
	}
	logger.Log.Info("migration finished", "command", cmd)
}

func run(cmd, dbURL string) error {
	var apply func(*sql.DB) error
	switch cmd {
	case "up":
		apply = migrations.Up
	case "down":
		apply = migrations.Down
	case "status":
		apply = migrations.Status
	default:
		return fmt.Errorf("%w: %q", errUsage, cmd)
	}

	if dbURL == "" {
		return errors.New("DATABASE_URL is required")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer db.Close()

	return apply(db)
}
