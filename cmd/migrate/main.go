package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/database"
	"wiki-quiz/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"
)

const usage = `usage: migrate <command> [flags]

commands:
  up            apply all pending migrations
  down [--all]  roll back one migration, or every migration with --all
  version       print the current schema version`

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]

	downFlags := flag.NewFlagSet("down", flag.ExitOnError)
	all := downFlags.Bool("all", false, "roll back every migration")

	db, err := database.Open(context.Background(), cfg.GetDatabaseURL())
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	m, err := database.NewMigrator(db)
	if err != nil {
		l.Fatal("Failed to create migrator", zap.Error(err))
	}

	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			l.Fatal("Failed to apply migrations", zap.Error(err))
		}
		fmt.Println("Migrations applied successfully!")
	case "down":
		if err := downFlags.Parse(os.Args[2:]); err != nil {
			l.Fatal("Invalid flags", zap.Error(err))
		}
		if *all {
			if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				l.Fatal("Failed to roll back migrations", zap.Error(err))
			}
			fmt.Println("Successfully rolled back all migrations")
			return
		}
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			l.Fatal("Failed to roll back migration", zap.Error(err))
		}
		fmt.Println("Successfully rolled back 1 migration(s)")
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			return
		}
		if err != nil {
			l.Fatal("Failed to read schema version", zap.Error(err))
		}
		fmt.Printf("version: %d dirty: %t\n", version, dirty)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
}
