package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
)

//go:embed migrations
var migrationFS embed.FS

// NewMigrator builds a golang-migrate instance over db using the embedded
// migrations for its dialect. Closing the returned Migrate closes db as well.
func NewMigrator(db *sqlx.DB) (*migrate.Migrate, error) {
	var (
		dir        string
		driverName string
	)

	switch db.DriverName() {
	case DriverSQLite:
		dir, driverName = "migrations/sqlite3", "sqlite3"
	case DriverPostgres:
		dir, driverName = "migrations/postgres", "pgx5"
	default:
		return nil, fmt.Errorf("no migrations for driver %q", db.DriverName())
	}

	source, err := iofs.New(migrationFS, dir)
	if err != nil {
		return nil, fmt.Errorf("could not open embedded migrations: %w", err)
	}

	var m *migrate.Migrate
	switch driverName {
	case "sqlite3":
		driver, derr := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
		if derr != nil {
			return nil, fmt.Errorf("could not create sqlite3 migration driver: %w", derr)
		}
		m, err = migrate.NewWithInstance("iofs", source, driverName, driver)
	default:
		driver, derr := migratepgx.WithInstance(db.DB, &migratepgx.Config{})
		if derr != nil {
			return nil, fmt.Errorf("could not create postgres migration driver: %w", derr)
		}
		m, err = migrate.NewWithInstance("iofs", source, driverName, driver)
	}
	if err != nil {
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	return m, nil
}

// RunMigrations applies every pending up migration. It is idempotent.
func RunMigrations(db *sqlx.DB) error {
	m, err := NewMigrator(db)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply migrations: %w", err)
	}
	return nil
}
