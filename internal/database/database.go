package database

import (
	"context"
	"fmt"
	"strings"

	"wiki-quiz/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // registers "sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"

	sqlitePrefix = "sqlite:///"
	sqliteParams = "_busy_timeout=5000"
)

// ResolveDSN maps a DATABASE_URL onto a driver name and the DSN that driver
// expects. An empty URL selects the default SQLite file. sqlite:///<path> and
// bare file paths select SQLite; postgresql:// selects pgx.
func ResolveDSN(url string) (driver, dsn string, err error) {
	url = config.NormalizeDatabaseURL(strings.TrimSpace(url))

	switch {
	case strings.HasPrefix(url, "postgresql://"):
		return DriverPostgres, url, nil
	case strings.HasPrefix(url, sqlitePrefix):
		return DriverSQLite, sqliteDSN(strings.TrimPrefix(url, sqlitePrefix)), nil
	case strings.Contains(url, "://"):
		return "", "", fmt.Errorf("unsupported database URL scheme in %q", url)
	default:
		return DriverSQLite, sqliteDSN(url), nil
	}
}

func sqliteDSN(path string) string {
	if path == "" {
		path = ":memory:"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + sqliteParams
}

// Open connects to the configured database and pings it.
func Open(ctx context.Context, url string) (*sqlx.DB, error) {
	driver, dsn, err := ResolveDSN(url)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	// SQLite allows a single writer; one connection keeps writers from racing.
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	return db, nil
}
