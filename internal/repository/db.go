package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	_ "github.com/lib/pq"
	"golang.org/x/text/cases"
	"modernc.org/sqlite"
)

// Dialect selects the SQL flavour and database/sql driver.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

func ParseDialect(name string) (Dialect, error) {
	switch Dialect(name) {
	case Postgres, SQLite:
		return Dialect(name), nil
	}
	return "", fmt.Errorf("unsupported database driver %q", name)
}

// casefoldFunc is registered on every SQLite connection. SQLite's LOWER only
// folds ASCII.
const casefoldFunc = "casefold"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(casefoldFunc, 1, casefold)
}

func casefold(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return cases.Fold().String(v), nil
	case []byte:
		return cases.Fold().String(string(v)), nil
	default:
		return v, nil
	}
}

// Fold returns the SQL expression folding expr to its case-insensitive form.
func (d Dialect) Fold(expr string) string {
	if d == SQLite {
		return casefoldFunc + "(" + expr + ")"
	}
	return "LOWER(" + expr + ")"
}

// Placeholder returns the bind parameter for the n-th (1-based) argument.
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Open connects and pings the database.
func Open(ctx context.Context, d Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(string(d), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if d == SQLite {
		// One connection keeps ":memory:" databases shared and serialises writers.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

const usersColumns = `
	first_name  TEXT NOT NULL DEFAULT '',
	middle_name TEXT NOT NULL DEFAULT '',
	last_name   TEXT NOT NULL DEFAULT '',
	suffix      TEXT NOT NULL DEFAULT '',
	email       TEXT NOT NULL DEFAULT '',
	mobile      TEXT NOT NULL DEFAULT '',
	telephone   TEXT NOT NULL DEFAULT '',
	street      TEXT NOT NULL DEFAULT '',
	city        TEXT NOT NULL DEFAULT '',
	state       TEXT NOT NULL DEFAULT '',
	zip_code    INTEGER NULL,
	deleted_at  TIMESTAMP NULL`

// Migrate creates the users table if it does not exist.
func Migrate(ctx context.Context, db *sql.DB, d Dialect) error {
	idColumn := "id BIGSERIAL PRIMARY KEY"
	if d == SQLite {
		idColumn = "id INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	ddl := "CREATE TABLE IF NOT EXISTS users (\n\t" + idColumn + "," + usersColumns + "\n)"
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}
