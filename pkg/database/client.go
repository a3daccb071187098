// Package database provides the connection pool and schema migrations
// shared by every repository in pkg/store. It owns no package-level state —
// an explicit *Client is constructed at startup and threaded through the
// application, replacing the global-engine pattern the teacher's own
// predecessor carried.
package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	_ "modernc.org/sqlite"             // registers the "sqlite" database/sql driver
)

//go:embed migrations
var migrationsFS embed.FS

// Dialect distinguishes the two supported backends. Repository SQL is
// written once per query and rebound per dialect (see Rebind) rather than
// duplicated, since the two differ only in placeholder syntax for every
// query this service issues.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Client wraps a *sql.DB with the dialect it was opened against.
type Client struct {
	DB      *sql.DB
	Dialect Dialect
}

// Open parses databaseURL, opens a pooled connection, and applies schema
// migrations. A "sqlite://" or "file:" prefix (or a bare path ending in
// ".db"/".sqlite") selects the sqlite dev driver; everything else is treated
// as a Postgres DSN understood by pgx.
func Open(ctx context.Context, databaseURL string) (*Client, error) {
	if isSQLite(databaseURL) {
		return openSQLite(ctx, databaseURL)
	}
	return openPostgres(ctx, databaseURL)
}

func isSQLite(url string) bool {
	return strings.HasPrefix(url, "sqlite://") ||
		strings.HasPrefix(url, "file:") ||
		strings.HasSuffix(url, ".db") ||
		strings.HasSuffix(url, ".sqlite") ||
		url == ":memory:"
}

func openPostgres(ctx context.Context, dsn string) (*Client, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := migratePostgres(db, dsn); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Client{DB: db, Dialect: Postgres}, nil
}

func migratePostgres(db *sql.DB, dsn string) error {
	driver, err := migratepostgres.WithInstance(db, &migratepostgres.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migrate instance: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return source.Close()
}

func openSQLite(ctx context.Context, rawURL string) (*Client, error) {
	path := strings.TrimPrefix(rawURL, "sqlite://")
	path = strings.TrimPrefix(path, "file:")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// sqlite allows only one writer at a time; a single connection avoids
	// "database is locked" errors under the planner's concurrent workers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	schema, err := migrationsFS.ReadFile("migrations/sqlite_schema.sql")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("read sqlite schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}

	return &Client{DB: db, Dialect: SQLite}, nil
}

// Close releases the underlying connection pool.
func (c *Client) Close() error { return c.DB.Close() }

// Rebind rewrites a query written with "?" placeholders into the dialect's
// native placeholder syntax ("?" for sqlite, "$1".."$n" for postgres).
// Writing every repository query once against "?" and rebinding at the call
// site keeps pkg/store dialect-agnostic.
func (c *Client) Rebind(query string) string {
	if c.Dialect != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
