package db

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Options configures the connection pool.
type Options struct {
	Driver      string
	DSN         string
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
}

func Connect(ctx context.Context, opts Options) (*sqlx.DB, error) {
	db, err := open(opts)
	if err != nil {
		return nil, err
	}

	// ---- Connection Pool Settings ----
	db.SetMaxOpenConns(opts.MaxOpen)
	db.SetMaxIdleConns(opts.MaxIdle)
	db.SetConnMaxLifetime(opts.MaxLifetime)

	// ---- Connectivity Check ----
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db: failed to connect: %w", err)
	}

	// ---- Health Check Query ----
	var tmp int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&tmp); err != nil {
		db.Close()
		return nil, fmt.Errorf("db: health check failed: %w", err)
	}

	return db, nil
}

func open(opts Options) (*sqlx.DB, error) {
	switch opts.Driver {
	case DriverPostgres:
		// Parse DSN → pgx config struct
		cfg, err := pgx.ParseConfig(opts.DSN)
		if err != nil {
			return nil, fmt.Errorf("db: failed to parse DSN: %w", err)
		}

		// Fail fast on startup if PG is unreachable
		cfg.ConnectTimeout = 5 * time.Second

		// Wrap pgx's stdlib adapter in sqlx for struct scanning
		return sqlx.NewDb(stdlib.OpenDB(*cfg), "pgx"), nil

	case DriverSQLite:
		db, err := sqlx.Open("sqlite3", opts.DSN)
		if err != nil {
			return nil, fmt.Errorf("db: failed to open sqlite: %w", err)
		}
		return db, nil
	}

	return nil, fmt.Errorf("db: unsupported driver %q", opts.Driver)
}

// gooseUp is a seam for tests.
var gooseUp = func(ctx context.Context, db *sqlx.DB) error {
	return goose.UpContext(ctx, db.DB, "migrations")
}

// gooseLogger sends goose output to zerolog instead of the standard logger.
type gooseLogger struct {
	log zerolog.Logger
}

var _ goose.Logger = gooseLogger{}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Fatal().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Migrate applies the embedded schema migrations for the connection's driver.
func Migrate(ctx context.Context, db *sqlx.DB, log zerolog.Logger) error {
	dialect, err := dialectFor(db.DriverName())
	if err != nil {
		return err
	}

	goose.SetLogger(gooseLogger{log: log.With().Str("component", "migrate").Logger()})
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("db: set dialect: %w", err)
	}

	if err := gooseUp(ctx, db); err != nil {
		return fmt.Errorf("db: migrate: %w", err)
	}
	return nil
}

func dialectFor(driverName string) (string, error) {
	switch driverName {
	case "pgx":
		return "pgx", nil
	case "sqlite3":
		return "sqlite3", nil
	}
	return "", fmt.Errorf("db: no migration dialect for driver %q", driverName)
}
