package db

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectFor(t *testing.T) {
	d, err := dialectFor("pgx")
	require.NoError(t, err)
	assert.Equal(t, "pgx", d)

	d, err = dialectFor("sqlite3")
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", d)

	_, err = dialectFor("mysql")
	assert.Error(t, err)
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	_, err := Connect(context.Background(), Options{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported driver")
}

func TestConnect_BadPostgresDSN(t *testing.T) {
	_, err := Connect(context.Background(), Options{Driver: DriverPostgres, DSN: "postgres://%zz"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse DSN")
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(migrations, "migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "00001_create_users.sql", entries[0].Name())
}

func TestMigrate(t *testing.T) {
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	var called bool
	gooseUp = func(ctx context.Context, db *sqlx.DB) error {
		called = true
		return nil
	}

	require.NoError(t, Migrate(context.Background(), sqlx.NewDb(mockDB, "pgx"), zerolog.Nop()))
	assert.True(t, called)

	gooseUp = func(ctx context.Context, db *sqlx.DB) error { return errors.New("boom") }
	err = Migrate(context.Background(), sqlx.NewDb(mockDB, "sqlite3"), zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	err = Migrate(context.Background(), sqlx.NewDb(mockDB, "sqlmock"), zerolog.Nop())
	assert.Error(t, err)
}

func TestGooseLogger(t *testing.T) {
	var buf bytes.Buffer
	l := gooseLogger{log: zerolog.New(&buf)}

	l.Printf("OK   %s (%s)\n", "00001_create_users.sql", "1ms")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "OK   00001_create_users.sql (1ms)", line["message"])
}
