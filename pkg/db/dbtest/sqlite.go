// Package dbtest opens migrated in-memory databases for repository tests.
package dbtest

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"travelagg/pkg/db"
)

// MigrationsURL points at the repository's db/migrations directory.
func MigrationsURL() string {
	_, file, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(file), "..", "..", "..", "db", "migrations")
	return "file://" + filepath.ToSlash(dir)
}

// NewSQLite returns a fresh in-memory sqlite client with every migration applied.
func NewSQLite(t testing.TB) *db.SQLClient {
	t.Helper()

	client, err := db.NewSQLClient(context.Background(), db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	mg, err := db.NewMigrator(client, MigrationsURL())
	if err != nil {
		t.Fatalf("migrator: %v", err)
	}
	if err := mg.Up(); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	return client
}
