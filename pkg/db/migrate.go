package db

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrator runs the schema migrations found at sourceURL (e.g.
// "file://db/migrations") against an open SQLClient. The migrate instance
// shares the client's *sql.DB, so it is never closed here.
type Migrator struct {
	m *migrate.Migrate
}

func NewMigrator(client *SQLClient, sourceURL string) (*Migrator, error) {
	var (
		drv database.Driver
		err error
	)

	switch client.Driver() {
	case DriverPostgres:
		drv, err = postgres.WithInstance(client.DB(), &postgres.Config{})
	case DriverSQLite:
		drv, err = sqlite.WithInstance(client.DB(), &sqlite.Config{})
	default:
		err = fmt.Errorf("unsupported db driver %q", client.Driver())
	}
	if err != nil {
		return nil, fmt.Errorf("migrate driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, string(client.Driver()), drv)
	if err != nil {
		return nil, fmt.Errorf("migrate init: %w", err)
	}
	return &Migrator{m: m}, nil
}

// Up applies all pending migrations. No pending migrations is not an error.
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Down rolls back every migration.
func (mg *Migrator) Down() error {
	if err := mg.m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Version reports the current schema version; 0 means nothing applied.
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}
