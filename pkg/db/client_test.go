package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelagg/pkg/db"
	"travelagg/pkg/db/dbtest"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		name   string
		driver db.Driver
		query  string
		want   string
	}{
		{
			name:   "postgres numbers placeholders",
			driver: db.DriverPostgres,
			query:  "SELECT id FROM packages WHERE agent_id = ? AND is_active = ?",
			want:   "SELECT id FROM packages WHERE agent_id = $1 AND is_active = $2",
		},
		{
			name:   "sqlite keeps question marks",
			driver: db.DriverSQLite,
			query:  "SELECT id FROM packages WHERE agent_id = ?",
			want:   "SELECT id FROM packages WHERE agent_id = ?",
		},
		{
			name:   "no placeholders",
			driver: db.DriverPostgres,
			query:  "SELECT 1",
			want:   "SELECT 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, db.Rebind(tt.driver, tt.query))
		})
	}
}

func TestNewSQLClient_UnsupportedDriver(t *testing.T) {
	_, err := db.NewSQLClient(context.Background(), db.Driver("mysql"), "")
	assert.Error(t, err)
}

func TestMigrator_UpIsIdempotent(t *testing.T) {
	client := dbtest.NewSQLite(t)

	mg, err := db.NewMigrator(client, dbtest.MigrationsURL())
	require.NoError(t, err)
	require.NoError(t, mg.Up())

	version, dirty, err := mg.Version()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(2), version)
}

func TestWithTransaction_CommitAndRollback(t *testing.T) {
	ctx := context.Background()
	client := dbtest.NewSQLite(t)

	err := client.WithTransaction(ctx, sql.LevelDefault, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, client.Rebind("INSERT INTO destinations (name, latitude, longitude) VALUES (?, ?, ?)"), "Goa", 15.2993, 74.1240)
		return err
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = client.WithTransaction(ctx, sql.LevelDefault, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, client.Rebind("INSERT INTO destinations (name) VALUES (?)"), "Kerala"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, client.QueryRowContext(ctx, "SELECT COUNT(*) FROM destinations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestIsUniqueViolation(t *testing.T) {
	ctx := context.Background()
	client := dbtest.NewSQLite(t)

	_, err := client.ExecContext(ctx, "INSERT INTO destinations (name) VALUES (?)", "Goa")
	require.NoError(t, err)

	_, err = client.ExecContext(ctx, "INSERT INTO destinations (name) VALUES (?)", "Goa")
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err))

	assert.False(t, db.IsUniqueViolation(errors.New("boom")))
	assert.False(t, db.IsUniqueViolation(nil))
}
