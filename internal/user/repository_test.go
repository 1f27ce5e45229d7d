package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelagg/pkg/db/dbtest"
)

func TestSQLRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLRepository(dbtest.NewSQLite(t))

	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	u := &User{
		ID:           "3f0e0f3c-4f4e-4bd0-8d39-5a4d3a1d9a11",
		Username:     "asha",
		Email:        "asha@example.com",
		FullName:     "Asha Rao",
		Provider:     ProviderPassword,
		PasswordHash: "hash",
		CreatedAt:    created,
	}
	require.NoError(t, repo.Create(ctx, u))

	byName, err := repo.FindByUsername(ctx, "asha")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)
	assert.Equal(t, "hash", byName.PasswordHash)
	assert.True(t, created.Equal(byName.CreatedAt))

	byEmail, err := repo.FindByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", byEmail.FullName)

	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "asha", byID.Username)
}

func TestSQLRepository_NotFound(t *testing.T) {
	repo := NewSQLRepository(dbtest.NewSQLite(t))

	_, err := repo.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLRepository_Duplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLRepository(dbtest.NewSQLite(t))

	require.NoError(t, repo.Create(ctx, &User{ID: "1", Username: "asha", Email: "asha@example.com", Provider: ProviderPassword, CreatedAt: time.Now()}))

	err := repo.Create(ctx, &User{ID: "2", Username: "asha", Email: "other@example.com", Provider: ProviderPassword, CreatedAt: time.Now()})
	assert.ErrorIs(t, err, ErrUserExists)

	err = repo.Create(ctx, &User{ID: "3", Username: "other", Email: "asha@example.com", Provider: ProviderPassword, CreatedAt: time.Now()})
	assert.ErrorIs(t, err, ErrUserExists)
}
