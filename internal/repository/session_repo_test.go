package repository

import (
	"context"
	"testing"
	"time"

	"blogsapi/internal/entity"
	"blogsapi/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_FindLatestByRefreshHash(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, testutil.SeedUserOptions{})
	repo := NewSessionRepository(db)

	base := time.Now().UTC().Truncate(time.Second)
	for i, token := range []string{"access-1", "access-2", "access-3"} {
		require.NoError(t, repo.Create(ctx, &entity.Session{
			UserID:           user.ID,
			TokenHash:        token,
			RefreshTokenHash: "refresh-hash",
			ExpiresAt:        base.Add(time.Duration(i) * time.Hour),
			CreatedAt:        base.Add(time.Duration(i) * time.Minute),
		}))
	}

	latest, err := repo.FindLatestByRefreshHash(ctx, "refresh-hash")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "access-3", latest.TokenHash)
	assert.True(t, latest.ExpiresAt.Equal(base.Add(2*time.Hour)))

	missing, err := repo.FindLatestByRefreshHash(ctx, "unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSessionRepository_HasSuccessor(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	user := testutil.SeedUser(t, db, testutil.SeedUserOptions{})
	repo := NewSessionRepository(db)

	previous := "old-refresh-hash"
	require.NoError(t, repo.Create(ctx, &entity.Session{
		UserID:           user.ID,
		TokenHash:        "access",
		RefreshTokenHash: "new-refresh-hash",
		RotatedFromHash:  &previous,
		ExpiresAt:        time.Now().UTC().Add(time.Hour),
		CreatedAt:        time.Now().UTC(),
	}))

	rotated, err := repo.HasSuccessor(ctx, previous)
	require.NoError(t, err)
	assert.True(t, rotated)

	rotated, err = repo.HasSuccessor(ctx, "new-refresh-hash")
	require.NoError(t, err)
	assert.False(t, rotated)
}
