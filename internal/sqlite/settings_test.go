package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSettingsRepository(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSettingsRepository(db)
	ctx := context.Background()

	_, ok, err := repo.Get(ctx, "device_id")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.Set(ctx, "device_id", "user-1"))
	require.NoError(t, repo.Set(ctx, "device_id", "user-2"))

	value, ok, err := repo.Get(ctx, "device_id")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "user-2", value)
}
