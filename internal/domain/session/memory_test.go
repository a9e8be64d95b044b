package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "k", "u1", now.Add(time.Minute)))

	userID, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	now = now.Add(time.Minute)
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, store.entries)

	require.NoError(t, store.Set(ctx, "k2", "u2", now.Add(time.Hour)))
	require.NoError(t, store.Clear(ctx, "k2"))
	_, err = store.Get(ctx, "k2")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, store.Clear(ctx, "missing"))
}
