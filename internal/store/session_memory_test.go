package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/user-directory/models"
)

func TestMemorySessionRegistry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := newMemorySessionRegistry(func() time.Time { return now })
	ctx := context.Background()

	live := models.Session{TokenID: "live", UserID: 1, ExpiresAt: now.Add(time.Hour)}
	stale := models.Session{TokenID: "stale", UserID: 2, ExpiresAt: now.Add(-time.Second)}
	require.NoError(t, r.Register(ctx, live))
	require.NoError(t, r.Register(ctx, stale))

	got, err := r.Lookup(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, live, got)

	_, err = r.Lookup(ctx, "stale")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.Lookup(ctx, "unknown")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, r.Revoke(ctx, "live"))
	_, err = r.Lookup(ctx, "live")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, r.Revoke(ctx, "never-issued"))
}

func TestMemorySessionRegistry_PurgeExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := newMemorySessionRegistry(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, r.Register(ctx, models.Session{TokenID: "a", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, r.Register(ctx, models.Session{TokenID: "b", ExpiresAt: now}))
	require.NoError(t, r.Register(ctx, models.Session{TokenID: "c", ExpiresAt: now.Add(time.Minute)}))

	purged, err := r.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, purged)

	_, err = r.Lookup(ctx, "c")
	assert.NoError(t, err)

	purged, err = r.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, purged)
}
