package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/user-directory/internal/config"
	"github.com/MKhiriev/user-directory/internal/logger"
	"github.com/MKhiriev/user-directory/models"
)

func TestNewStorages_Memory(t *testing.T) {
	s, err := NewStorages(context.Background(), config.Storage{DB: config.DB{Driver: config.DriverMemory}}, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	assert.IsType(t, &memoryUserStore{}, s.Users)
	assert.IsType(t, &memorySessionRegistry{}, s.Sessions)
}

func TestNewStorages_UnsupportedDriver(t *testing.T) {
	_, err := NewStorages(context.Background(), config.Storage{DB: config.DB{Driver: "oracle"}}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

// TestNewStorages_SQLite runs the SQL user store end to end against an
// in-memory SQLite database bootstrapped by the embedded migrations.
func TestNewStorages_SQLite(t *testing.T) {
	ctx := context.Background()
	s, err := NewStorages(ctx, config.Storage{DB: config.DB{Driver: config.DriverSQLite, DSN: "file::memory:"}}, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	created, err := s.Users.Create(ctx, "Das Tan", "Das@Tan.com", "hash")
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = s.Users.Create(ctx, "Impostor", "das@tan.com", "hash")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	byEmail, err := s.Users.FetchByEmail(ctx, "DAS@TAN.COM")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "Das@Tan.com", byEmail.Email)

	name := "Dastan"
	updated, err := s.Users.Update(ctx, created.ID, models.UserUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Dastan", updated.Name)
	assert.Equal(t, "hash", updated.PasswordHash)

	_, err = s.Users.Fetch(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	for i := 0; i < 31; i++ {
		_, err = s.Users.Create(ctx, "Filler", fmt.Sprintf("filler-%d@example.com", i), "h")
		require.NoError(t, err)
	}

	total, err := s.Users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 32, total)

	page, err := s.Users.Page(ctx, 2, models.DefaultPageSize)
	require.NoError(t, err)
	require.Len(t, page.Users, 2)
	assert.Equal(t, int64(31), page.Users[0].ID)
	assert.False(t, page.HasNext)
}
