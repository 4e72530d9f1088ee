package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shoppu-io/shoppu-backend/pkg/db/models"
	"github.com/shoppu-io/shoppu-backend/pkg/enums"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	dsn := "file:users_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.User{}))

	return NewRepository(conn)
}

func TestCreateAppliesDefaults(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user, err := repo.Create(ctx, CreateUserDTO{
		Email:        "shopper@example.com",
		PasswordHash: "hash",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, enums.UserRoleCustomer, user.Role)
	assert.True(t, user.IsActive)
	assert.Nil(t, user.LastLoginAt)
}

func TestFindByEmailAndID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{
		Email:        "admin@example.com",
		PasswordHash: "hash",
		Role:         enums.UserRoleAdmin,
	})
	require.NoError(t, err)

	byEmail, err := repo.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, enums.UserRoleAdmin, byEmail.Role)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, byID.Email)

	_, err = repo.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateLastLogin(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{
		Email:        "shopper@example.com",
		PasswordHash: "hash",
	})
	require.NoError(t, err)

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.UpdateLastLogin(ctx, created.ID, at))

	reloaded, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.LastLoginAt)
	assert.WithinDuration(t, at, *reloaded.LastLoginAt, time.Second)
}
