package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrusoleg/contacts-api/internal/models"
)

func TestStorage_CreateUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("успешное создание пользователя", func(t *testing.T) {
		user, err := storage.CreateUser(ctx, models.User{
			Username:     "ivan",
			Email:        "ivan@example.com",
			PasswordHash: "hash",
		})
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, "ivan@example.com", user.Email)
		assert.False(t, user.Confirmed)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("повторный email возвращает ErrDuplicate", func(t *testing.T) {
		_, err := storage.CreateUser(ctx, models.User{
			Username:     "ivan2",
			Email:        "ivan@example.com",
			PasswordHash: "hash",
		})
		assert.ErrorIs(t, err, ErrDuplicate)
	})
}

func TestStorage_GetUserByEmail(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	id := factory.CreateUser(t, "anna", "anna@example.com", "hash", true)

	t.Run("существующий пользователь", func(t *testing.T) {
		user, err := storage.GetUserByEmail(ctx, "anna@example.com")
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "anna", user.Username)
		assert.True(t, user.Confirmed)
		assert.Nil(t, user.Avatar)
	})

	t.Run("неизвестный email возвращает ErrNotFound", func(t *testing.T) {
		_, err := storage.GetUserByEmail(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStorage_ListUsers(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	factory.CreateUser(t, "user1", "user1@example.com", "hash", false)
	factory.CreateUser(t, "user2", "user2@example.com", "hash", false)
	factory.CreateUser(t, "user3", "user3@example.com", "hash", false)

	t.Run("пагинация по limit и offset", func(t *testing.T) {
		users, err := storage.ListUsers(ctx, 2, 1)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "user2", users[0].Username)
		assert.Equal(t, "user3", users[1].Username)
	})
}

func TestStorage_ConfirmUserEmail(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)
	ctx := context.Background()

	factory.CreateUser(t, "boris", "boris@example.com", "hash", false)

	t.Run("успешное подтверждение почты", func(t *testing.T) {
		err := storage.ConfirmUserEmail(ctx, "boris@example.com")
		require.NoError(t, err)
		verify.VerifyUserConfirmed(t, "boris@example.com", true)
	})

	t.Run("неизвестный email возвращает ErrNotFound", func(t *testing.T) {
		err := storage.ConfirmUserEmail(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStorage_UpdateUserAvatar(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	id := factory.CreateUser(t, "dana", "dana@example.com", "hash", true)

	t.Run("успешное сохранение аватара", func(t *testing.T) {
		user, err := storage.UpdateUserAvatar(ctx, id, "https://storage.example.com/avatars/dana.png")
		require.NoError(t, err)
		require.NotNil(t, user.Avatar)
		assert.Equal(t, "https://storage.example.com/avatars/dana.png", *user.Avatar)
	})

	t.Run("неизвестный пользователь возвращает ErrNotFound", func(t *testing.T) {
		_, err := storage.UpdateUserAvatar(ctx, 9999, "https://storage.example.com/avatars/x.png")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStorage_CheckDatabaseReady(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("база готова", func(t *testing.T) {
		assert.NoError(t, storage.CheckDatabaseReady(ctx))
	})

	t.Run("нет таблицы contacts", func(t *testing.T) {
		_, err := storage.DB.Exec("DROP TABLE contacts")
		require.NoError(t, err)

		err = storage.CheckDatabaseReady(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "table contacts is missing")
	})
}
