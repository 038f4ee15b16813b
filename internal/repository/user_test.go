package repository

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Save(t *testing.T) {
	t.Run("Save_Success", func(t *testing.T) {
		ctx, st := suite.NewSQLite(t)

		userRepo := NewUserRepository(st.Connection)

		// Given: a user
		user := &entity.User{
			ID:           "u1",
			Username:     "alice",
			PasswordHash: "hash",
			CreatedAt:    time.Now().UTC(),
		}

		// When: Save is called
		err := userRepo.Save(ctx, user)

		// Then: no error should be returned
		require.NoError(t, err)
	})

	t.Run("Save_DuplicateUsername", func(t *testing.T) {
		ctx, st := suite.NewSQLite(t)

		userRepo := NewUserRepository(st.Connection)

		// Given: a stored user
		user := &entity.User{ID: "u1", Username: "alice", PasswordHash: "hash", CreatedAt: time.Now().UTC()}
		require.NoError(t, userRepo.Save(ctx, user))

		// When: saving another user with the same username
		duplicate := &entity.User{ID: "u2", Username: "alice", PasswordHash: "hash", CreatedAt: time.Now().UTC()}
		err := userRepo.Save(ctx, duplicate)

		// Then: the unique constraint rejects it
		require.Error(t, err)
	})
}

func TestUserRepository_FindByUsername(t *testing.T) {
	t.Run("FindByUsername_Success", func(t *testing.T) {
		ctx, st := suite.NewSQLite(t)

		userRepo := NewUserRepository(st.Connection)

		// Given: a stored user
		user := &entity.User{ID: "u1", Username: "alice", PasswordHash: "hash", CreatedAt: time.Now().UTC()}
		require.NoError(t, userRepo.Save(ctx, user))

		// When: FindByUsername is called
		found, err := userRepo.FindByUsername(ctx, "alice")

		// Then: the stored user comes back
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, user.Username, found.Username)
		assert.Equal(t, user.PasswordHash, found.PasswordHash)
	})

	t.Run("FindByUsername_NotFound", func(t *testing.T) {
		ctx, st := suite.NewSQLite(t)

		userRepo := NewUserRepository(st.Connection)

		// When: FindByUsername is called for an unknown name
		_, err := userRepo.FindByUsername(ctx, "nobody")

		// Then: an ErrUserNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrUserNotFound)
	})
}

func TestUserRepository_FindByID(t *testing.T) {
	t.Run("FindByID_Success", func(t *testing.T) {
		ctx, st := suite.NewSQLite(t)

		userRepo := NewUserRepository(st.Connection)

		// Given: a stored user
		user := &entity.User{ID: "u1", Username: "alice", PasswordHash: "hash", CreatedAt: time.Now().UTC()}
		require.NoError(t, userRepo.Save(ctx, user))

		// When: FindByID is called
		found, err := userRepo.FindByID(ctx, "u1")

		// Then: the stored user comes back
		require.NoError(t, err)
		assert.Equal(t, user.Username, found.Username)
	})

	t.Run("FindByID_NotFound", func(t *testing.T) {
		ctx, st := suite.NewSQLite(t)

		userRepo := NewUserRepository(st.Connection)

		// When: FindByID is called with an unknown id
		_, err := userRepo.FindByID(ctx, "missing")

		// Then: an ErrUserNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrUserNotFound)
	})
}
