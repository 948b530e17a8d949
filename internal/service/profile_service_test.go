package service

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_GetByUsername_NotFound(t *testing.T) {
	t.Parallel()

	userRepo := noopUserRepo()
	userRepo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		return nil, models.NewNotFoundError("User", username)
	}
	svc := NewProfileService(userRepo)

	_, err := svc.GetByUsername(context.Background(), "ghost")
	assertNotFoundError(t, err)
}

func TestProfileService_UpdateOwnProfile(t *testing.T) {
	t.Parallel()

	t.Run("updates only provided fields", func(t *testing.T) {
		t.Parallel()
		var saved *models.User
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			if saved != nil {
				return saved, nil
			}
			return &models.User{ID: id, Username: "author", Email: "old@example.com", FirstName: "Old"}, nil
		}
		userRepo.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}
		svc := NewProfileService(userRepo)

		first := "New"
		user, err := svc.UpdateOwnProfile(context.Background(), UpdateProfileInput{
			UserID:    1,
			FirstName: &first,
		})
		require.NoError(t, err)
		assert.Equal(t, "New", user.FirstName)
		assert.Equal(t, "old@example.com", user.Email, "email untouched when not provided")
		assert.Equal(t, "author", user.Username, "username is immutable")
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		t.Parallel()
		updated := false
		userRepo := noopUserRepo()
		userRepo.updateFn = func(_ context.Context, _ *models.User) error {
			updated = true
			return nil
		}
		svc := NewProfileService(userRepo)

		bad := "not-an-email"
		_, err := svc.UpdateOwnProfile(context.Background(), UpdateProfileInput{UserID: 1, Email: &bad})
		assertValidationError(t, err)
		assert.False(t, updated)
	})
}
