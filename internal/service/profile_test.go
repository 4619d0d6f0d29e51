package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/receitinhas/backend/internal/model"
	"github.com/receitinhas/backend/internal/testhelpers"
)

func seedUser(t *testing.T, db *gorm.DB) model.User {
	t.Helper()
	user := model.User{
		Name:         "Maria",
		Email:        "maria@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestGetProfileLazilyCreates(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewProfileService(db)
	user := seedUser(t, db)

	// No profile row exists yet; the first view creates one.
	profile, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria", profile.DisplayName)
	assert.Equal(t, "maria@example.com", profile.Email)
	assert.Empty(t, profile.FavoriteRecipes)

	var count int64
	require.NoError(t, db.Model(&model.UserProfile{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// A second view reuses the same row.
	_, err = svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.UserProfile{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetProfileUnknownUser(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewProfileService(db)

	_, err := svc.GetProfile(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestUpdateProfile(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewProfileService(db)
	user := seedUser(t, db)
	ctx := context.Background()

	_, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)

	err = svc.UpdateProfile(ctx, user.ID, map[string]interface{}{
		"display_name": "Maria Silva",
		"bio":          "Adoro bolos",
	})
	require.NoError(t, err)

	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", profile.DisplayName)
	assert.Equal(t, "Adoro bolos", profile.Bio)
}

func TestFavoritesAddRemove(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewProfileService(db)
	user := seedUser(t, db)
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	require.NoError(t, svc.AddFavorite(ctx, user.ID, a))
	require.NoError(t, svc.AddFavorite(ctx, user.ID, b))
	// Adding twice is a no-op.
	require.NoError(t, svc.AddFavorite(ctx, user.ID, a))

	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, profile.FavoriteRecipes, 2)
	assert.True(t, profile.FavoriteRecipes.Contains(a))
	assert.True(t, profile.FavoriteRecipes.Contains(b))

	require.NoError(t, svc.RemoveFavorite(ctx, user.ID, a))
	profile, err = svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, profile.FavoriteRecipes.Contains(a))
	assert.True(t, profile.FavoriteRecipes.Contains(b))

	// Removing something absent is harmless.
	require.NoError(t, svc.RemoveFavorite(ctx, user.ID, a))
}
