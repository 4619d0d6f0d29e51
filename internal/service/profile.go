package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/receitinhas/backend/internal/model"
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile returns the user's profile, creating it lazily from the user
// record on first view.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	profile = model.UserProfile{
		UserID:          userID,
		DisplayName:     user.Name,
		Email:           user.Email,
		FavoriteRecipes: model.UUIDList{},
	}
	if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile overwrites the editable profile fields.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, updates map[string]interface{}) error {
	return s.db.WithContext(ctx).
		Model(&model.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
}

// AddFavorite records a recipe id on the profile's favorites list.
func (s *ProfileService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if profile.FavoriteRecipes.Contains(recipeID) {
		return nil
	}
	profile.FavoriteRecipes = append(profile.FavoriteRecipes, recipeID)
	return s.db.WithContext(ctx).
		Model(&model.UserProfile{}).
		Where("user_id = ?", userID).
		Update("favorite_recipes", profile.FavoriteRecipes).Error
}

// RemoveFavorite drops a recipe id from the favorites list.
func (s *ProfileService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	kept := profile.FavoriteRecipes[:0]
	for _, id := range profile.FavoriteRecipes {
		if id != recipeID {
			kept = append(kept, id)
		}
	}
	return s.db.WithContext(ctx).
		Model(&model.UserProfile{}).
		Where("user_id = ?", userID).
		Update("favorite_recipes", kept).Error
}
