// Package store is the sole mediator between the application and the recipe
// collection. It is stateless per call and carries no cache; concurrent
// writers of the same document clobber each other, last writer wins.
package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/receitinhas/backend/internal/model"
)

// updateColumns is the full field set a caller owns on update. The gateway
// does not merge list fields: whatever arrives replaces the stored value.
var updateColumns = []string{
	"schema_version", "title", "description", "ingredients", "instructions",
	"image_url", "occasion", "difficulty", "preparation_time",
	"secret_message", "rating", "memories",
}

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create persists a new recipe stamped with the owner already set on the
// record. Blank list rows are silently dropped, not rejected. The returned
// id is server-assigned and immutable.
func (s *Store) Create(ctx context.Context, recipe *model.Recipe) (uuid.UUID, error) {
	stripBlankRows(recipe)
	recipe.ID = uuid.Nil
	recipe.SchemaVersion = model.SchemaVersionCurrent
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return uuid.Nil, classifyWrite(err)
	}
	return recipe.ID, nil
}

// Get fetches a single recipe by id. A missing id yields ErrNotFound, which
// callers render as an empty state rather than a failure.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, classifyRead(err)
	}
	return &recipe, nil
}

// List fetches every recipe owned by ownerID, newest first. The query leans
// on the composite (user_id, created_at desc) index; while that index is
// being built the call fails with ErrIndexBuilding.
func (s *Store) List(ctx context.Context, ownerID uuid.UUID) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, classifyRead(err)
	}
	return recipes, nil
}

// Update overwrites the caller-owned fields of an existing recipe. Owner and
// creation timestamp are immutable; everything else is replaced wholesale.
func (s *Store) Update(ctx context.Context, id uuid.UUID, recipe *model.Recipe) error {
	stripBlankRows(recipe)
	recipe.SchemaVersion = model.SchemaVersionCurrent

	var existing model.Recipe
	if err := s.db.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		return classifyRead(err)
	}

	err := s.db.WithContext(ctx).
		Model(&model.Recipe{}).
		Where("id = ?", id).
		Select(updateColumns).
		Updates(recipe).Error
	return classifyWrite(err)
}

// Delete removes the document. It does not cascade to image blobs; callers
// that manage images delete them first and tolerate blobs that are already
// gone.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	var existing model.Recipe
	if err := s.db.WithContext(ctx).First(&existing, "id = ?", id).Error; err != nil {
		return classifyRead(err)
	}
	err := s.db.WithContext(ctx).Delete(&model.Recipe{}, "id = ?", id).Error
	return classifyWrite(err)
}

// stripBlankRows drops empty list entries before persisting. An all-empty
// ingredient row, an empty instruction step, or an empty memory came from an
// untouched form row and is dropped silently.
func stripBlankRows(recipe *model.Recipe) {
	ingredients := recipe.Ingredients[:0]
	for _, in := range recipe.Ingredients {
		if in.Name == "" && in.Quantity == "" {
			continue
		}
		ingredients = append(ingredients, in)
	}
	recipe.Ingredients = ingredients

	instructions := recipe.Instructions[:0]
	for _, in := range recipe.Instructions {
		if in.Step == "" {
			continue
		}
		instructions = append(instructions, in)
	}
	recipe.Instructions = instructions

	memories := recipe.Memories[:0]
	for _, m := range recipe.Memories {
		if m.Text == "" && m.ImageURL == "" {
			continue
		}
		memories = append(memories, m)
	}
	recipe.Memories = memories
}
