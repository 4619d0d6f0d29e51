package database

import (
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/receitinhas/backend/internal/model"
)

// RunMigrations brings the schema up to date and upgrades any recipes
// still stored in the legacy flat-list format.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.UserProfile{},
		&model.Recipe{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return MigrateLegacyRecipes(db)
}

// legacyRecipe is the pre-v2 shape: ingredients, instructions and
// memories were plain string lists.
type legacyRecipe struct {
	ID            string
	SchemaVersion int
	Ingredients   []byte
	Instructions  []byte
	Memories      []byte
}

// MigrateLegacyRecipes rewrites recipes with schema_version < 2 into the
// structured format. Plain strings become rows with only the text field
// set; instructions land in the first sub-step group.
func MigrateLegacyRecipes(db *gorm.DB) error {
	var legacy []legacyRecipe
	err := db.Table("recipes").
		Select("id", "schema_version", "ingredients", "instructions", "memories").
		Where("schema_version < ?", model.SchemaVersionCurrent).
		Find(&legacy).Error
	if err != nil {
		return fmt.Errorf("failed to load legacy recipes: %w", err)
	}

	for _, rec := range legacy {
		updates := map[string]interface{}{
			"schema_version": model.SchemaVersionCurrent,
		}

		if list, ok := decodeStringList(rec.Ingredients); ok {
			ingredients := make(model.IngredientList, 0, len(list))
			for _, name := range list {
				ingredients = append(ingredients, model.Ingredient{Name: name})
			}
			updates["ingredients"] = ingredients
		}

		if list, ok := decodeStringList(rec.Instructions); ok {
			instructions := make(model.InstructionList, 0, len(list))
			for _, step := range list {
				instructions = append(instructions, model.Instruction{
					Step:    step,
					SubStep: model.SubSteps[0],
				})
			}
			updates["instructions"] = instructions
		}

		if list, ok := decodeStringList(rec.Memories); ok {
			memories := make(model.MemoryList, 0, len(list))
			for _, text := range list {
				memories = append(memories, model.Memory{Text: text})
			}
			updates["memories"] = memories
		}

		if err := db.Table("recipes").Where("id = ?", rec.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to upgrade recipe %s: %w", rec.ID, err)
		}
		log.Printf("Upgraded recipe %s to schema v%d", rec.ID, model.SchemaVersionCurrent)
	}

	return nil
}

// decodeStringList reports whether raw is a JSON array of strings. lists
// already in the structured format decode as objects and are left alone.
func decodeStringList(raw []byte) ([]string, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, false
	}
	return list, true
}
