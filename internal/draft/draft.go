// Package draft manages the editable recipe form state: the variable-length
// ordered list fields and the submit validation that gates a store write.
package draft

import (
	"errors"
	"fmt"
	"time"

	"github.com/receitinhas/backend/internal/model"
)

// Validation failures block submission; nothing is partially saved.
var (
	ErrTitleRequired       = errors.New("o título é obrigatório")
	ErrDescriptionRequired = errors.New("a descrição é obrigatória")
)

// IngredientError reports an invalid ingredient row by position.
type IngredientError struct {
	Index  int
	Reason string
}

func (e *IngredientError) Error() string {
	return fmt.Sprintf("ingrediente %d: %s", e.Index+1, e.Reason)
}

// Draft is one form session. List mutations are index-addressed against the
// owned ordered slices; the whole draft is committed as a single payload on
// submit. Position is positional, not identity-based: removing an entry
// shifts its successors with no renumbering.
type Draft struct {
	ID              string                `json:"id,omitempty"`
	CreatedAt       time.Time             `json:"created_at,omitempty"`
	UpdatedAt       time.Time             `json:"updated_at,omitempty"`
	UserID          string                `json:"user_id,omitempty"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Ingredients     []model.Ingredient    `json:"ingredients"`
	Instructions    []model.Instruction   `json:"instructions"`
	Memories        []model.Memory        `json:"memories"`
	ImageURL        string                `json:"image_url,omitempty"`
	Occasion        string                `json:"occasion"`
	Difficulty      string                `json:"difficulty,omitempty"`
	PreparationTime string                `json:"preparation_time,omitempty"`
	SecretMessage   string                `json:"secret_message,omitempty"`
	Rating          int                   `json:"rating,omitempty"`
}

// New starts a blank form session with one empty row per list, the way the
// create screen opens.
func New() *Draft {
	d := &Draft{Occasion: model.OccasionDefault}
	d.AddIngredient()
	d.AddInstruction()
	d.AddMemory()
	return d
}

// FromRecipe starts an edit session over an existing record.
func FromRecipe(r *model.Recipe) *Draft {
	return &Draft{
		Title:           r.Title,
		Description:     r.Description,
		Ingredients:     append([]model.Ingredient(nil), r.Ingredients...),
		Instructions:    append([]model.Instruction(nil), r.Instructions...),
		Memories:        append([]model.Memory(nil), r.Memories...),
		ImageURL:        r.ImageURL,
		Occasion:        r.Occasion,
		Difficulty:      r.Difficulty,
		PreparationTime: r.PreparationTime,
		SecretMessage:   r.SecretMessage,
		Rating:          r.Rating,
	}
}

// AddIngredient appends a blank ingredient row.
func (d *Draft) AddIngredient() {
	d.Ingredients = append(d.Ingredients, model.Ingredient{})
}

// RemoveIngredient removes the row at index; later rows keep their relative
// order. Out-of-range indexes are ignored.
func (d *Draft) RemoveIngredient(index int) {
	if index < 0 || index >= len(d.Ingredients) {
		return
	}
	d.Ingredients = append(d.Ingredients[:index], d.Ingredients[index+1:]...)
}

// SetIngredient replaces the row at index, leaving siblings untouched.
func (d *Draft) SetIngredient(index int, in model.Ingredient) {
	if index < 0 || index >= len(d.Ingredients) {
		return
	}
	d.Ingredients[index] = in
}

// AddInstruction appends a blank step defaulting to the first sub-step
// category.
func (d *Draft) AddInstruction() {
	d.Instructions = append(d.Instructions, model.Instruction{SubStep: model.SubSteps[0]})
}

func (d *Draft) RemoveInstruction(index int) {
	if index < 0 || index >= len(d.Instructions) {
		return
	}
	d.Instructions = append(d.Instructions[:index], d.Instructions[index+1:]...)
}

func (d *Draft) SetInstruction(index int, in model.Instruction) {
	if index < 0 || index >= len(d.Instructions) {
		return
	}
	d.Instructions[index] = in
}

// AddMemory appends a blank memory row.
func (d *Draft) AddMemory() {
	d.Memories = append(d.Memories, model.Memory{})
}

func (d *Draft) RemoveMemory(index int) {
	if index < 0 || index >= len(d.Memories) {
		return
	}
	d.Memories = append(d.Memories[:index], d.Memories[index+1:]...)
}

func (d *Draft) SetMemory(index int, m model.Memory) {
	if index < 0 || index >= len(d.Memories) {
		return
	}
	d.Memories[index] = m
}

// Validate applies the submit rules: title and description must be
// non-empty, and every non-blank ingredient row needs a name and — unless
// its unit is "a gosto" — a quantity. Blank rows are not an error; Payload
// strips them.
func (d *Draft) Validate() error {
	if d.Title == "" {
		return ErrTitleRequired
	}
	if d.Description == "" {
		return ErrDescriptionRequired
	}
	for i, in := range d.Ingredients {
		if in.Name == "" && in.Quantity == "" {
			continue
		}
		if in.Name == "" {
			return &IngredientError{Index: i, Reason: "o nome é obrigatório"}
		}
		if in.Quantity == "" && in.Unit != model.UnitToTaste {
			return &IngredientError{Index: i, Reason: "a quantidade é obrigatória"}
		}
	}
	return nil
}

// Payload assembles the record handed to the store gateway. Blank list rows
// are silently dropped; the store strips them again on write, but the
// payload the caller sees is already clean.
func (d *Draft) Payload() *model.Recipe {
	occasion := d.Occasion
	if occasion == "" {
		occasion = model.OccasionDefault
	}

	recipe := &model.Recipe{
		SchemaVersion:   model.SchemaVersionCurrent,
		Title:           d.Title,
		Description:     d.Description,
		ImageURL:        d.ImageURL,
		Occasion:        occasion,
		Difficulty:      d.Difficulty,
		PreparationTime: d.PreparationTime,
		SecretMessage:   d.SecretMessage,
		Rating:          d.Rating,
		Ingredients:     model.IngredientList{},
		Instructions:    model.InstructionList{},
		Memories:        model.MemoryList{},
	}
	for _, in := range d.Ingredients {
		if in.Name == "" && in.Quantity == "" {
			continue
		}
		recipe.Ingredients = append(recipe.Ingredients, in)
	}
	for _, in := range d.Instructions {
		if in.Step == "" {
			continue
		}
		recipe.Instructions = append(recipe.Instructions, in)
	}
	for _, m := range d.Memories {
		if m.Text == "" && m.ImageURL == "" {
			continue
		}
		recipe.Memories = append(recipe.Memories, m)
	}
	return recipe
}
