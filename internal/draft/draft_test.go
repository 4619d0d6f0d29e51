package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/receitinhas/backend/internal/model"
)

func TestNewStartsWithOneBlankRowPerList(t *testing.T) {
	d := New()

	assert.Len(t, d.Ingredients, 1)
	assert.Len(t, d.Instructions, 1)
	assert.Len(t, d.Memories, 1)
	assert.Equal(t, model.OccasionDefault, d.Occasion)
	assert.Equal(t, model.SubSteps[0], d.Instructions[0].SubStep)
}

func TestIngredientListMutations(t *testing.T) {
	d := New()
	d.SetIngredient(0, model.Ingredient{Name: "farinha", Quantity: "500", Unit: "g"})
	d.AddIngredient()
	d.SetIngredient(1, model.Ingredient{Name: "ovos", Quantity: "3", Unit: "unidade"})
	d.AddIngredient()
	d.SetIngredient(2, model.Ingredient{Name: "sal", Unit: model.UnitToTaste})

	// Removing the middle row shifts later rows without renumbering.
	d.RemoveIngredient(1)
	require.Len(t, d.Ingredients, 2)
	assert.Equal(t, "farinha", d.Ingredients[0].Name)
	assert.Equal(t, "sal", d.Ingredients[1].Name)
}

func TestAppendThenRemoveLastRestoresList(t *testing.T) {
	d := New()
	d.SetIngredient(0, model.Ingredient{Name: "farinha", Quantity: "500", Unit: "g"})
	before := append([]model.Ingredient(nil), d.Ingredients...)

	d.AddIngredient()
	d.RemoveIngredient(len(d.Ingredients) - 1)

	assert.Equal(t, before, d.Ingredients)
}

func TestOutOfRangeMutationsAreIgnored(t *testing.T) {
	d := New()
	before := append([]model.Ingredient(nil), d.Ingredients...)

	d.RemoveIngredient(5)
	d.RemoveIngredient(-1)
	d.SetIngredient(5, model.Ingredient{Name: "x"})
	d.SetInstruction(-1, model.Instruction{Step: "x"})
	d.RemoveMemory(99)

	assert.Equal(t, before, d.Ingredients)
	assert.Len(t, d.Instructions, 1)
	assert.Len(t, d.Memories, 1)
}

func TestValidateRequiresTitleAndDescription(t *testing.T) {
	d := New()
	assert.ErrorIs(t, d.Validate(), ErrTitleRequired)

	d.Title = "Bolo"
	assert.ErrorIs(t, d.Validate(), ErrDescriptionRequired)

	d.Description = "Um bolo simples"
	assert.NoError(t, d.Validate())
}

func TestValidateIngredientRules(t *testing.T) {
	d := New()
	d.Title = "Bolo"
	d.Description = "desc"

	// Quantity without a name is invalid.
	d.SetIngredient(0, model.Ingredient{Quantity: "2"})
	var ingErr *IngredientError
	require.ErrorAs(t, d.Validate(), &ingErr)
	assert.Equal(t, 0, ingErr.Index)

	// A name without quantity is invalid unless the unit is "a gosto".
	d.SetIngredient(0, model.Ingredient{Name: "sal"})
	require.ErrorAs(t, d.Validate(), &ingErr)

	d.SetIngredient(0, model.Ingredient{Name: "sal", Unit: model.UnitToTaste})
	assert.NoError(t, d.Validate())

	// Fully blank rows are tolerated.
	d.AddIngredient()
	assert.NoError(t, d.Validate())
}

func TestPayloadStripsBlankRows(t *testing.T) {
	d := New()
	d.Title = "Bolo"
	d.Description = "desc"
	d.SetIngredient(0, model.Ingredient{Name: "farinha", Quantity: "500", Unit: "g"})
	d.AddIngredient() // stays blank
	d.SetInstruction(0, model.Instruction{Step: "Misturar tudo", SubStep: "Bolo"})
	d.AddInstruction() // stays blank
	d.SetMemory(0, model.Memory{Text: "primeira vez que fiz"})
	d.AddMemory() // stays blank

	p := d.Payload()
	assert.Len(t, p.Ingredients, 1)
	assert.Len(t, p.Instructions, 1)
	assert.Len(t, p.Memories, 1)
	assert.Equal(t, model.SchemaVersionCurrent, p.SchemaVersion)
}

func TestPayloadDefaultsOccasion(t *testing.T) {
	d := &Draft{Title: "Bolo", Description: "desc"}
	p := d.Payload()
	assert.Equal(t, model.OccasionDefault, p.Occasion)
}

func TestFromRecipeCopiesLists(t *testing.T) {
	r := &model.Recipe{
		Title:       "Bolo",
		Description: "desc",
		Ingredients: model.IngredientList{{Name: "farinha", Quantity: "500", Unit: "g"}},
	}
	d := FromRecipe(r)
	d.SetIngredient(0, model.Ingredient{Name: "açúcar", Quantity: "200", Unit: "g"})

	// The edit session owns its copies.
	assert.Equal(t, "farinha", r.Ingredients[0].Name)
	assert.Equal(t, "açúcar", d.Ingredients[0].Name)
}
