package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/receitinhas/backend/internal/model"
)

func sample() []model.Recipe {
	return []model.Recipe{
		{Title: "Bolo de Chocolate", Occasion: "Aniversário", Difficulty: "Médio", PreparationTime: "Médio (30-60 min)"},
		{Title: "Bolo de Cenoura", Occasion: "Dia a Dia", Difficulty: "Fácil", PreparationTime: "Rápido (até 30 min)"},
		{Title: "Mousse de Maracujá", Occasion: "Dia a Dia", Difficulty: "Fácil", PreparationTime: "Rápido (até 30 min)"},
		{Title: "Pão de Queijo", Occasion: "Doces", Difficulty: "Difícil", PreparationTime: "Demorado (mais de 60 min)"},
	}
}

func TestApplyNoFiltersReturnsEverything(t *testing.T) {
	recipes := sample()

	got := Apply(recipes, Params{})
	assert.Equal(t, recipes, got)

	got = Apply(recipes, Params{Occasion: AllOccasions, Difficulty: AllDifficulties, PreparationTime: AllTimes})
	assert.Equal(t, recipes, got)
}

func TestApplyTitleSearchIsCaseInsensitiveSubstring(t *testing.T) {
	recipes := sample()

	got := Apply(recipes, Params{Query: "bolo"})
	assert.Len(t, got, 2)
	assert.Equal(t, "Bolo de Chocolate", got[0].Title)
	assert.Equal(t, "Bolo de Cenoura", got[1].Title)

	got = Apply(recipes, Params{Query: "MARACUJÁ"})
	assert.Len(t, got, 1)
	assert.Equal(t, "Mousse de Maracujá", got[0].Title)
}

func TestApplyFacetsAreConjunctive(t *testing.T) {
	recipes := sample()

	got := Apply(recipes, Params{Query: "bolo", Difficulty: "Fácil"})
	assert.Len(t, got, 1)
	assert.Equal(t, "Bolo de Cenoura", got[0].Title)

	got = Apply(recipes, Params{Query: "bolo", Difficulty: "Difícil"})
	assert.Empty(t, got)
}

func TestApplyOccasionSwitchIsImmediate(t *testing.T) {
	recipes := sample()

	got := Apply(recipes, Params{Occasion: "Doces"})
	assert.Len(t, got, 1)
	assert.Equal(t, "Pão de Queijo", got[0].Title)

	got = Apply(recipes, Params{Occasion: "Salgados"})
	assert.Empty(t, got)

	// Back to the sentinel restores the full list.
	got = Apply(recipes, Params{Occasion: AllOccasions})
	assert.Equal(t, recipes, got)
}

func TestApplyPreservesInputOrder(t *testing.T) {
	recipes := sample()

	got := Apply(recipes, Params{Difficulty: "Fácil"})
	assert.Len(t, got, 2)
	assert.Equal(t, "Bolo de Cenoura", got[0].Title)
	assert.Equal(t, "Mousse de Maracujá", got[1].Title)
}

func TestApplyEmptyInput(t *testing.T) {
	got := Apply(nil, Params{Query: "bolo"})
	assert.Empty(t, got)
}

func TestParamsIsZero(t *testing.T) {
	assert.True(t, Params{}.IsZero())
	assert.True(t, Params{Occasion: AllOccasions, Difficulty: AllDifficulties, PreparationTime: AllTimes}.IsZero())
	assert.False(t, Params{Query: "x"}.IsZero())
	assert.False(t, Params{Difficulty: "Fácil"}.IsZero())
}
