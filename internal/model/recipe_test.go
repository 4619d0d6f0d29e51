package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupInstructionsFirstOccurrenceOrder(t *testing.T) {
	instructions := InstructionList{
		{Step: "Bater os ovos", SubStep: "Bolo"},
		{Step: "Derreter o chocolate", SubStep: "Cobertura"},
		{Step: "Juntar a farinha", SubStep: "Bolo"},
		{Step: "Montar as camadas", SubStep: "Montagem"},
	}

	groups := GroupInstructions(instructions)
	require.Len(t, groups, 3)

	assert.Equal(t, "Bolo", groups[0].SubStep)
	assert.Equal(t, []Instruction{
		{Step: "Bater os ovos", SubStep: "Bolo"},
		{Step: "Juntar a farinha", SubStep: "Bolo"},
	}, groups[0].Steps)

	assert.Equal(t, "Cobertura", groups[1].SubStep)
	assert.Equal(t, "Montagem", groups[2].SubStep)
}

func TestGroupInstructionsEmpty(t *testing.T) {
	assert.Empty(t, GroupInstructions(nil))
}

func TestIngredientListValueEmptyIsJSONArray(t *testing.T) {
	v, err := IngredientList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestIngredientListScanRoundTrip(t *testing.T) {
	var l IngredientList
	err := l.Scan([]byte(`[{"name":"farinha","quantity":"500","unit":"g"}]`))
	require.NoError(t, err)
	require.Len(t, l, 1)
	assert.Equal(t, Ingredient{Name: "farinha", Quantity: "500", Unit: "g"}, l[0])
}

func TestUUIDListContains(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	l := UUIDList{a}

	assert.True(t, l.Contains(a))
	assert.False(t, l.Contains(b))
	assert.False(t, UUIDList(nil).Contains(a))
}
