package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchemaVersionCurrent is the recipe document shape written by this backend.
// Version 1 documents carried plain-string ingredient/instruction/memory
// lists; they are upgraded in place by database.MigrateLegacyRecipes.
const SchemaVersionCurrent = 2

// Known occasion values. The column itself is a free string so documents
// written under older value sets keep filtering correctly.
var Occasions = []string{
	"Dia a Dia",
	"Aniversário",
	"Dia dos Namorados",
	"Data Especial",
	"Surpresa",
	"Outra",
}

// OccasionDefault is the everyday occasion that hides the special fields
// (secret message, memories) in the client.
const OccasionDefault = "Dia a Dia"

var Difficulties = []string{"Fácil", "Médio", "Difícil"}

var PreparationTimes = []string{
	"Rápido (até 30 min)",
	"Médio (30-60 min)",
	"Demorado (mais de 60 min)",
}

// SubSteps are the instruction grouping categories, in display order.
// The first entry is the default for newly appended instruction rows.
var SubSteps = []string{"Bolo", "Cobertura", "Caldas", "Montagem", "Outros"}

// UnitToTaste waives the quantity requirement on an ingredient.
const UnitToTaste = "a gosto"

var Units = []string{
	"g", "kg", "ml", "l",
	"xícara", "colher de sopa", "colher de chá",
	"unidade", UnitToTaste,
}

// Ingredient is one ordered row of a recipe's ingredient list. Order is
// display order; duplicates are allowed.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit,omitempty"`
}

// Instruction is one ordered preparation step. SubStep clusters steps into
// sections (cake vs. frosting) at display time.
type Instruction struct {
	Step    string `json:"step"`
	SubStep string `json:"sub_step"`
}

// Memory is an optional free-text note with an optional photo, shown for
// non-default occasions.
type Memory struct {
	Text     string `json:"text"`
	ImageURL string `json:"image_url,omitempty"`
}

// IngredientList is stored as a JSONB column.
type IngredientList []Ingredient

// Value implements the driver.Valuer interface
func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *IngredientList) Scan(value interface{}) error {
	return scanJSONList(value, l)
}

// InstructionList is stored as a JSONB column.
type InstructionList []Instruction

func (l InstructionList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *InstructionList) Scan(value interface{}) error {
	return scanJSONList(value, l)
}

// MemoryList is stored as a JSONB column.
type MemoryList []Memory

func (l MemoryList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *MemoryList) Scan(value interface{}) error {
	return scanJSONList(value, l)
}

func scanJSONList(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, dest)
}

// Recipe is a user-owned record. A recipe is visible and editable only to
// the session whose identity equals UserID. CreatedAt is server-assigned
// and is the default list ordering key, newest first.
type Recipe struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
	SchemaVersion   int             `gorm:"not null;default:2" json:"schema_version"`
	Title           string          `gorm:"size:255;not null" json:"title"`
	Description     string          `gorm:"type:text" json:"description"`
	Ingredients     IngredientList  `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions    InstructionList `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	ImageURL        string          `gorm:"size:512" json:"image_url,omitempty"`
	Occasion        string          `gorm:"size:50;not null;default:'Dia a Dia'" json:"occasion"`
	Difficulty      string          `gorm:"size:50" json:"difficulty,omitempty"`
	PreparationTime string          `gorm:"size:50" json:"preparation_time,omitempty"`
	SecretMessage   string          `gorm:"type:text" json:"secret_message,omitempty"`
	Rating          int             `gorm:"check:rating >= 0 AND rating <= 5" json:"rating,omitempty"`
	Memories        MemoryList      `gorm:"type:jsonb;not null;default:'[]'" json:"memories"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_recipes_owner_created,priority:1" json:"user_id"`
}

// BeforeCreate assigns the document id. Postgres could default this, but
// the sqlite test databases have no gen_random_uuid().
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.SchemaVersion == 0 {
		r.SchemaVersion = SchemaVersionCurrent
	}
	return nil
}

// InstructionGroup is one sub-step section of a recipe's instructions.
type InstructionGroup struct {
	SubStep string        `json:"sub_step"`
	Steps   []Instruction `json:"steps"`
}

// GroupInstructions clusters the instruction list by sub-step. Groups appear
// in order of first occurrence; steps keep their relative order within each
// group.
func GroupInstructions(instructions InstructionList) []InstructionGroup {
	var groups []InstructionGroup
	index := make(map[string]int)
	for _, in := range instructions {
		i, ok := index[in.SubStep]
		if !ok {
			i = len(groups)
			index[in.SubStep] = i
			groups = append(groups, InstructionGroup{SubStep: in.SubStep})
		}
		groups[i].Steps = append(groups[i].Steps, in)
	}
	return groups
}
