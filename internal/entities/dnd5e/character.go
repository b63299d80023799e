package dnd5e

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Starting values for a freshly built character
const (
	StartingLevel      = 1
	StartingHitPoints  = 10
	StartingArmorClass = 10

	MinLevel      = 1
	MaxLevel      = 20
	MaxArmorClass = 30

	// Character edits accept a wider range than any generation method
	MinEditableScore = 1
	MaxEditableScore = 30

	EntityTypeCharacter = "character"
)

// Currency is a coin purse
type Currency struct {
	GP int `json:"gp"`
	SP int `json:"sp"`
	CP int `json:"cp"`
}

// Character is a persisted player character
type Character struct {
	ID           string
	PlayerID     string
	Name         string
	Race         string
	ClassKey     string
	Level        int
	Scores       AbilityScores
	HitPoints    int
	MaxHitPoints int
	ArmorClass   int
	Background   string
	Appearance   string
	Currency     Currency
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

var _ core.Entity = (*Character)(nil)

// GetID returns the character ID
func (c *Character) GetID() string {
	return c.ID
}

// GetType returns the entity type used when a character owns other records
func (c *Character) GetType() string {
	return EntityTypeCharacter
}

// InventoryLine is one catalog item owned by a character
type InventoryLine struct {
	ID          string
	CharacterID string
	ItemID      string
	ItemName    string
	Quantity    int
	IsEquipped  bool
}

// CatalogItem is a compendium item. Matching only needs ID and Name.
type CatalogItem struct {
	ID          string
	Name        string
	Category    string
	CostGP      float64
	Weight      float64
	Description string
}
