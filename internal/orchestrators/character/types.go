package character

import (
	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-builder/internal/repositories/classes"
	"github.com/KirkDiggler/rpg-builder/internal/rules/equipment"
)

// ListEquipmentOptionsInput selects a class
type ListEquipmentOptionsInput struct {
	ClassKey string
}

// EquipmentGroup is one choice group as presented to the player
type EquipmentGroup struct {
	Index       int
	Description string
	Choose      int
	Options     []equipment.Option
}

// ListEquipmentOptionsOutput describes a class's starting equipment
type ListEquipmentOptionsOutput struct {
	Class     *classes.Class
	Mandatory []equipment.MandatoryEntry
	Groups    []EquipmentGroup
}

// CreateCharacterInput builds and persists a new character. Scores come
// from AbilitySessionID when set, otherwise from Scores.
type CreateCharacterInput struct {
	PlayerID string
	Name     string
	Race     string
	ClassKey string

	AbilitySessionID string
	Scores           *dnd5e.AbilityScores

	EquipmentMethod equipment.Method
	// Choices maps choice group index to the chosen option label
	Choices map[int]string
}

// CreateCharacterOutput reports what was stored and what could not be
type CreateCharacterOutput struct {
	Character *dnd5e.Character
	Inventory []*dnd5e.InventoryLine

	Warnings []equipment.Warning
	// Unmatched names had no catalog entry
	Unmatched []string
	// FailedInserts names matched but could not be stored
	FailedInserts []string
}

// GetCharacterInput identifies a character
type GetCharacterInput struct {
	CharacterID string
}

// GetCharacterOutput contains the character and its inventory
type GetCharacterOutput struct {
	Character *dnd5e.Character
	Inventory []*dnd5e.InventoryLine
}

// ListCharactersInput selects a player's characters
type ListCharactersInput struct {
	PlayerID string
}

// ListCharactersOutput holds characters, newest first
type ListCharactersOutput struct {
	Characters []*dnd5e.Character
}

// UpdateCharacterInput edits a character. Nil fields are left as they are.
type UpdateCharacterInput struct {
	CharacterID string
	PlayerID    string

	Name         *string
	Scores       *dnd5e.AbilityScores
	HitPoints    *int
	MaxHitPoints *int
	Level        *int
	ArmorClass   *int
	Background   *string
	Appearance   *string
}

// UpdateCharacterOutput contains the updated character
type UpdateCharacterOutput struct {
	Character *dnd5e.Character
}

// DeleteCharacterInput identifies a character owned by PlayerID
type DeleteCharacterInput struct {
	CharacterID string
	PlayerID    string
}

// DeleteCharacterOutput reports how many inventory lines went with it
type DeleteCharacterOutput struct {
	InventoryDeleted int64
}

// AddInventoryItemInput adds a catalog item, found by name, to a
// character owned by PlayerID. Quantity defaults to 1.
type AddInventoryItemInput struct {
	CharacterID string
	PlayerID    string
	ItemName    string
	Quantity    int
}

// AddInventoryItemOutput contains the new line. Exact is false when the
// item came from a substring match.
type AddInventoryItemOutput struct {
	Line  *dnd5e.InventoryLine
	Exact bool
}

// SetEquippedInput equips or unequips one line
type SetEquippedInput struct {
	CharacterID string
	PlayerID    string
	LineID      string
	Equipped    bool
}

// SetEquippedOutput contains the updated line
type SetEquippedOutput struct {
	Line *dnd5e.InventoryLine
}

// RemoveInventoryItemInput deletes one line
type RemoveInventoryItemInput struct {
	CharacterID string
	PlayerID    string
	LineID      string
}

// RemoveInventoryItemOutput is empty on success
type RemoveInventoryItemOutput struct{}

// ListSpellsInput selects a character's visible spells
type ListSpellsInput struct {
	CharacterID string
}

// ListSpellsOutput holds the spells available at the character's level
type ListSpellsOutput struct {
	CasterType    dnd5e.CasterType
	MaxSpellLevel int
	Spells        []*dnd5e.Spell
}

// ListFeaturesInput selects a character's unlocked features
type ListFeaturesInput struct {
	CharacterID string
}

// ListFeaturesOutput holds features up to the character's level
type ListFeaturesOutput struct {
	Features []*dnd5e.Feature
}
