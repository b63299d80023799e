// Package characters persists built characters and their inventory
package characters

import (
	"context"

	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=charactersmock github.com/KirkDiggler/rpg-builder/internal/repositories/characters Repository

// CreateInput contains the character to insert. ID, CreatedAt and
// UpdatedAt must already be set.
type CreateInput struct {
	Character *dnd5e.Character
}

// CreateOutput contains the stored character
type CreateOutput struct {
	Character *dnd5e.Character
}

// GetInput identifies a character
type GetInput struct {
	ID string
}

// GetOutput contains the character
type GetOutput struct {
	Character *dnd5e.Character
}

// ListByPlayerInput selects a player's characters
type ListByPlayerInput struct {
	PlayerID string
}

// ListByPlayerOutput holds characters, newest first
type ListByPlayerOutput struct {
	Characters []*dnd5e.Character
}

// UpdateInput replaces the mutable fields of a character
type UpdateInput struct {
	Character *dnd5e.Character
}

// UpdateOutput contains the updated character
type UpdateOutput struct {
	Character *dnd5e.Character
}

// DeleteInput identifies the character to delete
type DeleteInput struct {
	ID string
}

// DeleteOutput is empty on success
type DeleteOutput struct{}

// AddInventoryInput contains one inventory line to insert
type AddInventoryInput struct {
	Line *dnd5e.InventoryLine
}

// AddInventoryOutput contains the stored line
type AddInventoryOutput struct {
	Line *dnd5e.InventoryLine
}

// ListInventoryInput selects a character's inventory
type ListInventoryInput struct {
	CharacterID string
}

// ListInventoryOutput holds lines with item names filled in
type ListInventoryOutput struct {
	Lines []*dnd5e.InventoryLine
}

// SetEquippedInput selects one inventory line of a character
type SetEquippedInput struct {
	CharacterID string
	LineID      string
	Equipped    bool
}

// SetEquippedOutput contains the updated line
type SetEquippedOutput struct {
	Line *dnd5e.InventoryLine
}

// RemoveInventoryInput selects one inventory line of a character
type RemoveInventoryInput struct {
	CharacterID string
	LineID      string
}

// RemoveInventoryOutput is empty on success
type RemoveInventoryOutput struct{}

// DeleteInventoryInput selects a character's inventory
type DeleteInventoryInput struct {
	CharacterID string
}

// DeleteInventoryOutput reports how many lines were removed
type DeleteInventoryOutput struct {
	LinesDeleted int64
}

// Repository defines character storage operations
type Repository interface {
	// Create inserts a new character
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a character by ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// ListByPlayer returns a player's characters
	ListByPlayer(ctx context.Context, input ListByPlayerInput) (*ListByPlayerOutput, error)

	// Update replaces a character's editable fields and purse
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a character. Its inventory must already be gone.
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// AddInventory inserts one inventory line
	AddInventory(ctx context.Context, input AddInventoryInput) (*AddInventoryOutput, error)

	// ListInventory returns a character's inventory
	ListInventory(ctx context.Context, input ListInventoryInput) (*ListInventoryOutput, error)

	// SetEquipped toggles a line's equipped flag. A line owned by another
	// character is NotFound.
	SetEquipped(ctx context.Context, input SetEquippedInput) (*SetEquippedOutput, error)

	// RemoveInventory deletes one line
	RemoveInventory(ctx context.Context, input RemoveInventoryInput) (*RemoveInventoryOutput, error)

	// DeleteInventory removes every inventory line of a character
	DeleteInventory(ctx context.Context, input DeleteInventoryInput) (*DeleteInventoryOutput, error)
}
