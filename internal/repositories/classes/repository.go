// Package classes provides class reference data: starting equipment,
// hit die, caster type, features and spells
package classes

import (
	"context"

	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-builder/internal/rules/equipment"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=classesmock github.com/KirkDiggler/rpg-builder/internal/repositories/classes Repository

// Class is a playable class with its parsed starting equipment
type Class struct {
	Key        string
	Name       string
	HitDie     int
	CasterType dnd5e.CasterType
	Grant      *equipment.Grant
}

// GetInput identifies a class
type GetInput struct {
	Key string
}

// GetOutput contains the class
type GetOutput struct {
	Class *Class
}

// ListInput is currently empty
type ListInput struct{}

// ListOutput holds every class in key order
type ListOutput struct {
	Classes []*Class
}

// ListFeaturesInput selects a class's features
type ListFeaturesInput struct {
	ClassKey string
}

// ListFeaturesOutput holds features ordered by level
type ListFeaturesOutput struct {
	Features []*dnd5e.Feature
}

// ListSpellsInput selects a class's spell list
type ListSpellsInput struct {
	ClassKey string
}

// ListSpellsOutput holds spells ordered by level then name
type ListSpellsOutput struct {
	Spells []*dnd5e.Spell
}

// Repository defines class reference lookups
type Repository interface {
	// Get returns a class by key
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List returns every class
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// ListFeatures returns a class's features at every level
	ListFeatures(ctx context.Context, input ListFeaturesInput) (*ListFeaturesOutput, error)

	// ListSpells returns a class's spell list at every level
	ListSpells(ctx context.Context, input ListSpellsInput) (*ListSpellsOutput, error)
}
