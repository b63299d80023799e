// Package items provides the read-only item catalog store
package items

import (
	"context"

	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-builder/internal/rules/catalog"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=itemsmock github.com/KirkDiggler/rpg-builder/internal/repositories/items Repository

// DefaultSearchLimit caps Search when no limit is given
const DefaultSearchLimit = 5

// SearchInput is a substring search over item names
type SearchInput struct {
	Query string
	Limit int
}

// SearchOutput holds matches in name order
type SearchOutput struct {
	Items []*dnd5e.CatalogItem
}

// GetInput identifies one item
type GetInput struct {
	ID string
}

// GetOutput holds the item
type GetOutput struct {
	Item *dnd5e.CatalogItem
}

// Repository is the item catalog. It satisfies the matcher's lookup
// interface and adds browsing for the DM console.
type Repository interface {
	catalog.BatchRepository

	// Get returns one item by ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Search returns up to Limit items whose name contains Query
	Search(ctx context.Context, input SearchInput) (*SearchOutput, error)
}
