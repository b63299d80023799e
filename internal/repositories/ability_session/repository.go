// Package abilitysession stores in-progress ability score builds
package abilitysession

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-builder/internal/rules/abilities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=abilitysessionmock github.com/KirkDiggler/rpg-builder/internal/repositories/ability_session Repository

// AbilitySession is a player's ability score build between requests
type AbilitySession struct {
	ID       string `json:"id"`
	PlayerID string `json:"player_id"`

	Build abilities.Session `json:"build"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateInput contains parameters for creating a session
type CreateInput struct {
	ID       string
	PlayerID string
	Build    abilities.Session
	TTL      time.Duration // zero uses the default
}

// CreateOutput contains the stored session
type CreateOutput struct {
	Session *AbilitySession
}

// GetInput identifies a session
type GetInput struct {
	ID string
}

// GetOutput contains the session
type GetOutput struct {
	Session *AbilitySession
}

// GetByPlayerInput identifies a player's current session
type GetByPlayerInput struct {
	PlayerID string
}

// GetByPlayerOutput contains the player's current session
type GetByPlayerOutput struct {
	Session *AbilitySession
}

// DeleteInput identifies a session to remove
type DeleteInput struct {
	ID string
}

// DeleteOutput is empty
type DeleteOutput struct{}

// Repository defines storage for ability build sessions
type Repository interface {
	// Create stores a new session and makes it the player's current one
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a session by ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetByPlayer retrieves the player's most recently created session
	GetByPlayer(ctx context.Context, input GetByPlayerInput) (*GetByPlayerOutput, error)

	// Update replaces a session, keeping its remaining TTL
	Update(ctx context.Context, session *AbilitySession) error

	// Delete removes a session
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
