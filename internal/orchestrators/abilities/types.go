package abilities

import (
	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
	abilitysession "github.com/KirkDiggler/rpg-builder/internal/repositories/ability_session"
	abilityrules "github.com/KirkDiggler/rpg-builder/internal/rules/abilities"
)

// StartSessionInput starts a new point-buy build for a player. With Resume
// set, the player's current session is returned when one is still live.
type StartSessionInput struct {
	PlayerID string
	Resume   bool
}

// GetSessionInput loads a build by ID
type GetSessionInput struct {
	SessionID string
	PlayerID  string
}

// SelectMethodInput switches generation method
type SelectMethodInput struct {
	SessionID string
	PlayerID  string
	Method    abilityrules.Method
}

// ApplyDeltaInput is a point-buy ±1 step
type ApplyDeltaInput struct {
	SessionID string
	PlayerID  string
	Ability   dnd5e.Ability
	Delta     int
}

// ApplyDefaultDistributionInput assigns the standard array in sheet order
type ApplyDefaultDistributionInput struct {
	SessionID string
	PlayerID  string
}

// AdjustScoreInput is a free ±1 step in standard-array or dice mode
type AdjustScoreInput struct {
	SessionID string
	PlayerID  string
	Ability   dnd5e.Ability
	Delta     int
}

// RollGroupInput rolls one 4d6 group
type RollGroupInput struct {
	SessionID string
	PlayerID  string
}

// AssignInput binds a roll group to an ability. An empty Ability unbinds it.
type AssignInput struct {
	SessionID string
	PlayerID  string
	GroupID   string
	Ability   dnd5e.Ability
}

// SetScoreInput free-edits an unbound ability in dice mode
type SetScoreInput struct {
	SessionID string
	PlayerID  string
	Ability   dnd5e.Ability
	Value     int
}

// SessionOutput is returned by every session operation. A rejected
// transition is not an error: Accepted is false, Reason says why, and the
// session is returned unchanged.
type SessionOutput struct {
	Session  *abilitysession.AbilitySession
	Accepted bool
	Reason   abilityrules.RejectionReason

	// PointsRemaining is only meaningful in point-buy mode
	PointsRemaining int
	// IsStandardArray reports whether the scores are a permutation of the array
	IsStandardArray bool

	// Group is set by RollGroup
	Group *abilityrules.RollGroup
	// Resumed is set by StartSession when an existing session was returned
	Resumed bool
}
