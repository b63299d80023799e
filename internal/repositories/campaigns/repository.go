// Package campaigns stores campaigns and their membership
package campaigns

import (
	"context"

	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=campaignsmock github.com/KirkDiggler/rpg-builder/internal/repositories/campaigns Repository

// CreateInput contains the campaign to insert. Members on the campaign are
// inserted in the same transaction.
type CreateInput struct {
	Campaign *dnd5e.Campaign
}

// CreateOutput contains the stored campaign
type CreateOutput struct {
	Campaign *dnd5e.Campaign
}

// GetInput identifies a campaign by ID
type GetInput struct {
	ID string
}

// GetOutput contains the campaign with its members
type GetOutput struct {
	Campaign *dnd5e.Campaign
}

// GetByJoinCodeInput identifies a campaign by join code
type GetByJoinCodeInput struct {
	JoinCode string
}

// GetByJoinCodeOutput contains the campaign with its members
type GetByJoinCodeOutput struct {
	Campaign *dnd5e.Campaign
}

// AddMemberInput contains the member to add
type AddMemberInput struct {
	Member *dnd5e.CampaignMember
}

// AddMemberOutput contains the stored member
type AddMemberOutput struct {
	Member *dnd5e.CampaignMember
}

// GetMemberInput identifies a membership
type GetMemberInput struct {
	CampaignID string
	PlayerID   string
}

// GetMemberOutput contains the membership
type GetMemberOutput struct {
	Member *dnd5e.CampaignMember
}

// ListByPlayerInput selects the campaigns a player runs or plays in
type ListByPlayerInput struct {
	PlayerID string
}

// ListByPlayerOutput holds campaigns with members, newest first
type ListByPlayerOutput struct {
	Campaigns []*dnd5e.Campaign
}

// Repository defines campaign storage operations
type Repository interface {
	// Create inserts a campaign. A join code collision returns AlreadyExists.
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get returns a campaign and its members
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetByJoinCode returns the campaign using the join code
	GetByJoinCode(ctx context.Context, input GetByJoinCodeInput) (*GetByJoinCodeOutput, error)

	// AddMember adds a player to a campaign
	AddMember(ctx context.Context, input AddMemberInput) (*AddMemberOutput, error)

	// GetMember returns a single membership
	GetMember(ctx context.Context, input GetMemberInput) (*GetMemberOutput, error)

	// ListByPlayer returns every campaign the player is a member of
	ListByPlayer(ctx context.Context, input ListByPlayerInput) (*ListByPlayerOutput, error)
}
