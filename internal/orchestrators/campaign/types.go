package campaign

import (
	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
)

// CreateCampaignInput creates a campaign run by PlayerID
type CreateCampaignInput struct {
	PlayerID string
	Name     string
}

// CreateCampaignOutput contains the new campaign and its join code
type CreateCampaignOutput struct {
	Campaign *dnd5e.Campaign
}

// JoinCampaignInput joins a player, optionally with a character
type JoinCampaignInput struct {
	JoinCode    string
	PlayerID    string
	CharacterID string
}

// JoinCampaignOutput reports the membership. Joined is false when the
// player was already a member.
type JoinCampaignOutput struct {
	Campaign *dnd5e.Campaign
	Member   *dnd5e.CampaignMember
	Joined   bool
}

// GetCampaignInput loads a campaign for one of its members
type GetCampaignInput struct {
	CampaignID string
	PlayerID   string
}

// GetCampaignOutput contains the campaign and its members' characters
type GetCampaignOutput struct {
	Campaign   *dnd5e.Campaign
	Characters []*dnd5e.Character
}

// ListCampaignsInput selects every campaign a player belongs to
type ListCampaignsInput struct {
	PlayerID string
}

// ListCampaignsOutput splits the campaigns by the player's role
type ListCampaignsOutput struct {
	DMCampaigns     []*dnd5e.Campaign
	PlayerCampaigns []*dnd5e.Campaign
}

// UpdateHitPointsInput is a DM edit of a member character's hit points
type UpdateHitPointsInput struct {
	CampaignID  string
	DMPlayerID  string
	CharacterID string
	HitPoints   int
}

// UpdateHitPointsOutput contains the updated character
type UpdateHitPointsOutput struct {
	Character *dnd5e.Character
}

// GiveItemInput is a DM grant of a catalog item to a member character.
// Quantity defaults to 1.
type GiveItemInput struct {
	CampaignID  string
	DMPlayerID  string
	CharacterID string
	ItemID      string
	Quantity    int
}

// GiveItemOutput contains the new inventory line
type GiveItemOutput struct {
	Line *dnd5e.InventoryLine
}

// SearchItemsInput searches the catalog from the DM console. Limit
// defaults to 5.
type SearchItemsInput struct {
	CampaignID string
	DMPlayerID string
	Query      string
	Limit      int
}

// SearchItemsOutput holds matching catalog items in name order
type SearchItemsOutput struct {
	Items []*dnd5e.CatalogItem
}
