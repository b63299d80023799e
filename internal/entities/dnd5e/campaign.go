package dnd5e

import "time"

// Campaign member roles
const (
	RoleDM     = "dm"
	RolePlayer = "player"
)

// Campaign groups player characters under one DM
type Campaign struct {
	ID         string
	Name       string
	DMPlayerID string
	JoinCode   string
	CreatedAt  time.Time
	Members    []*CampaignMember
}

// CampaignMember links a player (and optionally their character) to a campaign
type CampaignMember struct {
	CampaignID  string
	PlayerID    string
	CharacterID string
	Role        string
	JoinedAt    time.Time
}
