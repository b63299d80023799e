package testutils

import (
	"time"

	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
)

// Fixture defaults
const (
	TestPlayerID      = "player-test-001"
	TestCharacterName = "Thorin Oakenshield"
)

// TestTime is the fixed clock reading used by fixtures
var TestTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// CreateTestCharacter creates a freshly built fighter
func CreateTestCharacter(playerID string) *dnd5e.Character {
	return &dnd5e.Character{
		ID:       "char-test-001",
		PlayerID: playerID,
		Name:     TestCharacterName,
		Race:     "dwarf",
		ClassKey: "fighter",
		Level:    dnd5e.StartingLevel,
		Scores: dnd5e.AbilityScores{
			Str: 15, Dex: 13, Con: 14, Int: 8, Wis: 12, Cha: 10,
		},
		HitPoints:    dnd5e.StartingHitPoints,
		MaxHitPoints: dnd5e.StartingHitPoints,
		ArmorClass:   dnd5e.StartingArmorClass,
		CreatedAt:    TestTime,
		UpdatedAt:    TestTime,
	}
}

// CreateTestAbilityScores returns the standard array in sheet order
func CreateTestAbilityScores() dnd5e.AbilityScores {
	return dnd5e.AbilityScores{Str: 15, Dex: 14, Con: 13, Int: 12, Wis: 10, Cha: 8}
}

// CreateTestCampaign creates a campaign run by dmPlayerID
func CreateTestCampaign(dmPlayerID string) *dnd5e.Campaign {
	return &dnd5e.Campaign{
		ID:         "camp-test-001",
		Name:       "Lost Mine of Phandelver",
		DMPlayerID: dmPlayerID,
		JoinCode:   "ABC-123",
		CreatedAt:  TestTime,
		Members: []*dnd5e.CampaignMember{{
			CampaignID: "camp-test-001",
			PlayerID:   dmPlayerID,
			Role:       dnd5e.RoleDM,
			JoinedAt:   TestTime,
		}},
	}
}
