package v1alpha1

import (
	"time"

	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
	abilityrules "github.com/KirkDiggler/rpg-builder/internal/rules/abilities"
	"github.com/KirkDiggler/rpg-builder/internal/rules/equipment"
)

// Ability session messages

type StartAbilitySessionRequest struct {
	PlayerID string `json:"player_id"`
	Resume   bool   `json:"resume,omitempty"`
}

type AbilitySessionRequest struct {
	SessionID string `json:"session_id"`
	PlayerID  string `json:"player_id"`
}

type SelectMethodRequest struct {
	SessionID string `json:"session_id"`
	PlayerID  string `json:"player_id"`
	Method    string `json:"method"`
}

// ScoreDeltaRequest serves both ApplyDelta and AdjustScore
type ScoreDeltaRequest struct {
	SessionID string `json:"session_id"`
	PlayerID  string `json:"player_id"`
	Ability   string `json:"ability"`
	Delta     int    `json:"delta"`
}

type AssignRollRequest struct {
	SessionID string `json:"session_id"`
	PlayerID  string `json:"player_id"`
	GroupID   string `json:"group_id"`
	Ability   string `json:"ability"`
}

type SetScoreRequest struct {
	SessionID string `json:"session_id"`
	PlayerID  string `json:"player_id"`
	Ability   string `json:"ability"`
	Value     int    `json:"value"`
}

type AbilitySession struct {
	ID         string                   `json:"id"`
	PlayerID   string                   `json:"player_id"`
	Method     string                   `json:"method"`
	Scores     dnd5e.AbilityScores      `json:"scores"`
	RollGroups []abilityrules.RollGroup `json:"roll_groups"`
	ExpiresAt  time.Time                `json:"expires_at"`
}

type AbilitySessionResponse struct {
	Session         *AbilitySession         `json:"session"`
	Accepted        bool                    `json:"accepted"`
	Reason          string                  `json:"reason,omitempty"`
	PointsRemaining int                     `json:"points_remaining"`
	IsStandardArray bool                    `json:"is_standard_array"`
	Group           *abilityrules.RollGroup `json:"group,omitempty"`
	Resumed         bool                    `json:"resumed,omitempty"`
}

// Character messages

type Class struct {
	Key        string `json:"key"`
	Name       string `json:"name"`
	HitDie     int    `json:"hit_die"`
	CasterType string `json:"caster_type"`
}

type EquipmentGroup struct {
	Index       int                `json:"index"`
	Description string             `json:"description"`
	Choose      int                `json:"choose"`
	Options     []equipment.Option `json:"options"`
}

type ListEquipmentOptionsRequest struct {
	ClassKey string `json:"class_key"`
}

type ListEquipmentOptionsResponse struct {
	Class     *Class                     `json:"class"`
	Mandatory []equipment.MandatoryEntry `json:"mandatory"`
	Groups    []EquipmentGroup           `json:"groups"`
}

type Character struct {
	ID           string              `json:"id"`
	PlayerID     string              `json:"player_id"`
	Name         string              `json:"name"`
	Race         string              `json:"race"`
	ClassKey     string              `json:"class_key"`
	Level        int                 `json:"level"`
	Scores       dnd5e.AbilityScores `json:"scores"`
	HitPoints    int                 `json:"hit_points"`
	MaxHitPoints int                 `json:"max_hit_points"`
	ArmorClass   int                 `json:"armor_class"`
	Background   string              `json:"background,omitempty"`
	Appearance   string              `json:"appearance,omitempty"`
	Currency     dnd5e.Currency      `json:"currency"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

type InventoryLine struct {
	ID         string `json:"id"`
	ItemID     string `json:"item_id"`
	ItemName   string `json:"item_name"`
	Quantity   int    `json:"quantity"`
	IsEquipped bool   `json:"is_equipped"`
}

type CreateCharacterRequest struct {
	PlayerID         string               `json:"player_id"`
	Name             string               `json:"name"`
	Race             string               `json:"race"`
	ClassKey         string               `json:"class_key"`
	AbilitySessionID string               `json:"ability_session_id,omitempty"`
	Scores           *dnd5e.AbilityScores `json:"scores,omitempty"`
	EquipmentMethod  string               `json:"equipment_method,omitempty"`
	// Choices maps choice group index to option label
	Choices map[int]string `json:"choices,omitempty"`
}

type CreateCharacterResponse struct {
	Character     *Character          `json:"character"`
	Inventory     []*InventoryLine    `json:"inventory"`
	Warnings      []equipment.Warning `json:"warnings,omitempty"`
	Unmatched     []string            `json:"unmatched,omitempty"`
	FailedInserts []string            `json:"failed_inserts,omitempty"`
}

// CharacterRequest serves GetCharacter, ListSpells and ListFeatures
type CharacterRequest struct {
	CharacterID string `json:"character_id"`
}

type GetCharacterResponse struct {
	Character *Character       `json:"character"`
	Inventory []*InventoryLine `json:"inventory"`
}

type ListCharactersRequest struct {
	PlayerID string `json:"player_id"`
}

type ListCharactersResponse struct {
	Characters []*Character `json:"characters"`
}

type UpdateCharacterRequest struct {
	CharacterID  string               `json:"character_id"`
	PlayerID     string               `json:"player_id"`
	Name         *string              `json:"name,omitempty"`
	Scores       *dnd5e.AbilityScores `json:"scores,omitempty"`
	HitPoints    *int                 `json:"hit_points,omitempty"`
	MaxHitPoints *int                 `json:"max_hit_points,omitempty"`
	Level        *int                 `json:"level,omitempty"`
	ArmorClass   *int                 `json:"armor_class,omitempty"`
	Background   *string              `json:"background,omitempty"`
	Appearance   *string              `json:"appearance,omitempty"`
}

type CharacterResponse struct {
	Character *Character `json:"character"`
}

type DeleteCharacterRequest struct {
	CharacterID string `json:"character_id"`
	PlayerID    string `json:"player_id"`
}

type DeleteCharacterResponse struct {
	InventoryDeleted int64 `json:"inventory_deleted"`
}

type AddInventoryItemRequest struct {
	CharacterID string `json:"character_id"`
	PlayerID    string `json:"player_id"`
	ItemName    string `json:"item_name"`
	Quantity    int    `json:"quantity,omitempty"`
}

type AddInventoryItemResponse struct {
	Line  *InventoryLine `json:"line"`
	Exact bool           `json:"exact"`
}

type SetEquippedRequest struct {
	CharacterID string `json:"character_id"`
	PlayerID    string `json:"player_id"`
	LineID      string `json:"line_id"`
	Equipped    bool   `json:"equipped"`
}

// InventoryLineResponse serves SetEquipped and GiveItem
type InventoryLineResponse struct {
	Line *InventoryLine `json:"line"`
}

type RemoveInventoryItemRequest struct {
	CharacterID string `json:"character_id"`
	PlayerID    string `json:"player_id"`
	LineID      string `json:"line_id"`
}

type RemoveInventoryItemResponse struct{}

type Spell struct {
	Name   string `json:"name"`
	Level  int    `json:"level"`
	School string `json:"school"`
}

type ListSpellsResponse struct {
	CasterType    string   `json:"caster_type"`
	MaxSpellLevel int      `json:"max_spell_level"`
	Spells        []*Spell `json:"spells"`
}

type Feature struct {
	Name        string `json:"name"`
	Level       int    `json:"level"`
	Description string `json:"description"`
}

type ListFeaturesResponse struct {
	Features []*Feature `json:"features"`
}

// Campaign messages

type CampaignMember struct {
	PlayerID    string    `json:"player_id"`
	CharacterID string    `json:"character_id,omitempty"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}

type Campaign struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	DMPlayerID string            `json:"dm_player_id"`
	JoinCode   string            `json:"join_code"`
	CreatedAt  time.Time         `json:"created_at"`
	Members    []*CampaignMember `json:"members"`
}

type CreateCampaignRequest struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

type CampaignResponse struct {
	Campaign *Campaign `json:"campaign"`
}

type JoinCampaignRequest struct {
	JoinCode    string `json:"join_code"`
	PlayerID    string `json:"player_id"`
	CharacterID string `json:"character_id,omitempty"`
}

type JoinCampaignResponse struct {
	Campaign *Campaign       `json:"campaign"`
	Member   *CampaignMember `json:"member"`
	Joined   bool            `json:"joined"`
}

type GetCampaignRequest struct {
	CampaignID string `json:"campaign_id"`
	PlayerID   string `json:"player_id"`
}

type GetCampaignResponse struct {
	Campaign   *Campaign    `json:"campaign"`
	Characters []*Character `json:"characters"`
}

type ListCampaignsRequest struct {
	PlayerID string `json:"player_id"`
}

type ListCampaignsResponse struct {
	DMCampaigns     []*Campaign `json:"dm_campaigns"`
	PlayerCampaigns []*Campaign `json:"player_campaigns"`
}

type UpdateHitPointsRequest struct {
	CampaignID  string `json:"campaign_id"`
	DMPlayerID  string `json:"dm_player_id"`
	CharacterID string `json:"character_id"`
	HitPoints   int    `json:"hit_points"`
}

type GiveItemRequest struct {
	CampaignID  string `json:"campaign_id"`
	DMPlayerID  string `json:"dm_player_id"`
	CharacterID string `json:"character_id"`
	ItemID      string `json:"item_id"`
	Quantity    int    `json:"quantity,omitempty"`
}

type SearchItemsRequest struct {
	CampaignID string `json:"campaign_id"`
	DMPlayerID string `json:"dm_player_id"`
	Query      string `json:"query"`
	Limit      int    `json:"limit,omitempty"`
}

type CatalogItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	CostGP      float64 `json:"cost_gp"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description,omitempty"`
}

type SearchItemsResponse struct {
	Items []*CatalogItem `json:"items"`
}
