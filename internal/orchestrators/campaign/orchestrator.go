// Package campaign implements campaigns and the DM console
package campaign

//go:generate mockgen -destination=mock/mock_service.go -package=campaignmock github.com/KirkDiggler/rpg-builder/internal/orchestrators/campaign Service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-builder/internal/errors"
	"github.com/KirkDiggler/rpg-builder/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-builder/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-builder/internal/pkg/telemetry"
	"github.com/KirkDiggler/rpg-builder/internal/repositories/campaigns"
	"github.com/KirkDiggler/rpg-builder/internal/repositories/characters"
	"github.com/KirkDiggler/rpg-builder/internal/repositories/items"
)

const (
	// DefaultSearchLimit caps DM console item searches
	DefaultSearchLimit = 5

	// joinCodeAttempts bounds retries on join code collisions
	joinCodeAttempts = 3
)

var tracer = telemetry.Tracer("orchestrators/campaign")

// Service defines campaign operations
type Service interface {
	CreateCampaign(ctx context.Context, input *CreateCampaignInput) (*CreateCampaignOutput, error)
	JoinCampaign(ctx context.Context, input *JoinCampaignInput) (*JoinCampaignOutput, error)
	GetCampaign(ctx context.Context, input *GetCampaignInput) (*GetCampaignOutput, error)
	ListCampaigns(ctx context.Context, input *ListCampaignsInput) (*ListCampaignsOutput, error)

	// DM console
	UpdateHitPoints(ctx context.Context, input *UpdateHitPointsInput) (*UpdateHitPointsOutput, error)
	GiveItem(ctx context.Context, input *GiveItemInput) (*GiveItemOutput, error)
	SearchItems(ctx context.Context, input *SearchItemsInput) (*SearchItemsOutput, error)
}

// Config holds the dependencies for the campaign orchestrator
type Config struct {
	CampaignRepo   campaigns.Repository
	CharacterRepo  characters.Repository
	ItemRepo       items.Repository
	IDGenerator    idgen.Generator
	JoinCodeGen    idgen.Generator
	InventoryIDGen idgen.Generator
	Clock          clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CampaignRepo == nil {
		vb.RequiredField("CampaignRepo")
	}
	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.ItemRepo == nil {
		vb.RequiredField("ItemRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.JoinCodeGen == nil {
		vb.RequiredField("JoinCodeGen")
	}
	if c.InventoryIDGen == nil {
		vb.RequiredField("InventoryIDGen")
	}

	return vb.Build()
}

type orchestrator struct {
	campaignRepo   campaigns.Repository
	characterRepo  characters.Repository
	itemRepo       items.Repository
	idGen          idgen.Generator
	joinCodeGen    idgen.Generator
	inventoryIDGen idgen.Generator
	clock          clock.Clock
}

// NewOrchestrator creates a new campaign orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &orchestrator{
		campaignRepo:   cfg.CampaignRepo,
		characterRepo:  cfg.CharacterRepo,
		itemRepo:       cfg.ItemRepo,
		idGen:          cfg.IDGenerator,
		joinCodeGen:    cfg.JoinCodeGen,
		inventoryIDGen: cfg.InventoryIDGen,
		clock:          clk,
	}, nil
}

// CreateCampaign creates a campaign with the creator as its DM
func (o *orchestrator) CreateCampaign(ctx context.Context, input *CreateCampaignInput) (*CreateCampaignOutput, error) {
	ctx, span := tracer.Start(ctx, "campaign.CreateCampaign")
	defer span.End()

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("player_id", input.PlayerID, vb)
	errors.ValidateRequired("name", input.Name, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	id := o.idGen.Generate()
	now := o.clock.Now()

	var lastErr error
	for attempt := 1; attempt <= joinCodeAttempts; attempt++ {
		c := &dnd5e.Campaign{
			ID:         id,
			Name:       input.Name,
			DMPlayerID: input.PlayerID,
			JoinCode:   o.joinCodeGen.Generate(),
			CreatedAt:  now,
			Members: []*dnd5e.CampaignMember{{
				CampaignID: id,
				PlayerID:   input.PlayerID,
				Role:       dnd5e.RoleDM,
				JoinedAt:   now,
			}},
		}

		out, err := o.campaignRepo.Create(ctx, campaigns.CreateInput{Campaign: c})
		if err == nil {
			span.SetAttributes(attribute.String("campaign.id", id))
			slog.Info("Created campaign", "campaign_id", id, "dm_player_id", input.PlayerID)
			return &CreateCampaignOutput{Campaign: out.Campaign}, nil
		}
		if !errors.IsAlreadyExists(err) {
			return nil, errors.Wrap(err, "failed to create campaign")
		}

		slog.Warn("Join code collision, retrying", "attempt", attempt, "join_code", c.JoinCode)
		lastErr = err
	}

	return nil, errors.Wrap(lastErr, "failed to allocate a unique join code")
}

// JoinCampaign adds a player to the campaign behind a join code. Joining
// twice is a no-op.
func (o *orchestrator) JoinCampaign(ctx context.Context, input *JoinCampaignInput) (*JoinCampaignOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("join_code", input.JoinCode, vb)
	errors.ValidateRequired("player_id", input.PlayerID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	found, err := o.campaignRepo.GetByJoinCode(ctx, campaigns.GetByJoinCodeInput{JoinCode: input.JoinCode})
	if err != nil {
		return nil, errors.Wrap(err, "failed to find campaign")
	}
	c := found.Campaign

	if existing := memberOf(c, input.PlayerID); existing != nil {
		return &JoinCampaignOutput{Campaign: c, Member: existing}, nil
	}

	if input.CharacterID != "" {
		char, err := o.getCharacter(ctx, input.CharacterID)
		if err != nil {
			return nil, err
		}
		if char.PlayerID != input.PlayerID {
			return nil, errors.PermissionDeniedf("character %s belongs to another player", input.CharacterID)
		}
	}

	member := &dnd5e.CampaignMember{
		CampaignID:  c.ID,
		PlayerID:    input.PlayerID,
		CharacterID: input.CharacterID,
		Role:        dnd5e.RolePlayer,
		JoinedAt:    o.clock.Now(),
	}
	if _, err := o.campaignRepo.AddMember(ctx, campaigns.AddMemberInput{Member: member}); err != nil {
		if errors.IsAlreadyExists(err) {
			// lost a race with a concurrent join
			existing, getErr := o.campaignRepo.GetMember(ctx, campaigns.GetMemberInput{CampaignID: c.ID, PlayerID: input.PlayerID})
			if getErr != nil {
				return nil, errors.Wrap(getErr, "failed to get campaign member")
			}
			return &JoinCampaignOutput{Campaign: c, Member: existing.Member}, nil
		}
		return nil, errors.Wrap(err, "failed to join campaign")
	}
	c.Members = append(c.Members, member)

	slog.Info("Player joined campaign", "campaign_id", c.ID, "player_id", input.PlayerID, "character_id", input.CharacterID)
	return &JoinCampaignOutput{Campaign: c, Member: member, Joined: true}, nil
}

// GetCampaign returns the campaign and the characters its members brought
func (o *orchestrator) GetCampaign(ctx context.Context, input *GetCampaignInput) (*GetCampaignOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.getCampaign(ctx, input.CampaignID)
	if err != nil {
		return nil, err
	}
	if memberOf(c, input.PlayerID) == nil {
		return nil, errors.PermissionDeniedf("player %s is not a member of campaign %s", input.PlayerID, c.ID)
	}

	output := &GetCampaignOutput{Campaign: c}
	for _, m := range c.Members {
		if m.CharacterID == "" {
			continue
		}
		char, err := o.getCharacter(ctx, m.CharacterID)
		if err != nil {
			slog.Warn("Failed to load member character", "campaign_id", c.ID, "character_id", m.CharacterID, "error", err)
			continue
		}
		output.Characters = append(output.Characters, char)
	}

	return output, nil
}

// ListCampaigns returns the campaigns a player runs and the ones they play
// in, newest first
func (o *orchestrator) ListCampaigns(ctx context.Context, input *ListCampaignsInput) (*ListCampaignsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	out, err := o.campaignRepo.ListByPlayer(ctx, campaigns.ListByPlayerInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list campaigns")
	}

	output := &ListCampaignsOutput{}
	for _, c := range out.Campaigns {
		if c.DMPlayerID == input.PlayerID {
			output.DMCampaigns = append(output.DMCampaigns, c)
			continue
		}
		output.PlayerCampaigns = append(output.PlayerCampaigns, c)
	}

	return output, nil
}

// UpdateHitPoints sets a member character's current hit points
func (o *orchestrator) UpdateHitPoints(ctx context.Context, input *UpdateHitPointsInput) (*UpdateHitPointsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.HitPoints < 0 {
		return nil, errors.InvalidArgument("hit points cannot be negative")
	}

	char, err := o.dmTarget(ctx, input.CampaignID, input.DMPlayerID, input.CharacterID)
	if err != nil {
		return nil, err
	}

	char.HitPoints = input.HitPoints
	char.UpdatedAt = o.clock.Now()
	out, err := o.characterRepo.Update(ctx, characters.UpdateInput{Character: char})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update hit points")
	}

	slog.Info("DM updated hit points", "campaign_id", input.CampaignID, "character_id", char.ID, "hit_points", input.HitPoints)
	return &UpdateHitPointsOutput{Character: out.Character}, nil
}

// GiveItem adds a catalog item to a member character's inventory
func (o *orchestrator) GiveItem(ctx context.Context, input *GiveItemInput) (*GiveItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ItemID == "" {
		return nil, errors.InvalidArgument("item ID is required")
	}

	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, errors.InvalidArgument("quantity cannot be negative")
	}

	char, err := o.dmTarget(ctx, input.CampaignID, input.DMPlayerID, input.CharacterID)
	if err != nil {
		return nil, err
	}

	item, err := o.itemRepo.Get(ctx, items.GetInput{ID: input.ItemID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get item %s", input.ItemID)
	}

	line := &dnd5e.InventoryLine{
		ID:          o.inventoryIDGen.Generate(),
		CharacterID: char.ID,
		ItemID:      item.Item.ID,
		ItemName:    item.Item.Name,
		Quantity:    quantity,
	}
	if _, err := o.characterRepo.AddInventory(ctx, characters.AddInventoryInput{Line: line}); err != nil {
		return nil, errors.Wrap(err, "failed to give item")
	}

	slog.Info("DM gave item", "campaign_id", input.CampaignID, "character_id", char.ID, "item", item.Item.Name, "quantity", quantity)
	return &GiveItemOutput{Line: line}, nil
}

// SearchItems runs a substring catalog search for the DM
func (o *orchestrator) SearchItems(ctx context.Context, input *SearchItemsInput) (*SearchItemsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.getCampaign(ctx, input.CampaignID)
	if err != nil {
		return nil, err
	}
	if err := requireDM(c, input.DMPlayerID); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	out, err := o.itemRepo.Search(ctx, items.SearchInput{Query: input.Query, Limit: limit})
	if err != nil {
		return nil, errors.Wrap(err, "failed to search items")
	}

	return &SearchItemsOutput{Items: out.Items}, nil
}

// dmTarget checks the caller runs the campaign and the character belongs to it
func (o *orchestrator) dmTarget(ctx context.Context, campaignID, dmPlayerID, characterID string) (*dnd5e.Character, error) {
	c, err := o.getCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if err := requireDM(c, dmPlayerID); err != nil {
		return nil, err
	}

	if characterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}
	inCampaign := false
	for _, m := range c.Members {
		if m.CharacterID == characterID {
			inCampaign = true
			break
		}
	}
	if !inCampaign {
		return nil, errors.FailedPreconditionf("character %s is not in campaign %s", characterID, c.ID)
	}

	return o.getCharacter(ctx, characterID)
}

func (o *orchestrator) getCampaign(ctx context.Context, campaignID string) (*dnd5e.Campaign, error) {
	if campaignID == "" {
		return nil, errors.InvalidArgument("campaign ID is required")
	}

	out, err := o.campaignRepo.Get(ctx, campaigns.GetInput{ID: campaignID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get campaign %s", campaignID)
	}
	return out.Campaign, nil
}

func (o *orchestrator) getCharacter(ctx context.Context, characterID string) (*dnd5e.Character, error) {
	out, err := o.characterRepo.Get(ctx, characters.GetInput{ID: characterID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get character %s", characterID)
	}
	return out.Character, nil
}

func requireDM(c *dnd5e.Campaign, playerID string) error {
	if playerID == "" || c.DMPlayerID != playerID {
		return errors.PermissionDenied("only the campaign DM can do that")
	}
	return nil
}

func memberOf(c *dnd5e.Campaign, playerID string) *dnd5e.CampaignMember {
	for _, m := range c.Members {
		if m.PlayerID == playerID {
			return m
		}
	}
	return nil
}
