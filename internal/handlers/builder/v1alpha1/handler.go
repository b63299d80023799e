// Package v1alpha1 handles the grpc service interface
package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-builder/internal/errors"
	"github.com/KirkDiggler/rpg-builder/internal/orchestrators/abilities"
	"github.com/KirkDiggler/rpg-builder/internal/orchestrators/campaign"
	"github.com/KirkDiggler/rpg-builder/internal/orchestrators/character"
	abilityrules "github.com/KirkDiggler/rpg-builder/internal/rules/abilities"
	"github.com/KirkDiggler/rpg-builder/internal/rules/equipment"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	AbilityService   abilities.Service
	CharacterService character.Service
	CampaignService  campaign.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.AbilityService == nil {
		vb.RequiredField("AbilityService")
	}
	if c.CharacterService == nil {
		vb.RequiredField("CharacterService")
	}
	if c.CampaignService == nil {
		vb.RequiredField("CampaignService")
	}

	return vb.Build()
}

// Handler implements CharacterBuilderService
type Handler struct {
	abilityService   abilities.Service
	characterService character.Service
	campaignService  campaign.Service
}

var _ CharacterBuilderServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Handler{
		abilityService:   cfg.AbilityService,
		characterService: cfg.CharacterService,
		campaignService:  cfg.CampaignService,
	}, nil
}

// handle decodes the payload, runs fn and encodes its result. Errors of
// either step leave as gRPC statuses.
func handle[Req, Resp any](ctx context.Context, in *structpb.Struct, fn func(context.Context, *Req) (*Resp, error)) (*structpb.Struct, error) {
	req := new(Req)
	if err := decode(in, req); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := fn(ctx, req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := encode(resp)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return out, nil
}

func sessionResponse(out *abilities.SessionOutput, err error) (*AbilitySessionResponse, error) {
	if err != nil {
		return nil, err
	}
	return convertSessionOutput(out), nil
}

// StartAbilitySession starts a point-buy build
func (h *Handler) StartAbilitySession(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *StartAbilitySessionRequest) (*AbilitySessionResponse, error) {
		return sessionResponse(h.abilityService.StartSession(ctx, &abilities.StartSessionInput{
			PlayerID: req.PlayerID,
			Resume:   req.Resume,
		}))
	})
}

// GetAbilitySession loads a build
func (h *Handler) GetAbilitySession(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *AbilitySessionRequest) (*AbilitySessionResponse, error) {
		return sessionResponse(h.abilityService.GetSession(ctx, &abilities.GetSessionInput{
			SessionID: req.SessionID,
			PlayerID:  req.PlayerID,
		}))
	})
}

// SelectMethod switches a build's generation method
func (h *Handler) SelectMethod(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *SelectMethodRequest) (*AbilitySessionResponse, error) {
		return sessionResponse(h.abilityService.SelectMethod(ctx, &abilities.SelectMethodInput{
			SessionID: req.SessionID,
			PlayerID:  req.PlayerID,
			Method:    abilityrules.Method(req.Method),
		}))
	})
}

// ApplyDelta is a point-buy step
func (h *Handler) ApplyDelta(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *ScoreDeltaRequest) (*AbilitySessionResponse, error) {
		return sessionResponse(h.abilityService.ApplyDelta(ctx, &abilities.ApplyDeltaInput{
			SessionID: req.SessionID,
			PlayerID:  req.PlayerID,
			Ability:   dnd5e.Ability(req.Ability),
			Delta:     req.Delta,
		}))
	})
}

// ApplyDefaultDistribution assigns the standard array in sheet order
func (h *Handler) ApplyDefaultDistribution(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *AbilitySessionRequest) (*AbilitySessionResponse, error) {
		return sessionResponse(h.abilityService.ApplyDefaultDistribution(ctx, &abilities.ApplyDefaultDistributionInput{
			SessionID: req.SessionID,
			PlayerID:  req.PlayerID,
		}))
	})
}

// AdjustScore is a free step in standard-array or dice mode
func (h *Handler) AdjustScore(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *ScoreDeltaRequest) (*AbilitySessionResponse, error) {
		return sessionResponse(h.abilityService.AdjustScore(ctx, &abilities.AdjustScoreInput{
			SessionID: req.SessionID,
			PlayerID:  req.PlayerID,
			Ability:   dnd5e.Ability(req.Ability),
			Delta:     req.Delta,
		}))
	})
}

// RollAbilityGroup rolls one 4d6 group
func (h *Handler) RollAbilityGroup(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *AbilitySessionRequest) (*AbilitySessionResponse, error) {
		return sessionResponse(h.abilityService.RollGroup(ctx, &abilities.RollGroupInput{
			SessionID: req.SessionID,
			PlayerID:  req.PlayerID,
		}))
	})
}

// AssignRoll binds or unbinds a roll group
func (h *Handler) AssignRoll(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *AssignRollRequest) (*AbilitySessionResponse, error) {
		return sessionResponse(h.abilityService.Assign(ctx, &abilities.AssignInput{
			SessionID: req.SessionID,
			PlayerID:  req.PlayerID,
			GroupID:   req.GroupID,
			Ability:   dnd5e.Ability(req.Ability),
		}))
	})
}

// SetScore free-edits an unbound ability in dice mode
func (h *Handler) SetScore(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *SetScoreRequest) (*AbilitySessionResponse, error) {
		return sessionResponse(h.abilityService.SetScore(ctx, &abilities.SetScoreInput{
			SessionID: req.SessionID,
			PlayerID:  req.PlayerID,
			Ability:   dnd5e.Ability(req.Ability),
			Value:     req.Value,
		}))
	})
}

// ListEquipmentOptions describes a class's starting equipment choices
func (h *Handler) ListEquipmentOptions(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *ListEquipmentOptionsRequest) (*ListEquipmentOptionsResponse, error) {
		out, err := h.characterService.ListEquipmentOptions(ctx, &character.ListEquipmentOptionsInput{ClassKey: req.ClassKey})
		if err != nil {
			return nil, err
		}

		resp := &ListEquipmentOptionsResponse{
			Class:     convertClass(out.Class),
			Mandatory: out.Mandatory,
			Groups:    make([]EquipmentGroup, 0, len(out.Groups)),
		}
		for _, g := range out.Groups {
			resp.Groups = append(resp.Groups, EquipmentGroup{
				Index:       g.Index,
				Description: g.Description,
				Choose:      g.Choose,
				Options:     g.Options,
			})
		}
		return resp, nil
	})
}

// CreateCharacter builds and stores a character
func (h *Handler) CreateCharacter(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *CreateCharacterRequest) (*CreateCharacterResponse, error) {
		out, err := h.characterService.CreateCharacter(ctx, &character.CreateCharacterInput{
			PlayerID:         req.PlayerID,
			Name:             req.Name,
			Race:             req.Race,
			ClassKey:         req.ClassKey,
			AbilitySessionID: req.AbilitySessionID,
			Scores:           req.Scores,
			EquipmentMethod:  equipment.Method(req.EquipmentMethod),
			Choices:          req.Choices,
		})
		if err != nil {
			return nil, err
		}

		return &CreateCharacterResponse{
			Character:     convertCharacter(out.Character),
			Inventory:     convertInventory(out.Inventory),
			Warnings:      out.Warnings,
			Unmatched:     out.Unmatched,
			FailedInserts: out.FailedInserts,
		}, nil
	})
}

// GetCharacter returns a character with its inventory
func (h *Handler) GetCharacter(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *CharacterRequest) (*GetCharacterResponse, error) {
		out, err := h.characterService.GetCharacter(ctx, &character.GetCharacterInput{CharacterID: req.CharacterID})
		if err != nil {
			return nil, err
		}
		return &GetCharacterResponse{
			Character: convertCharacter(out.Character),
			Inventory: convertInventory(out.Inventory),
		}, nil
	})
}

// ListCharacters lists a player's characters
func (h *Handler) ListCharacters(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *ListCharactersRequest) (*ListCharactersResponse, error) {
		out, err := h.characterService.ListCharacters(ctx, &character.ListCharactersInput{PlayerID: req.PlayerID})
		if err != nil {
			return nil, err
		}
		return &ListCharactersResponse{Characters: convertCharacters(out.Characters)}, nil
	})
}

// UpdateCharacter edits a character owned by the caller
func (h *Handler) UpdateCharacter(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *UpdateCharacterRequest) (*CharacterResponse, error) {
		out, err := h.characterService.UpdateCharacter(ctx, &character.UpdateCharacterInput{
			CharacterID:  req.CharacterID,
			PlayerID:     req.PlayerID,
			Name:         req.Name,
			Scores:       req.Scores,
			HitPoints:    req.HitPoints,
			MaxHitPoints: req.MaxHitPoints,
			Level:        req.Level,
			ArmorClass:   req.ArmorClass,
			Background:   req.Background,
			Appearance:   req.Appearance,
		})
		if err != nil {
			return nil, err
		}
		return &CharacterResponse{Character: convertCharacter(out.Character)}, nil
	})
}

// DeleteCharacter removes a character and its inventory
func (h *Handler) DeleteCharacter(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *DeleteCharacterRequest) (*DeleteCharacterResponse, error) {
		out, err := h.characterService.DeleteCharacter(ctx, &character.DeleteCharacterInput{
			CharacterID: req.CharacterID,
			PlayerID:    req.PlayerID,
		})
		if err != nil {
			return nil, err
		}
		return &DeleteCharacterResponse{InventoryDeleted: out.InventoryDeleted}, nil
	})
}

// AddInventoryItem adds a catalog item, found by name, to a character
func (h *Handler) AddInventoryItem(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *AddInventoryItemRequest) (*AddInventoryItemResponse, error) {
		out, err := h.characterService.AddInventoryItem(ctx, &character.AddInventoryItemInput{
			CharacterID: req.CharacterID,
			PlayerID:    req.PlayerID,
			ItemName:    req.ItemName,
			Quantity:    req.Quantity,
		})
		if err != nil {
			return nil, err
		}
		return &AddInventoryItemResponse{Line: convertInventoryLine(out.Line), Exact: out.Exact}, nil
	})
}

// SetEquipped toggles an inventory line's equipped flag
func (h *Handler) SetEquipped(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *SetEquippedRequest) (*InventoryLineResponse, error) {
		out, err := h.characterService.SetEquipped(ctx, &character.SetEquippedInput{
			CharacterID: req.CharacterID,
			PlayerID:    req.PlayerID,
			LineID:      req.LineID,
			Equipped:    req.Equipped,
		})
		if err != nil {
			return nil, err
		}
		return &InventoryLineResponse{Line: convertInventoryLine(out.Line)}, nil
	})
}

// RemoveInventoryItem deletes an inventory line
func (h *Handler) RemoveInventoryItem(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *RemoveInventoryItemRequest) (*RemoveInventoryItemResponse, error) {
		if _, err := h.characterService.RemoveInventoryItem(ctx, &character.RemoveInventoryItemInput{
			CharacterID: req.CharacterID,
			PlayerID:    req.PlayerID,
			LineID:      req.LineID,
		}); err != nil {
			return nil, err
		}
		return &RemoveInventoryItemResponse{}, nil
	})
}

// ListSpells returns the spells a character can see at its level
func (h *Handler) ListSpells(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *CharacterRequest) (*ListSpellsResponse, error) {
		out, err := h.characterService.ListSpells(ctx, &character.ListSpellsInput{CharacterID: req.CharacterID})
		if err != nil {
			return nil, err
		}
		return &ListSpellsResponse{
			CasterType:    string(out.CasterType),
			MaxSpellLevel: out.MaxSpellLevel,
			Spells:        convertSpells(out.Spells),
		}, nil
	})
}

// ListFeatures returns the class features unlocked at a character's level
func (h *Handler) ListFeatures(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *CharacterRequest) (*ListFeaturesResponse, error) {
		out, err := h.characterService.ListFeatures(ctx, &character.ListFeaturesInput{CharacterID: req.CharacterID})
		if err != nil {
			return nil, err
		}
		return &ListFeaturesResponse{Features: convertFeatures(out.Features)}, nil
	})
}

// CreateCampaign creates a campaign run by the caller
func (h *Handler) CreateCampaign(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *CreateCampaignRequest) (*CampaignResponse, error) {
		out, err := h.campaignService.CreateCampaign(ctx, &campaign.CreateCampaignInput{
			PlayerID: req.PlayerID,
			Name:     req.Name,
		})
		if err != nil {
			return nil, err
		}
		return &CampaignResponse{Campaign: convertCampaign(out.Campaign)}, nil
	})
}

// JoinCampaign joins the campaign behind a join code
func (h *Handler) JoinCampaign(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *JoinCampaignRequest) (*JoinCampaignResponse, error) {
		out, err := h.campaignService.JoinCampaign(ctx, &campaign.JoinCampaignInput{
			JoinCode:    req.JoinCode,
			PlayerID:    req.PlayerID,
			CharacterID: req.CharacterID,
		})
		if err != nil {
			return nil, err
		}
		return &JoinCampaignResponse{
			Campaign: convertCampaign(out.Campaign),
			Member:   convertMember(out.Member),
			Joined:   out.Joined,
		}, nil
	})
}

// GetCampaign returns a campaign and its members' characters
func (h *Handler) GetCampaign(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *GetCampaignRequest) (*GetCampaignResponse, error) {
		out, err := h.campaignService.GetCampaign(ctx, &campaign.GetCampaignInput{
			CampaignID: req.CampaignID,
			PlayerID:   req.PlayerID,
		})
		if err != nil {
			return nil, err
		}
		return &GetCampaignResponse{
			Campaign:   convertCampaign(out.Campaign),
			Characters: convertCharacters(out.Characters),
		}, nil
	})
}

// ListCampaigns returns the campaigns a player runs or plays in
func (h *Handler) ListCampaigns(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *ListCampaignsRequest) (*ListCampaignsResponse, error) {
		out, err := h.campaignService.ListCampaigns(ctx, &campaign.ListCampaignsInput{PlayerID: req.PlayerID})
		if err != nil {
			return nil, err
		}
		return &ListCampaignsResponse{
			DMCampaigns:     convertCampaigns(out.DMCampaigns),
			PlayerCampaigns: convertCampaigns(out.PlayerCampaigns),
		}, nil
	})
}

// UpdateHitPoints is a DM hit point edit
func (h *Handler) UpdateHitPoints(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *UpdateHitPointsRequest) (*CharacterResponse, error) {
		out, err := h.campaignService.UpdateHitPoints(ctx, &campaign.UpdateHitPointsInput{
			CampaignID:  req.CampaignID,
			DMPlayerID:  req.DMPlayerID,
			CharacterID: req.CharacterID,
			HitPoints:   req.HitPoints,
		})
		if err != nil {
			return nil, err
		}
		return &CharacterResponse{Character: convertCharacter(out.Character)}, nil
	})
}

// GiveItem is a DM item grant
func (h *Handler) GiveItem(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *GiveItemRequest) (*InventoryLineResponse, error) {
		out, err := h.campaignService.GiveItem(ctx, &campaign.GiveItemInput{
			CampaignID:  req.CampaignID,
			DMPlayerID:  req.DMPlayerID,
			CharacterID: req.CharacterID,
			ItemID:      req.ItemID,
			Quantity:    req.Quantity,
		})
		if err != nil {
			return nil, err
		}
		return &InventoryLineResponse{Line: convertInventoryLine(out.Line)}, nil
	})
}

// SearchItems is the DM catalog search
func (h *Handler) SearchItems(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return handle(ctx, in, func(ctx context.Context, req *SearchItemsRequest) (*SearchItemsResponse, error) {
		out, err := h.campaignService.SearchItems(ctx, &campaign.SearchItemsInput{
			CampaignID: req.CampaignID,
			DMPlayerID: req.DMPlayerID,
			Query:      req.Query,
			Limit:      req.Limit,
		})
		if err != nil {
			return nil, err
		}
		return &SearchItemsResponse{Items: convertCatalogItems(out.Items)}, nil
	})
}
