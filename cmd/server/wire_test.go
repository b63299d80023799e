package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-builder/internal/config"
	"github.com/KirkDiggler/rpg-builder/internal/errors"
	"github.com/KirkDiggler/rpg-builder/internal/handlers/builder/v1alpha1"
	abilitysession "github.com/KirkDiggler/rpg-builder/internal/repositories/ability_session"
	"github.com/KirkDiggler/rpg-builder/internal/testutils"
)

// WireTestSuite drives the fully wired handler against sqlite and miniredis
type WireTestSuite struct {
	suite.Suite
	ctx     context.Context
	handler *v1alpha1.Handler
}

func TestWireSuite(t *testing.T) {
	suite.Run(t, new(WireTestSuite))
}

func (s *WireTestSuite) SetupTest() {
	s.ctx = context.Background()
	db := testutils.CreateTestDB(s.T())
	rdb, _ := testutils.CreateTestRedisClient(s.T())

	handler, err := buildHandler(&config.Config{
		ClassSource: config.ClassSourceDB,
		SessionTTL:  abilitysession.DefaultTTL,
	}, db, rdb)
	s.Require().NoError(err)
	s.handler = handler
}

func (s *WireTestSuite) payload(v map[string]any) *structpb.Struct {
	out, err := structpb.NewStruct(v)
	s.Require().NoError(err)
	return out
}

func (s *WireTestSuite) TestBuildCharacterEndToEnd() {
	started, err := s.handler.StartAbilitySession(s.ctx, s.payload(map[string]any{"player_id": "player-1"}))
	s.Require().NoError(err)
	sessionID := started.GetFields()["session"].GetStructValue().GetFields()["id"].GetStringValue()
	s.Require().NotEmpty(sessionID)

	_, err = s.handler.SelectMethod(s.ctx, s.payload(map[string]any{"session_id": sessionID, "player_id": "player-1", "method": "standard_array"}))
	s.Require().NoError(err)
	_, err = s.handler.ApplyDefaultDistribution(s.ctx, s.payload(map[string]any{"session_id": sessionID, "player_id": "player-1"}))
	s.Require().NoError(err)

	// another player cannot drive the build
	_, err = s.handler.AdjustScore(s.ctx, s.payload(map[string]any{"session_id": sessionID, "player_id": "player-2", "ability": "str", "delta": 1}))
	s.Assert().True(errors.IsPermissionDenied(errors.FromGRPCError(err)))

	resumed, err := s.handler.StartAbilitySession(s.ctx, s.payload(map[string]any{"player_id": "player-1", "resume": true}))
	s.Require().NoError(err)
	s.Assert().True(resumed.GetFields()["resumed"].GetBoolValue())
	s.Assert().Equal(sessionID, resumed.GetFields()["session"].GetStructValue().GetFields()["id"].GetStringValue())

	created, err := s.handler.CreateCharacter(s.ctx, s.payload(map[string]any{
		"player_id":          "player-1",
		"name":               "Bruenor",
		"race":               "dwarf",
		"class_key":          "fighter",
		"ability_session_id": sessionID,
		"choices": map[string]any{
			"0": "Chain Mail",
			"3": "Explorer's Pack",
		},
	}))
	s.Require().NoError(err)

	char := created.GetFields()["character"].GetStructValue().GetFields()
	s.Assert().Equal("Bruenor", char["name"].GetStringValue())
	s.Assert().Equal(float64(15), char["scores"].GetStructValue().GetFields()["str"].GetNumberValue())

	quantities := map[string]float64{}
	for _, v := range created.GetFields()["inventory"].GetListValue().GetValues() {
		line := v.GetStructValue().GetFields()
		quantities[line["item_name"].GetStringValue()] = line["quantity"].GetNumberValue()
	}
	s.Assert().Equal(float64(1), quantities["Chain Mail"])
	s.Assert().Equal(float64(10), quantities["Torch"])
	s.Assert().NotContains(quantities, "Explorer's Pack")

	// the session is consumed by creation
	_, err = s.handler.GetAbilitySession(s.ctx, s.payload(map[string]any{"session_id": sessionID, "player_id": "player-1"}))
	s.Assert().True(errors.IsNotFound(errors.FromGRPCError(err)))
}

func (s *WireTestSuite) TestCampaignWithDMConsole() {
	created, err := s.handler.CreateCharacter(s.ctx, s.payload(map[string]any{
		"player_id": "player-1",
		"name":      "Bruenor",
		"race":      "dwarf",
		"class_key": "fighter",
		"scores":    map[string]any{"str": 15, "dex": 14, "con": 13, "int": 12, "wis": 10, "cha": 8},
	}))
	s.Require().NoError(err)
	charID := created.GetFields()["character"].GetStructValue().GetFields()["id"].GetStringValue()

	camp, err := s.handler.CreateCampaign(s.ctx, s.payload(map[string]any{"player_id": "dm-1", "name": "Lost Mine"}))
	s.Require().NoError(err)
	campFields := camp.GetFields()["campaign"].GetStructValue().GetFields()
	campID := campFields["id"].GetStringValue()
	code := campFields["join_code"].GetStringValue()
	s.Assert().Regexp(`^[A-Z0-9]{3}-[A-Z0-9]{3}$`, code)

	_, err = s.handler.JoinCampaign(s.ctx, s.payload(map[string]any{
		"join_code":    code,
		"player_id":    "player-1",
		"character_id": charID,
	}))
	s.Require().NoError(err)

	_, err = s.handler.UpdateHitPoints(s.ctx, s.payload(map[string]any{
		"campaign_id":  campID,
		"dm_player_id": "dm-1",
		"character_id": charID,
		"hit_points":   4,
	}))
	s.Require().NoError(err)

	found, err := s.handler.SearchItems(s.ctx, s.payload(map[string]any{
		"campaign_id":  campID,
		"dm_player_id": "dm-1",
		"query":        "torch",
	}))
	s.Require().NoError(err)
	results := found.GetFields()["items"].GetListValue().GetValues()
	s.Require().NotEmpty(results)
	torchID := results[0].GetStructValue().GetFields()["id"].GetStringValue()

	_, err = s.handler.GiveItem(s.ctx, s.payload(map[string]any{
		"campaign_id":  campID,
		"dm_player_id": "dm-1",
		"character_id": charID,
		"item_id":      torchID,
		"quantity":     3,
	}))
	s.Require().NoError(err)

	view, err := s.handler.GetCampaign(s.ctx, s.payload(map[string]any{"campaign_id": campID, "player_id": "player-1"}))
	s.Require().NoError(err)
	chars := view.GetFields()["characters"].GetListValue().GetValues()
	s.Require().Len(chars, 1)
	s.Assert().Equal(float64(4), chars[0].GetStructValue().GetFields()["hit_points"].GetNumberValue())

	_, err = s.handler.GiveItem(s.ctx, s.payload(map[string]any{
		"campaign_id":  campID,
		"dm_player_id": "player-1",
		"character_id": charID,
		"item_id":      torchID,
	}))
	s.Assert().True(errors.IsPermissionDenied(errors.FromGRPCError(err)))
}

func (s *WireTestSuite) createCharacter(playerID, classKey string) string {
	created, err := s.handler.CreateCharacter(s.ctx, s.payload(map[string]any{
		"player_id":        playerID,
		"name":             "Bruenor",
		"race":             "dwarf",
		"class_key":        classKey,
		"equipment_method": "gold",
		"scores":           map[string]any{"str": 15, "dex": 14, "con": 13, "int": 12, "wis": 10, "cha": 8},
	}))
	s.Require().NoError(err)
	return created.GetFields()["character"].GetStructValue().GetFields()["id"].GetStringValue()
}

func (s *WireTestSuite) TestManageInventory() {
	charID := s.createCharacter("player-1", "fighter")

	added, err := s.handler.AddInventoryItem(s.ctx, s.payload(map[string]any{
		"character_id": charID,
		"player_id":    "player-1",
		"item_name":    "torch",
		"quantity":     5,
	}))
	s.Require().NoError(err)
	s.Assert().True(added.GetFields()["exact"].GetBoolValue())
	line := added.GetFields()["line"].GetStructValue().GetFields()
	s.Assert().Equal("Torch", line["item_name"].GetStringValue())
	s.Assert().Equal(float64(5), line["quantity"].GetNumberValue())
	lineID := line["id"].GetStringValue()

	rope, err := s.handler.AddInventoryItem(s.ctx, s.payload(map[string]any{
		"character_id": charID,
		"player_id":    "player-1",
		"item_name":    "rope",
	}))
	s.Require().NoError(err)
	s.Assert().False(rope.GetFields()["exact"].GetBoolValue())
	s.Assert().Contains(rope.GetFields()["line"].GetStructValue().GetFields()["item_name"].GetStringValue(), "Rope")

	equipped, err := s.handler.SetEquipped(s.ctx, s.payload(map[string]any{
		"character_id": charID,
		"player_id":    "player-1",
		"line_id":      lineID,
		"equipped":     true,
	}))
	s.Require().NoError(err)
	s.Assert().True(equipped.GetFields()["line"].GetStructValue().GetFields()["is_equipped"].GetBoolValue())

	_, err = s.handler.SetEquipped(s.ctx, s.payload(map[string]any{
		"character_id": charID,
		"player_id":    "player-2",
		"line_id":      lineID,
		"equipped":     false,
	}))
	s.Assert().True(errors.IsPermissionDenied(errors.FromGRPCError(err)))

	_, err = s.handler.RemoveInventoryItem(s.ctx, s.payload(map[string]any{
		"character_id": charID,
		"player_id":    "player-1",
		"line_id":      lineID,
	}))
	s.Require().NoError(err)

	view, err := s.handler.GetCharacter(s.ctx, s.payload(map[string]any{"character_id": charID}))
	s.Require().NoError(err)
	lines := view.GetFields()["inventory"].GetListValue().GetValues()
	s.Require().Len(lines, 1)
	s.Assert().Contains(lines[0].GetStructValue().GetFields()["item_name"].GetStringValue(), "Rope")

	_, err = s.handler.AddInventoryItem(s.ctx, s.payload(map[string]any{
		"character_id": charID,
		"player_id":    "player-1",
		"item_name":    "Vorpal Sword",
	}))
	s.Assert().True(errors.IsNotFound(errors.FromGRPCError(err)))
}

func (s *WireTestSuite) TestLevelUpUnlocksSpells() {
	charID := s.createCharacter("player-1", "wizard")

	before, err := s.handler.ListSpells(s.ctx, s.payload(map[string]any{"character_id": charID}))
	s.Require().NoError(err)
	s.Assert().Equal(float64(1), before.GetFields()["max_spell_level"].GetNumberValue())
	s.Assert().Len(before.GetFields()["spells"].GetListValue().GetValues(), 4)

	updated, err := s.handler.UpdateCharacter(s.ctx, s.payload(map[string]any{
		"character_id": charID,
		"player_id":    "player-1",
		"level":        5,
		"armor_class":  12,
		"background":   "Sage",
	}))
	s.Require().NoError(err)
	char := updated.GetFields()["character"].GetStructValue().GetFields()
	s.Assert().Equal(float64(5), char["level"].GetNumberValue())
	s.Assert().Equal(float64(12), char["armor_class"].GetNumberValue())
	s.Assert().Equal("Sage", char["background"].GetStringValue())

	after, err := s.handler.ListSpells(s.ctx, s.payload(map[string]any{"character_id": charID}))
	s.Require().NoError(err)
	s.Assert().Equal(float64(3), after.GetFields()["max_spell_level"].GetNumberValue())
	s.Assert().Len(after.GetFields()["spells"].GetListValue().GetValues(), 7)

	_, err = s.handler.UpdateCharacter(s.ctx, s.payload(map[string]any{
		"character_id": charID,
		"player_id":    "player-1",
		"level":        21,
	}))
	s.Assert().True(errors.IsInvalidArgument(errors.FromGRPCError(err)))
}

func (s *WireTestSuite) TestListCampaigns() {
	run, err := s.handler.CreateCampaign(s.ctx, s.payload(map[string]any{"player_id": "player-1", "name": "Lost Mine"}))
	s.Require().NoError(err)
	runID := run.GetFields()["campaign"].GetStructValue().GetFields()["id"].GetStringValue()

	other, err := s.handler.CreateCampaign(s.ctx, s.payload(map[string]any{"player_id": "dm-2", "name": "Curse of Strahd"}))
	s.Require().NoError(err)
	otherFields := other.GetFields()["campaign"].GetStructValue().GetFields()
	_, err = s.handler.JoinCampaign(s.ctx, s.payload(map[string]any{
		"join_code": otherFields["join_code"].GetStringValue(),
		"player_id": "player-1",
	}))
	s.Require().NoError(err)

	listed, err := s.handler.ListCampaigns(s.ctx, s.payload(map[string]any{"player_id": "player-1"}))
	s.Require().NoError(err)
	dm := listed.GetFields()["dm_campaigns"].GetListValue().GetValues()
	played := listed.GetFields()["player_campaigns"].GetListValue().GetValues()
	s.Require().Len(dm, 1)
	s.Require().Len(played, 1)
	s.Assert().Equal(runID, dm[0].GetStructValue().GetFields()["id"].GetStringValue())
	s.Assert().Equal(otherFields["id"].GetStringValue(), played[0].GetStructValue().GetFields()["id"].GetStringValue())

	empty, err := s.handler.ListCampaigns(s.ctx, s.payload(map[string]any{"player_id": "player-3"}))
	s.Require().NoError(err)
	s.Assert().Empty(empty.GetFields()["dm_campaigns"].GetListValue().GetValues())
}
