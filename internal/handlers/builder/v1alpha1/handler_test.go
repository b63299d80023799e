package v1alpha1_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-builder/internal/errors"
	v1alpha1 "github.com/KirkDiggler/rpg-builder/internal/handlers/builder/v1alpha1"
	"github.com/KirkDiggler/rpg-builder/internal/orchestrators/abilities"
	abilitiesmock "github.com/KirkDiggler/rpg-builder/internal/orchestrators/abilities/mock"
	"github.com/KirkDiggler/rpg-builder/internal/orchestrators/campaign"
	campaignmock "github.com/KirkDiggler/rpg-builder/internal/orchestrators/campaign/mock"
	"github.com/KirkDiggler/rpg-builder/internal/orchestrators/character"
	charactermock "github.com/KirkDiggler/rpg-builder/internal/orchestrators/character/mock"
	abilitysession "github.com/KirkDiggler/rpg-builder/internal/repositories/ability_session"
	"github.com/KirkDiggler/rpg-builder/internal/repositories/classes"
	abilityrules "github.com/KirkDiggler/rpg-builder/internal/rules/abilities"
	"github.com/KirkDiggler/rpg-builder/internal/rules/equipment"
	"github.com/KirkDiggler/rpg-builder/internal/testutils"
)

type HandlerTestSuite struct {
	suite.Suite
	ctx           context.Context
	ctrl          *gomock.Controller
	mockAbilities *abilitiesmock.MockService
	mockCharacter *charactermock.MockService
	mockCampaign  *campaignmock.MockService

	server      *grpc.Server
	conn        *grpc.ClientConn
	client      *v1alpha1.Client
	fullMethods []string
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockAbilities = abilitiesmock.NewMockService(s.ctrl)
	s.mockCharacter = charactermock.NewMockService(s.ctrl)
	s.mockCampaign = campaignmock.NewMockService(s.ctrl)
	s.fullMethods = nil

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		AbilityService:   s.mockAbilities,
		CharacterService: s.mockCharacter,
		CampaignService:  s.mockCampaign,
	})
	s.Require().NoError(err)

	lis := bufconn.Listen(1 << 20)
	s.server = grpc.NewServer(grpc.ChainUnaryInterceptor(
		func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
			s.fullMethods = append(s.fullMethods, info.FullMethod)
			return next(ctx, req)
		},
	))
	v1alpha1.RegisterCharacterBuilderServiceServer(s.server, handler)
	go func() {
		_ = s.server.Serve(lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	s.conn = conn
	s.client = v1alpha1.NewClient(conn)
}

func (s *HandlerTestSuite) TearDownTest() {
	_ = s.conn.Close()
	s.server.Stop()
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) TestNewHandlerValidates() {
	_, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *HandlerTestSuite) TestStartAbilitySession() {
	s.mockAbilities.EXPECT().
		StartSession(gomock.Any(), &abilities.StartSessionInput{PlayerID: testutils.TestPlayerID}).
		Return(&abilities.SessionOutput{
			Session: &abilitysession.AbilitySession{
				ID:        "ability_1",
				PlayerID:  testutils.TestPlayerID,
				Build:     abilityrules.NewSession(),
				ExpiresAt: testutils.TestTime,
			},
			Accepted:        true,
			PointsRemaining: abilityrules.PointBuyBudget,
		}, nil)

	var resp v1alpha1.AbilitySessionResponse
	err := s.client.Call(s.ctx, "StartAbilitySession", &v1alpha1.StartAbilitySessionRequest{PlayerID: testutils.TestPlayerID}, &resp)
	s.Require().NoError(err)

	s.Require().NotNil(resp.Session)
	s.Assert().Equal("ability_1", resp.Session.ID)
	s.Assert().Equal("point_buy", resp.Session.Method)
	s.Assert().Equal(dnd5e.UniformScores(abilityrules.BaseScore), resp.Session.Scores)
	s.Assert().True(resp.Accepted)
	s.Assert().Equal(27, resp.PointsRemaining)
	s.Assert().Equal([]string{"/builder.v1alpha1.CharacterBuilderService/StartAbilitySession"}, s.fullMethods)
}

func (s *HandlerTestSuite) TestRejectedTransitionIsNotAnError() {
	s.mockAbilities.EXPECT().
		ApplyDelta(gomock.Any(), &abilities.ApplyDeltaInput{SessionID: "ability_1", PlayerID: testutils.TestPlayerID, Ability: dnd5e.AbilityStrength, Delta: 1}).
		Return(&abilities.SessionOutput{
			Session:  &abilitysession.AbilitySession{ID: "ability_1", Build: abilityrules.NewSession()},
			Accepted: false,
			Reason:   abilityrules.ReasonOverBudget,
		}, nil)

	var resp v1alpha1.AbilitySessionResponse
	err := s.client.Call(s.ctx, "ApplyDelta", &v1alpha1.ScoreDeltaRequest{SessionID: "ability_1", PlayerID: testutils.TestPlayerID, Ability: "str", Delta: 1}, &resp)
	s.Require().NoError(err)
	s.Assert().False(resp.Accepted)
	s.Assert().Equal("over_budget", resp.Reason)
}

func (s *HandlerTestSuite) TestRollAbilityGroup() {
	group := &abilityrules.RollGroup{ID: "roll_1", Dice: []int{6, 6, 1, 2}, Total: 14}
	s.mockAbilities.EXPECT().
		RollGroup(gomock.Any(), &abilities.RollGroupInput{SessionID: "ability_1", PlayerID: testutils.TestPlayerID}).
		Return(&abilities.SessionOutput{
			Session:  &abilitysession.AbilitySession{ID: "ability_1"},
			Accepted: true,
			Group:    group,
		}, nil)

	var resp v1alpha1.AbilitySessionResponse
	err := s.client.Call(s.ctx, "RollAbilityGroup", &v1alpha1.AbilitySessionRequest{SessionID: "ability_1", PlayerID: testutils.TestPlayerID}, &resp)
	s.Require().NoError(err)
	s.Assert().Equal(group, resp.Group)
}

func (s *HandlerTestSuite) TestStartAbilitySessionResume() {
	s.mockAbilities.EXPECT().
		StartSession(gomock.Any(), &abilities.StartSessionInput{PlayerID: testutils.TestPlayerID, Resume: true}).
		Return(&abilities.SessionOutput{
			Session:  &abilitysession.AbilitySession{ID: "ability_7", PlayerID: testutils.TestPlayerID, Build: abilityrules.NewSession()},
			Accepted: true,
			Resumed:  true,
		}, nil)

	var resp v1alpha1.AbilitySessionResponse
	err := s.client.Call(s.ctx, "StartAbilitySession", &v1alpha1.StartAbilitySessionRequest{PlayerID: testutils.TestPlayerID, Resume: true}, &resp)
	s.Require().NoError(err)
	s.Assert().True(resp.Resumed)
	s.Assert().Equal("ability_7", resp.Session.ID)
}

func (s *HandlerTestSuite) TestAbilitySessionOwnerIsPassedThrough() {
	s.mockAbilities.EXPECT().
		Assign(gomock.Any(), &abilities.AssignInput{SessionID: "ability_1", PlayerID: "someone-else", GroupID: "roll_1", Ability: dnd5e.AbilityDexterity}).
		Return(nil, errors.PermissionDenied("ability session belongs to another player"))

	var resp v1alpha1.AbilitySessionResponse
	err := s.client.Call(s.ctx, "AssignRoll", &v1alpha1.AssignRollRequest{
		SessionID: "ability_1",
		PlayerID:  "someone-else",
		GroupID:   "roll_1",
		Ability:   "dex",
	}, &resp)
	s.Assert().True(errors.IsPermissionDenied(err))
}

func (s *HandlerTestSuite) TestErrorsKeepTheirCode() {
	s.mockAbilities.EXPECT().
		GetSession(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound("ability session not found"))

	var resp v1alpha1.AbilitySessionResponse
	err := s.client.Call(s.ctx, "GetAbilitySession", &v1alpha1.AbilitySessionRequest{SessionID: "missing", PlayerID: testutils.TestPlayerID}, &resp)
	s.Require().Error(err)
	s.Assert().True(errors.IsNotFound(err))
}

func (s *HandlerTestSuite) TestUnknownFieldsAreRejected() {
	var resp v1alpha1.AbilitySessionResponse
	err := s.client.Call(s.ctx, "GetAbilitySession", map[string]any{"sesion_id": "typo"}, &resp)
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *HandlerTestSuite) TestListEquipmentOptions() {
	s.mockCharacter.EXPECT().
		ListEquipmentOptions(gomock.Any(), &character.ListEquipmentOptionsInput{ClassKey: "fighter"}).
		Return(&character.ListEquipmentOptionsOutput{
			Class:     &classes.Class{Key: "fighter", Name: "Fighter", HitDie: 10, CasterType: dnd5e.CasterTypeNone},
			Mandatory: []equipment.MandatoryEntry{{ItemName: "Explorer's Pack", Quantity: 1}},
			Groups: []character.EquipmentGroup{{
				Index:  0,
				Choose: 1,
				Options: []equipment.Option{
					{Label: "Longsword", Requests: []equipment.ItemRequest{{ItemName: "Longsword", Quantity: 1}}},
				},
			}},
		}, nil)

	var resp v1alpha1.ListEquipmentOptionsResponse
	err := s.client.Call(s.ctx, "ListEquipmentOptions", &v1alpha1.ListEquipmentOptionsRequest{ClassKey: "fighter"}, &resp)
	s.Require().NoError(err)
	s.Assert().Equal(&v1alpha1.Class{Key: "fighter", Name: "Fighter", HitDie: 10, CasterType: "none"}, resp.Class)
	s.Require().Len(resp.Groups, 1)
	s.Assert().Equal("Longsword", resp.Groups[0].Options[0].Label)
	s.Assert().Equal([]equipment.MandatoryEntry{{ItemName: "Explorer's Pack", Quantity: 1}}, resp.Mandatory)
}

func (s *HandlerTestSuite) TestCreateCharacterPassesChoices() {
	char := testutils.CreateTestCharacter(testutils.TestPlayerID)
	s.mockCharacter.EXPECT().
		CreateCharacter(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *character.CreateCharacterInput) (*character.CreateCharacterOutput, error) {
			s.Assert().Equal(map[int]string{0: "Longsword", 2: "Shield"}, input.Choices)
			s.Assert().Equal(equipment.MethodClass, input.EquipmentMethod)
			s.Assert().Equal("ability_1", input.AbilitySessionID)
			s.Assert().Nil(input.Scores)
			return &character.CreateCharacterOutput{
				Character: char,
				Inventory: []*dnd5e.InventoryLine{{ID: "inv_1", ItemID: "item-1", ItemName: "Torch", Quantity: 10}},
				Unmatched: []string{"Tinderbox"},
			}, nil
		})

	var resp v1alpha1.CreateCharacterResponse
	err := s.client.Call(s.ctx, "CreateCharacter", &v1alpha1.CreateCharacterRequest{
		PlayerID:         testutils.TestPlayerID,
		Name:             testutils.TestCharacterName,
		Race:             "dwarf",
		ClassKey:         "fighter",
		AbilitySessionID: "ability_1",
		EquipmentMethod:  "class",
		Choices:          map[int]string{0: "Longsword", 2: "Shield"},
	}, &resp)
	s.Require().NoError(err)

	s.Assert().Equal(char.ID, resp.Character.ID)
	s.Assert().Equal(char.Scores, resp.Character.Scores)
	s.Assert().True(testutils.TestTime.Equal(resp.Character.CreatedAt))
	s.Assert().Equal([]*v1alpha1.InventoryLine{{ID: "inv_1", ItemID: "item-1", ItemName: "Torch", Quantity: 10}}, resp.Inventory)
	s.Assert().Equal([]string{"Tinderbox"}, resp.Unmatched)
}

func (s *HandlerTestSuite) TestUpdateCharacterLeavesUnsetFieldsNil() {
	name := "Gimli"
	s.mockCharacter.EXPECT().
		UpdateCharacter(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *character.UpdateCharacterInput) (*character.UpdateCharacterOutput, error) {
			s.Require().NotNil(input.Name)
			s.Assert().Equal("Gimli", *input.Name)
			s.Assert().Nil(input.Scores)
			s.Assert().Nil(input.HitPoints)
			char := testutils.CreateTestCharacter(input.PlayerID)
			char.Name = *input.Name
			return &character.UpdateCharacterOutput{Character: char}, nil
		})

	var resp v1alpha1.CharacterResponse
	err := s.client.Call(s.ctx, "UpdateCharacter", &v1alpha1.UpdateCharacterRequest{
		CharacterID: "char-test-001",
		PlayerID:    testutils.TestPlayerID,
		Name:        &name,
	}, &resp)
	s.Require().NoError(err)
	s.Assert().Equal("Gimli", resp.Character.Name)
}

func (s *HandlerTestSuite) TestUpdateCharacterDetails() {
	level := 5
	ac := 17
	background := "Acolyte"
	s.mockCharacter.EXPECT().
		UpdateCharacter(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *character.UpdateCharacterInput) (*character.UpdateCharacterOutput, error) {
			s.Require().NotNil(input.Level)
			s.Assert().Equal(5, *input.Level)
			s.Require().NotNil(input.ArmorClass)
			s.Assert().Equal(17, *input.ArmorClass)
			s.Require().NotNil(input.Background)
			s.Assert().Equal("Acolyte", *input.Background)
			s.Assert().Nil(input.Appearance)
			char := testutils.CreateTestCharacter(input.PlayerID)
			char.Level = *input.Level
			char.ArmorClass = *input.ArmorClass
			char.Background = *input.Background
			return &character.UpdateCharacterOutput{Character: char}, nil
		})

	var resp v1alpha1.CharacterResponse
	err := s.client.Call(s.ctx, "UpdateCharacter", &v1alpha1.UpdateCharacterRequest{
		CharacterID: "char-test-001",
		PlayerID:    testutils.TestPlayerID,
		Level:       &level,
		ArmorClass:  &ac,
		Background:  &background,
	}, &resp)
	s.Require().NoError(err)
	s.Assert().Equal(5, resp.Character.Level)
	s.Assert().Equal(17, resp.Character.ArmorClass)
	s.Assert().Equal("Acolyte", resp.Character.Background)
}

func (s *HandlerTestSuite) TestAddInventoryItem() {
	s.mockCharacter.EXPECT().
		AddInventoryItem(gomock.Any(), &character.AddInventoryItemInput{
			CharacterID: "char-1",
			PlayerID:    testutils.TestPlayerID,
			ItemName:    "rope",
			Quantity:    2,
		}).
		Return(&character.AddInventoryItemOutput{
			Line: &dnd5e.InventoryLine{ID: "inv_3", ItemID: "item-rope", ItemName: "Rope, hempen (50 feet)", Quantity: 2},
		}, nil)

	var resp v1alpha1.AddInventoryItemResponse
	err := s.client.Call(s.ctx, "AddInventoryItem", &v1alpha1.AddInventoryItemRequest{
		CharacterID: "char-1",
		PlayerID:    testutils.TestPlayerID,
		ItemName:    "rope",
		Quantity:    2,
	}, &resp)
	s.Require().NoError(err)
	s.Assert().False(resp.Exact)
	s.Assert().Equal(&v1alpha1.InventoryLine{ID: "inv_3", ItemID: "item-rope", ItemName: "Rope, hempen (50 feet)", Quantity: 2}, resp.Line)
}

func (s *HandlerTestSuite) TestSetEquipped() {
	s.mockCharacter.EXPECT().
		SetEquipped(gomock.Any(), &character.SetEquippedInput{
			CharacterID: "char-1",
			PlayerID:    testutils.TestPlayerID,
			LineID:      "inv_1",
			Equipped:    true,
		}).
		Return(&character.SetEquippedOutput{
			Line: &dnd5e.InventoryLine{ID: "inv_1", ItemID: "item-longsword", ItemName: "Longsword", Quantity: 1, IsEquipped: true},
		}, nil)

	var resp v1alpha1.InventoryLineResponse
	err := s.client.Call(s.ctx, "SetEquipped", &v1alpha1.SetEquippedRequest{
		CharacterID: "char-1",
		PlayerID:    testutils.TestPlayerID,
		LineID:      "inv_1",
		Equipped:    true,
	}, &resp)
	s.Require().NoError(err)
	s.Assert().True(resp.Line.IsEquipped)
}

func (s *HandlerTestSuite) TestRemoveInventoryItemNotFound() {
	s.mockCharacter.EXPECT().
		RemoveInventoryItem(gomock.Any(), &character.RemoveInventoryItemInput{CharacterID: "char-1", PlayerID: testutils.TestPlayerID, LineID: "inv_gone"}).
		Return(nil, errors.NotFound("inventory line not found"))

	var resp v1alpha1.RemoveInventoryItemResponse
	err := s.client.Call(s.ctx, "RemoveInventoryItem", &v1alpha1.RemoveInventoryItemRequest{
		CharacterID: "char-1",
		PlayerID:    testutils.TestPlayerID,
		LineID:      "inv_gone",
	}, &resp)
	s.Assert().True(errors.IsNotFound(err))
}

func (s *HandlerTestSuite) TestListSpells() {
	s.mockCharacter.EXPECT().
		ListSpells(gomock.Any(), &character.ListSpellsInput{CharacterID: "char-1"}).
		Return(&character.ListSpellsOutput{
			CasterType:    dnd5e.CasterTypeFull,
			MaxSpellLevel: 2,
			Spells:        []*dnd5e.Spell{{Name: "Fire Bolt", Level: 0, School: "Evocation"}},
		}, nil)

	var resp v1alpha1.ListSpellsResponse
	err := s.client.Call(s.ctx, "ListSpells", &v1alpha1.CharacterRequest{CharacterID: "char-1"}, &resp)
	s.Require().NoError(err)
	s.Assert().Equal("full", resp.CasterType)
	s.Assert().Equal(2, resp.MaxSpellLevel)
	s.Assert().Equal([]*v1alpha1.Spell{{Name: "Fire Bolt", Level: 0, School: "Evocation"}}, resp.Spells)
}

func (s *HandlerTestSuite) TestDeleteCharacterPermissionDenied() {
	s.mockCharacter.EXPECT().
		DeleteCharacter(gomock.Any(), &character.DeleteCharacterInput{CharacterID: "char-1", PlayerID: "someone-else"}).
		Return(nil, errors.PermissionDenied("character belongs to another player"))

	var resp v1alpha1.DeleteCharacterResponse
	err := s.client.Call(s.ctx, "DeleteCharacter", &v1alpha1.DeleteCharacterRequest{CharacterID: "char-1", PlayerID: "someone-else"}, &resp)
	s.Assert().True(errors.IsPermissionDenied(err))
}

func (s *HandlerTestSuite) TestJoinCampaign() {
	c := &dnd5e.Campaign{
		ID:         "camp_1",
		Name:       "Lost Mine",
		DMPlayerID: "player-dm",
		JoinCode:   "ABC-123",
		Members: []*dnd5e.CampaignMember{
			{PlayerID: "player-dm", Role: dnd5e.RoleDM},
			{PlayerID: testutils.TestPlayerID, CharacterID: "char-1", Role: dnd5e.RolePlayer},
		},
	}
	s.mockCampaign.EXPECT().
		JoinCampaign(gomock.Any(), &campaign.JoinCampaignInput{JoinCode: "abc-123", PlayerID: testutils.TestPlayerID, CharacterID: "char-1"}).
		Return(&campaign.JoinCampaignOutput{Campaign: c, Member: c.Members[1], Joined: true}, nil)

	var resp v1alpha1.JoinCampaignResponse
	err := s.client.Call(s.ctx, "JoinCampaign", &v1alpha1.JoinCampaignRequest{
		JoinCode:    "abc-123",
		PlayerID:    testutils.TestPlayerID,
		CharacterID: "char-1",
	}, &resp)
	s.Require().NoError(err)
	s.Assert().True(resp.Joined)
	s.Assert().Equal("ABC-123", resp.Campaign.JoinCode)
	s.Assert().Len(resp.Campaign.Members, 2)
	s.Assert().Equal("player", resp.Member.Role)
}

func (s *HandlerTestSuite) TestListCampaigns() {
	s.mockCampaign.EXPECT().
		ListCampaigns(gomock.Any(), &campaign.ListCampaignsInput{PlayerID: "player-dm"}).
		Return(&campaign.ListCampaignsOutput{
			DMCampaigns:     []*dnd5e.Campaign{{ID: "camp_1", Name: "Lost Mine", DMPlayerID: "player-dm"}},
			PlayerCampaigns: []*dnd5e.Campaign{{ID: "camp_2", Name: "Curse of Strahd", DMPlayerID: "player-other"}},
		}, nil)

	var resp v1alpha1.ListCampaignsResponse
	err := s.client.Call(s.ctx, "ListCampaigns", &v1alpha1.ListCampaignsRequest{PlayerID: "player-dm"}, &resp)
	s.Require().NoError(err)
	s.Require().Len(resp.DMCampaigns, 1)
	s.Assert().Equal("camp_1", resp.DMCampaigns[0].ID)
	s.Require().Len(resp.PlayerCampaigns, 1)
	s.Assert().Equal("player-other", resp.PlayerCampaigns[0].DMPlayerID)
}

func (s *HandlerTestSuite) TestGiveItem() {
	s.mockCampaign.EXPECT().
		GiveItem(gomock.Any(), &campaign.GiveItemInput{
			CampaignID:  "camp_1",
			DMPlayerID:  "player-dm",
			CharacterID: "char-1",
			ItemID:      "item-torch",
		}).
		Return(&campaign.GiveItemOutput{Line: &dnd5e.InventoryLine{ID: "inv_9", ItemID: "item-torch", ItemName: "Torch", Quantity: 1}}, nil)

	var resp v1alpha1.InventoryLineResponse
	err := s.client.Call(s.ctx, "GiveItem", &v1alpha1.GiveItemRequest{
		CampaignID:  "camp_1",
		DMPlayerID:  "player-dm",
		CharacterID: "char-1",
		ItemID:      "item-torch",
	}, &resp)
	s.Require().NoError(err)
	s.Assert().Equal(1, resp.Line.Quantity)
}

func (s *HandlerTestSuite) TestSearchItemsRequiresDM() {
	s.mockCampaign.EXPECT().
		SearchItems(gomock.Any(), gomock.Any()).
		Return(nil, errors.PermissionDenied("only the campaign DM can do that"))

	var resp v1alpha1.SearchItemsResponse
	err := s.client.Call(s.ctx, "SearchItems", &v1alpha1.SearchItemsRequest{CampaignID: "camp_1", DMPlayerID: "p", Query: "sword"}, &resp)
	s.Assert().True(errors.IsPermissionDenied(err))
}
