package campaign_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-builder/internal/errors"
	"github.com/KirkDiggler/rpg-builder/internal/orchestrators/campaign"
	"github.com/KirkDiggler/rpg-builder/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-builder/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-builder/internal/repositories/campaigns"
	campaignsmock "github.com/KirkDiggler/rpg-builder/internal/repositories/campaigns/mock"
	"github.com/KirkDiggler/rpg-builder/internal/repositories/characters"
	charactersmock "github.com/KirkDiggler/rpg-builder/internal/repositories/characters/mock"
	"github.com/KirkDiggler/rpg-builder/internal/repositories/items"
	itemsmock "github.com/KirkDiggler/rpg-builder/internal/repositories/items/mock"
	"github.com/KirkDiggler/rpg-builder/internal/testutils"
)

const (
	dmPlayerID  = "player-dm"
	campaignID  = "camp_1"
	joinCode    = "ABC-123"
	characterID = "char-test-001"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctx            context.Context
	ctrl           *gomock.Controller
	mockCampaigns  *campaignsmock.MockRepository
	mockCharacters *charactersmock.MockRepository
	mockItems      *itemsmock.MockRepository
	orchestrator   campaign.Service
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockCampaigns = campaignsmock.NewMockRepository(s.ctrl)
	s.mockCharacters = charactersmock.NewMockRepository(s.ctrl)
	s.mockItems = itemsmock.NewMockRepository(s.ctrl)

	orch, err := campaign.NewOrchestrator(&campaign.Config{
		CampaignRepo:   s.mockCampaigns,
		CharacterRepo:  s.mockCharacters,
		ItemRepo:       s.mockItems,
		IDGenerator:    idgen.NewSequential("camp"),
		JoinCodeGen:    idgen.NewSequential("CODE"),
		InventoryIDGen: idgen.NewSequential("inv"),
		Clock:          &clock.Fixed{At: testutils.TestTime},
	})
	s.Require().NoError(err)
	s.orchestrator = orch
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// testCampaign has the DM and one player who brought the test character
func (s *OrchestratorTestSuite) testCampaign() *dnd5e.Campaign {
	return &dnd5e.Campaign{
		ID:         campaignID,
		Name:       "Lost Mine",
		DMPlayerID: dmPlayerID,
		JoinCode:   joinCode,
		CreatedAt:  testutils.TestTime,
		Members: []*dnd5e.CampaignMember{
			{CampaignID: campaignID, PlayerID: dmPlayerID, Role: dnd5e.RoleDM},
			{CampaignID: campaignID, PlayerID: testutils.TestPlayerID, CharacterID: characterID, Role: dnd5e.RolePlayer},
		},
	}
}

func (s *OrchestratorTestSuite) expectCampaign() {
	s.mockCampaigns.EXPECT().
		Get(gomock.Any(), campaigns.GetInput{ID: campaignID}).
		Return(&campaigns.GetOutput{Campaign: s.testCampaign()}, nil)
}

func (s *OrchestratorTestSuite) expectCharacter() *dnd5e.Character {
	char := testutils.CreateTestCharacter(testutils.TestPlayerID)
	s.mockCharacters.EXPECT().
		Get(gomock.Any(), characters.GetInput{ID: characterID}).
		Return(&characters.GetOutput{Character: char}, nil)
	return char
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidates() {
	_, err := campaign.NewOrchestrator(&campaign.Config{})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestCreateCampaignAddsDM() {
	s.mockCampaigns.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input campaigns.CreateInput) (*campaigns.CreateOutput, error) {
			s.Assert().Equal("camp_1", input.Campaign.ID)
			s.Assert().Equal("CODE_1", input.Campaign.JoinCode)
			s.Require().Len(input.Campaign.Members, 1)
			s.Assert().Equal(dnd5e.RoleDM, input.Campaign.Members[0].Role)
			s.Assert().Equal(dmPlayerID, input.Campaign.Members[0].PlayerID)
			return &campaigns.CreateOutput{Campaign: input.Campaign}, nil
		})

	out, err := s.orchestrator.CreateCampaign(s.ctx, &campaign.CreateCampaignInput{
		PlayerID: dmPlayerID,
		Name:     "Lost Mine",
	})
	s.Require().NoError(err)
	s.Assert().Equal(dmPlayerID, out.Campaign.DMPlayerID)
	s.Assert().Equal(testutils.TestTime, out.Campaign.CreatedAt)
}

func (s *OrchestratorTestSuite) TestCreateCampaignRetriesJoinCodeCollision() {
	var codes []string
	s.mockCampaigns.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input campaigns.CreateInput) (*campaigns.CreateOutput, error) {
			codes = append(codes, input.Campaign.JoinCode)
			if len(codes) == 1 {
				return nil, errors.AlreadyExists("join code taken")
			}
			return &campaigns.CreateOutput{Campaign: input.Campaign}, nil
		}).
		Times(2)

	out, err := s.orchestrator.CreateCampaign(s.ctx, &campaign.CreateCampaignInput{PlayerID: dmPlayerID, Name: "Lost Mine"})
	s.Require().NoError(err)
	s.Assert().Equal([]string{"CODE_1", "CODE_2"}, codes)
	s.Assert().Equal("CODE_2", out.Campaign.JoinCode)
}

func (s *OrchestratorTestSuite) TestCreateCampaignGivesUpAfterRepeatedCollisions() {
	s.mockCampaigns.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, errors.AlreadyExists("join code taken")).
		Times(3)

	_, err := s.orchestrator.CreateCampaign(s.ctx, &campaign.CreateCampaignInput{PlayerID: dmPlayerID, Name: "Lost Mine"})
	s.Assert().True(errors.IsAlreadyExists(err))
}

func (s *OrchestratorTestSuite) TestCreateCampaignValidation() {
	_, err := s.orchestrator.CreateCampaign(s.ctx, &campaign.CreateCampaignInput{})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestJoinCampaignAddsPlayer() {
	c := s.testCampaign()
	c.Members = c.Members[:1]
	s.mockCampaigns.EXPECT().
		GetByJoinCode(gomock.Any(), campaigns.GetByJoinCodeInput{JoinCode: "abc-123"}).
		Return(&campaigns.GetByJoinCodeOutput{Campaign: c}, nil)
	s.expectCharacter()
	s.mockCampaigns.EXPECT().
		AddMember(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input campaigns.AddMemberInput) (*campaigns.AddMemberOutput, error) {
			s.Assert().Equal(dnd5e.RolePlayer, input.Member.Role)
			s.Assert().Equal(characterID, input.Member.CharacterID)
			return &campaigns.AddMemberOutput{Member: input.Member}, nil
		})

	out, err := s.orchestrator.JoinCampaign(s.ctx, &campaign.JoinCampaignInput{
		JoinCode:    "abc-123",
		PlayerID:    testutils.TestPlayerID,
		CharacterID: characterID,
	})
	s.Require().NoError(err)
	s.Assert().True(out.Joined)
	s.Assert().Len(out.Campaign.Members, 2)
}

func (s *OrchestratorTestSuite) TestJoinCampaignTwiceIsNoOp() {
	s.mockCampaigns.EXPECT().
		GetByJoinCode(gomock.Any(), gomock.Any()).
		Return(&campaigns.GetByJoinCodeOutput{Campaign: s.testCampaign()}, nil)

	out, err := s.orchestrator.JoinCampaign(s.ctx, &campaign.JoinCampaignInput{
		JoinCode: joinCode,
		PlayerID: testutils.TestPlayerID,
	})
	s.Require().NoError(err)
	s.Assert().False(out.Joined)
	s.Assert().Equal(characterID, out.Member.CharacterID)
}

func (s *OrchestratorTestSuite) TestJoinCampaignRejectsAnotherPlayersCharacter() {
	c := s.testCampaign()
	c.Members = c.Members[:1]
	s.mockCampaigns.EXPECT().
		GetByJoinCode(gomock.Any(), gomock.Any()).
		Return(&campaigns.GetByJoinCodeOutput{Campaign: c}, nil)
	s.expectCharacter()

	_, err := s.orchestrator.JoinCampaign(s.ctx, &campaign.JoinCampaignInput{
		JoinCode:    joinCode,
		PlayerID:    "player-other",
		CharacterID: characterID,
	})
	s.Assert().True(errors.IsPermissionDenied(err))
}

func (s *OrchestratorTestSuite) TestJoinCampaignUnknownCode() {
	s.mockCampaigns.EXPECT().
		GetByJoinCode(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound("campaign not found"))

	_, err := s.orchestrator.JoinCampaign(s.ctx, &campaign.JoinCampaignInput{JoinCode: "ZZZ-999", PlayerID: "p"})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestGetCampaignIncludesCharacters() {
	s.expectCampaign()
	char := s.expectCharacter()

	out, err := s.orchestrator.GetCampaign(s.ctx, &campaign.GetCampaignInput{CampaignID: campaignID, PlayerID: dmPlayerID})
	s.Require().NoError(err)
	s.Assert().Equal([]*dnd5e.Character{char}, out.Characters)
}

func (s *OrchestratorTestSuite) TestGetCampaignSkipsMissingCharacters() {
	s.expectCampaign()
	s.mockCharacters.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound("character not found"))

	out, err := s.orchestrator.GetCampaign(s.ctx, &campaign.GetCampaignInput{CampaignID: campaignID, PlayerID: testutils.TestPlayerID})
	s.Require().NoError(err)
	s.Assert().Empty(out.Characters)
}

func (s *OrchestratorTestSuite) TestGetCampaignRequiresMembership() {
	s.expectCampaign()

	_, err := s.orchestrator.GetCampaign(s.ctx, &campaign.GetCampaignInput{CampaignID: campaignID, PlayerID: "stranger"})
	s.Assert().True(errors.IsPermissionDenied(err))
}

func (s *OrchestratorTestSuite) TestListCampaignsSplitsByRole() {
	run := s.testCampaign()
	played := &dnd5e.Campaign{ID: "camp_2", Name: "Curse of Strahd", DMPlayerID: "player-other", JoinCode: "XYZ-789"}
	s.mockCampaigns.EXPECT().
		ListByPlayer(gomock.Any(), campaigns.ListByPlayerInput{PlayerID: dmPlayerID}).
		Return(&campaigns.ListByPlayerOutput{Campaigns: []*dnd5e.Campaign{played, run}}, nil)

	out, err := s.orchestrator.ListCampaigns(s.ctx, &campaign.ListCampaignsInput{PlayerID: dmPlayerID})
	s.Require().NoError(err)
	s.Assert().Equal([]*dnd5e.Campaign{run}, out.DMCampaigns)
	s.Assert().Equal([]*dnd5e.Campaign{played}, out.PlayerCampaigns)
}

func (s *OrchestratorTestSuite) TestListCampaignsEmpty() {
	s.mockCampaigns.EXPECT().
		ListByPlayer(gomock.Any(), gomock.Any()).
		Return(&campaigns.ListByPlayerOutput{}, nil)

	out, err := s.orchestrator.ListCampaigns(s.ctx, &campaign.ListCampaignsInput{PlayerID: "player-new"})
	s.Require().NoError(err)
	s.Assert().Empty(out.DMCampaigns)
	s.Assert().Empty(out.PlayerCampaigns)

	_, err = s.orchestrator.ListCampaigns(s.ctx, &campaign.ListCampaignsInput{})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestListCampaignsStoreFailure() {
	s.mockCampaigns.EXPECT().
		ListByPlayer(gomock.Any(), gomock.Any()).
		Return(nil, errors.Unavailable("database unavailable"))

	_, err := s.orchestrator.ListCampaigns(s.ctx, &campaign.ListCampaignsInput{PlayerID: dmPlayerID})
	s.Assert().True(errors.IsUnavailable(err))
}

func (s *OrchestratorTestSuite) TestUpdateHitPoints() {
	s.expectCampaign()
	s.expectCharacter()
	s.mockCharacters.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input characters.UpdateInput) (*characters.UpdateOutput, error) {
			return &characters.UpdateOutput{Character: input.Character}, nil
		})

	out, err := s.orchestrator.UpdateHitPoints(s.ctx, &campaign.UpdateHitPointsInput{
		CampaignID:  campaignID,
		DMPlayerID:  dmPlayerID,
		CharacterID: characterID,
		HitPoints:   3,
	})
	s.Require().NoError(err)
	s.Assert().Equal(3, out.Character.HitPoints)
	s.Assert().Equal(dnd5e.StartingHitPoints, out.Character.MaxHitPoints)
}

func (s *OrchestratorTestSuite) TestUpdateHitPointsRequiresDM() {
	s.expectCampaign()

	_, err := s.orchestrator.UpdateHitPoints(s.ctx, &campaign.UpdateHitPointsInput{
		CampaignID:  campaignID,
		DMPlayerID:  testutils.TestPlayerID,
		CharacterID: characterID,
		HitPoints:   3,
	})
	s.Assert().True(errors.IsPermissionDenied(err))
}

func (s *OrchestratorTestSuite) TestUpdateHitPointsCharacterOutsideCampaign() {
	s.expectCampaign()

	_, err := s.orchestrator.UpdateHitPoints(s.ctx, &campaign.UpdateHitPointsInput{
		CampaignID:  campaignID,
		DMPlayerID:  dmPlayerID,
		CharacterID: "char-elsewhere",
		HitPoints:   3,
	})
	s.Assert().True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestUpdateHitPointsRejectsNegative() {
	_, err := s.orchestrator.UpdateHitPoints(s.ctx, &campaign.UpdateHitPointsInput{
		CampaignID:  campaignID,
		DMPlayerID:  dmPlayerID,
		CharacterID: characterID,
		HitPoints:   -1,
	})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestGiveItemDefaultsQuantity() {
	s.expectCampaign()
	s.expectCharacter()
	s.mockItems.EXPECT().
		Get(gomock.Any(), items.GetInput{ID: "item-torch"}).
		Return(&items.GetOutput{Item: &dnd5e.CatalogItem{ID: "item-torch", Name: "Torch"}}, nil)
	s.mockCharacters.EXPECT().
		AddInventory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input characters.AddInventoryInput) (*characters.AddInventoryOutput, error) {
			return &characters.AddInventoryOutput{Line: input.Line}, nil
		})

	out, err := s.orchestrator.GiveItem(s.ctx, &campaign.GiveItemInput{
		CampaignID:  campaignID,
		DMPlayerID:  dmPlayerID,
		CharacterID: characterID,
		ItemID:      "item-torch",
	})
	s.Require().NoError(err)
	s.Assert().Equal(&dnd5e.InventoryLine{
		ID:          "inv_1",
		CharacterID: characterID,
		ItemID:      "item-torch",
		ItemName:    "Torch",
		Quantity:    1,
	}, out.Line)
}

func (s *OrchestratorTestSuite) TestGiveItemUnknownItem() {
	s.expectCampaign()
	s.expectCharacter()
	s.mockItems.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound("item not found"))

	_, err := s.orchestrator.GiveItem(s.ctx, &campaign.GiveItemInput{
		CampaignID:  campaignID,
		DMPlayerID:  dmPlayerID,
		CharacterID: characterID,
		ItemID:      "item-missing",
		Quantity:    2,
	})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestSearchItemsDefaultsLimit() {
	s.expectCampaign()
	found := []*dnd5e.CatalogItem{{ID: "item-1", Name: "Longsword"}}
	s.mockItems.EXPECT().
		Search(gomock.Any(), items.SearchInput{Query: "sword", Limit: campaign.DefaultSearchLimit}).
		Return(&items.SearchOutput{Items: found}, nil)

	out, err := s.orchestrator.SearchItems(s.ctx, &campaign.SearchItemsInput{
		CampaignID: campaignID,
		DMPlayerID: dmPlayerID,
		Query:      "sword",
	})
	s.Require().NoError(err)
	s.Assert().Equal(found, out.Items)
}

func (s *OrchestratorTestSuite) TestSearchItemsRequiresDM() {
	s.expectCampaign()

	_, err := s.orchestrator.SearchItems(s.ctx, &campaign.SearchItemsInput{
		CampaignID: campaignID,
		DMPlayerID: testutils.TestPlayerID,
		Query:      "sword",
	})
	s.Assert().True(errors.IsPermissionDenied(err))
}
