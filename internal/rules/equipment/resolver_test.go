package equipment_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-builder/internal/errors"
	"github.com/KirkDiggler/rpg-builder/internal/rules/equipment"
)

type ResolverTestSuite struct {
	suite.Suite
	resolver *equipment.Resolver
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}

func (s *ResolverTestSuite) SetupTest() {
	s.resolver = equipment.NewResolver(nil)
}

func (s *ResolverTestSuite) mustParse(doc string) *equipment.Grant {
	grant, err := equipment.ParseGrant([]byte(doc))
	s.Require().NoError(err)
	return grant
}

func (s *ResolverTestSuite) TestGoldMethod() {
	res, err := s.resolver.Resolve(&equipment.Input{Method: equipment.MethodGold})
	s.Require().NoError(err)

	s.Assert().Empty(res.Requests)
	s.Assert().Empty(res.Warnings)
	s.Assert().Equal(dnd5e.Currency{GP: 100}, res.Gold)
}

func (s *ResolverTestSuite) TestInvalidInput() {
	_, err := s.resolver.Resolve(nil)
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.resolver.Resolve(&equipment.Input{Method: "barter"})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.resolver.Resolve(&equipment.Input{Method: equipment.MethodClass})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *ResolverTestSuite) TestExplorersPackExpandsToContents() {
	grant := s.mustParse(`{"mandatory": [{"equipment": {"name": "Explorer's Pack"}, "quantity": 1}]}`)

	res, err := s.resolver.Resolve(&equipment.Input{Method: equipment.MethodClass, Grant: grant})
	s.Require().NoError(err)

	s.Require().Len(res.Requests, 8)
	for _, request := range res.Requests {
		s.Assert().NotEqual("Explorer's Pack", request.ItemName)
	}
	s.Assert().Equal(equipment.ItemRequest{ItemName: "Torch", Quantity: 10}, res.Requests[4])
	s.Assert().Equal(equipment.ItemRequest{ItemName: "Rope, hempen (50 feet)", Quantity: 1}, res.Requests[7])
}

func (s *ResolverTestSuite) TestPackQuantityMultipliesContents() {
	grant := &equipment.Grant{Mandatory: []equipment.MandatoryEntry{{ItemName: "Entertainer's Pack", Quantity: 2}}}

	res, err := s.resolver.Resolve(&equipment.Input{Method: equipment.MethodClass, Grant: grant})
	s.Require().NoError(err)

	s.Require().Len(res.Requests, 7)
	s.Assert().Equal(equipment.ItemRequest{ItemName: "Backpack", Quantity: 2}, res.Requests[0])
	s.Assert().Equal(equipment.ItemRequest{ItemName: "Clothes, Costume", Quantity: 4}, res.Requests[2])
}

func (s *ResolverTestSuite) TestNonPackPassthroughKeepsQuantity() {
	grant := &equipment.Grant{Mandatory: []equipment.MandatoryEntry{
		{ItemName: "Shortsword", Quantity: 2},
		{ItemName: "Leather Armor"},
	}}

	res, err := s.resolver.Resolve(&equipment.Input{Method: equipment.MethodClass, Grant: grant})
	s.Require().NoError(err)

	s.Assert().Equal([]equipment.ItemRequest{
		{ItemName: "Shortsword", Quantity: 2},
		{ItemName: "Leather Armor", Quantity: 1},
	}, res.Requests)
}

func (s *ResolverTestSuite) TestEndToEndGrantWithChoice() {
	grant := s.mustParse(`{
		"mandatory": [{"equipment": {"name": "Explorer's Pack"}}],
		"options": [{"choose": 1, "from": [{"manual_name": "Longsword"}, {"manual_name": "Shortbow"}]}]
	}`)

	res, err := s.resolver.Resolve(&equipment.Input{
		Method:  equipment.MethodClass,
		Grant:   grant,
		Choices: map[int]string{0: "Longsword"},
	})
	s.Require().NoError(err)

	s.Require().Len(res.Requests, 9)
	s.Assert().Equal(equipment.ItemRequest{ItemName: "Longsword", Quantity: 1}, res.Requests[8])
	s.Assert().Empty(res.Warnings)
}

func (s *ResolverTestSuite) TestChosenPackIsExpanded() {
	grant := s.mustParse(`{
		"options": [{"choose": 1, "from": {"options": [
			{"option_type": "counted_reference", "count": 1, "of": {"name": "Priest's Pack"}},
			{"option_type": "counted_reference", "count": 1, "of": {"name": "Explorer's Pack"}}
		]}}]
	}`)

	res, err := s.resolver.Resolve(&equipment.Input{
		Method:  equipment.MethodClass,
		Grant:   grant,
		Choices: map[int]string{0: "Priest's Pack"},
	})
	s.Require().NoError(err)
	s.Assert().Len(res.Requests, 10)
	s.Assert().Equal("Blanket", res.Requests[1].ItemName)
}

func (s *ResolverTestSuite) TestChoiceWarnings() {
	grant := s.mustParse(`{
		"mandatory": [{"equipment": {"name": "Dagger"}, "quantity": 2}, {"quantity": 1}],
		"options": [
			{"choose": 1, "desc": "broken", "from": 42},
			{"choose": 2, "desc": "two martial weapons", "from": [{"manual_name": "Longsword"}, {"manual_name": "Battleaxe"}]},
			{"choose": 1, "desc": "unanswered", "from": [{"manual_name": "Lute"}]},
			{"choose": 1, "desc": "bogus", "from": [{"manual_name": "Lute"}]},
			{"choose": 1, "desc": "focus", "from": {"equipment_category": {"name": "Druidic Foci"}}}
		]
	}`)

	res, err := s.resolver.Resolve(&equipment.Input{
		Method: equipment.MethodClass,
		Grant:  grant,
		Choices: map[int]string{
			1: "Longsword",
			3: "Bagpipes",
			4: "any druidic foci",
		},
	})
	s.Require().NoError(err)

	kinds := make([]equipment.WarningKind, len(res.Warnings))
	for i, w := range res.Warnings {
		kinds[i] = w.Kind
	}
	s.Assert().Equal([]equipment.WarningKind{
		equipment.WarningUnnamedEntry,
		equipment.WarningUnparseableOptionSet,
		equipment.WarningUnsupportedMultiChoice,
		equipment.WarningMissingChoice,
		equipment.WarningUnknownChoice,
	}, kinds)
	s.Assert().Equal(0, res.Warnings[1].GroupIndex)

	// Everything resolvable still comes through; the category placeholder is
	// passed on as a descriptive name for the matcher to reject
	s.Assert().Equal([]equipment.ItemRequest{
		{ItemName: "Dagger", Quantity: 2},
		{ItemName: "Any Druidic Foci", Quantity: 1},
	}, res.Requests)
}

func (s *ResolverTestSuite) TestResolveIsDeterministic() {
	grant := s.mustParse(`{
		"mandatory": [{"equipment": {"name": "Burglar's Pack"}}, {"equipment": {"name": "Rapier"}}],
		"options": [{"choose": 1, "from": [{"manual_name": "Shortbow"}]}]
	}`)
	input := &equipment.Input{Method: equipment.MethodClass, Grant: grant, Choices: map[int]string{0: "Shortbow"}}

	first, err := s.resolver.Resolve(input)
	s.Require().NoError(err)
	second, err := s.resolver.Resolve(input)
	s.Require().NoError(err)

	s.Assert().Equal(first, second)
}

func (s *ResolverTestSuite) TestItemNames() {
	res := &equipment.Resolution{Requests: []equipment.ItemRequest{
		{ItemName: "Torch", Quantity: 10},
		{ItemName: "Backpack", Quantity: 1},
		{ItemName: "Torch", Quantity: 5},
	}}
	s.Assert().Equal([]string{"Backpack", "Torch"}, res.ItemNames())
}

func (s *ResolverTestSuite) TestChoiceMatchesItemName() {
	grant := s.mustParse(`{"options": [{"choose": 1, "from": [
		{"option_type": "counted_reference", "count": 2, "of": {"name": "Handaxe"}},
		{"manual_name": "Mace"}
	]}]}`)

	res, err := s.resolver.Resolve(&equipment.Input{
		Method:  equipment.MethodClass,
		Grant:   grant,
		Choices: map[int]string{0: "handaxe"},
	})
	s.Require().NoError(err)
	s.Assert().Equal([]equipment.ItemRequest{{ItemName: "Handaxe", Quantity: 2}}, res.Requests)
}
