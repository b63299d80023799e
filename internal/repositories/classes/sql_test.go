package classes_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-builder/internal/database"
	"github.com/KirkDiggler/rpg-builder/internal/entities/dnd5e"
	"github.com/KirkDiggler/rpg-builder/internal/errors"
	"github.com/KirkDiggler/rpg-builder/internal/repositories/classes"
	"github.com/KirkDiggler/rpg-builder/internal/rules/equipment"
	"github.com/KirkDiggler/rpg-builder/internal/testutils"
)

type SQLRepositoryTestSuite struct {
	suite.Suite
	ctx  context.Context
	db   *database.DB
	repo classes.Repository
}

func TestSQLRepositorySuite(t *testing.T) {
	suite.Run(t, new(SQLRepositoryTestSuite))
}

func (s *SQLRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutils.CreateTestDB(s.T())

	repo, err := classes.NewSQLRepository(&classes.Config{DB: s.db})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *SQLRepositoryTestSuite) TestGetParsesGrant() {
	out, err := s.repo.Get(s.ctx, classes.GetInput{Key: "wizard"})
	s.Require().NoError(err)

	class := out.Class
	s.Assert().Equal("Wizard", class.Name)
	s.Assert().Equal(6, class.HitDie)
	s.Assert().Equal(dnd5e.CasterTypeFull, class.CasterType)
	s.Assert().Equal([]equipment.MandatoryEntry{{ItemName: "Spellbook", Quantity: 1}}, class.Grant.Mandatory)
	s.Require().Len(class.Grant.Choices, 3)
	s.Assert().Equal(equipment.OptionSetFlat, class.Grant.Choices[0].Options.Kind)
}

func (s *SQLRepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, classes.GetInput{Key: "artificer"})
	s.Assert().True(errors.IsNotFound(err))

	_, err = s.repo.Get(s.ctx, classes.GetInput{})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *SQLRepositoryTestSuite) TestGetMalformedGrantIsInternal() {
	_, err := s.db.ExecContext(s.ctx,
		`INSERT INTO classes (class_key, name, hit_die, starting_equipment) VALUES (?, ?, ?, ?)`,
		"broken", "Broken", 8, `{"mandatory": [`)
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, classes.GetInput{Key: "broken"})
	s.Assert().True(errors.IsInternal(err))
}

func (s *SQLRepositoryTestSuite) TestList() {
	out, err := s.repo.List(s.ctx, classes.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Classes, 12)
	s.Assert().Equal("barbarian", out.Classes[0].Key)
	s.Assert().Equal("wizard", out.Classes[11].Key)
}

func (s *SQLRepositoryTestSuite) TestListFeaturesAndSpells() {
	features, err := s.repo.ListFeatures(s.ctx, classes.ListFeaturesInput{ClassKey: "fighter"})
	s.Require().NoError(err)
	s.Require().NotEmpty(features.Features)
	s.Assert().Equal(1, features.Features[0].Level)
	s.Assert().Equal("Extra Attack", features.Features[len(features.Features)-1].Name)

	spells, err := s.repo.ListSpells(s.ctx, classes.ListSpellsInput{ClassKey: "wizard"})
	s.Require().NoError(err)
	s.Require().Len(spells.Spells, 7)
	s.Assert().Equal(0, spells.Spells[0].Level)

	none, err := s.repo.ListSpells(s.ctx, classes.ListSpellsInput{ClassKey: "fighter"})
	s.Require().NoError(err)
	s.Assert().Empty(none.Spells)
}
