package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-builder/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationErrorMessageIsSorted() {
	ve := errors.NewValidationError()
	ve.AddFieldError("wis", "must be between 1 and 30")
	ve.AddFieldError("name", "is required")

	s.Assert().Equal("validation failed: name: is required; wis: must be between 1 and 30", ve.Error())

	err := ve.ToError()
	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.Field("name", "is required").
		Fieldf("level", "must be between %d and %d", 1, 20).
		RequiredField("class_key").
		InvalidField("method", "not an acquisition method")

	err := vb.Build()
	s.Require().NotNil(err)
	s.Assert().True(errors.IsInvalidArgument(err))

	s.Assert().Nil(errors.NewValidationBuilder().Build())
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "Thorin", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("name", tc.value, vb)
			if tc.shouldErr {
				s.Assert().Error(vb.Build())
			} else {
				s.Assert().NoError(vb.Build())
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateRangeAndEnum() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("str", 31, 1, 30, vb)
	errors.ValidateRange("dex", 14, 1, 30, vb)
	errors.ValidateEnum("method", "barter", []string{"class", "gold"}, vb)
	errors.ValidateEnum("role", "player", []string{"dm", "player"}, vb)

	err := vb.Build()
	s.Require().NotNil(err)

	validationErrors := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["str"][0], "must be between 1 and 30")
	s.Assert().Contains(validationErrors["method"][0], "must be one of: class, gold")
	s.Assert().NotContains(validationErrors, "dex")
	s.Assert().NotContains(validationErrors, "role")
}
