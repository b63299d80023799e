package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-builder/internal/config"
	"github.com/KirkDiggler/rpg-builder/internal/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestLoadDefaults() {
	cfg, err := config.Load()
	s.Require().NoError(err)

	s.Assert().Equal(50051, cfg.Port)
	s.Assert().Equal(config.DriverSQLite, cfg.DatabaseDriver)
	s.Assert().Equal(config.ClassSourceDB, cfg.ClassSource)
	s.Assert().Equal(30*time.Minute, cfg.SessionTTL)
	s.Assert().Empty(cfg.OTelEndpoint)
}

func (s *ConfigTestSuite) TestLoadFromEnvironment() {
	s.T().Setenv("PORT", "6000")
	s.T().Setenv("DATABASE_DRIVER", "postgres")
	s.T().Setenv("DATABASE_URL", "postgres://localhost/rpg?sslmode=disable")
	s.T().Setenv("CLASS_SOURCE", "dnd5eapi")
	s.T().Setenv("SESSION_TTL", "5m")

	cfg, err := config.Load()
	s.Require().NoError(err)

	s.Assert().Equal(6000, cfg.Port)
	s.Assert().Equal(config.DriverPostgres, cfg.DatabaseDriver)
	s.Assert().Equal(config.ClassSourceDND5eAPI, cfg.ClassSource)
	s.Assert().Equal(5*time.Minute, cfg.SessionTTL)
}

func (s *ConfigTestSuite) TestLoadRejectsUnknownDriver() {
	s.T().Setenv("DATABASE_DRIVER", "mysql")

	_, err := config.Load()
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *ConfigTestSuite) TestLoadRejectsMalformedDuration() {
	s.T().Setenv("SESSION_TTL", "soon")

	_, err := config.Load()
	s.Require().Error(err)
}

func (s *ConfigTestSuite) TestSlogLevel() {
	testCases := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}

	for _, tc := range testCases {
		s.Run(tc.level, func() {
			cfg := &config.Config{LogLevel: tc.level}
			s.Assert().Equal(tc.want, cfg.SlogLevel())
		})
	}
}
