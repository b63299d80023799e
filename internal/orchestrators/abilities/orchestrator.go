// Package abilities implements the ability score build workflow on top of
// stored build sessions
package abilities

//go:generate mockgen -destination=mock/mock_service.go -package=abilitiesmock github.com/KirkDiggler/rpg-builder/internal/orchestrators/abilities Service

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/KirkDiggler/rpg-builder/internal/errors"
	"github.com/KirkDiggler/rpg-builder/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-builder/internal/pkg/telemetry"
	abilitysession "github.com/KirkDiggler/rpg-builder/internal/repositories/ability_session"
	abilityrules "github.com/KirkDiggler/rpg-builder/internal/rules/abilities"
)

var tracer = telemetry.Tracer("orchestrators/abilities")

// Service defines the ability score build operations
type Service interface {
	StartSession(ctx context.Context, input *StartSessionInput) (*SessionOutput, error)
	GetSession(ctx context.Context, input *GetSessionInput) (*SessionOutput, error)

	// Point buy
	ApplyDelta(ctx context.Context, input *ApplyDeltaInput) (*SessionOutput, error)

	// Method switching and standard array
	SelectMethod(ctx context.Context, input *SelectMethodInput) (*SessionOutput, error)
	ApplyDefaultDistribution(ctx context.Context, input *ApplyDefaultDistributionInput) (*SessionOutput, error)
	AdjustScore(ctx context.Context, input *AdjustScoreInput) (*SessionOutput, error)

	// Dice
	RollGroup(ctx context.Context, input *RollGroupInput) (*SessionOutput, error)
	Assign(ctx context.Context, input *AssignInput) (*SessionOutput, error)
	SetScore(ctx context.Context, input *SetScoreInput) (*SessionOutput, error)
}

// Config holds the dependencies for the abilities orchestrator
type Config struct {
	SessionRepo    abilitysession.Repository
	Roller         dice.Roller
	SessionIDGen   idgen.Generator
	RollGroupIDGen idgen.Generator

	// SessionTTL is how long a new session lives; zero uses the store default
	SessionTTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.SessionRepo == nil {
		vb.RequiredField("SessionRepo")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.SessionIDGen == nil {
		vb.RequiredField("SessionIDGen")
	}
	if c.RollGroupIDGen == nil {
		vb.RequiredField("RollGroupIDGen")
	}

	return vb.Build()
}

type orchestrator struct {
	sessionRepo    abilitysession.Repository
	roller         dice.Roller
	sessionIDGen   idgen.Generator
	rollGroupIDGen idgen.Generator
	sessionTTL     time.Duration
}

// NewOrchestrator creates a new abilities orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		sessionRepo:    cfg.SessionRepo,
		roller:         cfg.Roller,
		sessionIDGen:   cfg.SessionIDGen,
		rollGroupIDGen: cfg.RollGroupIDGen,
		sessionTTL:     cfg.SessionTTL,
	}, nil
}

// StartSession creates a point-buy session with every score at 8, or
// returns the player's live session when Resume is set
func (o *orchestrator) StartSession(ctx context.Context, input *StartSessionInput) (*SessionOutput, error) {
	ctx, span := tracer.Start(ctx, "abilities.StartSession")
	defer span.End()

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	if input.Resume {
		current, err := o.sessionRepo.GetByPlayer(ctx, abilitysession.GetByPlayerInput{PlayerID: input.PlayerID})
		switch {
		case err == nil:
			span.SetAttributes(attribute.String("session.id", current.Session.ID), attribute.Bool("session.resumed", true))
			slog.Info("Resumed ability session", "session_id", current.Session.ID, "player_id", input.PlayerID)
			out := accepted(current.Session)
			out.Resumed = true
			return out, nil
		case !errors.IsNotFound(err):
			span.SetStatus(codes.Error, err.Error())
			return nil, errors.Wrap(err, "failed to look up current ability session")
		}
	}

	out, err := o.sessionRepo.Create(ctx, abilitysession.CreateInput{
		ID:       o.sessionIDGen.Generate(),
		PlayerID: input.PlayerID,
		Build:    abilityrules.NewSession(),
		TTL:      o.sessionTTL,
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Wrap(err, "failed to create ability session")
	}

	span.SetAttributes(attribute.String("session.id", out.Session.ID))
	slog.Info("Started ability session", "session_id", out.Session.ID, "player_id", input.PlayerID)

	return accepted(out.Session), nil
}

// GetSession returns a stored session
func (o *orchestrator) GetSession(ctx context.Context, input *GetSessionInput) (*SessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	session, err := o.load(ctx, input.SessionID, input.PlayerID)
	if err != nil {
		return nil, err
	}

	return accepted(session), nil
}

// SelectMethod switches method, resetting scores to 8
func (o *orchestrator) SelectMethod(ctx context.Context, input *SelectMethodInput) (*SessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	return o.transition(ctx, "SelectMethod", input.SessionID, input.PlayerID, func(s abilityrules.Session) (abilityrules.Session, abilityrules.Result) {
		return s.SelectMethod(input.Method)
	})
}

// ApplyDelta steps a point-buy score by ±1
func (o *orchestrator) ApplyDelta(ctx context.Context, input *ApplyDeltaInput) (*SessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	return o.transition(ctx, "ApplyDelta", input.SessionID, input.PlayerID, func(s abilityrules.Session) (abilityrules.Session, abilityrules.Result) {
		return s.ApplyDelta(input.Ability, input.Delta)
	})
}

// ApplyDefaultDistribution assigns 15,14,13,12,10,8 in sheet order
func (o *orchestrator) ApplyDefaultDistribution(ctx context.Context, input *ApplyDefaultDistributionInput) (*SessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	return o.transition(ctx, "ApplyDefaultDistribution", input.SessionID, input.PlayerID, func(s abilityrules.Session) (abilityrules.Session, abilityrules.Result) {
		return s.ApplyDefaultDistribution()
	})
}

// AdjustScore steps a score by ±1 within [1,20]
func (o *orchestrator) AdjustScore(ctx context.Context, input *AdjustScoreInput) (*SessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	return o.transition(ctx, "AdjustScore", input.SessionID, input.PlayerID, func(s abilityrules.Session) (abilityrules.Session, abilityrules.Result) {
		return s.AdjustScore(input.Ability, input.Delta)
	})
}

// RollGroup rolls 4d6 drop lowest and appends the group
func (o *orchestrator) RollGroup(ctx context.Context, input *RollGroupInput) (*SessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var (
		group   abilityrules.RollGroup
		rollErr error
	)
	out, err := o.transition(ctx, "RollGroup", input.SessionID, input.PlayerID, func(s abilityrules.Session) (abilityrules.Session, abilityrules.Result) {
		var (
			next   abilityrules.Session
			result abilityrules.Result
		)
		next, group, result, rollErr = s.RollGroup(o.roller, o.rollGroupIDGen.Generate())
		if rollErr != nil {
			// an unaccepted result leaves the stored session alone
			return s, abilityrules.Result{}
		}
		return next, result
	})
	if rollErr != nil {
		return nil, rollErr
	}
	if err != nil {
		return nil, err
	}

	if out.Accepted {
		out.Group = &group
		slog.Debug("Rolled ability group", "session_id", input.SessionID, "group_id", group.ID, "dice", group.Dice, "total", group.Total)
	}
	return out, nil
}

// Assign binds or unbinds a roll group
func (o *orchestrator) Assign(ctx context.Context, input *AssignInput) (*SessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	return o.transition(ctx, "Assign", input.SessionID, input.PlayerID, func(s abilityrules.Session) (abilityrules.Session, abilityrules.Result) {
		return s.Assign(input.GroupID, input.Ability)
	})
}

// SetScore free-edits an unbound ability in dice mode
func (o *orchestrator) SetScore(ctx context.Context, input *SetScoreInput) (*SessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	return o.transition(ctx, "SetScore", input.SessionID, input.PlayerID, func(s abilityrules.Session) (abilityrules.Session, abilityrules.Result) {
		return s.SetScore(input.Ability, input.Value)
	})
}

type transitionFunc func(abilityrules.Session) (abilityrules.Session, abilityrules.Result)

// transition loads a session, applies fn and stores the result when it
// was accepted
func (o *orchestrator) transition(ctx context.Context, op, sessionID, playerID string, fn transitionFunc) (*SessionOutput, error) {
	ctx, span := tracer.Start(ctx, "abilities."+op)
	defer span.End()
	span.SetAttributes(attribute.String("session.id", sessionID))

	session, err := o.load(ctx, sessionID, playerID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	next, result := fn(session.Build)
	if !result.Accepted {
		span.SetAttributes(attribute.String("rejection.reason", string(result.Reason)))
		slog.Debug("Ability transition rejected", "op", op, "session_id", sessionID, "reason", result.Reason)
		return outputFor(session, result), nil
	}

	session.Build = next
	if err := o.sessionRepo.Update(ctx, session); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.Wrapf(err, "failed to save ability session after %s", op)
	}

	return outputFor(session, result), nil
}

// load fetches a session and checks it belongs to playerID
func (o *orchestrator) load(ctx context.Context, sessionID, playerID string) (*abilitysession.AbilitySession, error) {
	if sessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	if playerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	out, err := o.sessionRepo.Get(ctx, abilitysession.GetInput{ID: sessionID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get ability session %s", sessionID)
	}
	if out.Session.PlayerID != playerID {
		return nil, errors.PermissionDeniedf("ability session %s belongs to another player", sessionID)
	}
	return out.Session, nil
}

func accepted(session *abilitysession.AbilitySession) *SessionOutput {
	return outputFor(session, abilityrules.Result{Accepted: true})
}

func outputFor(session *abilitysession.AbilitySession, result abilityrules.Result) *SessionOutput {
	return &SessionOutput{
		Session:         session,
		Accepted:        result.Accepted,
		Reason:          result.Reason,
		PointsRemaining: session.Build.PointsRemaining(),
		IsStandardArray: abilityrules.IsStandardArrayPermutation(session.Build.Scores),
	}
}
