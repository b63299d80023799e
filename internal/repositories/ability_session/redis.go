package abilitysession

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-builder/internal/errors"
	"github.com/KirkDiggler/rpg-builder/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-builder/internal/redis"
)

const (
	// Key patterns: ability_session:{id} and ability_session:player:{player_id}
	sessionKeyPrefix = "ability_session:"
	playerKeyPrefix  = "ability_session:player:"

	// DefaultTTL is how long an untouched session lives
	DefaultTTL = 30 * time.Minute

	errSessionNil     = "session cannot be nil"
	errIDEmpty        = "session ID cannot be empty"
	errPlayerIDEmpty  = "player ID cannot be empty"
	errSessionExpired = "session has already expired"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a Redis repository for ability sessions
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Create stores the session and points the player index at it
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	ttl := input.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	now := r.clock.Now()
	session := &AbilitySession{
		ID:        input.ID,
		PlayerID:  input.PlayerID,
		Build:     input.Build,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal session")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, sessionKey(session.ID), data, ttl)
	pipe.Set(ctx, playerKey(session.PlayerID), session.ID, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to store session in Redis")
	}

	return &CreateOutput{Session: session}, nil
}

// Get retrieves a session by ID
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	session, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Session: session}, nil
}

// GetByPlayer follows the player index to the current session
func (r *redisRepository) GetByPlayer(ctx context.Context, input GetByPlayerInput) (*GetByPlayerOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	id, err := r.client.Get(ctx, playerKey(input.PlayerID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no ability session for player %s", input.PlayerID)
		}
		return nil, errors.Wrap(err, "failed to get player session index from Redis")
	}

	session, err := r.load(ctx, id)
	if err != nil {
		return nil, err
	}

	return &GetByPlayerOutput{Session: session}, nil
}

// Update replaces a session with its remaining TTL
func (r *redisRepository) Update(ctx context.Context, session *AbilitySession) error {
	if session == nil {
		return errors.InvalidArgument(errSessionNil)
	}
	if session.ID == "" {
		return errors.InvalidArgument(errIDEmpty)
	}

	now := r.clock.Now()
	if !now.Before(session.ExpiresAt) {
		return errors.FailedPrecondition(errSessionExpired)
	}
	remaining := session.ExpiresAt.Sub(now)

	data, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "failed to marshal session")
	}

	// XX: an evicted session stays gone
	ok, err := r.client.SetXX(ctx, sessionKey(session.ID), data, remaining).Result()
	if err != nil {
		return errors.Wrap(err, "failed to update session in Redis")
	}
	if !ok {
		return errors.NotFoundf("ability session %s not found", session.ID)
	}

	return nil
}

// Delete removes a session and, if it is still current, the player index
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	session, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	current, err := r.client.Get(ctx, playerKey(session.PlayerID)).Result()
	if err != nil && err != redis.Nil {
		return nil, errors.Wrap(err, "failed to get player session index from Redis")
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, sessionKey(session.ID))
	if current == session.ID {
		pipe.Del(ctx, playerKey(session.PlayerID))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to delete session from Redis")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) load(ctx context.Context, id string) (*AbilitySession, error) {
	key := sessionKey(id)

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("ability session %s not found", id)
		}
		return nil, errors.Wrap(err, "failed to get session from Redis")
	}

	var session AbilitySession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal session")
	}

	if !r.clock.Now().Before(session.ExpiresAt) {
		_ = r.client.Del(ctx, key)
		return nil, errors.NotFoundf("ability session %s has expired", id)
	}

	return &session, nil
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func playerKey(playerID string) string {
	return playerKeyPrefix + playerID
}
