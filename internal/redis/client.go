// Package redis wraps the go-redis client behind an interface so stores can
// be tested against miniredis or redismock.
package redis

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-builder/internal/errors"
)

// Options tunes the connection pool
type Options struct {
	PoolSize        int
	MinIdleConns    int
	ConnMaxIdleTime time.Duration
	MaxRetries      int
	UseTLS          bool
}

// NewClient creates a client for a single host:port
func NewClient(endpoint string, opts *Options) (Client, error) {
	if endpoint == "" {
		return nil, errors.InvalidArgument("redis endpoint is required")
	}

	redisOpts := &redis.Options{Addr: endpoint}
	applyOptions(redisOpts, opts)

	return redis.NewClient(redisOpts), nil
}

// NewClientFromURL accepts either a redis:// URL or a bare host:port
func NewClientFromURL(rawURL string, opts *Options) (Client, error) {
	if rawURL == "" {
		return nil, errors.InvalidArgument("redis url is required")
	}
	if !strings.Contains(rawURL, "://") {
		return NewClient(rawURL, opts)
	}

	redisOpts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid redis url")
	}
	applyOptions(redisOpts, opts)

	return redis.NewClient(redisOpts), nil
}

// Ping verifies the server is reachable
func Ping(ctx context.Context, client Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to reach redis")
	}
	return nil
}

func applyOptions(redisOpts *redis.Options, opts *Options) {
	if opts == nil {
		return
	}

	redisOpts.PoolSize = opts.PoolSize
	redisOpts.MinIdleConns = opts.MinIdleConns
	redisOpts.ConnMaxIdleTime = opts.ConnMaxIdleTime
	redisOpts.MaxRetries = opts.MaxRetries

	if opts.UseTLS && redisOpts.TLSConfig == nil {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
}
