package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis the stores rely on. Both *redis.Client
// and the redismock client satisfy it.
type Client interface {
	redis.UniversalClient
}
