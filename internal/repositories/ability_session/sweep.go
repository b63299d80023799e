package abilitysession

import (
	"context"
	"encoding/json"
	"strings"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-builder/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-builder/internal/redis"
)

const sweepBatchSize = 100

// SweepInput controls a sweep. Keys are only removed when Delete is set.
type SweepInput struct {
	Delete bool
}

// SweepOutput lists the keys a sweep flagged
type SweepOutput struct {
	Checked int
	// Corrupt session keys hold data that no longer decodes
	Corrupt []string
	// Dangling player index keys point at sessions that are gone
	Dangling []string
	Deleted  int64
}

// Sweep scans stored ability sessions for corrupt payloads and stale player
// index entries
func Sweep(ctx context.Context, client redisclient.Client, input SweepInput) (*SweepOutput, error) {
	if client == nil {
		return nil, errors.InvalidArgument("redis client is required")
	}

	output := &SweepOutput{}
	iter := client.Scan(ctx, 0, sessionKeyPrefix+"*", sweepBatchSize).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		output.Checked++

		if strings.HasPrefix(key, playerKeyPrefix) {
			dangling, err := isDangling(ctx, client, key)
			if err != nil {
				return nil, err
			}
			if dangling {
				output.Dangling = append(output.Dangling, key)
			}
			continue
		}

		corrupt, err := isCorrupt(ctx, client, key)
		if err != nil {
			return nil, err
		}
		if corrupt {
			output.Corrupt = append(output.Corrupt, key)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan ability sessions")
	}

	flagged := append(append([]string{}, output.Corrupt...), output.Dangling...)
	if !input.Delete || len(flagged) == 0 {
		return output, nil
	}

	deleted, err := client.Del(ctx, flagged...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete flagged keys")
	}
	output.Deleted = deleted

	return output, nil
}

func isCorrupt(ctx context.Context, client redisclient.Client, key string) (bool, error) {
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			// expired between scan and read
			return false, nil
		}
		return false, errors.Wrapf(err, "failed to read %s", key)
	}

	var session AbilitySession
	if err := json.Unmarshal(data, &session); err != nil {
		return true, nil
	}
	return session.ID == "" || sessionKey(session.ID) != key, nil
}

func isDangling(ctx context.Context, client redisclient.Client, key string) (bool, error) {
	id, err := client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, errors.Wrapf(err, "failed to read %s", key)
	}

	n, err := client.Exists(ctx, sessionKey(id)).Result()
	if err != nil {
		return false, errors.Wrapf(err, "failed to check session %s", id)
	}
	return n == 0, nil
}
