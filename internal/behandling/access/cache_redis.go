package access

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"kabal/internal/behandling/ports"
)

const (
	redisKeyPrefix   = "kabal:access:"
	redisIndexPrefix = "kabal:access-index:"
	redisScanCount   = 500
)

// RedisCache shares subject access decisions across instances. Each subject has
// an index set listing its decision keys so InvalidateSubject is one round trip
// per subject rather than a keyspace scan.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

type redisDecision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

func decisionKey(subject, ident string) string {
	return redisKeyPrefix + subject + ":" + ident
}

func indexKey(subject string) string {
	return redisIndexPrefix + subject
}

func (r *RedisCache) Get(ctx context.Context, subject, ident string) (ports.AccessDecision, bool, error) {
	raw, err := r.client.Get(ctx, decisionKey(subject, ident)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.AccessDecision{}, false, nil
	}
	if err != nil {
		return ports.AccessDecision{}, false, fmt.Errorf("get access decision: %w", err)
	}
	var d redisDecision
	if err := json.Unmarshal(raw, &d); err != nil {
		return ports.AccessDecision{}, false, fmt.Errorf("decode access decision: %w", err)
	}
	return ports.AccessDecision{Allowed: d.Allowed, Reason: d.Reason}, true, nil
}

func (r *RedisCache) Put(ctx context.Context, subject, ident string, decision ports.AccessDecision) error {
	payload, err := json.Marshal(redisDecision{Allowed: decision.Allowed, Reason: decision.Reason})
	if err != nil {
		return fmt.Errorf("encode access decision: %w", err)
	}
	key := decisionKey(subject, ident)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, payload, r.ttl)
		pipe.SAdd(ctx, indexKey(subject), key)
		pipe.Expire(ctx, indexKey(subject), r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("put access decision: %w", err)
	}
	return nil
}

func (r *RedisCache) InvalidateSubject(ctx context.Context, subject string) error {
	keys, err := r.client.SMembers(ctx, indexKey(subject)).Result()
	if err != nil {
		return fmt.Errorf("list access decisions: %w", err)
	}
	keys = append(keys, indexKey(subject))
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate access decisions: %w", err)
	}
	return nil
}

func (r *RedisCache) Flush(ctx context.Context) error {
	for _, pattern := range []string{redisKeyPrefix + "*", redisIndexPrefix + "*"} {
		var cursor uint64
		for {
			keys, next, err := r.client.Scan(ctx, cursor, pattern, redisScanCount).Result()
			if err != nil {
				return fmt.Errorf("scan access decisions: %w", err)
			}
			if len(keys) > 0 {
				if err := r.client.Del(ctx, keys...).Err(); err != nil {
					return fmt.Errorf("flush access decisions: %w", err)
				}
			}
			if next == 0 {
				break
			}
			cursor = next
		}
	}
	return nil
}
