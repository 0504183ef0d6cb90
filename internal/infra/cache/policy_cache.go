package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"transfer-portal/internal/domain/cancellation"
	"transfer-portal/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

// PolicyCache keeps the cancellation policy table in Redis. Policies are
// reference data read on every cancellation request, so a short TTL is
// enough to absorb the load while admin edits still show up quickly.
type PolicyCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewPolicyCache(client *redis.Client, ttl time.Duration) *PolicyCache {
	return &PolicyCache{client: client, ttl: ttl}
}

// Get returns the cached table, or nil on a miss.
func (c *PolicyCache) Get(ctx context.Context) ([]cancellation.Policy, error) {
	data, err := c.client.Get(ctx, policiesKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var policies []cancellation.Policy
	if err := json.Unmarshal(data, &policies); err != nil {
		return nil, err
	}
	return policies, nil
}

func (c *PolicyCache) Set(ctx context.Context, policies []cancellation.Policy) error {
	payload, err := json.Marshal(policies)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, policiesKey(), payload, c.ttl).Err()
}

func (c *PolicyCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, policiesKey()).Err()
}

func policiesKey() string {
	return "cache:cancellation_policies"
}
