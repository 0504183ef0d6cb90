package bootstrap

import (
	"context"

	"transfer-portal/internal/infra/cache"
	"transfer-portal/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedis,
		NewPolicyCache,
	),
)

func NewRedis(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	client := cache.NewRedisClient(cfg.Redis)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client
}

func NewPolicyCache(client *redis.Client, cfg config.Config) *cache.PolicyCache {
	return cache.NewPolicyCache(client, cfg.Redis.PolicyTTL)
}
