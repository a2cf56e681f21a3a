package memcache_fx

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"nps/internal/config"
	"nps/internal/infra"
	mem "nps/pkg/memcache"
)

var Module = fx.Provide(provideRevokedTokenStore)

// provideRevokedTokenStore shares revocations through redis when REDIS_URL is
// set. Otherwise they live in this process only.
func provideRevokedTokenStore(lc fx.Lifecycle, cfg config.Config) (mem.RevokedTokenStore, error) {
	if !cfg.Redis.Enabled() {
		slog.Info("redis not configured, using in-process revoked token store")
		return mem.NewRevokedTokens(), nil
	}

	client, err := infra.InitRedis(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	slog.Info("redis connected, using shared revoked token store")
	return mem.NewRedisRevokedTokens(client), nil
}
