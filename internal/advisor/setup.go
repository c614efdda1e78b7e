package advisor

import (
	"context"

	"github.com/iwvelando/equity-unlock/internal/config"
	"github.com/iwvelando/equity-unlock/pkg/constants"
	"go.uber.org/zap"
)

// FromConfig builds an Advisor from configuration. A disabled advisor or a
// missing API key yields an Advisor without a client. A redis cache that
// does not answer a ping falls back to an in-memory cache. The returned
// closer releases the cache connection, if any.
func FromConfig(ctx context.Context, logger *zap.Logger, advisorCfg config.AdvisorConfig, cacheCfg config.CacheConfig) (*Advisor, func() error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	noop := func() error { return nil }

	if !advisorCfg.Enabled {
		logger.Debug("advisor disabled", zap.String("op", "advisor.FromConfig"))
		return New(logger, nil, nil), noop
	}

	client, err := NewGeminiClient(GeminiOptions{
		APIKey:  advisorCfg.APIKey,
		Model:   advisorCfg.Model,
		BaseURL: advisorCfg.BaseURL,
		Timeout: advisorCfg.Timeout,
	})
	if err != nil {
		logger.Warn("advisor enabled but unavailable",
			zap.String("op", "advisor.FromConfig"),
			zap.Error(err),
		)
		return New(logger, nil, nil), noop
	}

	if cacheCfg.RedisAddr == "" {
		return New(logger, client, NewMemoryCache(cacheCfg.TTL)), noop
	}

	redisCache := NewRedisCache(cacheCfg.RedisAddr, cacheCfg.TTL)
	pingCtx, cancel := context.WithTimeout(ctx, constants.DefaultCachePingTimeout)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		logger.Warn("redis unreachable, caching insights in memory",
			zap.String("op", "advisor.FromConfig"),
			zap.String("address", cacheCfg.RedisAddr),
			zap.Error(err),
		)
		_ = redisCache.Close()
		return New(logger, client, NewMemoryCache(cacheCfg.TTL)), noop
	}

	logger.Info("caching insights in redis",
		zap.String("op", "advisor.FromConfig"),
		zap.String("address", cacheCfg.RedisAddr),
	)
	return New(logger, client, redisCache), redisCache.Close
}
