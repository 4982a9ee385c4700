package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/boddenberg/citadel-bfa-go/internal/config"
	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/cache"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/crmapi"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/observability"
	"github.com/boddenberg/citadel-bfa-go/internal/infra/resilience"
	"github.com/boddenberg/citadel-bfa-go/internal/port"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const breakerName = "crm"

// userCache is a current-user cache owning a resource that must be closed.
type userCache interface {
	port.Cache[domain.User]
	Close() error
}

// newCRMClient builds the CRM client with its breaker, retry and bulkhead
// settings taken from cfg.
func newCRMClient(cfg *config.Config, metrics *observability.Metrics, logger *zap.Logger) *crmapi.Client {
	cb := resilience.NewCircuitBreaker(breakerName, crmapi.BreakerIsSuccessful, func(name string, from, to gobreaker.State) {
		metrics.SetBreakerOpen(name, to == gobreaker.StateOpen)
		logger.Warn("circuit breaker state changed",
			zap.String("breaker", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	})

	return crmapi.NewClient(&http.Client{Timeout: cfg.HTTPTimeout}, crmapi.Options{
		BaseURL: cfg.CRMBaseURL,
		Lock:    cfg.CRMLock,
		Key:     cfg.CRMKey,
		Resilience: resilience.Config{
			MaxRetries:     cfg.MaxRetries,
			InitialBackoff: cfg.InitialBackoff,
			MaxConcurrency: cfg.MaxConcurrency,
		},
	}, cb, metrics, logger)
}

// newUserCache returns a Redis cache when REDIS_URL is set and reachable,
// the in-memory cache otherwise.
func newUserCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (userCache, error) {
	if cfg.RedisURL == "" {
		return cache.New[domain.User](cfg.UserCacheTTL), nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, using in-memory user cache", zap.Error(err))
		_ = client.Close()
		return cache.New[domain.User](cfg.UserCacheTTL), nil
	}

	logger.Info("user cache backed by redis", zap.String("addr", opts.Addr))
	return cache.NewRedis[domain.User](client, "citadel:", cfg.UserCacheTTL, logger), nil
}
