package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"

	"github.com/arfeen-portal/arfeen-portal-sub002/internal/config"
)

const (
	keyQuoteTenant   = "quote:tenant:%s"
	keyQuoteEndpoint = "quote:endpoint:%s"
)

// QuoteLimiter throttles the pricing endpoints, per tenant and per endpoint
// path. A nil limiter (rate limiting disabled) allows everything.
type QuoteLimiter struct {
	enabled bool

	bucket *TokenBucket

	tenantRate    float64
	tenantBurst   int
	endpointRate  float64
	endpointBurst int
}

func NewQuoteLimiter(cfg config.Config) (*QuoteLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.QuoteTenantRate <= 0 || limitCfg.QuoteTenantBurst <= 0 {
		return nil, errors.New("quote tenant rate limit must be positive")
	}
	if limitCfg.QuoteEndpointRate <= 0 || limitCfg.QuoteEndpointBurst <= 0 {
		return nil, errors.New("quote endpoint rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})

	return &QuoteLimiter{
		enabled:       true,
		bucket:        NewTokenBucket(client),
		tenantRate:    limitCfg.QuoteTenantRate,
		tenantBurst:   limitCfg.QuoteTenantBurst,
		endpointRate:  limitCfg.QuoteEndpointRate,
		endpointBurst: limitCfg.QuoteEndpointBurst,
	}, nil
}

func (l *QuoteLimiter) Enabled() bool {
	return l != nil && l.enabled
}

func (l *QuoteLimiter) AllowTenant(ctx context.Context, tenantCode string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyQuoteTenant, strings.TrimSpace(tenantCode)), l.tenantRate, l.tenantBurst)
}

func (l *QuoteLimiter) AllowEndpoint(ctx context.Context, path string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyQuoteEndpoint, strings.TrimSpace(path)), l.endpointRate, l.endpointBurst)
}
