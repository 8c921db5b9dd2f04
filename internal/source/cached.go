package source

import (
	"context"
	"time"

	"github.com/threelines/tradeboard/backend/internal/contracts"
	"github.com/threelines/tradeboard/backend/pkg/logger"
	"github.com/threelines/tradeboard/backend/pkg/redis"
)

// CachedSource fronts another source with the Redis cache.
// Cache failures are logged and fall through to the wrapped source.
type CachedSource struct {
	next   contracts.TradeSource
	cache  *redis.Cache
	ttl    time.Duration
	logger *logger.Logger
}

// NewCachedSource wraps next
func NewCachedSource(next contracts.TradeSource, cache *redis.Cache, ttl time.Duration, log *logger.Logger) *CachedSource {
	return &CachedSource{next: next, cache: cache, ttl: ttl, logger: log}
}

// Trades serves a cached trade list for filter when present
func (s *CachedSource) Trades(ctx context.Context, filter contracts.TradeFilter) ([]contracts.Trade, error) {
	key := redis.TradesKey(filter.Key())

	var cached []contracts.Trade
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.WithError(err).Warn("trade cache read failed")
	}
	if found {
		return cached, nil
	}

	trades, err := s.next.Trades(ctx, filter)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, trades, s.ttl); err != nil {
		s.logger.WithError(err).Warn("trade cache write failed")
	}
	return trades, nil
}

// BotLabels serves the cached bot list when present
func (s *CachedSource) BotLabels(ctx context.Context) ([]string, error) {
	var cached []string
	found, err := s.cache.Get(ctx, redis.BotsKey(), &cached)
	if err != nil {
		s.logger.WithError(err).Warn("bot cache read failed")
	}
	if found {
		return cached, nil
	}

	labels, err := s.next.BotLabels(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, redis.BotsKey(), labels, redis.TTLBots); err != nil {
		s.logger.WithError(err).Warn("bot cache write failed")
	}
	return labels, nil
}
