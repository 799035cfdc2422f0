package marketdata

import (
	"context"

	"github.com/wonny/sectorpulse/internal/contracts"
	"github.com/wonny/sectorpulse/pkg/redis"
)

// CachedProvider wraps a PriceProvider with a Redis cache. Daily bars only
// change after the close, so a day-long TTL keeps repeat batch runs off the
// upstream API.
type CachedProvider struct {
	provider contracts.PriceProvider
	cache    *redis.Cache
}

// NewCachedProvider creates a caching wrapper around provider.
func NewCachedProvider(provider contracts.PriceProvider, cache *redis.Cache) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    cache,
	}
}

// FetchPriceHistory implements contracts.PriceProvider.
func (p *CachedProvider) FetchPriceHistory(ctx context.Context, sector, startDate, endDate string) (contracts.PriceHistory, error) {
	key := redis.HistoryKey(sector, startDate, endDate)

	var history contracts.PriceHistory
	err := p.cache.GetOrSet(ctx, key, &history, redis.TTLDaily, func() (interface{}, error) {
		return p.provider.FetchPriceHistory(ctx, sector, startDate, endDate)
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}
