package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sharlabs/shar-backend/pkg/config"
	"github.com/sharlabs/shar-backend/pkg/currency"
	pkgerrors "github.com/sharlabs/shar-backend/pkg/errors"
)

const cacheScope = "rates:latest"

type ratesClient interface {
	Latest(ctx context.Context) (*currency.Snapshot, error)
}

type rateCache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	CacheKey(scope string) string
}

// Service serves MMK exchange rates with a Redis read-through cache in front
// of the public API.
type Service interface {
	Latest(ctx context.Context) (*currency.Snapshot, error)
}

type service struct {
	client ratesClient
	cache  rateCache
	ttl    time.Duration
}

// NewService builds the rates service. The cache is optional; without it every
// request goes upstream.
func NewService(client ratesClient, cache rateCache, cfg config.RatesConfig) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("rates client required")
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &service{client: client, cache: cache, ttl: ttl}, nil
}

// Latest returns the cached rate table, refreshing from upstream on a miss.
func (s *service) Latest(ctx context.Context) (*currency.Snapshot, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, s.cache.CacheKey(cacheScope)); err == nil && cached != "" {
			var snapshot currency.Snapshot
			if err := json.Unmarshal([]byte(cached), &snapshot); err == nil {
				return &snapshot, nil
			}
			// Corrupt cache entries fall through to a refresh.
		}
	}

	snapshot, err := s.client.Latest(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetching exchange rates")
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(snapshot); err == nil {
			_ = s.cache.Set(ctx, s.cache.CacheKey(cacheScope), string(encoded), s.ttl)
		}
	}
	return snapshot, nil
}
