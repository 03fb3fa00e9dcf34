package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/agentroute/backend/internal/utils"
)

const defaultCacheTTL = 30 * 24 * time.Hour

// CachedGeocoder decorates a Geocoder with a Redis cache. Property addresses
// rarely move, so hits are served without touching the upstream service (and
// without its rate limiting). Cache failures fall through to the inner
// geocoder.
type CachedGeocoder struct {
	Inner Geocoder
	RDB   *redis.Client
	TTL   time.Duration
}

func NewCachedGeocoder(inner Geocoder, redisURL string) (*CachedGeocoder, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &CachedGeocoder{Inner: inner, RDB: redis.NewClient(opt), TTL: defaultCacheTTL}, nil
}

func (c *CachedGeocoder) Search(ctx context.Context, query string) ([]Candidate, error) {
	key := c.key("search", query)
	var cached []Candidate
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}

	candidates, err := c.Inner.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, candidates)
	return candidates, nil
}

func (c *CachedGeocoder) Validate(ctx context.Context, address, city string) (Validation, error) {
	key := c.key("validate", BuildQuery(address, city))
	var cached Validation
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}

	v, err := c.Inner.Validate(ctx, address, city)
	if err != nil {
		return Validation{}, err
	}
	c.store(ctx, key, v)
	return v, nil
}

func (c *CachedGeocoder) key(kind, query string) string {
	return fmt.Sprintf("geocode:%s:%x", kind, utils.HashStringToUint64(query))
}

func (c *CachedGeocoder) lookup(ctx context.Context, key string, dest any) bool {
	raw, err := c.RDB.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (c *CachedGeocoder) store(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	ttl := c.TTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	_ = c.RDB.Set(ctx, key, raw, ttl).Err()
}
