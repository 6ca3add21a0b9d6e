package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"orion-console/apiclient"
	"orion-console/cmd/bff/metrics"
	"orion-console/logger"
	"orion-console/models"
)

const (
	RefPositions = "positions"
	RefTeams     = "teams"

	referenceKeyPrefix = "bff:ref:"
)

// ReferenceCache 는 참조 목록(positions, teams) 의 JSON 캐시다.
// 캐시 장애는 miss 로 취급하며 호출자에게 에러를 돌려주지 않는다.
type ReferenceCache interface {
	Get(ctx context.Context, name string, dst any) bool
	Set(ctx context.Context, name string, v any)
	Invalidate(ctx context.Context, name string) error
}

// NewReferenceCache 는 rdb 가 nil 이거나 ttl 이 0 이면 캐시하지 않는 구현을 반환한다.
func NewReferenceCache(rdb *redis.Client, ttl time.Duration) ReferenceCache {
	if rdb == nil || ttl <= 0 {
		return noopReferenceCache{}
	}
	return &redisReferenceCache{rdb: rdb, ttl: ttl}
}

type redisReferenceCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func referenceKey(name string) string { return referenceKeyPrefix + name }

func (c *redisReferenceCache) Get(ctx context.Context, name string, dst any) bool {
	raw, err := c.rdb.Get(ctx, referenceKey(name)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.WarnWithFields("reference cache get failed", logger.Fields{"reference": name, "error": err.Error()})
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		logger.WarnWithFields("reference cache entry is corrupt", logger.Fields{"reference": name, "error": err.Error()})
		return false
	}
	return true
}

func (c *redisReferenceCache) Set(ctx context.Context, name string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, referenceKey(name), raw, c.ttl).Err(); err != nil {
		logger.WarnWithFields("reference cache set failed", logger.Fields{"reference": name, "error": err.Error()})
	}
}

func (c *redisReferenceCache) Invalidate(ctx context.Context, name string) error {
	return c.rdb.Del(ctx, referenceKey(name)).Err()
}

type noopReferenceCache struct{}

func (noopReferenceCache) Get(context.Context, string, any) bool   { return false }
func (noopReferenceCache) Set(context.Context, string, any)         {}
func (noopReferenceCache) Invalidate(context.Context, string) error { return nil }

// ReferenceService 는 REST API 의 dropdown 목록을 캐시를 거쳐 제공한다.
type ReferenceService struct {
	api   *apiclient.Client
	cache ReferenceCache
}

func NewReferenceService(api *apiclient.Client, cache ReferenceCache) *ReferenceService {
	if cache == nil {
		cache = noopReferenceCache{}
	}
	return &ReferenceService{api: api, cache: cache}
}

func (s *ReferenceService) Positions(ctx context.Context) ([]models.Position, error) {
	return cachedDropdown(ctx, s.cache, RefPositions, s.api.Positions)
}

func (s *ReferenceService) Teams(ctx context.Context) ([]models.Team, error) {
	return cachedDropdown(ctx, s.cache, RefTeams, s.api.Teams)
}

// Invalidate 는 name 의 캐시 항목을 지운다. reason 은 메트릭 라벨로만 쓰인다.
func (s *ReferenceService) Invalidate(ctx context.Context, name, reason string) error {
	metrics.RecordCacheInvalidate(name, reason)
	return s.cache.Invalidate(ctx, name)
}

func cachedDropdown[T any](ctx context.Context, cache ReferenceCache, name string, res *apiclient.Resource[T]) ([]T, error) {
	var items []T
	if cache.Get(ctx, name, &items) {
		metrics.RecordCacheRequest(name, true)
		if items == nil {
			items = []T{}
		}
		return items, nil
	}
	metrics.RecordCacheRequest(name, false)

	items, err := res.Dropdown(ctx)
	if err != nil {
		return nil, err
	}
	cache.Set(ctx, name, items)
	return items, nil
}
