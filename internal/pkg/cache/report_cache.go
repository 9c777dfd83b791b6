package cache

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Stats 缓存运行时状态，用于运维接口
type Stats struct {
	Size int      `json:"size"`
	Keys []string `json:"keys"`
}

// ReportCache 进程内报表缓存。未命中或过期返回 nil，由调用方重算；
// 并发未命中会重复计算，属于接受的行为（报表可随时重算）。
type ReportCache interface {
	Get(key string) any
	Set(key string, value any, ttl time.Duration)
	Delete(key string)
	Clear()
	Stats() Stats
}

type reportCacheImpl struct {
	cache *ttlcache.Cache[string, any]
}

// NewReportCache 创建报表缓存，defaultTTL 用于未显式指定 TTL 的条目
func NewReportCache(defaultTTL time.Duration) ReportCache {
	c := ttlcache.New[string, any](
		ttlcache.WithTTL[string, any](defaultTTL),
		ttlcache.WithDisableTouchOnHit[string, any](),
	)
	go c.Start()
	return &reportCacheImpl{cache: c}
}

func (s *reportCacheImpl) Get(key string) any {
	item := s.cache.Get(key)
	if item == nil || item.IsExpired() {
		return nil
	}
	return item.Value()
}

func (s *reportCacheImpl) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = ttlcache.DefaultTTL
	}
	s.cache.Set(key, value, ttl)
}

func (s *reportCacheImpl) Delete(key string) {
	s.cache.Delete(key)
}

func (s *reportCacheImpl) Clear() {
	s.cache.DeleteAll()
}

func (s *reportCacheImpl) Stats() Stats {
	return Stats{
		Size: s.cache.Len(),
		Keys: s.cache.Keys(),
	}
}
