package cache

import (
	"context"
	"fmt"

	"github.com/vaibhavgoel0230/crux-analyzer/config"
	"github.com/vaibhavgoel0230/crux-analyzer/crux"
)

// Store caches parsed provider records keyed by the hash of a normalized
// URL. Only successful fetches are stored; failures are always retried.
type Store interface {
	// Get returns (record, true) on a hit, (nil, false) otherwise.
	Get(ctx context.Context, key string) (*crux.Record, bool)
	// Set stores a record with the backend's configured TTL.
	Set(ctx context.Context, key string, record *crux.Record)
	// Close releases backend resources.
	Close()
}

// MetricsReporter is implemented by backends that expose hit/miss counters.
type MetricsReporter interface {
	MetricsSnapshot() MetricsSnapshot
}

// MetricsSnapshot is a point-in-time view of cache performance
type MetricsSnapshot struct {
	Hits        uint64  `json:"hits"`
	Misses      uint64  `json:"misses"`
	KeysAdded   uint64  `json:"keys_added"`
	KeysEvicted uint64  `json:"keys_evicted"`
	CostAdded   uint64  `json:"cost_added"`
	CostEvicted uint64  `json:"cost_evicted"`
	HitRatio    float64 `json:"hit_ratio"`
	TTLSeconds  int     `json:"ttl_seconds"`
}

// NewStore selects a cache backend from configuration. Returns (nil, nil)
// when caching is disabled.
func NewStore(cfg config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case "memory":
		return NewMemoryStore(cfg.Cache)
	case "redis":
		return NewRedisStore(cfg.Cache, cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
	}
}
