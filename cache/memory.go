package cache

import (
	"context"
	"time"

	"github.com/vaibhavgoel0230/crux-analyzer/config"
	"github.com/vaibhavgoel0230/crux-analyzer/crux"

	"github.com/dgraph-io/ristretto"
	"github.com/rs/zerolog/log"
)

// recordCost approximates the in-memory footprint of one parsed record
// (three metrics with percentiles and histogram buckets).
const recordCost = 2048

// MemoryStore is an in-process Ristretto-backed store for single-replica
// deployments.
type MemoryStore struct {
	client *ristretto.Cache
	ttl    time.Duration
}

// NewMemoryStore creates a size-bounded in-process store
func NewMemoryStore(cfg config.CacheConfig) (*MemoryStore, error) {
	// Convert MB to bytes
	maxCost := int64(cfg.MaxSizeMB) * 1024 * 1024

	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: int64(cfg.CounterSize), // Number of keys to track frequency for admission
		MaxCost:     maxCost,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("max_size_mb", cfg.MaxSizeMB).
		Int("ttl_seconds", cfg.TTLSeconds).
		Int("counter_size", cfg.CounterSize).
		Msg("Memory cache initialized")

	return &MemoryStore{
		client: client,
		ttl:    time.Duration(cfg.TTLSeconds) * time.Second,
	}, nil
}

// Get retrieves a cached record. The context is unused; Ristretto reads are
// local and non-blocking.
func (s *MemoryStore) Get(_ context.Context, key string) (*crux.Record, bool) {
	if s.client == nil {
		return nil, false
	}

	value, found := s.client.Get(key)
	if !found {
		return nil, false
	}

	record, ok := value.(*crux.Record)
	if !ok {
		return nil, false
	}
	return record, true
}

// Set stores a record with the configured TTL
func (s *MemoryStore) Set(_ context.Context, key string, record *crux.Record) {
	if s.client == nil {
		return
	}
	s.client.SetWithTTL(key, record, recordCost, s.ttl)
}

// Close cleanly shuts down the store
func (s *MemoryStore) Close() {
	if s.client != nil {
		s.client.Close()
		log.Info().Msg("Memory cache closed")
	}
}

// MetricsSnapshot returns current cache performance counters
func (s *MemoryStore) MetricsSnapshot() MetricsSnapshot {
	if s.client == nil || s.client.Metrics == nil {
		return MetricsSnapshot{TTLSeconds: int(s.ttl.Seconds())}
	}

	m := s.client.Metrics
	hits := m.Hits()
	misses := m.Misses()
	total := hits + misses

	hitRatio := 0.0
	if total > 0 {
		hitRatio = float64(hits) / float64(total)
	}

	return MetricsSnapshot{
		Hits:        hits,
		Misses:      misses,
		KeysAdded:   m.KeysAdded(),
		KeysEvicted: m.KeysEvicted(),
		CostAdded:   m.CostAdded(),
		CostEvicted: m.CostEvicted(),
		HitRatio:    hitRatio,
		TTLSeconds:  int(s.ttl.Seconds()),
	}
}
