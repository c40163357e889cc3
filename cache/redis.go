package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vaibhavgoel0230/crux-analyzer/config"
	"github.com/vaibhavgoel0230/crux-analyzer/crux"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

// keyPrefix namespaces provider records in a shared Redis instance.
const keyPrefix = "crux:record:"

// RedisStore shares cached records across replicas.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection
func NewRedisStore(cfg config.CacheConfig, redisCfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         redisCfg.Address,
		Password:     redisCfg.Password,
		DB:           redisCfg.DB,
		PoolSize:     redisCfg.PoolSize,
		MinIdleConns: redisCfg.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(redisCfg.OperationTimeout)*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Info().
		Str("address", redisCfg.Address).
		Int("ttl_seconds", cfg.TTLSeconds).
		Msg("Redis cache initialized")

	return &RedisStore{
		client: client,
		ttl:    time.Duration(cfg.TTLSeconds) * time.Second,
	}, nil
}

// Get retrieves and decodes a cached record. Undecodable entries are treated
// as misses and dropped.
func (s *RedisStore) Get(ctx context.Context, key string) (*crux.Record, bool) {
	data, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	} else if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Redis cache read failed")
		return nil, false
	}

	var record crux.Record
	if err := json.Unmarshal(data, &record); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Dropping undecodable cache entry")
		s.client.Del(ctx, keyPrefix+key)
		return nil, false
	}
	return &record, true
}

// Set stores an encoded record with the configured TTL
func (s *RedisStore) Set(ctx context.Context, key string, record *crux.Record) {
	data, err := json.Marshal(record)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to encode record for cache")
		return
	}

	if err := s.client.Set(ctx, keyPrefix+key, data, s.ttl).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Redis cache write failed")
	}
}

// Close closes the Redis connection
func (s *RedisStore) Close() {
	if err := s.client.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Redis connection")
	}
}
