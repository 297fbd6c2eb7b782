package infra

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"vin-gateway/vehicle/domain"

	"github.com/redis/go-redis/v9"
)

// RedisDecodeCache guarda CacheEntry em JSON no Redis, uma chave por VIN.
//
// Permite que mais de um processo do gateway compartilhe os VINs já
// decodificados. Não há coerência além do last-write-wins do SET.
type RedisDecodeCache struct {
	rdb    *redis.Client
	prefix string
	// ttl 0 = sem expiração.
	ttl time.Duration
	now func() time.Time
}

type RedisCacheOption func(*RedisDecodeCache)

func WithRedisCachePrefix(prefix string) RedisCacheOption {
	return func(c *RedisDecodeCache) { c.prefix = strings.Trim(prefix, ":") }
}

func WithRedisCacheTTL(d time.Duration) RedisCacheOption {
	return func(c *RedisDecodeCache) { c.ttl = d }
}

func NewRedisDecodeCache(rdb *redis.Client, opts ...RedisCacheOption) *RedisDecodeCache {
	c := &RedisDecodeCache{
		rdb:    rdb,
		prefix: "vin:decode",
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisDecodeCache) key(vin domain.VIN) string {
	return c.prefix + ":" + string(vin)
}

// Get implementa domain.DecodeCache. redis.Nil é miss, não erro.
func (c *RedisDecodeCache) Get(ctx context.Context, vin domain.VIN) (domain.DecodedVehicle, bool, error) {
	b, err := c.rdb.Get(ctx, c.key(vin)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.DecodedVehicle{}, false, nil
	}
	if err != nil {
		return domain.DecodedVehicle{}, false, err
	}

	var ent domain.CacheEntry
	if err := json.Unmarshal(b, &ent); err != nil {
		return domain.DecodedVehicle{}, false, err
	}
	return ent.Vehicle, true, nil
}

// Put implementa domain.DecodeCache.
func (c *RedisDecodeCache) Put(ctx context.Context, vin domain.VIN, v domain.DecodedVehicle) error {
	b, err := json.Marshal(domain.CacheEntry{VIN: vin, Vehicle: v, StoredAt: c.now().UTC()})
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(vin), b, c.ttl).Err()
}
