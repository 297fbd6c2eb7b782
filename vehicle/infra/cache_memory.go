package infra

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"vin-gateway/vehicle/domain"
)

// MemoryDecodeCache é o cache de decodificação em memória do processo.
//
// Sem TTL e sem capacidade (padrão), as entradas vivem enquanto o processo viver.
type MemoryDecodeCache struct {
	items *ttlcache.Cache[domain.VIN, domain.CacheEntry]
	ttl   time.Duration
	now   func() time.Time
}

type MemoryCacheOption func(*memoryCacheConfig)

type memoryCacheConfig struct {
	ttl      time.Duration
	capacity uint64
	now      func() time.Time
}

// WithCacheTTL faz as entradas expirarem depois de d. Zero desliga a expiração.
func WithCacheTTL(d time.Duration) MemoryCacheOption {
	return func(c *memoryCacheConfig) { c.ttl = d }
}

// WithCacheCapacity limita o número de VINs guardados (LRU). Zero é ilimitado.
func WithCacheCapacity(n uint64) MemoryCacheOption {
	return func(c *memoryCacheConfig) { c.capacity = n }
}

// WithCacheClock troca o relógio usado em CacheEntry.StoredAt.
func WithCacheClock(now func() time.Time) MemoryCacheOption {
	return func(c *memoryCacheConfig) { c.now = now }
}

func NewMemoryDecodeCache(opts ...MemoryCacheOption) *MemoryDecodeCache {
	cfg := memoryCacheConfig{now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}

	ttlOpts := []ttlcache.Option[domain.VIN, domain.CacheEntry]{
		ttlcache.WithDisableTouchOnHit[domain.VIN, domain.CacheEntry](),
	}
	if cfg.ttl > 0 {
		ttlOpts = append(ttlOpts, ttlcache.WithTTL[domain.VIN, domain.CacheEntry](cfg.ttl))
	}
	if cfg.capacity > 0 {
		ttlOpts = append(ttlOpts, ttlcache.WithCapacity[domain.VIN, domain.CacheEntry](cfg.capacity))
	}

	return &MemoryDecodeCache{
		items: ttlcache.New[domain.VIN, domain.CacheEntry](ttlOpts...),
		ttl:   cfg.ttl,
		now:   cfg.now,
	}
}

// Get implementa domain.DecodeCache. Nunca retorna erro.
func (c *MemoryDecodeCache) Get(_ context.Context, vin domain.VIN) (domain.DecodedVehicle, bool, error) {
	ent, ok := c.Entry(vin)
	if !ok {
		return domain.DecodedVehicle{}, false, nil
	}
	return ent.Vehicle, true, nil
}

// Put implementa domain.DecodeCache.
func (c *MemoryDecodeCache) Put(_ context.Context, vin domain.VIN, v domain.DecodedVehicle) error {
	c.items.Set(vin, domain.CacheEntry{VIN: vin, Vehicle: v, StoredAt: c.now()}, ttlcache.DefaultTTL)
	return nil
}

// Entry devolve a entrada completa, com o instante de inserção.
func (c *MemoryDecodeCache) Entry(vin domain.VIN) (domain.CacheEntry, bool) {
	item := c.items.Get(vin)
	if item == nil {
		return domain.CacheEntry{}, false
	}
	return item.Value(), true
}

func (c *MemoryDecodeCache) Len() int { return c.items.Len() }

// StartJanitor remove entradas expiradas em background até o ctx encerrar.
// Sem TTL não há o que limpar.
func (c *MemoryDecodeCache) StartJanitor(ctx context.Context) {
	if c.ttl <= 0 {
		return
	}
	go c.items.Start()
	go func() {
		<-ctx.Done()
		c.items.Stop()
	}()
}
