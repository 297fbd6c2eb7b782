package infra

import (
	"context"
	"sync"
	"time"

	"vin-gateway/vehicle/domain"

	"golang.org/x/time/rate"
)

// ClientLimiterStore mantém um token bucket (x/time/rate) por cliente HTTP,
// com limpeza periódica das chaves inativas.
//
// É o throttle da borda; não substitui o limiter global do upstream.
type ClientLimiterStore struct {
	mu           sync.Mutex
	clients      map[domain.Key]*clientEntry
	rps          rate.Limit
	burst        int
	idleTTL      time.Duration
	cleanupEvery time.Duration
	now          func() time.Time
}

type clientEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

type ClientStoreOption func(*ClientLimiterStore)

func WithIdleTTL(d time.Duration) ClientStoreOption {
	return func(s *ClientLimiterStore) { s.idleTTL = d }
}

func WithCleanupEvery(d time.Duration) ClientStoreOption {
	return func(s *ClientLimiterStore) { s.cleanupEvery = d }
}

func WithClientClock(now func() time.Time) ClientStoreOption {
	return func(s *ClientLimiterStore) { s.now = now }
}

func NewClientLimiterStore(rps float64, burst int, opts ...ClientStoreOption) *ClientLimiterStore {
	s := &ClientLimiterStore{
		clients:      make(map[domain.Key]*clientEntry),
		rps:          rate.Limit(rps),
		burst:        burst,
		idleTTL:      15 * time.Minute,
		cleanupEvery: 2 * time.Minute,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ClientLimiterStore) RPS() float64 { return float64(s.rps) }
func (s *ClientLimiterStore) Burst() int   { return s.burst }

// Get implementa domain.ClientLimiterStore.
func (s *ClientLimiterStore) Get(key domain.Key) domain.ClientLimiter {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if ent, ok := s.clients[key]; ok {
		ent.lastSeen = now
		return ent.lim
	}

	lim := rate.NewLimiter(s.rps, s.burst)
	s.clients[key] = &clientEntry{lim: lim, lastSeen: now}
	return lim
}

// Len devolve quantos clientes estão sendo rastreados.
func (s *ClientLimiterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *ClientLimiterStore) Cleanup() {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, ent := range s.clients {
		if ent.lastSeen.Before(cutoff) {
			delete(s.clients, k)
		}
	}
}

// StartJanitor inicia uma goroutine que limpa clientes inativos periodicamente.
// Pare cancelando o contexto.
func (s *ClientLimiterStore) StartJanitor(ctx context.Context) {
	if s.cleanupEvery <= 0 {
		return
	}

	t := time.NewTicker(s.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}
