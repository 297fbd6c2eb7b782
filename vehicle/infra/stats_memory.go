package infra

import (
	"context"
	"sync"

	"vin-gateway/vehicle/domain"
)

// Counters agrega desfechos por tipo.
type Counters map[domain.Outcome]int64

// StatsSnapshot é o retrato servido em GET /stats.
type StatsSnapshot struct {
	Total Counters            `json:"total"`
	ByOp  map[string]Counters `json:"by_op"`
	ByVIN map[string]Counters `json:"by_vin,omitempty"`
}

// MemoryStatsStore é uma implementação simples em memória.
// Útil para testes e desenvolvimento.
//
// Não faz expiração e não é indicada para produção.
type MemoryStatsStore struct {
	mu    sync.Mutex
	total Counters
	byOp  map[string]Counters
	byVIN map[string]Counters

	trackVINs bool
}

type MemoryStatsOption func(*MemoryStatsStore)

func WithTrackVINs(track bool) MemoryStatsOption {
	return func(s *MemoryStatsStore) { s.trackVINs = track }
}

func NewMemoryStatsStore(opts ...MemoryStatsOption) *MemoryStatsStore {
	s := &MemoryStatsStore{
		total: make(Counters),
		byOp:  make(map[string]Counters),
		byVIN: make(map[string]Counters),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.StatsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total[ev.Outcome]++
	bump(s.byOp, ev.Op, ev.Outcome)
	if s.trackVINs && ev.VIN != "" {
		bump(s.byVIN, string(ev.VIN), ev.Outcome)
	}
	return nil
}

func bump(m map[string]Counters, key string, o domain.Outcome) {
	c, ok := m[key]
	if !ok {
		c = make(Counters)
		m[key] = c
	}
	c[o]++
}

func (s *MemoryStatsStore) Total() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCounters(s.total)
}

// Snapshot devolve cópias de todos os agregados.
func (s *MemoryStatsStore) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := StatsSnapshot{
		Total: copyCounters(s.total),
		ByOp:  make(map[string]Counters, len(s.byOp)),
	}
	for k, v := range s.byOp {
		snap.ByOp[k] = copyCounters(v)
	}
	if s.trackVINs {
		snap.ByVIN = make(map[string]Counters, len(s.byVIN))
		for k, v := range s.byVIN {
			snap.ByVIN[k] = copyCounters(v)
		}
	}
	return snap
}

func copyCounters(c Counters) Counters {
	out := make(Counters, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
