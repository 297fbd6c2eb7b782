package domain

import (
	"context"
	"time"
)

// Outcome é o desfecho de uma requisição no gateway.
type Outcome string

const (
	OutcomeCacheHit      Outcome = "cache_hit"
	OutcomeUpstream      Outcome = "upstream"
	OutcomeRateLimited   Outcome = "rate_limited"
	OutcomeUpstreamError Outcome = "upstream_error"
	OutcomeNotFound      Outcome = "not_found"
	OutcomeInvalid       Outcome = "invalid"
)

// StatsEvent representa um desfecho do gateway.
//
// Observação: cuidado com cardinalidade. O VIN só é usado como chave quando
// o store foi configurado para isso.
type StatsEvent struct {
	VIN     VIN
	Outcome Outcome
	// Op é "decode" ou "create".
	Op string
	At time.Time
}

// StatsStore é a estratégia de persistência das estatísticas.
//
// O gateway trata erro como best-effort (loga e segue).
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}
