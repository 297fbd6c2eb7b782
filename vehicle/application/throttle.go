package application

import (
	"time"

	"vin-gateway/vehicle/domain"
)

// ThrottleService decide se um cliente da borda HTTP pode seguir.
//
// Ele não sabe nada sobre HTTP (headers/status), apenas retorna uma decisão.
// É independente do limiter global do upstream: um cache hit também passa por aqui.
type ThrottleService struct {
	Store      domain.ClientLimiterStore
	RetryAfter time.Duration
}

func (s ThrottleService) Decide(key domain.Key) domain.Decision {
	if s.Store == nil {
		return domain.Decision{Allowed: true}
	}
	if s.RetryAfter <= 0 {
		s.RetryAfter = 1 * time.Second
	}

	lim := s.Store.Get(key)
	if lim == nil || lim.Allow() {
		return domain.Decision{Allowed: true}
	}
	return domain.Decision{Allowed: false, RetryAfter: s.RetryAfter}
}
