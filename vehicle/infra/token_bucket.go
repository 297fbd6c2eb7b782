package infra

import (
	"time"

	"golang.org/x/time/rate"
)

// TokenBucketLimiter é a alternativa ao FixedWindowLimiter quando se quer
// suavizar a vazão: maxCalls tokens de burst, reabastecidos a maxCalls/window.
type TokenBucketLimiter struct {
	lim *rate.Limiter
}

func NewTokenBucketLimiter(maxCalls int, window time.Duration) *TokenBucketLimiter {
	every := window / time.Duration(maxCalls)
	return &TokenBucketLimiter{lim: rate.NewLimiter(rate.Every(every), maxCalls)}
}

// TryAcquire implementa domain.Limiter.
func (l *TokenBucketLimiter) TryAcquire(now time.Time) bool {
	return l.lim.AllowN(now, 1)
}
