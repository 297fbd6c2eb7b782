package infra

import (
	"sync"
	"time"

	"vin-gateway/vehicle/domain"
)

// FixedWindowLimiter conta chamadas upstream numa janela fixa global.
//
// A janela é zerada quando now - WindowStart > window. Rajadas de até
// 2*maxCalls na virada da janela são aceitas.
type FixedWindowLimiter struct {
	mu       sync.Mutex
	maxCalls int
	window   time.Duration
	state    domain.RateWindow
}

// NewFixedWindowLimiter cria o limiter com a janela começando em start.
// Com start zero, a janela começa na primeira chamada.
func NewFixedWindowLimiter(maxCalls int, window time.Duration, start time.Time) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		maxCalls: maxCalls,
		window:   window,
		state:    domain.RateWindow{WindowStart: start},
	}
}

// TryAcquire implementa domain.Limiter.
func (l *FixedWindowLimiter) TryAcquire(now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state.WindowStart.IsZero() || now.Sub(l.state.WindowStart) > l.window {
		l.state = domain.RateWindow{WindowStart: now}
	}
	if l.state.Count >= l.maxCalls {
		return false
	}
	l.state.Count++
	return true
}

// Window devolve uma cópia do estado atual.
func (l *FixedWindowLimiter) Window() domain.RateWindow {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *FixedWindowLimiter) MaxCalls() int          { return l.maxCalls }
func (l *FixedWindowLimiter) Duration() time.Duration { return l.window }
