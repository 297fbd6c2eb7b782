package domain

// Camada de domínio do rate limit do upstream.
//
// Regras e contratos (interfaces/tipos) sem dependência de net/http.

import "time"

// Limiter decide se uma chamada upstream pode acontecer agora.
//
// TryAcquire precisa ser atômico entre chamadores concorrentes e nunca bloqueia.
// Negar não é erro: o gateway traduz para ErrRateLimited.
type Limiter interface {
	TryAcquire(now time.Time) bool
}

// RateWindow é o estado de uma janela fixa.
// Count é o número de chamadas concedidas desde WindowStart.
type RateWindow struct {
	Count       int
	WindowStart time.Time
}

// Key identifica um cliente HTTP para o throttle por cliente (IP, API key, ...).
type Key string

// ClientLimiter é o limiter por cliente da borda HTTP.
type ClientLimiter interface {
	Allow() bool
}

// ClientLimiterStore obtém um limiter por chave de cliente.
type ClientLimiterStore interface {
	Get(Key) ClientLimiter
}

type Decision struct {
	Allowed bool
	// RetryAfter é o valor a ser retornado em Retry-After quando bloquear.
	// Se 0, não há recomendação.
	RetryAfter time.Duration
}
