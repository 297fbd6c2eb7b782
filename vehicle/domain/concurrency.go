package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNoSlot indica que nenhuma vaga ficou livre dentro do prazo.
var ErrNoSlot = errors.New("no slot available")

// SlotPool representa um recurso com capacidade finita (ex: requisições HTTP
// simultâneas, chamadas upstream em voo).
//
// A semântica é: Acquire bloqueia até conseguir uma vaga ou até o ctx encerrar.
// Ao adquirir, retorna uma função de release que deve ser chamada exatamente uma vez.
type SlotPool interface {
	Acquire(ctx context.Context) (release func(), ok bool)
}

// AcquireWithin espera por uma vaga no máximo timeout. timeout <= 0 espera até
// o ctx encerrar.
func AcquireWithin(ctx context.Context, pool SlotPool, timeout time.Duration) (func(), bool) {
	if timeout <= 0 {
		return pool.Acquire(ctx)
	}
	acqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return pool.Acquire(acqCtx)
}
