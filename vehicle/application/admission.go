package application

import (
	"context"
	"fmt"
	"time"

	"vin-gateway/vehicle/domain"
)

// Admission controla a entrada num recurso de capacidade finita e conta as
// recusas por Name. Pool nil admite tudo.
type Admission struct {
	Name           string
	Pool           domain.SlotPool
	AcquireTimeout time.Duration
}

// Enter devolve o release da vaga, ou domain.ErrNoSlot se o prazo acabar
// antes (ou o ctx encerrar).
func (a Admission) Enter(ctx context.Context) (func(), error) {
	if a.Pool == nil {
		return func() {}, nil
	}
	release, ok := domain.AcquireWithin(ctx, a.Pool, a.AcquireTimeout)
	if !ok {
		admissionRejects.add(ctx, a.Name)
		return nil, fmt.Errorf("%w: %s", domain.ErrNoSlot, a.Name)
	}
	return release, nil
}
