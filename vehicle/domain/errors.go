package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidVIN          = errors.New("invalid VIN format")
	ErrInvalidOrg          = errors.New("invalid organization ID")
	ErrRateLimited         = errors.New("rate limit exceeded")
	ErrUpstreamUnavailable = errors.New("failed to decode VIN upstream")
	ErrNotFoundUpstream    = errors.New("vehicle not found upstream")
	ErrDuplicateVehicle    = errors.New("vehicle already exists in the system")
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrOrgNotFound         = errors.New("organization not found")
)

// FetchError descreve uma falha ao falar com o provedor upstream:
// erro de rede, status não-2xx ou payload inválido.
type FetchError struct {
	VIN        VIN
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream decode %s: status %d: %v", e.VIN, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream decode %s: %v", e.VIN, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
