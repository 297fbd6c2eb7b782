package infra

import (
	"fmt"
	"sync"

	"vin-gateway/vehicle/domain"
)

// MemoryRegistry é o registro de veículos em memória, indexado por VIN.
type MemoryRegistry struct {
	mu       sync.RWMutex
	vehicles map[domain.VIN]domain.VehicleRecord
}

func NewMemoryRegistry(seed ...domain.VehicleRecord) *MemoryRegistry {
	r := &MemoryRegistry{vehicles: make(map[domain.VIN]domain.VehicleRecord, len(seed))}
	for _, rec := range seed {
		r.vehicles[rec.VIN] = rec
	}
	return r
}

func (r *MemoryRegistry) Exists(vin domain.VIN) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.vehicles[vin]
	return ok
}

// Insert falha com domain.ErrDuplicateVehicle se o VIN já existe.
// O teste e a escrita acontecem sob o mesmo lock.
func (r *MemoryRegistry) Insert(rec domain.VehicleRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vehicles[rec.VIN]; ok {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateVehicle, rec.VIN)
	}
	r.vehicles[rec.VIN] = rec
	return nil
}

func (r *MemoryRegistry) Get(vin domain.VIN) (domain.VehicleRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.vehicles[vin]
	return rec, ok
}

func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.vehicles)
}

// SampleVehicles são os veículos de exemplo carregados com SEED_DATA=true.
func SampleVehicles() []domain.VehicleRecord {
	return []domain.VehicleRecord{
		{VIN: "1HGCM82633A123456", Manufacturer: "Honda", Model: "Accord", Year: "2003", Org: "Hondaorg"},
		{VIN: "2HGCM82633A654321", Manufacturer: "Honda", Model: "Civic", Year: "2004", Org: "civichonda"},
	}
}
