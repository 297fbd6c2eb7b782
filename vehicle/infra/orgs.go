package infra

import (
	"fmt"
	"strings"
	"sync"

	"vin-gateway/vehicle/domain"
)

// DefaultKnownOrgs é o conjunto fixo aceito na criação de veículos.
var DefaultKnownOrgs = []string{"Hondaorg", "civichonda"}

// StaticOrgSet implementa domain.OrgValidator com um conjunto imutável.
type StaticOrgSet struct {
	names map[string]struct{}
}

func NewStaticOrgSet(names ...string) StaticOrgSet {
	s := StaticOrgSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			s.names[n] = struct{}{}
		}
	}
	return s
}

func (s StaticOrgSet) IsKnown(org string) bool {
	_, ok := s.names[org]
	return ok
}

// MemoryOrgStore é o CRUD simples de organizações (colaborador externo do core).
// Mantém a ordem de inserção para a paginação ser estável.
type MemoryOrgStore struct {
	mu    sync.RWMutex
	orgs  map[string]domain.Organization
	order []string
}

func NewMemoryOrgStore(seed ...domain.Organization) *MemoryOrgStore {
	s := &MemoryOrgStore{orgs: make(map[string]domain.Organization)}
	for _, o := range seed {
		s.Put(o)
	}
	return s
}

// Put cria ou substitui a organização pelo nome.
func (s *MemoryOrgStore) Put(o domain.Organization) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orgs[o.Name]; !ok {
		s.order = append(s.order, o.Name)
	}
	s.orgs[o.Name] = o
}

func (s *MemoryOrgStore) Get(name string) (domain.Organization, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orgs[name]
	return o, ok
}

// Update aplica fn sobre a organização existente.
func (s *MemoryOrgStore) Update(name string, fn func(*domain.Organization)) (domain.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orgs[name]
	if !ok {
		return domain.Organization{}, fmt.Errorf("%w: %s", domain.ErrOrgNotFound, name)
	}
	fn(&o)
	o.Name = name
	s.orgs[name] = o
	return o, nil
}

// List devolve uma cópia na ordem de inserção.
func (s *MemoryOrgStore) List() []domain.Organization {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Organization, 0, len(s.order))
	for _, n := range s.order {
		out = append(out, s.orgs[n])
	}
	return out
}

// SampleOrgs são as organizações de exemplo carregadas com SEED_DATA=true.
func SampleOrgs() []domain.Organization {
	speed1, speed2 := 25.0, 30.0
	return []domain.Organization{
		{Name: "Org1", Account: "acc1", Website: "www.org1.com", FuelReimbursementPolicy: 1000, SpeedLimitPolicy: &speed1},
		{Name: "Org2", Account: "acc2", Website: "www.org2.com", FuelReimbursementPolicy: 1500, SpeedLimitPolicy: &speed2, ParentOrgID: "Org1"},
	}
}
