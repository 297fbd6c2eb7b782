package infra

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vin-gateway/vehicle/domain"
)

func TestMemoryRegistry_SeedInsertDuplicate(t *testing.T) {
	r := NewMemoryRegistry(SampleVehicles()...)
	require.Equal(t, 2, r.Len())
	assert.True(t, r.Exists("1HGCM82633A123456"))

	rec := domain.VehicleRecord{VIN: "JH4KA7561PC008269", Manufacturer: "ACURA", Model: "Legend", Year: "1993", Org: "Hondaorg"}
	require.NoError(t, r.Insert(rec))

	got, ok := r.Get(rec.VIN)
	require.True(t, ok)
	assert.Equal(t, rec, got)

	err := r.Insert(domain.VehicleRecord{VIN: rec.VIN, Org: "civichonda"})
	assert.ErrorIs(t, err, domain.ErrDuplicateVehicle)

	got, _ = r.Get(rec.VIN)
	assert.Equal(t, "Hondaorg", got.Org, "duplicate insert must not overwrite")
}

func TestMemoryRegistry_ConcurrentInsertSingleWinner(t *testing.T) {
	r := NewMemoryRegistry()
	var wins atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r.Insert(domain.VehicleRecord{VIN: "JH4KA7561PC008269"}) == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1), wins.Load())
}

func TestStaticOrgSet(t *testing.T) {
	s := NewStaticOrgSet(DefaultKnownOrgs...)
	assert.True(t, s.IsKnown("Hondaorg"))
	assert.True(t, s.IsKnown("civichonda"))
	assert.False(t, s.IsKnown("NotARealOrg"))
	assert.False(t, s.IsKnown("hondaorg"))
	assert.False(t, s.IsKnown(""))
}

func TestMemoryOrgStore_PutUpdateList(t *testing.T) {
	s := NewMemoryOrgStore(SampleOrgs()...)

	s.Put(domain.Organization{Name: "Org3", Account: "acc3", Website: "www.org3.com", FuelReimbursementPolicy: 1000})
	names := []string{}
	for _, o := range s.List() {
		names = append(names, o.Name)
	}
	assert.Equal(t, []string{"Org1", "Org2", "Org3"}, names)

	updated, err := s.Update("Org1", func(o *domain.Organization) { o.Website = "org1.example" })
	require.NoError(t, err)
	assert.Equal(t, "org1.example", updated.Website)
	assert.Equal(t, "acc1", updated.Account)

	_, err = s.Update("missing", func(*domain.Organization) {})
	assert.ErrorIs(t, err, domain.ErrOrgNotFound)

	// Put de um nome existente não duplica na ordem
	s.Put(domain.Organization{Name: "Org1", Account: "x"})
	assert.Len(t, s.List(), 3)
}
