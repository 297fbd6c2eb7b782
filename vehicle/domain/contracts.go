package domain

import "context"

//go:generate mockgen -source=contracts.go -destination=mocks/mock_contracts.go -package=mocks

// DecodeClient chama o provedor externo e normaliza a resposta.
//
// Retorna ErrNotFoundUpstream quando o provedor devolve lista vazia e
// *FetchError para qualquer outra falha. Não faz retry por conta própria.
type DecodeClient interface {
	Decode(ctx context.Context, vin VIN) (DecodedVehicle, error)
}

// DecodeCache guarda o resultado de decodificações bem-sucedidas.
// Put sobrescreve incondicionalmente.
type DecodeCache interface {
	Get(ctx context.Context, vin VIN) (DecodedVehicle, bool, error)
	Put(ctx context.Context, vin VIN, v DecodedVehicle) error
}

// VehicleRegistry guarda os veículos criados. Insert falha com
// ErrDuplicateVehicle se o VIN já existe.
type VehicleRegistry interface {
	Exists(vin VIN) bool
	Insert(rec VehicleRecord) error
	Get(vin VIN) (VehicleRecord, bool)
}

// OrgValidator é o conjunto fixo de organizações aceitas na criação de veículos.
type OrgValidator interface {
	IsKnown(org string) bool
}
