package domain

import "time"

// Unknown é o valor usado quando o provedor upstream omite um campo.
const Unknown = "Unknown"

// DecodedVehicle é o resultado normalizado de uma decodificação upstream.
// Imutável depois de ir para o cache.
type DecodedVehicle struct {
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	Year         string `json:"year"`
}

// UnknownVehicle é o DecodedVehicle com todos os campos no valor padrão.
func UnknownVehicle() DecodedVehicle {
	return DecodedVehicle{Manufacturer: Unknown, Model: Unknown, Year: Unknown}
}

// CacheEntry associa um VIN decodificado ao instante em que entrou no cache.
type CacheEntry struct {
	VIN      VIN            `json:"vin"`
	Vehicle  DecodedVehicle `json:"vehicle"`
	StoredAt time.Time      `json:"stored_at"`
}

// VehicleRecord é o veículo registrado por uma organização.
// O VIN é a chave única; não há update nem delete.
type VehicleRecord struct {
	VIN          VIN    `json:"vin"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	Year         string `json:"year"`
	Org          string `json:"org"`
}

// NewVehicleRecord monta o registro a partir do dado decodificado.
func NewVehicleRecord(vin VIN, dv DecodedVehicle, org string) VehicleRecord {
	return VehicleRecord{
		VIN:          vin,
		Manufacturer: dv.Manufacturer,
		Model:        dv.Model,
		Year:         dv.Year,
		Org:          org,
	}
}

// Organization é dado de colaborador externo: o core só valida por nome.
type Organization struct {
	Name                    string   `json:"name"`
	Account                 string   `json:"account"`
	Website                 string   `json:"website"`
	FuelReimbursementPolicy float64  `json:"fuelReimbursementPolicy"`
	SpeedLimitPolicy        *float64 `json:"speedLimitPolicy,omitempty"`
	ParentOrgID             string   `json:"parentOrgId,omitempty"`
}
