package domain

import "fmt"

// VINLength é o tamanho fixo de um VIN.
const VINLength = 17

// VIN é a chave de identidade de todas as entidades do gateway.
// Um VIN só deve existir depois de passar por ParseVIN (ou IsValidVIN).
type VIN string

// IsValidVIN informa se s tem exatamente 17 caracteres do alfabeto
// [A-HJ-NPR-Z0-9]. É case-sensitive: quem chama normaliza antes, se quiser.
func IsValidVIN(s string) bool {
	if len(s) != VINLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !vinChar(s[i]) {
			return false
		}
	}
	return true
}

func vinChar(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c == 'I', c == 'O', c == 'Q':
		return false
	case c >= 'A' && c <= 'Z':
		return true
	}
	return false
}

// ParseVIN valida s e devolve o VIN tipado, ou ErrInvalidVIN.
func ParseVIN(s string) (VIN, error) {
	if !IsValidVIN(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVIN, s)
	}
	return VIN(s), nil
}

func (v VIN) String() string { return string(v) }
