package vehicle

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidator_VINTag(t *testing.T) {
	var v *validator.Validate
	require.NotPanics(t, func() { v = newValidator() })

	assert.NoError(t, v.Var("1HGCM82633A123456", "vin"))
	assert.Error(t, v.Var("1HGCM82633AI23456", "vin"))
	assert.Error(t, v.Var("short", "vin"))
}

func TestRegisterVINTag_ReportsRegistrationError(t *testing.T) {
	err := registerVINTag(validator.New(), "")
	assert.Error(t, err)
}
