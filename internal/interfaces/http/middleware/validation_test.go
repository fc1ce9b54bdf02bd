package middleware

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createAccountPayload struct {
	Name     string `json:"name" binding:"required,max=100"`
	Type     string `json:"type" binding:"required,oneof=EFECTIVO BANCO"`
	Currency string `json:"currency" binding:"required,currency_code"`
}

func TestValidationMessageFieldNames(t *testing.T) {
	SetupValidator()

	err := binding.Validator.ValidateStruct(createAccountPayload{})
	require.Error(t, err)

	msg := ValidationMessage(err)
	assert.Contains(t, msg, "Request validation failed")
	// Fields are reported by their json names, not struct names
	assert.Contains(t, msg, "name: this field is required")
	assert.Contains(t, msg, "type: this field is required")
	assert.Contains(t, msg, "currency: this field is required")
}

func TestValidationMessageOneof(t *testing.T) {
	SetupValidator()

	err := binding.Validator.ValidateStruct(createAccountPayload{
		Name:     "Caja chica",
		Type:     "CRYPTO",
		Currency: "ARS",
	})
	require.Error(t, err)

	msg := ValidationMessage(err)
	assert.Contains(t, msg, "type: must be one of: EFECTIVO BANCO")
}

func TestCurrencyCodeRule(t *testing.T) {
	SetupValidator()

	tests := []struct {
		code  string
		valid bool
	}{
		{"ARS", true},
		{"usd", true},
		{"EUR", true},
		{"AR", false},
		{"ARSS", false},
		{"A1S", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(createAccountPayload{
				Name:     "Banco Galicia",
				Type:     "BANCO",
				Currency: tt.code,
			})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, ValidationMessage(err), "currency: ")
			}
		})
	}
}

func TestValidationMessageNonValidatorError(t *testing.T) {
	err := errors.New("unexpected EOF")
	assert.Equal(t, "unexpected EOF", ValidationMessage(err))
}
