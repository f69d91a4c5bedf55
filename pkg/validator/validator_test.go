package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type passwordForm struct {
	Password string `validate:"required,min=8"`
	Confirm  string `validate:"required,eqfield=Password"`
}

type otpForm struct {
	Code string `validate:"otp"`
}

func TestValidateStruct(t *testing.T) {
	errs := ValidateStruct(passwordForm{Password: "short", Confirm: "other"})
	assert.Len(t, errs, 2)
	assert.Equal(t, "passwordForm.Password", errs[0].FailedField)
	assert.Equal(t, "min", errs[0].Tag)
	assert.Equal(t, "8", errs[0].Value)
	assert.Equal(t, "eqfield", errs[1].Tag)

	assert.Empty(t, ValidateStruct(passwordForm{Password: "longenough", Confirm: "longenough"}))
}

func TestOTPTag(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"123456", true},
		{"12345", false},
		{"12345a", false},
		{"1234567", false},
	}

	for _, tt := range tests {
		err := Validate(otpForm{Code: tt.code})
		assert.Equal(t, tt.valid, err == nil, tt.code)
		if err != nil {
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
	}
}
