package currency

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		amount string
		code   Code
		opts   FormatOptions
		want   string
	}{
		{"1234.5", PHP, FormatOptions{}, "₱1,234.50"},
		{"0", PHP, FormatOptions{}, "₱0.00"},
		{"1000", USD, FormatOptions{}, "$17.50"},
		{"1000", JPY, FormatOptions{}, "¥2,630"},
		{"100", KRW, FormatOptions{}, "₩2,368"},
		{"1000", SGD, FormatOptions{ShowCode: true}, "SGD 23.40"},
		{"-1234567", PHP, FormatOptions{}, "₱-1,234,567.00"},
		{"2500000", PHP, FormatOptions{Compact: true}, "₱2.50M"},
		{"999", PHP, FormatOptions{Compact: true}, "₱999.00"},
		{"50", "XYZ", FormatOptions{}, "₱50.00"},
	}

	for _, tt := range tests {
		got := Format(decimal.RequireFromString(tt.amount), tt.code, tt.opts)
		assert.Equal(t, tt.want, got, "%s %s", tt.amount, tt.code)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	amount := decimal.RequireFromString("570")
	usd := Convert(amount, USD)
	assert.True(t, usd.Equal(decimal.RequireFromString("9.975")))
	assert.True(t, ToPHP(usd, USD).Equal(amount))
}

func TestParse(t *testing.T) {
	code, err := Parse(" usd ")
	require.NoError(t, err)
	assert.Equal(t, USD, code)

	_, err = Parse("BTC")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestRateDisplay(t *testing.T) {
	assert.Equal(t, "Base currency (no conversion)", RateDisplay(PHP))
	assert.Equal(t, "1 PHP = 0.0175 USD", RateDisplay(USD))
}

func TestPreferences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "preferences.json")

	assert.Equal(t, PHP, LoadPreference(path))

	code, err := SavePreference(path, "eur")
	require.NoError(t, err)
	assert.Equal(t, EUR, code)
	assert.Equal(t, EUR, LoadPreference(path))

	_, err = SavePreference(path, "doge")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
	assert.Equal(t, EUR, LoadPreference(path))

	require.NoError(t, os.WriteFile(path, []byte(`{"currency":"BTC"}`), 0o600))
	assert.Equal(t, PHP, LoadPreference(path))
}
