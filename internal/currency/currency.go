package currency

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Code is an ISO 4217 currency code. Stored prices are always in PHP.
type Code string

const (
	PHP Code = "PHP"
	USD Code = "USD"
	EUR Code = "EUR"
	GBP Code = "GBP"
	JPY Code = "JPY"
	KRW Code = "KRW"
	CNY Code = "CNY"
	SGD Code = "SGD"

	Base = PHP
)

var ErrUnknownCurrency = errors.New("unknown currency")

type Currency struct {
	Code     Code   `json:"code"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int32  `json:"decimals"`
}

var currencies = []Currency{
	{PHP, "₱", "Philippine Peso", 2},
	{USD, "$", "US Dollar", 2},
	{EUR, "€", "Euro", 2},
	{GBP, "£", "British Pound", 2},
	{JPY, "¥", "Japanese Yen", 0},
	{KRW, "₩", "Korean Won", 0},
	{CNY, "¥", "Chinese Yuan", 2},
	{SGD, "S$", "Singapore Dollar", 2},
}

// rates are units of the currency per 1 PHP.
var rates = map[Code]decimal.Decimal{
	PHP: decimal.NewFromInt(1),
	USD: decimal.RequireFromString("0.0175"),
	EUR: decimal.RequireFromString("0.0161"),
	GBP: decimal.RequireFromString("0.0138"),
	JPY: decimal.RequireFromString("2.63"),
	KRW: decimal.RequireFromString("23.68"),
	CNY: decimal.RequireFromString("0.127"),
	SGD: decimal.RequireFromString("0.0234"),
}

func Available() []Currency {
	out := make([]Currency, len(currencies))
	copy(out, currencies)
	return out
}

// Parse accepts any casing and rejects codes without a configured rate.
func Parse(value string) (Code, error) {
	code := Code(strings.ToUpper(strings.TrimSpace(value)))
	if _, ok := rates[code]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCurrency, value)
	}
	return code, nil
}

// Lookup falls back to PHP for unknown codes.
func Lookup(code Code) Currency {
	for _, c := range currencies {
		if c.Code == code {
			return c
		}
	}
	return currencies[0]
}

func rate(code Code) decimal.Decimal {
	if r, ok := rates[code]; ok {
		return r
	}
	return decimal.NewFromInt(1)
}

func Rate(code Code) decimal.Decimal {
	return rate(code)
}

// Convert turns a PHP amount into the target currency.
func Convert(amountPHP decimal.Decimal, to Code) decimal.Decimal {
	return amountPHP.Mul(rate(to))
}

// ToPHP converts an amount in from back to PHP.
func ToPHP(amount decimal.Decimal, from Code) decimal.Decimal {
	return amount.Div(rate(from))
}

type FormatOptions struct {
	ShowCode bool
	Compact  bool
}

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	billion  = decimal.NewFromInt(1_000_000_000)
)

// Format converts a PHP amount into code and renders it with the currency
// symbol, thousands separators and the currency's number of decimals.
func Format(amountPHP decimal.Decimal, code Code, opts FormatOptions) string {
	c := Lookup(code)
	converted := Convert(amountPHP, c.Code)

	var number string
	if opts.Compact && converted.Abs().GreaterThanOrEqual(thousand) {
		number = compact(converted, c.Decimals)
	} else {
		number = group(converted.StringFixed(c.Decimals))
	}

	if opts.ShowCode {
		return string(c.Code) + " " + number
	}
	return c.Symbol + number
}

func compact(value decimal.Decimal, decimals int32) string {
	abs := value.Abs()
	sign := ""
	if value.IsNegative() {
		sign = "-"
	}
	switch {
	case abs.GreaterThanOrEqual(billion):
		return sign + abs.Div(billion).StringFixed(decimals) + "B"
	case abs.GreaterThanOrEqual(million):
		return sign + abs.Div(million).StringFixed(decimals) + "M"
	default:
		return sign + abs.Div(thousand).StringFixed(decimals) + "K"
	}
}

// group inserts commas into the integer part of a fixed point string.
func group(fixed string) string {
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	integer, fraction := fixed, ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		integer, fraction = fixed[:i], fixed[i:]
	}

	var b strings.Builder
	for i, digit := range integer {
		if i > 0 && (len(integer)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	return sign + b.String() + fraction
}

// RateDisplay describes the conversion, e.g. "1 PHP = 0.0175 USD".
func RateDisplay(code Code) string {
	if code == Base {
		return "Base currency (no conversion)"
	}
	c := Lookup(code)
	return fmt.Sprintf("1 PHP = %s %s", rate(c.Code).String(), c.Code)
}
