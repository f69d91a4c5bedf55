package metadata

import (
	"fmt"
	"regexp"
	"strings"
)

type StockStatus string

const (
	StockNormal     StockStatus = "normal"
	StockLow        StockStatus = "low-stock"
	StockNearExpiry StockStatus = "near-expiry"
	StockOut        StockStatus = "out-of-stock"
	StockExpired    StockStatus = "expired"
)

var whitespace = regexp.MustCompile(`\s+`)

// Normalize lowercases a status label and joins words with dashes,
// so "Low Stock" and "low-stock" compare equal.
func Normalize(value string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(value)), "-")
}

func NewStockStatus(value string) (StockStatus, error) {
	status := StockStatus(Normalize(value))
	if !status.IsValid() {
		return "", fmt.Errorf(
			"invalid stock status: %s, only valid values are: %s, %s, %s, %s, %s",
			value, StockNormal, StockLow, StockNearExpiry, StockOut, StockExpired,
		)
	}
	return status, nil
}

func (s StockStatus) IsValid() bool {
	switch s {
	case StockNormal, StockLow, StockNearExpiry, StockOut, StockExpired:
		return true
	default:
		return false
	}
}

// TransactionLabel is the badge text for a transaction type.
func TransactionLabel(transactionType string) string {
	switch strings.ToLower(transactionType) {
	case "in", "stock in":
		return "Stock In"
	case "out", "stock out":
		return "Stock Out"
	case "adjust", "adjustment":
		return "Adjustment"
	default:
		return transactionType
	}
}

// AlertLabel is the badge text for an alert type.
func AlertLabel(alertType string) string {
	switch alertType {
	case "low_stock":
		return "Low Stock"
	case "out_of_stock":
		return "Out of Stock"
	case "near_expiry":
		return "Near Expiry"
	case "expired":
		return "Expired"
	default:
		return alertType
	}
}
