package models

import "github.com/shopspring/decimal"

const (
	StatusActive   = "Active"
	StatusArchived = "Archived"
)

type Product struct {
	ProductID           string          `json:"product_id"`
	BrandName           string          `json:"brand_name"`
	GenericName         string          `json:"generic_name"`
	CategoryName        string          `json:"category_name"`
	SubcategoryName     string          `json:"subcategory_name"`
	PricePerUnit        decimal.Decimal `json:"price_per_unit"`
	UnitOfMeasurement   string          `json:"unit_of_measurement"`
	LowStockThreshold   int             `json:"low_stock_threshold"`
	ExpiryThresholdDays int             `json:"expiry_threshold_days"`
	Status              string          `json:"status"`
	ArchiveReason       string          `json:"archive_reason,omitempty"`
	ArchivedAt          string          `json:"archived_at,omitempty"`
	LastUpdated         string          `json:"last_updated,omitempty"`
}

// DisplayName is the label used by order items and stock rows.
func (p Product) DisplayName() string {
	if p.GenericName == "" {
		return p.BrandName
	}
	return p.BrandName + " (" + p.GenericName + ")"
}

type ProductRequest struct {
	BrandName           string          `json:"brand_name" validate:"required"`
	GenericName         string          `json:"generic_name" validate:"required"`
	Category            string          `json:"category" validate:"required"`
	Subcategory         string          `json:"subcategory,omitempty"`
	PricePerUnit        decimal.Decimal `json:"price_per_unit"`
	UnitOfMeasurement   string          `json:"unit_of_measurement" validate:"required"`
	LowStockThreshold   int             `json:"low_stock_threshold" validate:"gte=0"`
	ExpiryThresholdDays int             `json:"expiry_threshold_days" validate:"gte=0"`
}

// ProductChanges is a PATCH body; nil fields are left untouched.
type ProductChanges struct {
	BrandName           *string          `json:"brand_name,omitempty"`
	GenericName         *string          `json:"generic_name,omitempty"`
	Category            *string          `json:"category,omitempty"`
	Subcategory         *string          `json:"subcategory,omitempty"`
	PricePerUnit        *decimal.Decimal `json:"price_per_unit,omitempty"`
	UnitOfMeasurement   *string          `json:"unit_of_measurement,omitempty"`
	LowStockThreshold   *int             `json:"low_stock_threshold,omitempty" validate:"omitempty,gte=0"`
	ExpiryThresholdDays *int             `json:"expiry_threshold_days,omitempty" validate:"omitempty,gte=0"`
}

func (c *ProductChanges) HasChanges() bool {
	return c.BrandName != nil || c.GenericName != nil || c.Category != nil || c.Subcategory != nil ||
		c.PricePerUnit != nil || c.UnitOfMeasurement != nil || c.LowStockThreshold != nil || c.ExpiryThresholdDays != nil
}
