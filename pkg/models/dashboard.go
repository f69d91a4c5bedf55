package models

type DashboardStats struct {
	TotalProducts int `json:"total_products"`
	PendingOrders int `json:"pending_orders"`
}

type CategoryCount struct {
	CategoryName string `json:"category_name"`
	Count        int    `json:"count"`
}

type SupplierCount struct {
	SupplierName     string `json:"supplier_name"`
	ProductsSupplied int    `json:"products_supplied"`
}

type StatusCount struct {
	StatusLabel string `json:"status_label"`
	Count       int    `json:"count"`
}

// StockStatusBuckets is the five-way split shown on the dashboard chart.
type StockStatusBuckets struct {
	Normal     int `json:"normal"`
	LowStock   int `json:"low_stock"`
	OutOfStock int `json:"out_of_stock"`
	NearExpiry int `json:"near_expiry"`
	Expired    int `json:"expired"`
}
