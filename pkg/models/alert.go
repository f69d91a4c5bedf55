package models

const (
	AlertLowStock   = "low_stock"
	AlertOutOfStock = "out_of_stock"
	AlertNearExpiry = "near_expiry"
	AlertExpired    = "expired"
)

type Alert struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	StockID     string `json:"stock_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Message     string `json:"message"`
	Category    string `json:"category"`
}

type AlertSummary struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
}

type AlertsResponse struct {
	Summary AlertSummary `json:"summary"`
	Alerts  []Alert      `json:"alerts"`
}
