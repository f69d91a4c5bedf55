package models

type Stock struct {
	StockID     string `json:"stock_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	BrandName   string `json:"brand_name,omitempty"`
	TotalOnHand int    `json:"total_on_hand"`
	Status      string `json:"status"`
}

type Batch struct {
	BatchID      string `json:"batch_id"`
	StockID      string `json:"stock_id"`
	BatchNumber  string `json:"batch_number,omitempty"`
	OnHand       int    `json:"on_hand"`
	ExpiryDate   string `json:"expiry_date"`
	DateReceived string `json:"date_received,omitempty"`
	Status       string `json:"status"`
}

type BatchChanges struct {
	OnHand     *int    `json:"on_hand,omitempty" validate:"omitempty,gte=0"`
	ExpiryDate *string `json:"expiry_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Remarks    string  `json:"remarks,omitempty"`
}
