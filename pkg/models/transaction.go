package models

const (
	TransactionIn     = "in"
	TransactionOut    = "out"
	TransactionAdjust = "adjust"
)

type Transaction struct {
	TransactionID     string `json:"transaction_id"`
	TransactionType   string `json:"transaction_type"`
	ProductID         string `json:"product_id,omitempty"`
	ProductName       string `json:"product_name"`
	BatchID           string `json:"batch_id"`
	QuantityChange    int    `json:"quantity_change"`
	OnHand            int    `json:"on_hand"`
	Remarks           string `json:"remarks"`
	PerformedBy       string `json:"performed_by"`
	DateOfTransaction string `json:"date_of_transaction"`
}
