package models

const (
	OrderPending           = "pending"
	OrderPartiallyReceived = "partially received"
	OrderReceived          = "received"
	OrderCancelled         = "cancelled"
)

type Order struct {
	OrderID      string      `json:"order_id"`
	OrderedBy    string      `json:"ordered_by"`
	DateOrdered  string      `json:"date_ordered"`
	DateReceived string      `json:"date_received"`
	Status       string      `json:"status"`
	Remarks      string      `json:"remarks,omitempty"`
	Items        []OrderItem `json:"items"`
}

// TotalOrdered sums quantity_ordered over all items.
func (o Order) TotalOrdered() int {
	total := 0
	for _, item := range o.Items {
		total += item.QuantityOrdered
	}
	return total
}

type OrderItem struct {
	OrderItemID      string `json:"order_item_id"`
	ProductID        string `json:"product_id"`
	ProductName      string `json:"product_name"`
	BrandName        string `json:"brand_name,omitempty"`
	GenericName      string `json:"generic_name,omitempty"`
	QuantityOrdered  int    `json:"quantity_ordered"`
	QuantityReceived int    `json:"quantity_received"`
}

// Label falls back to brand + generic name when the server omits product_name.
func (i OrderItem) Label() string {
	if i.ProductName != "" {
		return i.ProductName
	}
	if i.BrandName != "" {
		if i.GenericName == "" {
			return i.BrandName
		}
		return i.BrandName + " " + i.GenericName
	}
	return ""
}

type OrderRequest struct {
	OrderedBy string             `json:"ordered_by" validate:"required"`
	Items     []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OrderItemRequest struct {
	ProductID       string `json:"product_id" validate:"required"`
	SupplierID      string `json:"supplier_id,omitempty"`
	QuantityOrdered int    `json:"quantity_ordered" validate:"gt=0"`
}

// ReceiveRequest is the bulk_receive body; each line names its order.
type ReceiveRequest struct {
	Items []ReceiveItem `json:"items" validate:"required,min=1,dive"`
}

type ReceiveItem struct {
	OrderID          string `json:"order" validate:"required"`
	OrderItemID      string `json:"order_item" validate:"required"`
	QuantityReceived int    `json:"quantity_received" validate:"gte=0"`
	ReceivedBy       string `json:"received_by" validate:"required"`
	ExpiryDate       string `json:"expiry_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ReceiveResult is the per-line outcome reported by bulk_receive.
type ReceiveResult struct {
	Success  bool                     `json:"success"`
	Message  string                   `json:"message,omitempty"`
	Received []map[string]interface{} `json:"received,omitempty"`
	Errors   []map[string]interface{} `json:"errors,omitempty"`
}
