package models

type Supplier struct {
	SupplierID    string `json:"supplier_id"`
	SupplierName  string `json:"supplier_name"`
	ContactPerson string `json:"contact_person"`
	Address       string `json:"address"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	ProductID     string `json:"product_id,omitempty"`
	ProductName   string `json:"product_name"`
	ProductCount  int    `json:"product_count,omitempty"`
	Status        string `json:"status"`
	ArchiveReason string `json:"archive_reason,omitempty"`
	ArchivedAt    string `json:"archived_at,omitempty"`
}

type SupplierRequest struct {
	SupplierName  string `json:"supplier_name" validate:"required"`
	ContactPerson string `json:"contact_person" validate:"required"`
	Address       string `json:"address"`
	Email         string `json:"email" validate:"omitempty,email"`
	PhoneNumber   string `json:"phone_number" validate:"required"`
	ProductID     string `json:"product,omitempty"`
}
