package models

type Category struct {
	CategoryID    string `json:"category_id"`
	Name          string `json:"category_name"`
	Description   string `json:"category_description"`
	ProductCount  int    `json:"product_count"`
	Status        string `json:"status"`
	ArchiveReason string `json:"archive_reason,omitempty"`
	ArchivedAt    string `json:"archived_at,omitempty"`
}

type Subcategory struct {
	SubcategoryID string `json:"subcategory_id"`
	Name          string `json:"subcategory_name"`
	Description   string `json:"subcategory_description"`
	CategoryID    string `json:"category"`
	ProductCount  int    `json:"product_count"`
	Status        string `json:"status"`
	ArchiveReason string `json:"archive_reason,omitempty"`
	ArchivedAt    string `json:"archived_at,omitempty"`
}

type CategoryRequest struct {
	Name        string `json:"category_name" validate:"required"`
	Description string `json:"category_description"`
}

type SubcategoryRequest struct {
	Name        string `json:"subcategory_name" validate:"required"`
	Description string `json:"subcategory_description"`
	CategoryID  string `json:"category" validate:"required"`
}
