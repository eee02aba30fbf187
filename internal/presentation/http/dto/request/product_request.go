package request

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name      string  `json:"name" binding:"required,min=2,max=255"`
	SKU       string  `json:"sku" binding:"omitempty,max=100"`
	UnitPrice float64 `json:"unit_price" binding:"min=0"`
	Active    *bool   `json:"active"`
	Notes     *string `json:"notes"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name      *string  `json:"name" binding:"omitempty,min=2,max=255"`
	SKU       *string  `json:"sku" binding:"omitempty,min=1,max=100"`
	UnitPrice *float64 `json:"unit_price" binding:"omitempty,min=0"`
	Active    *bool    `json:"active"`
	Notes     *string  `json:"notes"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	ActiveOnly bool   `form:"active_only"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
