package request

import "github.com/google/uuid"

// OrderItemRequest represents one line item of an order creation request.
// Items referencing a catalog product carry product_id; free-form items need
// product_name and unit_price.
type OrderItemRequest struct {
	ProductID   *uuid.UUID `json:"product_id"`
	SKU         string     `json:"sku" binding:"omitempty,max=100"`
	ProductName string     `json:"product_name" binding:"omitempty,max=255"`
	Quantity    int        `json:"quantity" binding:"min=0"`
	Bonus       int        `json:"bonus" binding:"min=0"`
	UnitPrice   *float64   `json:"unit_price" binding:"omitempty,min=0"`
	Discount    float64    `json:"discount" binding:"min=0,max=1"`
}

// CreateOrderRequest represents an order creation request
type CreateOrderRequest struct {
	ClientID         *uuid.UUID         `json:"client_id"`
	RepresentativeID *uuid.UUID         `json:"representative_id"`
	DistributorID    *uuid.UUID         `json:"distributor_id"`
	OrderDate        *string            `json:"order_date"` // ISO date, defaults to now
	Items            []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// OrderFilterRequest represents order filter parameters
type OrderFilterRequest struct {
	Search         string `form:"search"`
	ClientID       string `form:"client_id"`
	Representative string `form:"representative"`
	Distributor    string `form:"distributor"`
	StartDate      string `form:"start_date"`
	EndDate        string `form:"end_date"`
	SortBy         string `form:"sort_by"`
	SortOrder      string `form:"sort_order"`
	Page           int    `form:"page"`
	PerPage        int    `form:"per_page"`
	Limit          int    `form:"limit"` // For cursor-based pagination
	Cursor         string `form:"cursor"`
	Direction      string `form:"direction"`
}
