package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order represents a single sale transaction. Orders are immutable once
// created: privileged roles may delete them, nobody edits them in place.
type Order struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	LaboratoryID uuid.UUID  `gorm:"type:uuid;not null;index" json:"laboratory_id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	ClientID     *uuid.UUID `gorm:"type:uuid;index" json:"client_id,omitempty"`
	OrderNo      string     `gorm:"size:100;unique;not null" json:"order_no"`
	OrderDate    time.Time  `gorm:"not null;index" json:"order_date"`

	// Name snapshots copied from the catalog at creation time. Reports join
	// on these strings, so later catalog renames do not rewrite history.
	Laboratory     string `gorm:"size:255;not null;index" json:"laboratory"`
	Client         string `gorm:"size:255" json:"client"`
	Representative string `gorm:"size:255;index" json:"representative"`
	Distributor    string `gorm:"size:255;index" json:"distributor"`

	SubTotal       int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	DiscountAmount int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	GrandTotal     int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User          User        `gorm:"foreignKey:UserID" json:"-"`
	ClientRef     *Client     `gorm:"foreignKey:ClientID" json:"-"`
	LaboratoryRef Laboratory  `gorm:"foreignKey:LaboratoryID" json:"-"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		SubTotal       float64 `json:"sub_total"`
		DiscountAmount float64 `json:"discount_amount"`
		GrandTotal     float64 `json:"grand_total"`
	}{
		Alias:          Alias(o),
		SubTotal:       float64(o.SubTotal) / 100,
		DiscountAmount: float64(o.DiscountAmount) / 100,
		GrandTotal:     float64(o.GrandTotal) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// GetGrandTotalDecimal returns the grand total as a decimal
func (o *Order) GetGrandTotalDecimal() float64 {
	return float64(o.GrandTotal) / 100
}

// GetSubTotalDecimal returns the subtotal as a decimal
func (o *Order) GetSubTotalDecimal() float64 {
	return float64(o.SubTotal) / 100
}

// OrderItem represents a line item in an order
type OrderItem struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`

	SKU         string  `gorm:"size:100" json:"sku"`
	ProductName string  `gorm:"size:255;not null;index" json:"product_name"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	Bonus       int     `gorm:"default:0" json:"bonus"`                 // free units, excluded from money totals
	UnitPrice   int64   `gorm:"not null" json:"-"`                      // Stored in cents, excluded from JSON
	Discount    float64 `gorm:"type:decimal(4,2);default:0" json:"discount"` // fractional rate, 0..0.70
	// Total is the stored line total in cents. Order creation always records
	// it; a NULL (imported or legacy rows) means price x quantity applies.
	Total *int64 `gorm:"type:bigint" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (oi OrderItem) MarshalJSON() ([]byte, error) {
	total := oi.LineTotal()
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(oi),
		UnitPrice: float64(oi.UnitPrice) / 100,
		Total:     float64(total) / 100,
	})
}

// LineTotal returns the stored line total in cents, falling back to price
// times quantity when no total was recorded.
func (oi *OrderItem) LineTotal() int64 {
	if oi.Total != nil {
		return *oi.Total
	}
	return oi.UnitPrice * int64(oi.Quantity)
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
