package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client represents a buyer (pharmacy, hospital, wholesaler) in the catalog
type Client struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	LaboratoryID uuid.UUID      `gorm:"type:uuid;not null;index" json:"laboratory_id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Email        *string        `gorm:"size:255" json:"email,omitempty"`
	Phone        *string        `gorm:"size:50" json:"phone,omitempty"`
	TaxID        *string        `gorm:"size:50;column:tax_id" json:"tax_id,omitempty"`
	Address      *string        `gorm:"type:text" json:"address,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Laboratory Laboratory `gorm:"foreignKey:LaboratoryID" json:"-"`
	User       User       `gorm:"foreignKey:UserID" json:"-"`
	Orders     []Order    `gorm:"foreignKey:ClientID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new client
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Client model
func (Client) TableName() string {
	return "clients"
}
