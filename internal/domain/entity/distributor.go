package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Distributor represents a fulfillment/logistics partner of a laboratory
type Distributor struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	LaboratoryID uuid.UUID      `gorm:"type:uuid;not null;index" json:"laboratory_id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Email        *string        `gorm:"size:255" json:"email,omitempty"`
	Phone        *string        `gorm:"size:50" json:"phone,omitempty"`
	Address      *string        `gorm:"type:text" json:"address,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Laboratory Laboratory `gorm:"foreignKey:LaboratoryID" json:"-"`
	User       User       `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new distributor
func (d *Distributor) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Distributor model
func (Distributor) TableName() string {
	return "distributors"
}
