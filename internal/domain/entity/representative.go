package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Representative represents a salesperson attached to a laboratory
type Representative struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	LaboratoryID uuid.UUID      `gorm:"type:uuid;not null;index" json:"laboratory_id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Email        *string        `gorm:"size:255" json:"email,omitempty"`
	Phone        *string        `gorm:"size:50" json:"phone,omitempty"`
	Zone         *string        `gorm:"size:255" json:"zone,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Laboratory Laboratory `gorm:"foreignKey:LaboratoryID" json:"-"`
	User       User       `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new representative
func (r *Representative) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Representative model
func (Representative) TableName() string {
	return "representatives"
}
