package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Laboratory represents a business unit in the multitenant system.
// Products, catalog entries and orders are always scoped to one laboratory.
type Laboratory struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Name      string             `gorm:"size:255;not null" json:"name"`
	Slug      string             `gorm:"size:255;unique;not null" json:"slug"`
	OwnerID   uuid.UUID          `gorm:"type:uuid;not null;index" json:"owner_id"`
	Settings  LaboratorySettings `gorm:"type:jsonb;serializer:json" json:"settings"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	DeletedAt gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Owner   User                   `gorm:"foreignKey:OwnerID" json:"-"`
	Members []LaboratoryMembership `gorm:"foreignKey:LaboratoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new laboratory
func (l *Laboratory) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Laboratory model
func (Laboratory) TableName() string {
	return "laboratories"
}

// MemberUser represents a subset of user fields for membership responses
type MemberUser struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
}

// LaboratoryMembership represents a user's membership in a laboratory
type LaboratoryMembership struct {
	LaboratoryID uuid.UUID `gorm:"type:uuid;primaryKey" json:"laboratory_id"`
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Role         string    `gorm:"size:50;default:'member'" json:"role"` // owner, admin, member
	CreatedAt    time.Time `json:"created_at"`

	// Relationships
	Laboratory Laboratory `gorm:"foreignKey:LaboratoryID" json:"-"`
	User       User       `gorm:"foreignKey:UserID" json:"-"`

	// Computed field for JSON response
	MemberUser *MemberUser `gorm:"-" json:"user,omitempty"`
}

// PopulateUserDetails populates the MemberUser field from the User relationship
func (lm *LaboratoryMembership) PopulateUserDetails() {
	if lm.User.ID != uuid.Nil {
		lm.MemberUser = &MemberUser{
			ID:        lm.User.ID,
			FirstName: lm.User.FirstName,
			LastName:  lm.User.LastName,
			Email:     lm.User.Email,
		}
	}
}

// TableName returns the table name for the LaboratoryMembership model
func (LaboratoryMembership) TableName() string {
	return "laboratory_memberships"
}

// LaboratorySettings holds customizable laboratory configuration
type LaboratorySettings struct {
	// Localization
	Currency   string `json:"currency,omitempty"`
	Timezone   string `json:"timezone,omitempty"`
	Locale     string `json:"locale,omitempty"`
	DateFormat string `json:"date_format,omitempty"`

	// Business configuration
	OrderPrefix     string  `json:"order_prefix,omitempty"`
	MaxItemDiscount float64 `json:"max_item_discount,omitempty"`

	// Notification settings
	EmailNotifications bool `json:"email_notifications,omitempty"`
}

// Scan implements the sql.Scanner interface for LaboratorySettings
func (ls *LaboratorySettings) Scan(value interface{}) error {
	if value == nil {
		*ls = LaboratorySettings{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan LaboratorySettings: unsupported type")
	}

	return json.Unmarshal(bytes, ls)
}

// Value implements the driver.Valuer interface for LaboratorySettings
func (ls LaboratorySettings) Value() (driver.Value, error) {
	return json.Marshal(ls)
}

// DefaultLaboratorySettings returns default settings for new laboratories
func DefaultLaboratorySettings() LaboratorySettings {
	return LaboratorySettings{
		Currency:           "MXN",
		Timezone:           "America/Mexico_City",
		Locale:             "es-MX",
		DateFormat:         "DD/MM/YYYY",
		OrderPrefix:        "PED-",
		MaxItemDiscount:    0.70,
		EmailNotifications: true,
	}
}
