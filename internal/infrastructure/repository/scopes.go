package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// LaboratoryIDKey is the context key for the current laboratory ID
	LaboratoryIDKey ctxKey = "laboratory_id"
	// SkipLaboratoryScopeKey is the context key for skipping the laboratory scope (super admin)
	SkipLaboratoryScopeKey ctxKey = "skip_laboratory_scope"
)

// LaboratoryScope returns a GORM scope that filters by laboratory.
// This should be applied to all queries for laboratory-scoped entities.
// If SkipLaboratoryScopeKey is true in context (super admin), returns all records.
func LaboratoryScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if skipScope, ok := ctx.Value(SkipLaboratoryScopeKey).(bool); ok && skipScope {
			return db
		}

		laboratoryID, ok := ctx.Value(LaboratoryIDKey).(uuid.UUID)
		if !ok {
			// Fail-safe: return no results if laboratory context missing.
			// This prevents accidental cross-laboratory data access.
			return db.Where("1 = 0")
		}
		return db.Where("laboratory_id = ?", laboratoryID)
	}
}

// WithSkipLaboratoryScope adds the skip flag to context (for super admins)
func WithSkipLaboratoryScope(ctx context.Context, skip bool) context.Context {
	return context.WithValue(ctx, SkipLaboratoryScopeKey, skip)
}

// WithLaboratory adds the laboratory ID to context
func WithLaboratory(ctx context.Context, laboratoryID uuid.UUID) context.Context {
	return context.WithValue(ctx, LaboratoryIDKey, laboratoryID)
}

// GetLaboratoryID extracts the laboratory ID from context
func GetLaboratoryID(ctx context.Context) (uuid.UUID, bool) {
	laboratoryID, ok := ctx.Value(LaboratoryIDKey).(uuid.UUID)
	return laboratoryID, ok
}
