package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ventafarma/ventafarma-api/internal/domain/entity"
	"github.com/ventafarma/ventafarma-api/pkg/pagination"
)

// LaboratoryRepository defines the interface for laboratory data operations
type LaboratoryRepository interface {
	// Create creates a new laboratory
	Create(ctx context.Context, laboratory *entity.Laboratory) error

	// GetByID retrieves a laboratory by ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Laboratory, error)

	// GetBySlug retrieves a laboratory by slug (subdomain identifier)
	GetBySlug(ctx context.Context, slug string) (*entity.Laboratory, error)

	// GetByName retrieves a laboratory by display name
	GetByName(ctx context.Context, name string) (*entity.Laboratory, error)

	// Update updates an existing laboratory
	Update(ctx context.Context, laboratory *entity.Laboratory) error

	// Delete soft-deletes a laboratory
	Delete(ctx context.Context, id uuid.UUID) error

	// GetUserLaboratories retrieves all laboratories a user belongs to with pagination
	GetUserLaboratories(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) ([]entity.Laboratory, int64, error)

	// AddMember adds a user as a member of a laboratory
	AddMember(ctx context.Context, membership *entity.LaboratoryMembership) error

	// RemoveMember removes a user from a laboratory
	RemoveMember(ctx context.Context, laboratoryID, userID uuid.UUID) error

	// GetMembers retrieves all members of a laboratory
	GetMembers(ctx context.Context, laboratoryID uuid.UUID) ([]entity.LaboratoryMembership, error)

	// IsMember checks if a user is a member of a laboratory
	IsMember(ctx context.Context, laboratoryID, userID uuid.UUID) (bool, error)

	// GetMembership retrieves a specific membership
	GetMembership(ctx context.Context, laboratoryID, userID uuid.UUID) (*entity.LaboratoryMembership, error)

	// UpdateMemberRole updates a member's role in a laboratory
	UpdateMemberRole(ctx context.Context, laboratoryID, userID uuid.UUID, role string) error

	// SlugExists checks if a slug is already taken
	SlugExists(ctx context.Context, slug string) (bool, error)

	// ListAll retrieves all laboratories (for super admin use)
	ListAll(ctx context.Context, params *pagination.PaginationParams) ([]entity.Laboratory, int64, error)

	// Count returns the total number of laboratories
	Count(ctx context.Context) (int64, error)
}
