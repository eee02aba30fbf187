package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ventafarma/ventafarma-api/internal/domain/entity"
	"github.com/ventafarma/ventafarma-api/pkg/pagination"
)

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)
	GetByName(ctx context.Context, name string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns clients with page-based pagination. If skipUserFilter is true, returns all clients.
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, skipUserFilter bool) ([]entity.Client, int64, error)
}

// RepresentativeRepository defines the interface for representative data operations
type RepresentativeRepository interface {
	Create(ctx context.Context, representative *entity.Representative) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Representative, error)
	GetByName(ctx context.Context, name string) (*entity.Representative, error)
	Update(ctx context.Context, representative *entity.Representative) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, skipUserFilter bool) ([]entity.Representative, int64, error)
}

// DistributorRepository defines the interface for distributor data operations
type DistributorRepository interface {
	Create(ctx context.Context, distributor *entity.Distributor) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Distributor, error)
	GetByName(ctx context.Context, name string) (*entity.Distributor, error)
	Update(ctx context.Context, distributor *entity.Distributor) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string, skipUserFilter bool) ([]entity.Distributor, int64, error)
}
