package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ventafarma/ventafarma-api/internal/domain/entity"
	"github.com/ventafarma/ventafarma-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByOrderNo(ctx context.Context, orderNo string) (*entity.Order, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *OrderFilterParams) ([]entity.Order, int64, error)
	ListWithCursor(ctx context.Context, userID uuid.UUID, params *OrderCursorFilterParams) ([]entity.Order, error)
	// ListForReport returns every order matching the report filters with items
	// preloaded. The report path is deliberately unpaginated: aggregate sums
	// are only correct over the full matching set.
	ListForReport(ctx context.Context, params *ReportFilterParams) ([]entity.Order, error)
}

// OrderItemRepository defines the interface for order item data operations
type OrderItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.OrderItem) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error)
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination     *pagination.PaginationParams
	Search         string
	ClientID       *uuid.UUID
	Representative string
	Distributor    string
	StartDate      *time.Time
	EndDate        *time.Time
	SortBy         string
	SortOrder      string
	SkipUserFilter bool // If true, returns all orders (for super-admin)
}

// OrderCursorFilterParams contains cursor-based filtering for order queries
type OrderCursorFilterParams struct {
	Cursor         *pagination.CursorParams
	Search         string
	ClientID       *uuid.UUID
	Representative string
	Distributor    string
	StartDate      *time.Time
	EndDate        *time.Time
	SkipUserFilter bool // If true, returns all orders (for super-admin)
}

// ReportFilterParams is the predicate set for the product report fetch.
// Laboratory is the only mandatory predicate; absent optional filters add
// no predicate at all (open range / any value).
type ReportFilterParams struct {
	Laboratory     string
	Representative string
	Distributor    string
	StartDate      *time.Time
	EndDate        *time.Time
}
