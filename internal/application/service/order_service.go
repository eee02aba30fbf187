package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/ventafarma/ventafarma-api/internal/domain/entity"
	"github.com/ventafarma/ventafarma-api/internal/domain/repository"
	infraRepo "github.com/ventafarma/ventafarma-api/internal/infrastructure/repository"
	"github.com/ventafarma/ventafarma-api/pkg/apperror"
	"github.com/ventafarma/ventafarma-api/pkg/pagination"
	"github.com/ventafarma/ventafarma-api/pkg/utils"
)

// OrderService handles order-related operations. Orders are append-only:
// once created they can be deleted by privileged roles but never edited.
type OrderService struct {
	orderRepo          repository.OrderRepository
	orderItemRepo      repository.OrderItemRepository
	productRepo        repository.ProductRepository
	clientRepo         repository.ClientRepository
	representativeRepo repository.RepresentativeRepository
	distributorRepo    repository.DistributorRepository
	laboratoryRepo     repository.LaboratoryRepository
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	representativeRepo repository.RepresentativeRepository,
	distributorRepo repository.DistributorRepository,
	laboratoryRepo repository.LaboratoryRepository,
) *OrderService {
	return &OrderService{
		orderRepo:          orderRepo,
		orderItemRepo:      orderItemRepo,
		productRepo:        productRepo,
		clientRepo:         clientRepo,
		representativeRepo: representativeRepo,
		distributorRepo:    distributorRepo,
		laboratoryRepo:     laboratoryRepo,
	}
}

// OrderItemInput represents an item in an order. When ProductID is set the
// SKU, name and unit price are snapshotted from the catalog; a free-form
// item needs at least ProductName and UnitPrice.
type OrderItemInput struct {
	ProductID   *uuid.UUID
	SKU         string
	ProductName string
	Quantity    int
	Bonus       int
	UnitPrice   *float64 // decimal, overrides the catalog price when set
	Discount    float64  // fractional rate
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	UserID           uuid.UUID
	ClientID         *uuid.UUID
	RepresentativeID *uuid.UUID
	DistributorID    *uuid.UUID
	OrderDate        *time.Time
	Items            []OrderItemInput
}

// CreateOrder creates a new order with its items. Catalog names are copied
// onto the order as snapshots so reports stay stable across renames.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	laboratoryID, ok := infraRepo.GetLaboratoryID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Laboratory context required")
	}

	laboratory, err := s.laboratoryRepo.GetByID(ctx, laboratoryID)
	if err != nil {
		return nil, err
	}
	if laboratory == nil {
		return nil, apperror.NewNotFoundError("Laboratory")
	}

	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Order requires at least one item")
	}

	maxDiscount := laboratory.Settings.MaxItemDiscount
	if maxDiscount <= 0 {
		maxDiscount = entity.DefaultLaboratorySettings().MaxItemDiscount
	}

	// Batch fetch referenced products in one query (prevents N+1)
	var productIDs []uuid.UUID
	for _, item := range input.Items {
		if item.ProductID != nil {
			productIDs = append(productIDs, *item.ProductID)
		}
	}

	productMap := make(map[uuid.UUID]*entity.Product)
	if len(productIDs) > 0 {
		products, err := s.productRepo.GetByIDs(ctx, productIDs)
		if err != nil {
			return nil, err
		}
		for i := range products {
			productMap[products[i].ID] = &products[i]
		}
	}

	var subTotal int64
	var grandTotal int64
	orderItems := make([]entity.OrderItem, 0, len(input.Items))

	for i, item := range input.Items {
		sku := item.SKU
		name := item.ProductName
		var priceCents int64

		if item.ProductID != nil {
			product, exists := productMap[*item.ProductID]
			if !exists {
				return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
			}
			sku = product.SKU
			name = product.Name
			priceCents = product.UnitPrice
		}
		if item.UnitPrice != nil {
			priceCents = int64(math.Round(*item.UnitPrice * 100))
		}

		if name == "" {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Item %d has no product name", i+1))
		}
		if item.Quantity < 0 || item.Bonus < 0 {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Item %d has a negative quantity", i+1))
		}
		if priceCents < 0 {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Item %d has a negative price", i+1))
		}
		if item.Discount < 0 || item.Discount > maxDiscount {
			return nil, apperror.NewBadRequestError(
				fmt.Sprintf("Item %d discount must be between 0 and %.2f", i+1, maxDiscount))
		}

		// Bonus units are free goods: they never enter the money totals.
		gross := priceCents * int64(item.Quantity)
		total := int64(math.Round(float64(gross) * (1 - item.Discount)))
		subTotal += gross
		grandTotal += total

		orderItems = append(orderItems, entity.OrderItem{
			SKU:         sku,
			ProductName: name,
			Quantity:    item.Quantity,
			Bonus:       item.Bonus,
			UnitPrice:   priceCents,
			Discount:    item.Discount,
			Total:       &total,
		})
	}

	clientName := ""
	if input.ClientID != nil {
		client, err := s.clientRepo.GetByID(ctx, *input.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, apperror.NewNotFoundError("Client")
		}
		clientName = client.Name
	}

	representativeName := ""
	if input.RepresentativeID != nil {
		representative, err := s.representativeRepo.GetByID(ctx, *input.RepresentativeID)
		if err != nil {
			return nil, err
		}
		if representative == nil {
			return nil, apperror.NewNotFoundError("Representative")
		}
		representativeName = representative.Name
	}

	distributorName := ""
	if input.DistributorID != nil {
		distributor, err := s.distributorRepo.GetByID(ctx, *input.DistributorID)
		if err != nil {
			return nil, err
		}
		if distributor == nil {
			return nil, apperror.NewNotFoundError("Distributor")
		}
		distributorName = distributor.Name
	}

	orderDate := time.Now()
	if input.OrderDate != nil {
		orderDate = *input.OrderDate
	}

	order := &entity.Order{
		LaboratoryID:   laboratoryID,
		UserID:         input.UserID,
		ClientID:       input.ClientID,
		OrderNo:        utils.GenerateOrderNo(laboratory.Settings.OrderPrefix),
		OrderDate:      orderDate,
		Laboratory:     laboratory.Name,
		Client:         clientName,
		Representative: representativeName,
		Distributor:    distributorName,
		SubTotal:       subTotal,
		DiscountAmount: subTotal - grandTotal,
		GrandTotal:     grandTotal,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	for i := range orderItems {
		orderItems[i].OrderID = order.ID
	}

	if err := s.orderItemRepo.CreateBatch(ctx, orderItems); err != nil {
		_ = s.orderRepo.Delete(ctx, order.ID)
		return nil, err
	}

	return s.orderRepo.GetWithItems(ctx, order.ID)
}

// GetOrder retrieves an order by ID with its items
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// ListOrdersWithCursor lists orders with cursor-based pagination
func (s *OrderService) ListOrdersWithCursor(ctx context.Context, userID uuid.UUID, params *repository.OrderCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Order], error) {
	orders, err := s.orderRepo.ListWithCursor(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(orders, params.Cursor.Limit,
		func(o entity.Order) string { return o.ID.String() },
		func(o entity.Order) time.Time { return o.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// DeleteOrder removes an order and its items. Ownership is not checked here;
// the route requires the delete-orders permission.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}

	if err := s.orderItemRepo.DeleteByOrderID(ctx, orderID); err != nil {
		return err
	}
	return s.orderRepo.Delete(ctx, orderID)
}
