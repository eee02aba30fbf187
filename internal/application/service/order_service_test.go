package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ventafarma/ventafarma-api/internal/domain/entity"
	"github.com/ventafarma/ventafarma-api/internal/domain/repository"
	infraRepo "github.com/ventafarma/ventafarma-api/internal/infrastructure/repository"
)

type memOrderRepo struct {
	repository.OrderRepository
	orders  map[uuid.UUID]*entity.Order
	deleted []uuid.UUID
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (m *memOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	m.orders[order.ID] = order
	return nil
}

func (m *memOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return m.orders[id], nil
}

func (m *memOrderRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return m.orders[id], nil
}

func (m *memOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.orders, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type memOrderItemRepo struct {
	repository.OrderItemRepository
	items          []entity.OrderItem
	deletedByOrder []uuid.UUID
}

func (m *memOrderItemRepo) CreateBatch(ctx context.Context, items []entity.OrderItem) error {
	m.items = append(m.items, items...)
	return nil
}

func (m *memOrderItemRepo) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	m.deletedByOrder = append(m.deletedByOrder, orderID)
	return nil
}

type memProductRepo struct {
	repository.ProductRepository
	products map[uuid.UUID]entity.Product
}

func (m *memProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type memClientRepo struct {
	repository.ClientRepository
	clients map[uuid.UUID]*entity.Client
}

func (m *memClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	return m.clients[id], nil
}

type memRepresentativeRepo struct {
	repository.RepresentativeRepository
	representatives map[uuid.UUID]*entity.Representative
}

func (m *memRepresentativeRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Representative, error) {
	return m.representatives[id], nil
}

type memDistributorRepo struct {
	repository.DistributorRepository
	distributors map[uuid.UUID]*entity.Distributor
}

func (m *memDistributorRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Distributor, error) {
	return m.distributors[id], nil
}

type memLaboratoryRepo struct {
	repository.LaboratoryRepository
	laboratories map[uuid.UUID]*entity.Laboratory
}

func (m *memLaboratoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Laboratory, error) {
	return m.laboratories[id], nil
}

type orderServiceFixture struct {
	svc        *OrderService
	orderRepo  *memOrderRepo
	itemRepo   *memOrderItemRepo
	labID      uuid.UUID
	productID  uuid.UUID
	repID      uuid.UUID
	distID     uuid.UUID
	ctx        context.Context
}

func newOrderServiceFixture() *orderServiceFixture {
	labID := uuid.New()
	productID := uuid.New()
	repID := uuid.New()
	distID := uuid.New()

	orderRepo := newMemOrderRepo()
	itemRepo := &memOrderItemRepo{}
	productRepo := &memProductRepo{products: map[uuid.UUID]entity.Product{
		productID: {ID: productID, Name: "Paracetamol 500mg", SKU: "SKU-PAR500", UnitPrice: 2500},
	}}
	clientRepo := &memClientRepo{clients: map[uuid.UUID]*entity.Client{}}
	representativeRepo := &memRepresentativeRepo{representatives: map[uuid.UUID]*entity.Representative{
		repID: {ID: repID, Name: "Ana"},
	}}
	distributorRepo := &memDistributorRepo{distributors: map[uuid.UUID]*entity.Distributor{
		distID: {ID: distID, Name: "Nadro"},
	}}
	laboratoryRepo := &memLaboratoryRepo{laboratories: map[uuid.UUID]*entity.Laboratory{
		labID: {ID: labID, Name: "Kiron", Slug: "kiron", Settings: entity.DefaultLaboratorySettings()},
	}}

	svc := NewOrderService(orderRepo, itemRepo, productRepo, clientRepo, representativeRepo, distributorRepo, laboratoryRepo)

	return &orderServiceFixture{
		svc:       svc,
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		labID:     labID,
		productID: productID,
		repID:     repID,
		distID:    distID,
		ctx:       infraRepo.WithLaboratory(context.Background(), labID),
	}
}

func TestCreateOrderComputesTotalsAndSnapshots(t *testing.T) {
	f := newOrderServiceFixture()
	price := 10.0

	order, err := f.svc.CreateOrder(f.ctx, &CreateOrderInput{
		UserID:           uuid.New(),
		RepresentativeID: &f.repID,
		DistributorID:    &f.distID,
		Items: []OrderItemInput{
			{ProductID: &f.productID, Quantity: 4, Discount: 0.25},
			{ProductName: "Jarabe 120ml", UnitPrice: &price, Quantity: 2, Bonus: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Kiron", order.Laboratory)
	assert.Equal(t, "Ana", order.Representative)
	assert.Equal(t, "Nadro", order.Distributor)
	assert.True(t, strings.HasPrefix(order.OrderNo, "PED-"))

	// 4 x 25.00 at 25% off = 75.00, plus 2 x 10.00 undiscounted. Bonus units
	// stay out of the money totals.
	assert.Equal(t, int64(12000), order.SubTotal)
	assert.Equal(t, int64(2500), order.DiscountAmount)
	assert.Equal(t, int64(9500), order.GrandTotal)

	require.Len(t, f.itemRepo.items, 2)
	assert.Equal(t, "Paracetamol 500mg", f.itemRepo.items[0].ProductName)
	assert.Equal(t, "SKU-PAR500", f.itemRepo.items[0].SKU)
	require.NotNil(t, f.itemRepo.items[0].Total)
	assert.Equal(t, int64(7500), *f.itemRepo.items[0].Total)
	assert.Equal(t, "Jarabe 120ml", f.itemRepo.items[1].ProductName)
	assert.Equal(t, 1, f.itemRepo.items[1].Bonus)
	require.NotNil(t, f.itemRepo.items[1].Total)
	assert.Equal(t, int64(2000), *f.itemRepo.items[1].Total)
}

func TestCreateOrderRequiresItems(t *testing.T) {
	f := newOrderServiceFixture()

	_, err := f.svc.CreateOrder(f.ctx, &CreateOrderInput{UserID: uuid.New()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one item")
}

func TestCreateOrderRequiresLaboratoryContext(t *testing.T) {
	f := newOrderServiceFixture()

	_, err := f.svc.CreateOrder(context.Background(), &CreateOrderInput{
		UserID: uuid.New(),
		Items:  []OrderItemInput{{ProductID: &f.productID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Laboratory context")
}

func TestCreateOrderRejectsExcessiveDiscount(t *testing.T) {
	f := newOrderServiceFixture()

	_, err := f.svc.CreateOrder(f.ctx, &CreateOrderInput{
		UserID: uuid.New(),
		Items:  []OrderItemInput{{ProductID: &f.productID, Quantity: 1, Discount: 0.75}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discount")
}

func TestCreateOrderRejectsUnnamedItem(t *testing.T) {
	f := newOrderServiceFixture()
	price := 5.0

	_, err := f.svc.CreateOrder(f.ctx, &CreateOrderInput{
		UserID: uuid.New(),
		Items:  []OrderItemInput{{UnitPrice: &price, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product name")
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	f := newOrderServiceFixture()
	missing := uuid.New()

	_, err := f.svc.CreateOrder(f.ctx, &CreateOrderInput{
		UserID: uuid.New(),
		Items:  []OrderItemInput{{ProductID: &missing, Quantity: 1}},
	})
	require.Error(t, err)
}

func TestDeleteOrder(t *testing.T) {
	f := newOrderServiceFixture()

	order, err := f.svc.CreateOrder(f.ctx, &CreateOrderInput{
		UserID: uuid.New(),
		Items:  []OrderItemInput{{ProductID: &f.productID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteOrder(f.ctx, order.ID))
	assert.Equal(t, []uuid.UUID{order.ID}, f.itemRepo.deletedByOrder)
	assert.Equal(t, []uuid.UUID{order.ID}, f.orderRepo.deleted)

	err = f.svc.DeleteOrder(f.ctx, order.ID)
	require.Error(t, err)
}
