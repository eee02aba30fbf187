package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ventafarma/ventafarma-api/internal/application/service"
	"github.com/ventafarma/ventafarma-api/internal/domain/repository"
	"github.com/ventafarma/ventafarma-api/internal/presentation/http/dto/request"
	"github.com/ventafarma/ventafarma-api/internal/presentation/http/dto/response"
	"github.com/ventafarma/ventafarma-api/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List handles listing orders (supports both page-based and cursor-based pagination)
func (h *OrderHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)

	var filter request.OrderFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid filter parameters")
		return
	}

	// Check if cursor-based pagination is requested
	if filter.Cursor != "" || filter.Limit != 0 {
		h.listWithCursor(c, *userID, &filter, isSuperAdmin)
		return
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PerPage == 0 {
		filter.PerPage = 15
	}

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:         filter.Search,
		Representative: filter.Representative,
		Distributor:    filter.Distributor,
		SortBy:         filter.SortBy,
		SortOrder:      filter.SortOrder,
		SkipUserFilter: isSuperAdmin,
	}

	if filter.ClientID != "" {
		if clientID, err := uuid.Parse(filter.ClientID); err == nil {
			params.ClientID = &clientID
		}
	}
	params.StartDate, params.EndDate = parseDateRange(filter.StartDate, filter.EndDate)

	result, err := h.orderService.ListOrders(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// listWithCursor handles listing orders with cursor-based pagination
func (h *OrderHandler) listWithCursor(c *gin.Context, userID uuid.UUID, filter *request.OrderFilterRequest, isSuperAdmin bool) {
	if filter.Limit == 0 {
		filter.Limit = 15
	}
	if filter.Direction == "" {
		filter.Direction = "next"
	}

	params := &repository.OrderCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor:    filter.Cursor,
			Direction: pagination.CursorDirection(filter.Direction),
			Limit:     filter.Limit,
		},
		Search:         filter.Search,
		Representative: filter.Representative,
		Distributor:    filter.Distributor,
		SkipUserFilter: isSuperAdmin,
	}

	if filter.ClientID != "" {
		if clientID, err := uuid.Parse(filter.ClientID); err == nil {
			params.ClientID = &clientID
		}
	}
	params.StartDate, params.EndDate = parseDateRange(filter.StartDate, filter.EndDate)

	result, err := h.orderService.ListOrdersWithCursor(c.Request.Context(), userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 200, "Orders retrieved successfully", result)
}

// Create handles creating an order
func (h *OrderHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateOrderInput{
		UserID:           *userID,
		ClientID:         req.ClientID,
		RepresentativeID: req.RepresentativeID,
		DistributorID:    req.DistributorID,
	}

	if req.OrderDate != nil && *req.OrderDate != "" {
		orderDate, err := time.Parse("2006-01-02", *req.OrderDate)
		if err != nil {
			response.BadRequest(c, "Invalid order date, expected YYYY-MM-DD")
			return
		}
		input.OrderDate = &orderDate
	}

	input.Items = make([]service.OrderItemInput, len(req.Items))
	for i, item := range req.Items {
		input.Items[i] = service.OrderItemInput{
			ProductID:   item.ProductID,
			SKU:         item.SKU,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Bonus:       item.Bonus,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
		}
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// Get handles getting a single order
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Delete handles deleting an order and its items
func (h *OrderHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// parseDateRange parses optional YYYY-MM-DD bounds; malformed values are
// ignored rather than rejected, matching the listing endpoints' lenient
// filter handling.
func parseDateRange(startStr, endStr string) (*time.Time, *time.Time) {
	var start, end *time.Time
	if startStr != "" {
		if t, err := time.Parse("2006-01-02", startStr); err == nil {
			start = &t
		}
	}
	if endStr != "" {
		if t, err := time.Parse("2006-01-02", endStr); err == nil {
			end = &t
		}
	}
	return start, end
}
