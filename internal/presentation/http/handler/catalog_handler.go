package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ventafarma/ventafarma-api/internal/application/service"
	infraRepo "github.com/ventafarma/ventafarma-api/internal/infrastructure/repository"
	"github.com/ventafarma/ventafarma-api/internal/presentation/http/dto/response"
	"github.com/ventafarma/ventafarma-api/pkg/pagination"
)

// catalogListContext builds the request context and pagination params shared
// by the catalog listing endpoints. Super admins escape the laboratory scope
// unless they narrow to a specific laboratory via query.
func catalogListContext(c *gin.Context, isSuperAdmin bool) (*pagination.PaginationParams, string) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	ctx := c.Request.Context()
	if isSuperAdmin {
		ctx = infraRepo.WithSkipLaboratoryScope(ctx, true)
		if laboratoryIDStr := c.Query("laboratory_id"); laboratoryIDStr != "" {
			if laboratoryID, err := uuid.Parse(laboratoryIDStr); err == nil {
				ctx = infraRepo.WithLaboratory(ctx, laboratoryID)
				ctx = infraRepo.WithSkipLaboratoryScope(ctx, false)
			}
		}
		c.Request = c.Request.WithContext(ctx)
	}

	return params, c.Query("search")
}

// ClientHandler handles client-related HTTP requests
type ClientHandler struct {
	clientService *service.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// List handles listing clients
func (h *ClientHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)
	params, search := catalogListContext(c, isSuperAdmin)

	result, err := h.clientService.ListClients(c.Request.Context(), *userID, params, search, isSuperAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Clients retrieved successfully", result)
}

// Create handles creating a client
func (h *ClientHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Name    string  `json:"name" binding:"required"`
		Email   *string `json:"email"`
		Phone   *string `json:"phone"`
		TaxID   *string `json:"tax_id"`
		Address *string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), &service.CreateClientInput{
		UserID:  *userID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		TaxID:   req.TaxID,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Client created successfully", client)
}

// Get handles getting a single client
func (h *ClientHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid client ID")
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client retrieved successfully", client)
}

// Update handles updating a client
func (h *ClientHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid client ID")
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Email   *string `json:"email"`
		Phone   *string `json:"phone"`
		TaxID   *string `json:"tax_id"`
		Address *string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), &service.UpdateClientInput{
		UserID:       *userID,
		ID:           id,
		IsSuperAdmin: isSuperAdmin,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		TaxID:        req.TaxID,
		Address:      req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client updated successfully", client)
}

// Delete handles deleting a client
func (h *ClientHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid client ID")
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), *userID, id, isSuperAdmin); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// RepresentativeHandler handles sales representative HTTP requests
type RepresentativeHandler struct {
	representativeService *service.RepresentativeService
}

// NewRepresentativeHandler creates a new representative handler
func NewRepresentativeHandler(representativeService *service.RepresentativeService) *RepresentativeHandler {
	return &RepresentativeHandler{representativeService: representativeService}
}

// List handles listing representatives
func (h *RepresentativeHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)
	params, search := catalogListContext(c, isSuperAdmin)

	result, err := h.representativeService.ListRepresentatives(c.Request.Context(), *userID, params, search, isSuperAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Representatives retrieved successfully", result)
}

// Create handles creating a representative
func (h *RepresentativeHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Name  string  `json:"name" binding:"required"`
		Email *string `json:"email"`
		Phone *string `json:"phone"`
		Zone  *string `json:"zone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	representative, err := h.representativeService.CreateRepresentative(c.Request.Context(), &service.CreateRepresentativeInput{
		UserID: *userID,
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Zone:   req.Zone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Representative created successfully", representative)
}

// Get handles getting a single representative
func (h *RepresentativeHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid representative ID")
		return
	}

	representative, err := h.representativeService.GetRepresentative(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Representative retrieved successfully", representative)
}

// Update handles updating a representative
func (h *RepresentativeHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid representative ID")
		return
	}

	var req struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
		Phone *string `json:"phone"`
		Zone  *string `json:"zone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	representative, err := h.representativeService.UpdateRepresentative(c.Request.Context(), &service.UpdateRepresentativeInput{
		UserID:       *userID,
		ID:           id,
		IsSuperAdmin: isSuperAdmin,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Zone:         req.Zone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Representative updated successfully", representative)
}

// Delete handles deleting a representative
func (h *RepresentativeHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid representative ID")
		return
	}

	if err := h.representativeService.DeleteRepresentative(c.Request.Context(), *userID, id, isSuperAdmin); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// DistributorHandler handles distributor HTTP requests
type DistributorHandler struct {
	distributorService *service.DistributorService
}

// NewDistributorHandler creates a new distributor handler
func NewDistributorHandler(distributorService *service.DistributorService) *DistributorHandler {
	return &DistributorHandler{distributorService: distributorService}
}

// List handles listing distributors
func (h *DistributorHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)
	params, search := catalogListContext(c, isSuperAdmin)

	result, err := h.distributorService.ListDistributors(c.Request.Context(), *userID, params, search, isSuperAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Distributors retrieved successfully", result)
}

// Create handles creating a distributor
func (h *DistributorHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Name    string  `json:"name" binding:"required"`
		Email   *string `json:"email"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	distributor, err := h.distributorService.CreateDistributor(c.Request.Context(), &service.CreateDistributorInput{
		UserID:  *userID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Distributor created successfully", distributor)
}

// Get handles getting a single distributor
func (h *DistributorHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid distributor ID")
		return
	}

	distributor, err := h.distributorService.GetDistributor(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Distributor retrieved successfully", distributor)
}

// Update handles updating a distributor
func (h *DistributorHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid distributor ID")
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Email   *string `json:"email"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	distributor, err := h.distributorService.UpdateDistributor(c.Request.Context(), &service.UpdateDistributorInput{
		UserID:       *userID,
		ID:           id,
		IsSuperAdmin: isSuperAdmin,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Distributor updated successfully", distributor)
}

// Delete handles deleting a distributor
func (h *DistributorHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isSuperAdmin := IsSuperAdmin(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid distributor ID")
		return
	}

	if err := h.distributorService.DeleteDistributor(c.Request.Context(), *userID, id, isSuperAdmin); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
