package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ventafarma/ventafarma-api/internal/application/service"
	"github.com/ventafarma/ventafarma-api/internal/domain/entity"
	"github.com/ventafarma/ventafarma-api/internal/presentation/http/dto/response"
	"github.com/ventafarma/ventafarma-api/internal/presentation/http/middleware"
	"github.com/ventafarma/ventafarma-api/pkg/pagination"
	"github.com/ventafarma/ventafarma-api/pkg/utils"
)

// LaboratoryHandler handles laboratory-related HTTP requests
type LaboratoryHandler struct {
	laboratoryService *service.LaboratoryService
}

// NewLaboratoryHandler creates a new laboratory handler
func NewLaboratoryHandler(laboratoryService *service.LaboratoryService) *LaboratoryHandler {
	return &LaboratoryHandler{laboratoryService: laboratoryService}
}

// GetCurrent returns the request's active laboratory
func (h *LaboratoryHandler) GetCurrent(c *gin.Context) {
	laboratoryID := middleware.GetLaboratoryID(c)
	if laboratoryID == uuid.Nil {
		response.BadRequest(c, "No active laboratory")
		return
	}

	laboratory, err := h.laboratoryService.GetLaboratory(c.Request.Context(), laboratoryID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Laboratory retrieved successfully", gin.H{
		"laboratory": laboratory,
	})
}

// List returns all laboratories for super admins, or only laboratories the user belongs to
func (h *LaboratoryHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	var result *pagination.PaginatedResult[entity.Laboratory]
	var err error

	if IsSuperAdmin(c) {
		result, err = h.laboratoryService.ListAllLaboratories(c.Request.Context(), params)
	} else {
		result, err = h.laboratoryService.GetUserLaboratories(c.Request.Context(), *userID, params)
	}

	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Laboratories retrieved successfully", result)
}

// Create registers a new laboratory
func (h *LaboratoryHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Name     string                     `json:"name" binding:"required"`
		Slug     string                     `json:"slug"`
		Settings *entity.LaboratorySettings `json:"settings"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}

	laboratory, err := h.laboratoryService.CreateLaboratory(c.Request.Context(), &service.CreateLaboratoryInput{
		Name:     req.Name,
		Slug:     slug,
		OwnerID:  *userID,
		Settings: req.Settings,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Laboratory created successfully", laboratory)
}

// Update updates the current laboratory's name and settings
func (h *LaboratoryHandler) Update(c *gin.Context) {
	laboratoryID := middleware.GetLaboratoryID(c)
	if laboratoryID == uuid.Nil {
		response.BadRequest(c, "No active laboratory")
		return
	}

	var req struct {
		Name     string                     `json:"name"`
		Settings *entity.LaboratorySettings `json:"settings"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	laboratory, err := h.laboratoryService.UpdateLaboratory(c.Request.Context(), &service.UpdateLaboratoryInput{
		ID:       laboratoryID,
		Name:     req.Name,
		Settings: req.Settings,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Laboratory updated successfully", gin.H{
		"laboratory": laboratory,
	})
}

// ListMembers returns all members of the current laboratory
func (h *LaboratoryHandler) ListMembers(c *gin.Context) {
	laboratoryID := middleware.GetLaboratoryID(c)
	if laboratoryID == uuid.Nil {
		response.BadRequest(c, "No active laboratory")
		return
	}

	members, err := h.laboratoryService.GetLaboratoryMembers(c.Request.Context(), laboratoryID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Members retrieved successfully", gin.H{
		"members": members,
	})
}

// InviteMember invites a user to the current laboratory
func (h *LaboratoryHandler) InviteMember(c *gin.Context) {
	laboratoryID := middleware.GetLaboratoryID(c)
	if laboratoryID == uuid.Nil {
		response.BadRequest(c, "No active laboratory")
		return
	}

	var req struct {
		UserID uuid.UUID `json:"user_id" binding:"required"`
		Role   string    `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.laboratoryService.InviteMember(c.Request.Context(), &service.InviteMemberInput{
		LaboratoryID: laboratoryID,
		UserID:       req.UserID,
		Role:         req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Member invited successfully", nil)
}

// RemoveMember removes a user from the current laboratory
func (h *LaboratoryHandler) RemoveMember(c *gin.Context) {
	laboratoryID := middleware.GetLaboratoryID(c)
	if laboratoryID == uuid.Nil {
		response.BadRequest(c, "No active laboratory")
		return
	}

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.laboratoryService.RemoveMember(c.Request.Context(), laboratoryID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Member removed successfully", nil)
}

// UpdateMemberRole updates a member's role in the current laboratory
func (h *LaboratoryHandler) UpdateMemberRole(c *gin.Context) {
	laboratoryID := middleware.GetLaboratoryID(c)
	if laboratoryID == uuid.Nil {
		response.BadRequest(c, "No active laboratory")
		return
	}

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.laboratoryService.UpdateMemberRole(c.Request.Context(), laboratoryID, userID, req.Role); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Member role updated successfully", nil)
}

// AssignUser assigns a user to any laboratory (super admin only)
func (h *LaboratoryHandler) AssignUser(c *gin.Context) {
	laboratoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid laboratory ID")
		return
	}

	var req struct {
		UserID uuid.UUID `json:"user_id" binding:"required"`
		Role   string    `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err = h.laboratoryService.AssignUserToLaboratory(c.Request.Context(), &service.AssignUserToLaboratoryInput{
		LaboratoryID: laboratoryID,
		UserID:       req.UserID,
		Role:         req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "User assigned to laboratory successfully", nil)
}
