package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ventafarma/ventafarma-api/internal/application/service"
	"github.com/ventafarma/ventafarma-api/internal/presentation/http/dto/request"
	"github.com/ventafarma/ventafarma-api/internal/presentation/http/dto/response"
)

// ReportHandler handles product sales report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
	userService   *service.UserService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService, userService *service.UserService) *ReportHandler {
	return &ReportHandler{reportService: reportService, userService: userService}
}

// GenerateProductReport handles generating a product sales report as JSON
func (h *ReportHandler) GenerateProductReport(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	filters, ok := h.bindFilters(c)
	if !ok {
		return
	}

	report, err := h.reportService.GenerateProductReport(c.Request.Context(), *userID, filters)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report generated successfully", report)
}

// ExportProductReportCSV handles downloading a product sales report as CSV
func (h *ReportHandler) ExportProductReportCSV(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	filters, ok := h.bindFilters(c)
	if !ok {
		return
	}

	data, filename, err := h.reportService.ExportProductReportCSV(c.Request.Context(), *userID, filters, h.requesterName(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ExportProductReportPDF handles downloading a product sales report as PDF
func (h *ReportHandler) ExportProductReportPDF(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	filters, ok := h.bindFilters(c)
	if !ok {
		return
	}

	data, filename, err := h.reportService.ExportProductReportPDF(c.Request.Context(), *userID, filters, h.requesterName(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// bindFilters binds and converts the report request body. On failure it has
// already written the error response and returns ok=false.
func (h *ReportHandler) bindFilters(c *gin.Context) (*service.ProductReportFilters, bool) {
	var req request.ProductReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return nil, false
	}

	filters := &service.ProductReportFilters{
		ProductNames: req.ProductNames,
		Laboratory:   req.FilterLaboratory,
		Seller:       req.FilterSeller,
		Distributor:  req.FilterDistributor,
	}

	if req.StartDate != "" {
		startDate, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			response.BadRequest(c, "Invalid start date, expected YYYY-MM-DD")
			return nil, false
		}
		filters.StartDate = &startDate
	}
	if req.EndDate != "" {
		endDate, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			response.BadRequest(c, "Invalid end date, expected YYYY-MM-DD")
			return nil, false
		}
		filters.EndDate = &endDate
	}

	return filters, true
}

// requesterName resolves the display name stamped on exported documents.
// Falls back to the token email when the profile lookup fails.
func (h *ReportHandler) requesterName(c *gin.Context) string {
	userID := GetUserID(c)
	if userID != nil {
		if user, err := h.userService.GetUser(c.Request.Context(), *userID); err == nil && user != nil {
			return user.FullName()
		}
	}
	return GetUserEmail(c)
}
