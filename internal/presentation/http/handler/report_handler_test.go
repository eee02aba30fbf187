package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ventafarma/ventafarma-api/internal/application/service"
	"github.com/ventafarma/ventafarma-api/internal/domain/entity"
	"github.com/ventafarma/ventafarma-api/internal/domain/repository"
	"github.com/ventafarma/ventafarma-api/internal/presentation/http/middleware"
	"github.com/ventafarma/ventafarma-api/pkg/export"
)

// fakeReportOrderRepo stubs the report fetch path; the embedded interface
// keeps the fake small, unused methods are never called.
type fakeReportOrderRepo struct {
	repository.OrderRepository

	orders []entity.Order
	err    error
}

func (f *fakeReportOrderRepo) ListForReport(ctx context.Context, params *repository.ReportFilterParams) ([]entity.Order, error) {
	return f.orders, f.err
}

func cents(v int64) *int64 {
	return &v
}

// newReportRouter mirrors the real report route chain: identity and
// laboratory context injection followed by the laboratory guard.
func newReportRouter(repo repository.OrderRepository, userID *uuid.UUID, laboratoryID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)

	reportService := service.NewReportService(repo, nil, export.NewCurrencyFormatter("es-MX", "MXN"))
	h := NewReportHandler(reportService, nil)

	router := gin.New()
	router.POST("/reports/products", func(c *gin.Context) {
		if userID != nil {
			c.Set("user_id", *userID)
			c.Set("user_email", "ana@kiron.mx")
		}
		c.Set("laboratory_id", laboratoryID)
		c.Next()
	}, middleware.RequireLaboratory(), h.GenerateProductReport)
	return router
}

func postReport(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/reports/products", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGenerateProductReportEndpoint(t *testing.T) {
	repo := &fakeReportOrderRepo{orders: []entity.Order{
		{
			Laboratory:     "Kiron",
			Representative: "Ana",
			Items:          []entity.OrderItem{{ProductName: "Paracetamol 500mg", Quantity: 5, Total: cents(10000)}},
		},
	}}
	userID := uuid.New()
	router := newReportRouter(repo, &userID, uuid.New())

	w := postReport(t, router, `{"productNames":["Paracetamol 500mg"],"filterLaboratory":"Kiron"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Laboratory string `json:"laboratory"`
			Entries    []struct {
				ProductName string  `json:"product_name"`
				TotalQty    int64   `json:"total_qty"`
				TotalAmount float64 `json:"total_amount"`
			} `json:"entries"`
			TotalQty int64 `json:"total_qty"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Kiron", resp.Data.Laboratory)
	require.Len(t, resp.Data.Entries, 1)
	assert.Equal(t, "Paracetamol 500mg", resp.Data.Entries[0].ProductName)
	assert.Equal(t, int64(5), resp.Data.Entries[0].TotalQty)
	assert.Equal(t, 100.0, resp.Data.Entries[0].TotalAmount)
	assert.Equal(t, int64(5), resp.Data.TotalQty)
}

func TestGenerateProductReportEndpointRequiresLaboratory(t *testing.T) {
	userID := uuid.New()
	router := newReportRouter(&fakeReportOrderRepo{}, &userID, uuid.Nil)

	// A valid body without a resolved laboratory must be rejected; the scoped
	// query would otherwise match nothing and masquerade as an empty report.
	w := postReport(t, router, `{"productNames":["X"],"filterLaboratory":"Kiron"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "laboratory context"))
}

func TestGenerateProductReportEndpointRequiresAuth(t *testing.T) {
	router := newReportRouter(&fakeReportOrderRepo{}, nil, uuid.New())

	w := postReport(t, router, `{"productNames":["X"],"filterLaboratory":"Kiron"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGenerateProductReportEndpointRejectsBadBody(t *testing.T) {
	userID := uuid.New()
	router := newReportRouter(&fakeReportOrderRepo{}, &userID, uuid.New())

	// Missing required filterLaboratory.
	w := postReport(t, router, `{"productNames":["X"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postReport(t, router, `{"productNames":["X"],"filterLaboratory":"Kiron","startDate":"01-05-2026"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "Invalid start date"))
}
