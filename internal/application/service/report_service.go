package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ventafarma/ventafarma-api/internal/domain/repository"
	"github.com/ventafarma/ventafarma-api/pkg/export"
	"golang.org/x/sync/singleflight"
)

// ProductReport is the transient result of one report request.
type ProductReport struct {
	Laboratory  string               `json:"laboratory"`
	StartDate   *time.Time           `json:"start_date,omitempty"`
	EndDate     *time.Time           `json:"end_date,omitempty"`
	GeneratedAt time.Time            `json:"generated_at"`
	Entries     []ProductReportEntry `json:"entries"`
	TotalQty    int64                `json:"total_qty"`
	TotalAmount float64              `json:"total_amount"`
	// Empty distinguishes "no orders matched" from a failed generation.
	Empty bool `json:"empty"`

	totalAmountCents int64
}

// ReportService runs the product sales aggregation pipeline: validate
// filters, fetch the full matching order set, fold line items into per
// product entries and render the result as JSON, CSV or PDF.
type ReportService struct {
	orderRepo repository.OrderRepository
	pdf       *export.PDFExporter
	money     *export.CurrencyFormatter
	group     singleflight.Group
}

// NewReportService creates a new report service
func NewReportService(orderRepo repository.OrderRepository, pdf *export.PDFExporter, money *export.CurrencyFormatter) *ReportService {
	return &ReportService{
		orderRepo: orderRepo,
		pdf:       pdf,
		money:     money,
	}
}

// GenerateProductReport produces the product sales report for the given
// filter set. Identical requests by the same user that arrive while one is
// still in flight share the first computation instead of hitting the store
// again.
func (s *ReportService) GenerateProductReport(ctx context.Context, userID uuid.UUID, filters *ProductReportFilters) (*ProductReport, error) {
	params, names, err := buildReportFilters(filters)
	if err != nil {
		return nil, err
	}

	// The computation is shared with any deduplicated caller, so it must not
	// die with the first caller's request context. WithoutCancel keeps the
	// context values (the laboratory scope) while dropping the cancellation.
	fetchCtx := context.WithoutCancel(ctx)

	key := reportKey(userID, params, names)
	resultChan := s.group.DoChan(key, func() (interface{}, error) {
		return s.computeReport(fetchCtx, params, names)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*ProductReport), nil
	}
}

// computeReport runs fetch plus aggregation. Any store error aborts the
// whole report; partial results are never returned.
func (s *ReportService) computeReport(ctx context.Context, params *repository.ReportFilterParams, names []string) (*ProductReport, error) {
	orders, err := s.orderRepo.ListForReport(ctx, params)
	if err != nil {
		return nil, err
	}

	entries := aggregateProductSales(orders, names)

	report := &ProductReport{
		Laboratory:  params.Laboratory,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		GeneratedAt: time.Now(),
		Entries:     entries,
		Empty:       len(orders) == 0,
	}
	for _, entry := range entries {
		report.TotalQty += entry.TotalQty
		report.totalAmountCents += entry.TotalAmount
	}
	report.TotalAmount = float64(report.totalAmountCents) / 100

	return report, nil
}

// ExportProductReportCSV renders the report as a UTF-8 CSV document and
// returns the content plus the download filename.
func (s *ReportService) ExportProductReportCSV(ctx context.Context, userID uuid.UUID, filters *ProductReportFilters, requestedBy string) ([]byte, string, error) {
	report, err := s.GenerateProductReport(ctx, userID, filters)
	if err != nil {
		return nil, "", err
	}

	buf := &bytes.Buffer{}
	if err := export.WriteProductReportCSV(buf, s.exportPayload(report, requestedBy), s.money); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), export.ProductReportFileName(report.GeneratedAt, "csv"), nil
}

// ExportProductReportPDF renders the report as a PDF document via
// Gotenberg and returns the content plus the download filename.
func (s *ReportService) ExportProductReportPDF(ctx context.Context, userID uuid.UUID, filters *ProductReportFilters, requestedBy string) ([]byte, string, error) {
	report, err := s.GenerateProductReport(ctx, userID, filters)
	if err != nil {
		return nil, "", err
	}

	data, err := s.pdf.RenderProductReport(ctx, s.exportPayload(report, requestedBy), s.money)
	if err != nil {
		return nil, "", err
	}

	return data, export.ProductReportFileName(report.GeneratedAt, "pdf"), nil
}

func (s *ReportService) exportPayload(report *ProductReport, requestedBy string) *export.ProductReportPayload {
	payload := &export.ProductReportPayload{
		Laboratory:  report.Laboratory,
		GeneratedBy: requestedBy,
		GeneratedAt: report.GeneratedAt,
		StartDate:   report.StartDate,
		EndDate:     report.EndDate,
		TotalUnits:  report.TotalQty,
		TotalAmount: report.totalAmountCents,
	}
	for _, entry := range report.Entries {
		payload.Rows = append(payload.Rows, export.ProductRow{
			Product:      entry.ProductName,
			Units:        entry.TotalQty,
			Amount:       entry.TotalAmount,
			Sellers:      entry.Sellers,
			Distributors: entry.Distributors,
		})
	}
	return payload
}

// reportKey builds a deduplication key covering the requester and every
// filter dimension, so only truly identical in-flight requests collapse.
func reportKey(userID uuid.UUID, params *repository.ReportFilterParams, names []string) string {
	start, end := "", ""
	if params.StartDate != nil {
		start = params.StartDate.Format(time.RFC3339Nano)
	}
	if params.EndDate != nil {
		end = params.EndDate.Format(time.RFC3339Nano)
	}
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s",
		userID, params.Laboratory, params.Representative, params.Distributor,
		start, end, strings.Join(names, "\x1f"))
}
