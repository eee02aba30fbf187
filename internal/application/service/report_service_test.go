package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ventafarma/ventafarma-api/internal/domain/entity"
	"github.com/ventafarma/ventafarma-api/internal/domain/repository"
	"github.com/ventafarma/ventafarma-api/pkg/export"
)

// fakeOrderRepo stubs the report fetch path; the embedded interface keeps the
// fake small, unused methods are never called.
type fakeOrderRepo struct {
	repository.OrderRepository

	mu            sync.Mutex
	calls         int
	lastParams    *repository.ReportFilterParams
	orders        []entity.Order
	err           error
	blockUntil    chan struct{}
	enteredSignal chan struct{}
}

func (f *fakeOrderRepo) ListForReport(ctx context.Context, params *repository.ReportFilterParams) ([]entity.Order, error) {
	f.mu.Lock()
	f.calls++
	f.lastParams = params
	entered := f.enteredSignal
	block := f.blockUntil
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if block != nil {
		<-block
	}
	return f.orders, f.err
}

func (f *fakeOrderRepo) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestReportService(repo repository.OrderRepository) *ReportService {
	return NewReportService(repo, nil, export.NewCurrencyFormatter("es-MX", "MXN"))
}

func kironOrders() []entity.Order {
	return []entity.Order{
		{
			Laboratory:     "Kiron",
			Representative: "Ana",
			Items:          []entity.OrderItem{{ProductName: "X", Quantity: 5, Total: cents(10000)}},
		},
		{
			Laboratory:     "Kiron",
			Representative: "Beto",
			Items:          []entity.OrderItem{{ProductName: "X", Quantity: 3, Total: cents(6000)}},
		},
	}
}

func TestGenerateProductReport(t *testing.T) {
	repo := &fakeOrderRepo{orders: kironOrders()}
	svc := newTestReportService(repo)

	report, err := svc.GenerateProductReport(context.Background(), uuid.New(), &ProductReportFilters{
		ProductNames: []string{"X", "Y"},
		Laboratory:   "Kiron",
	})
	require.NoError(t, err)

	assert.Equal(t, "Kiron", report.Laboratory)
	require.Len(t, report.Entries, 2)
	assert.Equal(t, int64(8), report.Entries[0].TotalQty)
	assert.Equal(t, []string{"Ana", "Beto"}, report.Entries[0].Sellers)
	assert.Equal(t, int64(0), report.Entries[1].TotalQty)
	assert.Equal(t, int64(8), report.TotalQty)
	assert.Equal(t, 160.0, report.TotalAmount)
	assert.False(t, report.GeneratedAt.IsZero())
	assert.Equal(t, 1, repo.callCount())
	assert.Equal(t, "Kiron", repo.lastParams.Laboratory)
}

func TestGenerateProductReportValidationSkipsStore(t *testing.T) {
	repo := &fakeOrderRepo{}
	svc := newTestReportService(repo)

	_, err := svc.GenerateProductReport(context.Background(), uuid.New(), &ProductReportFilters{
		ProductNames: []string{},
		Laboratory:   "Kiron",
	})
	require.Error(t, err)
	assert.Equal(t, 0, repo.callCount())

	_, err = svc.GenerateProductReport(context.Background(), uuid.New(), &ProductReportFilters{
		ProductNames: []string{"X"},
	})
	require.Error(t, err)
	assert.Equal(t, 0, repo.callCount())
}

func TestGenerateProductReportStoreFailure(t *testing.T) {
	repo := &fakeOrderRepo{err: errors.New("connection refused")}
	svc := newTestReportService(repo)

	report, err := svc.GenerateProductReport(context.Background(), uuid.New(), &ProductReportFilters{
		ProductNames: []string{"X"},
		Laboratory:   "Kiron",
	})
	require.Error(t, err)
	assert.Nil(t, report)
}

func TestGenerateProductReportEmptyResultIsNotAnError(t *testing.T) {
	repo := &fakeOrderRepo{}
	svc := newTestReportService(repo)

	report, err := svc.GenerateProductReport(context.Background(), uuid.New(), &ProductReportFilters{
		ProductNames: []string{"X", "Y"},
		Laboratory:   "Kiron",
	})
	require.NoError(t, err)

	require.Len(t, report.Entries, 2)
	for _, entry := range report.Entries {
		assert.Equal(t, int64(0), entry.TotalQty)
		assert.Equal(t, int64(0), entry.TotalAmount)
	}
	assert.Equal(t, int64(0), report.TotalQty)
	assert.Equal(t, 0.0, report.TotalAmount)
	assert.True(t, report.Empty)
}

func TestGenerateProductReportCollapsesInflightDuplicates(t *testing.T) {
	repo := &fakeOrderRepo{
		orders:        kironOrders(),
		blockUntil:    make(chan struct{}),
		enteredSignal: make(chan struct{}, 1),
	}
	svc := newTestReportService(repo)

	userID := uuid.New()
	filters := func() *ProductReportFilters {
		return &ProductReportFilters{ProductNames: []string{"X"}, Laboratory: "Kiron"}
	}

	var wg sync.WaitGroup
	results := make([]*ProductReport, 2)
	errs := make([]error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = svc.GenerateProductReport(context.Background(), userID, filters())
	}()

	// Wait until the first request is inside the store call, then issue the
	// duplicate while it is still in flight.
	<-repo.enteredSignal
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1], errs[1] = svc.GenerateProductReport(context.Background(), userID, filters())
	}()
	time.Sleep(50 * time.Millisecond)
	close(repo.blockUntil)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, 1, repo.callCount())
	assert.Equal(t, results[0], results[1])
}

func TestGenerateProductReportSurvivesFirstCallerCancel(t *testing.T) {
	repo := &fakeOrderRepo{
		orders:        kironOrders(),
		blockUntil:    make(chan struct{}),
		enteredSignal: make(chan struct{}, 1),
	}
	svc := newTestReportService(repo)

	userID := uuid.New()
	filters := func() *ProductReportFilters {
		return &ProductReportFilters{ProductNames: []string{"X"}, Laboratory: "Kiron"}
	}

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.GenerateProductReport(firstCtx, userID, filters())
		firstErr <- err
	}()

	// Let the first request reach the store, then drop its client. The shared
	// fetch must keep running so a deduplicated caller still gets the report.
	<-repo.enteredSignal
	cancel()
	require.ErrorIs(t, <-firstErr, context.Canceled)

	secondDone := make(chan struct{})
	var report *ProductReport
	var secondErr error
	go func() {
		defer close(secondDone)
		report, secondErr = svc.GenerateProductReport(context.Background(), userID, filters())
	}()
	time.Sleep(50 * time.Millisecond)
	close(repo.blockUntil)
	<-secondDone

	require.NoError(t, secondErr)
	require.Len(t, report.Entries, 1)
	assert.Equal(t, int64(8), report.Entries[0].TotalQty)
	assert.Equal(t, 1, repo.callCount())
}

func TestExportProductReportCSVRoundTrip(t *testing.T) {
	repo := &fakeOrderRepo{orders: kironOrders()}
	svc := newTestReportService(repo)

	data, filename, err := svc.ExportProductReportCSV(context.Background(), uuid.New(), &ProductReportFilters{
		ProductNames: []string{"X", "Y"},
		Laboratory:   "Kiron",
	}, "Ana Flores")
	require.NoError(t, err)
	assert.Contains(t, filename, "reporte-productos-")
	assert.Contains(t, filename, ".csv")

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	// Header, two product rows, TOTAL row.
	require.Len(t, records, 4)
	assert.Equal(t, "X", records[1][0])
	assert.Equal(t, "8", records[1][1])
	assert.Equal(t, "Y", records[2][0])
	assert.Equal(t, "0", records[2][1])
	assert.Equal(t, "TOTAL", records[3][0])
	assert.Equal(t, "8", records[3][1])
	assert.Contains(t, records[3][2], "160.00")
}
