package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload() *ProductReportPayload {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
	return &ProductReportPayload{
		Laboratory:  "Kiron",
		GeneratedBy: "Ana Flores",
		GeneratedAt: time.Date(2026, 4, 1, 10, 30, 0, 0, time.UTC),
		StartDate:   &start,
		EndDate:     &end,
		Rows: []ProductRow{
			{Product: "Paracetamol 500mg", Units: 12, Amount: 150000, Sellers: []string{"Ana", "Beto"}, Distributors: []string{"Nadro"}},
			{Product: "Ibuprofeno 400mg", Units: 0, Amount: 0},
		},
		TotalUnits:  12,
		TotalAmount: 150000,
	}
}

func TestWriteProductReportCSV(t *testing.T) {
	money := NewCurrencyFormatter("es-MX", "MXN")
	buf := &bytes.Buffer{}
	require.NoError(t, WriteProductReportCSV(buf, samplePayload(), money))

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, []string{"Producto", "Piezas Vendidas", "Monto Total", "Vendedores", "Distribuidores"}, records[0])
	assert.Equal(t, "Paracetamol 500mg", records[1][0])
	assert.Equal(t, "12", records[1][1])
	assert.Contains(t, records[1][2], "1,500.00")
	assert.Equal(t, "Ana, Beto", records[1][3])
	assert.Equal(t, "Nadro", records[1][4])

	// Zero-sales product still gets a row with empty participant cells.
	assert.Equal(t, "Ibuprofeno 400mg", records[2][0])
	assert.Equal(t, "0", records[2][1])

	assert.Equal(t, "TOTAL", records[3][0])
	assert.Equal(t, "12", records[3][1])
	assert.Contains(t, records[3][2], "1,500.00")
	assert.Equal(t, "", records[3][3])
	assert.Equal(t, "", records[3][4])
}

func TestWriteProductReportCSVQuoting(t *testing.T) {
	money := NewCurrencyFormatter("es-MX", "MXN")
	payload := &ProductReportPayload{
		Rows: []ProductRow{{Product: `Jarabe "Extra" 120ml`, Units: 1, Amount: 100}},
	}
	buf := &bytes.Buffer{}
	require.NoError(t, WriteProductReportCSV(buf, payload, money))

	assert.Contains(t, buf.String(), `"Jarabe ""Extra"" 120ml"`)

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, `Jarabe "Extra" 120ml`, records[1][0])
}

func TestProductReportFileName(t *testing.T) {
	date := time.Date(2026, 9, 1, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "reporte-productos-2026-09-01.csv", ProductReportFileName(date, "csv"))
	assert.Equal(t, "reporte-productos-2026-09-01.pdf", ProductReportFileName(date, "pdf"))
}

func TestDateRangeLabel(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-03-01 a 2026-03-31", DateRangeLabel(&start, &end))
	assert.Equal(t, "desde 2026-03-01", DateRangeLabel(&start, nil))
	assert.Equal(t, "hasta 2026-03-31", DateRangeLabel(nil, &end))
	assert.Equal(t, "todas las fechas", DateRangeLabel(nil, nil))
}

func TestCurrencyFormatterFallback(t *testing.T) {
	money := NewCurrencyFormatter("not-a-locale", "not-a-currency")
	got := money.FormatCents(123456)
	assert.Contains(t, got, "1,234.56")
}

func TestPDFExporterRenderProductReport(t *testing.T) {
	var gotHTML string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/forms/chromium/convert/html", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(4<<20))
		file, _, err := r.FormFile("files")
		require.NoError(t, err)
		defer file.Close()
		buf := &bytes.Buffer{}
		_, _ = buf.ReadFrom(file)
		gotHTML = buf.String()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("PDF"))
	}))
	defer srv.Close()

	exporter, err := NewPDFExporter(srv.URL, "ventafarma-api", srv.Client())
	require.NoError(t, err)

	money := NewCurrencyFormatter("es-MX", "MXN")
	data, err := exporter.RenderProductReport(context.Background(), samplePayload(), money)
	require.NoError(t, err)
	assert.Equal(t, "PDF", string(data))

	assert.Contains(t, gotHTML, "ventafarma-api")
	assert.Contains(t, gotHTML, "Ana Flores")
	assert.Contains(t, gotHTML, "2026-03-01 a 2026-03-31")
	assert.Contains(t, gotHTML, "Paracetamol 500mg")
	assert.Contains(t, gotHTML, "TOTAL")
}

func TestPDFExporterErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "conversion failed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	exporter, err := NewPDFExporter(srv.URL, "ventafarma-api", srv.Client())
	require.NoError(t, err)

	money := NewCurrencyFormatter("es-MX", "MXN")
	_, err = exporter.RenderProductReport(context.Background(), samplePayload(), money)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "500"))

	exporter.Endpoint = ""
	_, err = exporter.RenderProductReport(context.Background(), samplePayload(), money)
	require.Error(t, err)
}
