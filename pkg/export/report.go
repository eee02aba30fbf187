package export

import (
	"fmt"
	"time"
)

// ProductReportPayload aggregates product sales data for rendering. Rows keep
// the insertion order of the requested product names.
type ProductReportPayload struct {
	Laboratory  string
	GeneratedBy string
	GeneratedAt time.Time
	StartDate   *time.Time
	EndDate     *time.Time

	Rows        []ProductRow
	TotalUnits  int64
	TotalAmount int64 // cents
}

// ProductRow is a single aggregated product line.
type ProductRow struct {
	Product      string
	Units        int64
	Amount       int64 // cents
	Sellers      []string
	Distributors []string
}

// productReportHeader is the column layout shared by CSV, PDF and screen.
var productReportHeader = []string{"Producto", "Piezas Vendidas", "Monto Total", "Vendedores", "Distribuidores"}

// ProductReportFileName builds the export filename for a generation date,
// e.g. reporte-productos-2026-09-01.csv.
func ProductReportFileName(t time.Time, ext string) string {
	return fmt.Sprintf("reporte-productos-%s.%s", t.Format("2006-01-02"), ext)
}

// DateRangeLabel renders the applied date range for report headers. Open
// bounds are shown as such rather than invented dates.
func DateRangeLabel(start, end *time.Time) string {
	const layout = "2006-01-02"
	switch {
	case start != nil && end != nil:
		return start.Format(layout) + " a " + end.Format(layout)
	case start != nil:
		return "desde " + start.Format(layout)
	case end != nil:
		return "hasta " + end.Format(layout)
	default:
		return "todas las fechas"
	}
}
