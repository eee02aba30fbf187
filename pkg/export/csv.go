package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

// WriteProductReportCSV serialises the report to UTF-8 CSV: header row, one
// row per requested product, and a trailing TOTAL row with empty seller and
// distributor cells. Quoting and escaping follow RFC 4180.
func WriteProductReportCSV(w io.Writer, payload *ProductReportPayload, money *CurrencyFormatter) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(productReportHeader); err != nil {
		return err
	}

	for _, row := range payload.Rows {
		record := []string{
			row.Product,
			strconv.FormatInt(row.Units, 10),
			money.FormatCents(row.Amount),
			strings.Join(row.Sellers, ", "),
			strings.Join(row.Distributors, ", "),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	totalRow := []string{
		"TOTAL",
		strconv.FormatInt(payload.TotalUnits, 10),
		money.FormatCents(payload.TotalAmount),
		"",
		"",
	}
	if err := writer.Write(totalRow); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}
