package export

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const productReportTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #1f2937; }
  h1 { font-size: 18px; margin-bottom: 2px; }
  .meta { color: #6b7280; margin-bottom: 16px; }
  table { width: 100%; border-collapse: collapse; }
  th, td { border: 1px solid #d1d5db; padding: 6px 8px; text-align: left; }
  th { background: #f3f4f6; }
  td.num { text-align: right; }
  tr.total td { font-weight: bold; background: #f9fafb; }
</style>
</head>
<body>
  <h1>Reporte de ventas por producto</h1>
  <div class="meta">
    {{.AppName}} &middot; {{.Laboratory}} &middot; generado por {{.GeneratedBy}}
    el {{formatDateTime .GeneratedAt}} &middot; periodo: {{.DateRange}}
  </div>
  <table>
    <thead>
      <tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
    </thead>
    <tbody>
      {{range .Rows}}
      <tr>
        <td>{{.Product}}</td>
        <td class="num">{{.Units}}</td>
        <td class="num">{{.Amount}}</td>
        <td>{{.Sellers}}</td>
        <td>{{.Distributors}}</td>
      </tr>
      {{end}}
      <tr class="total">
        <td>TOTAL</td>
        <td class="num">{{.TotalUnits}}</td>
        <td class="num">{{.TotalAmount}}</td>
        <td></td>
        <td></td>
      </tr>
    </tbody>
  </table>
</body>
</html>`

// PDFExporter wraps Gotenberg interactions for product report PDF generation.
type PDFExporter struct {
	Endpoint string
	AppName  string
	Client   *http.Client

	template *template.Template
}

// NewPDFExporter creates a PDFExporter with the report template parsed.
func NewPDFExporter(endpoint, appName string, client *http.Client) (*PDFExporter, error) {
	funcMap := template.FuncMap{
		"formatDateTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02 15:04")
		},
	}

	tpl, err := template.New("product_report").Funcs(funcMap).Parse(productReportTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse product report template: %w", err)
	}

	return &PDFExporter{
		Endpoint: endpoint,
		AppName:  appName,
		Client:   client,
		template: tpl,
	}, nil
}

type pdfRow struct {
	Product      string
	Units        int64
	Amount       string
	Sellers      string
	Distributors string
}

type pdfData struct {
	AppName     string
	Laboratory  string
	GeneratedBy string
	GeneratedAt time.Time
	DateRange   string
	Header      []string
	Rows        []pdfRow
	TotalUnits  string
	TotalAmount string
}

// RenderProductReport renders the report to HTML, sends it to Gotenberg and
// returns the PDF bytes.
func (p *PDFExporter) RenderProductReport(ctx context.Context, payload *ProductReportPayload, money *CurrencyFormatter) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("pdf exporter not initialized")
	}
	endpoint := strings.TrimRight(p.Endpoint, "/")
	if endpoint == "" {
		return nil, fmt.Errorf("gotenberg endpoint required")
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	html, err := p.buildHTML(payload, money)
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(part, html); err != nil {
		return nil, err
	}

	fields := map[string]string{
		"paperWidth":   "8.5",
		"paperHeight":  "11",
		"marginTop":    "0.5",
		"marginBottom": "0.5",
		"marginLeft":   "0.5",
		"marginRight":  "0.5",
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("gotenberg response %d: %s", resp.StatusCode, string(data))
	}

	return io.ReadAll(resp.Body)
}

func (p *PDFExporter) buildHTML(payload *ProductReportPayload, money *CurrencyFormatter) (string, error) {
	data := pdfData{
		AppName:     p.AppName,
		Laboratory:  payload.Laboratory,
		GeneratedBy: payload.GeneratedBy,
		GeneratedAt: payload.GeneratedAt,
		DateRange:   DateRangeLabel(payload.StartDate, payload.EndDate),
		Header:      productReportHeader,
		TotalUnits:  strconv.FormatInt(payload.TotalUnits, 10),
		TotalAmount: money.FormatCents(payload.TotalAmount),
	}
	for _, row := range payload.Rows {
		data.Rows = append(data.Rows, pdfRow{
			Product:      row.Product,
			Units:        row.Units,
			Amount:       money.FormatCents(row.Amount),
			Sellers:      strings.Join(row.Sellers, ", "),
			Distributors: strings.Join(row.Distributors, ", "),
		})
	}

	buf := &bytes.Buffer{}
	if err := p.template.Execute(buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
