package service

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/ventafarma/ventafarma-api/internal/domain/entity"
	"github.com/ventafarma/ventafarma-api/internal/domain/repository"
	"github.com/ventafarma/ventafarma-api/pkg/apperror"
)

// ProductReportFilters is the caller-supplied filter set for a product
// sales report.
type ProductReportFilters struct {
	ProductNames []string
	Laboratory   string
	Seller       string
	Distributor  string
	StartDate    *time.Time
	EndDate      *time.Time
}

// buildReportFilters validates the filter set and produces the store
// predicate params plus the cleaned product name allow-list. Validation
// failures are reported before any store access happens.
func buildReportFilters(filters *ProductReportFilters) (*repository.ReportFilterParams, []string, error) {
	if strings.TrimSpace(filters.Laboratory) == "" {
		return nil, nil, apperror.NewBadRequestError("Laboratory filter is required")
	}

	names := make([]string, 0, len(filters.ProductNames))
	seen := make(map[string]struct{}, len(filters.ProductNames))
	for _, name := range filters.ProductNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, nil, apperror.NewBadRequestError("At least one product name is required")
	}

	params := &repository.ReportFilterParams{
		Laboratory:     strings.TrimSpace(filters.Laboratory),
		Representative: strings.TrimSpace(filters.Seller),
		Distributor:    strings.TrimSpace(filters.Distributor),
		StartDate:      filters.StartDate,
	}

	// The upper bound is normalized to the end of its calendar day so a
	// same-day range is inclusive on both ends.
	if filters.EndDate != nil {
		end := endOfDay(*filters.EndDate)
		params.EndDate = &end
	}

	return params, names, nil
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// ProductReportEntry is one aggregated product line. Entries exist only for
// the duration of a report request; nothing here is persisted.
type ProductReportEntry struct {
	ProductName  string   `json:"product_name"`
	TotalQty     int64    `json:"total_qty"`
	TotalAmount  int64    `json:"-"` // cents
	Sellers      []string `json:"sellers"`
	Distributors []string `json:"distributors"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (e ProductReportEntry) MarshalJSON() ([]byte, error) {
	type Alias ProductReportEntry
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
	}{
		Alias:       Alias(e),
		TotalAmount: float64(e.TotalAmount) / 100,
	})
}

type productAccumulator struct {
	entry        *ProductReportEntry
	sellers      map[string]struct{}
	distributors map[string]struct{}
}

// aggregateProductSales folds the fetched order set into one entry per
// requested product name. Every requested name gets an entry even with zero
// matching line items, and entries keep the order the names were supplied
// in. Seller and distributor collections have set semantics; first-seen
// order is preserved.
func aggregateProductSales(orders []entity.Order, productNames []string) []ProductReportEntry {
	entries := make([]ProductReportEntry, len(productNames))
	index := make(map[string]*productAccumulator, len(productNames))
	for i, name := range productNames {
		entries[i] = ProductReportEntry{
			ProductName:  name,
			Sellers:      []string{},
			Distributors: []string{},
		}
		index[name] = &productAccumulator{
			entry:        &entries[i],
			sellers:      make(map[string]struct{}),
			distributors: make(map[string]struct{}),
		}
	}

	for _, order := range orders {
		for _, item := range order.Items {
			acc, wanted := index[item.ProductName]
			if !wanted {
				continue
			}

			acc.entry.TotalQty += int64(item.Quantity)
			acc.entry.TotalAmount += item.LineTotal()

			if order.Representative != "" {
				if _, dup := acc.sellers[order.Representative]; !dup {
					acc.sellers[order.Representative] = struct{}{}
					acc.entry.Sellers = append(acc.entry.Sellers, order.Representative)
				}
			}
			if order.Distributor != "" {
				if _, dup := acc.distributors[order.Distributor]; !dup {
					acc.distributors[order.Distributor] = struct{}{}
					acc.entry.Distributors = append(acc.entry.Distributors, order.Distributor)
				}
			}
		}
	}

	return entries
}
