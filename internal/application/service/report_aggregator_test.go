package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ventafarma/ventafarma-api/internal/domain/entity"
)

func cents(v int64) *int64 {
	return &v
}

func TestBuildReportFiltersRequiresLaboratory(t *testing.T) {
	_, _, err := buildReportFilters(&ProductReportFilters{
		ProductNames: []string{"Paracetamol 500mg"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Laboratory")
}

func TestBuildReportFiltersRequiresProductNames(t *testing.T) {
	for _, names := range [][]string{nil, {}, {""}, {"  ", ""}} {
		_, _, err := buildReportFilters(&ProductReportFilters{
			ProductNames: names,
			Laboratory:   "Kiron",
		})
		require.Error(t, err)
	}
}

func TestBuildReportFiltersCleansNames(t *testing.T) {
	params, names, err := buildReportFilters(&ProductReportFilters{
		ProductNames: []string{" X ", "Y", "X", ""},
		Laboratory:   " Kiron ",
		Seller:       "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y"}, names)
	assert.Equal(t, "Kiron", params.Laboratory)
	assert.Equal(t, "Ana", params.Representative)
	assert.Nil(t, params.StartDate)
	assert.Nil(t, params.EndDate)
}

func TestBuildReportFiltersNormalizesEndDate(t *testing.T) {
	end := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	params, _, err := buildReportFilters(&ProductReportFilters{
		ProductNames: []string{"X"},
		Laboratory:   "Kiron",
		StartDate:    &end,
		EndDate:      &end,
	})
	require.NoError(t, err)

	require.NotNil(t, params.EndDate)
	assert.Equal(t, time.Date(2026, 3, 15, 23, 59, 59, 999999999, time.UTC), *params.EndDate)
	// A same-day range stays inclusive on both ends.
	assert.True(t, params.StartDate.Before(*params.EndDate))

	// An order dated exactly at endDate midnight falls inside the range.
	orderDate := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.False(t, orderDate.Before(*params.StartDate))
	assert.False(t, orderDate.After(*params.EndDate))
}

func TestAggregateProductSalesScenario(t *testing.T) {
	orders := []entity.Order{
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

	entries := aggregateProductSales(orders, []string{"X", "Y"})
	require.Len(t, entries, 2)

	assert.Equal(t, "X", entries[0].ProductName)
	assert.Equal(t, int64(8), entries[0].TotalQty)
	assert.Equal(t, int64(16000), entries[0].TotalAmount)
	assert.Equal(t, []string{"Ana", "Beto"}, entries[0].Sellers)
	assert.Empty(t, entries[0].Distributors)

	// The unmatched product still gets a zero-filled entry.
	assert.Equal(t, "Y", entries[1].ProductName)
	assert.Equal(t, int64(0), entries[1].TotalQty)
	assert.Equal(t, int64(0), entries[1].TotalAmount)
	assert.Equal(t, []string{}, entries[1].Sellers)
	assert.Equal(t, []string{}, entries[1].Distributors)
}

func TestAggregateProductSalesDedupesParticipants(t *testing.T) {
	orders := []entity.Order{
		{Representative: "Ana", Distributor: "Nadro", Items: []entity.OrderItem{{ProductName: "X", Quantity: 1, Total: cents(100)}}},
		{Representative: "Ana", Distributor: "Nadro", Items: []entity.OrderItem{{ProductName: "X", Quantity: 2, Total: cents(200)}}},
		{Representative: "", Distributor: "", Items: []entity.OrderItem{{ProductName: "X", Quantity: 4, Total: cents(400)}}},
	}

	entries := aggregateProductSales(orders, []string{"X"})
	require.Len(t, entries, 1)

	assert.Equal(t, int64(7), entries[0].TotalQty)
	// Blank representative/distributor never enter the sets.
	assert.Equal(t, []string{"Ana"}, entries[0].Sellers)
	assert.Equal(t, []string{"Nadro"}, entries[0].Distributors)
}

func TestAggregateProductSalesIgnoresUnrequestedProducts(t *testing.T) {
	orders := []entity.Order{
		{Representative: "Ana", Items: []entity.OrderItem{
			{ProductName: "X", Quantity: 5, Total: cents(500)},
			{ProductName: "Z", Quantity: 9, Total: cents(900)},
		}},
	}

	entries := aggregateProductSales(orders, []string{"X"})
	require.Len(t, entries, 1)
	assert.Equal(t, int64(5), entries[0].TotalQty)
	assert.Equal(t, int64(500), entries[0].TotalAmount)
}

func TestAggregateProductSalesFallsBackToPriceTimesQuantity(t *testing.T) {
	orders := []entity.Order{
		{Items: []entity.OrderItem{{ProductName: "X", Quantity: 4, UnitPrice: 250, Total: nil}}},
	}

	entries := aggregateProductSales(orders, []string{"X"})
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1000), entries[0].TotalAmount)
}

func TestAggregateProductSalesRespectsStoredZeroTotal(t *testing.T) {
	// A fully discounted line rounds to a stored total of zero; that zero is
	// a real amount, not a missing one, so no fallback applies.
	orders := []entity.Order{
		{Items: []entity.OrderItem{{ProductName: "X", Quantity: 1, UnitPrice: 1, Discount: 0.70, Total: cents(0)}}},
	}

	entries := aggregateProductSales(orders, []string{"X"})
	require.Len(t, entries, 1)
	assert.Equal(t, int64(0), entries[0].TotalAmount)
}

func TestAggregateProductSalesOrderIndependentTotals(t *testing.T) {
	orders := []entity.Order{
		{Representative: "Ana", Items: []entity.OrderItem{{ProductName: "X", Quantity: 5, Total: cents(500)}}},
		{Representative: "Beto", Items: []entity.OrderItem{{ProductName: "Y", Quantity: 3, Total: cents(300)}}},
	}

	forward := aggregateProductSales(orders, []string{"X", "Y"})
	reversed := aggregateProductSales(orders, []string{"Y", "X"})

	// Requested order changes only the output ordering, never the totals.
	assert.Equal(t, forward[0], reversed[1])
	assert.Equal(t, forward[1], reversed[0])
}

func TestAggregateProductSalesSkipsOrdersWithoutItems(t *testing.T) {
	orders := []entity.Order{
		{Representative: "Ana"},
		{Representative: "Beto", Items: []entity.OrderItem{{ProductName: "X", Quantity: 1, Total: cents(100)}}},
	}

	entries := aggregateProductSales(orders, []string{"X"})
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].TotalQty)
	assert.Equal(t, []string{"Beto"}, entries[0].Sellers)
}
