package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAnalyticsEmpty(t *testing.T) {
	a := ComputeAnalytics(nil, nil)

	assert.Zero(t, a.TotalSneakers)
	assert.Zero(t, a.TotalSales)
	assert.Zero(t, a.TotalInvested)
	assert.Empty(t, a.MonthlyProfits)
	assert.Empty(t, a.BrandPerformance)
}

func TestComputeAnalyticsNoSales(t *testing.T) {
	sneakers := []Sneaker{
		{ID: "a", Brand: "Nike", PurchasePrice: 120},
		{ID: "b", Brand: "Adidas", PurchasePrice: 230},
	}

	a := ComputeAnalytics(sneakers, nil)
	assert.Equal(t, 2, a.TotalSneakers)
	assert.Equal(t, 2, a.AvailableInventory)
	assert.Equal(t, 350.0, a.TotalInvested)
	assert.Zero(t, a.TotalRevenue)
	assert.Zero(t, a.TotalProfit)
}

func TestComputeAnalyticsProfit(t *testing.T) {
	sneakers := []Sneaker{
		{ID: "a", Brand: "Nike", PurchasePrice: 100, PurchaseDate: "2025-06-01"},
		{ID: "b", Brand: "Nike", PurchasePrice: 150, PurchaseDate: "2025-06-10"},
		{ID: "c", Brand: "Adidas", PurchasePrice: 230, PurchaseDate: "2025-05-01"},
	}
	sales := []Sale{
		{SneakerID: "a", SalePrice: 200, SaleDate: "2025-07-01", Fees: 20, ShippingCost: 10}, // profit 70, 30 days
		{SneakerID: "b", SalePrice: 180, SaleDate: "2025-07-10", Fees: 18, ShippingCost: 0},  // profit 12, 30 days
		{SneakerID: "c", SalePrice: 300, SaleDate: "2025-08-01", Fees: 30, ShippingCost: 5},  // profit 35, 92 days
	}

	a := ComputeAnalytics(sneakers, sales)

	assert.Equal(t, 3, a.TotalSales)
	assert.Equal(t, 0, a.AvailableInventory)
	assert.Equal(t, 480.0, a.TotalInvested)
	assert.Equal(t, 680.0, a.TotalRevenue)
	assert.Equal(t, 83.0, a.TotalFees)
	assert.InDelta(t, 117.0, a.TotalProfit, 0.001)
	assert.InDelta(t, 39.0, a.AverageProfitPerSale, 0.001)
	assert.InDelta(t, (30.0+30.0+92.0)/3.0, a.AverageDaysToSale, 0.001)
}

func TestComputeAnalyticsMonthlyBuckets(t *testing.T) {
	sneakers := []Sneaker{
		{ID: "a", Brand: "Nike", PurchasePrice: 100},
		{ID: "b", Brand: "Nike", PurchasePrice: 100},
	}
	sales := []Sale{
		{SneakerID: "a", SalePrice: 150, SaleDate: "2025-08-05"},
		{SneakerID: "b", SalePrice: 140, SaleDate: "2025-07-20T10:00:00Z"},
		{SneakerID: "a", SalePrice: 130, SaleDate: "2025-08-28"},
	}

	a := ComputeAnalytics(sneakers, sales)

	require.Len(t, a.MonthlyProfits, 2)
	assert.Equal(t, MonthlyProfit{Month: "2025-07", Profit: 40}, a.MonthlyProfits[0])
	assert.Equal(t, MonthlyProfit{Month: "2025-08", Profit: 80}, a.MonthlyProfits[1])
}

func TestComputeAnalyticsBrandPerformanceSorted(t *testing.T) {
	sneakers := []Sneaker{
		{ID: "a", Brand: "Nike", PurchasePrice: 100},
		{ID: "b", Brand: "Adidas", PurchasePrice: 200},
		{ID: "c", Brand: "Adidas", PurchasePrice: 200},
	}
	sales := []Sale{
		{SneakerID: "a", SalePrice: 130, SaleDate: "2025-08-01"}, // Nike profit 30
		{SneakerID: "b", SalePrice: 300, SaleDate: "2025-08-02"}, // Adidas profit 100
		{SneakerID: "c", SalePrice: 260, SaleDate: "2025-08-03"}, // Adidas profit 60
	}

	a := ComputeAnalytics(sneakers, sales)

	require.Len(t, a.BrandPerformance, 2)
	assert.Equal(t, "Adidas", a.BrandPerformance[0].Brand, "sorted by profit descending")
	assert.Equal(t, 2, a.BrandPerformance[0].Sales)
	assert.Equal(t, 560.0, a.BrandPerformance[0].Revenue)
	assert.Equal(t, 160.0, a.BrandPerformance[0].Profit)
	assert.Equal(t, 80.0, a.BrandPerformance[0].AvgProfit)
	assert.Equal(t, "Nike", a.BrandPerformance[1].Brand)
}

func TestComputeAnalyticsOrphanSale(t *testing.T) {
	sneakers := []Sneaker{{ID: "a", Brand: "Nike", PurchasePrice: 100}}
	sales := []Sale{
		{SneakerID: "a", SalePrice: 150, SaleDate: "2025-08-01"},
		{SneakerID: "ghost", SalePrice: 999, SaleDate: "2025-08-02"},
	}

	a := ComputeAnalytics(sneakers, sales)

	// The orphan counts toward revenue but cannot contribute profit.
	assert.Equal(t, 1149.0, a.TotalRevenue)
	assert.Equal(t, 50.0, a.TotalProfit)
	assert.Equal(t, 2, a.TotalSales)
	require.Len(t, a.BrandPerformance, 1)
}
