package inventory

import (
	"sort"
)

// Analytics is the profit rollup across the whole inventory.
type Analytics struct {
	TotalSneakers       int                `json:"total_sneakers"`
	TotalSales          int                `json:"total_sales"`
	AvailableInventory  int                `json:"available_inventory"`
	TotalInvested       float64            `json:"total_invested"`
	TotalRevenue        float64            `json:"total_revenue"`
	TotalProfit         float64            `json:"total_profit"`
	TotalFees           float64            `json:"total_fees"`
	AverageProfitPerSale float64           `json:"average_profit_per_sale"`
	AverageDaysToSale   float64            `json:"average_days_to_sale"`
	MonthlyProfits      []MonthlyProfit    `json:"monthly_profits"`
	BrandPerformance    []BrandPerformance `json:"brand_performance"`
}

// MonthlyProfit is the realized profit of one calendar month.
type MonthlyProfit struct {
	Month  string  `json:"month"`
	Profit float64 `json:"profit"`
}

// BrandPerformance summarizes realized sales for one brand.
type BrandPerformance struct {
	Brand     string  `json:"brand"`
	Sales     int     `json:"sales"`
	Revenue   float64 `json:"revenue"`
	Profit    float64 `json:"profit"`
	AvgProfit float64 `json:"avg_profit"`
}

// ComputeAnalytics rolls up the records in memory. Pure function; sales whose
// sneaker no longer exists contribute to revenue totals but not to profit.
func ComputeAnalytics(sneakers []Sneaker, sales []Sale) Analytics {
	a := Analytics{
		TotalSneakers:      len(sneakers),
		TotalSales:         len(sales),
		AvailableInventory: len(sneakers) - len(sales),
		MonthlyProfits:     []MonthlyProfit{},
		BrandPerformance:   []BrandPerformance{},
	}
	if len(sneakers) == 0 {
		return a
	}

	byID := make(map[string]*Sneaker, len(sneakers))
	for i := range sneakers {
		a.TotalInvested += sneakers[i].PurchasePrice
		byID[sneakers[i].ID] = &sneakers[i]
	}

	var profitSum float64
	var profitCount int
	var daysSum, daysCount int

	monthly := make(map[string]float64)
	brands := make(map[string]*BrandPerformance)

	for _, sale := range sales {
		a.TotalRevenue += sale.SalePrice
		a.TotalFees += sale.Fees + sale.ShippingCost

		sn, ok := byID[sale.SneakerID]
		if !ok {
			continue
		}
		profit := sale.Profit(sn.PurchasePrice)
		profitSum += profit
		profitCount++

		if days := sale.DaysToSale(sn.PurchaseDate); days > 0 {
			daysSum += days
			daysCount++
		}

		if t, err := parseRecordDate(sale.SaleDate); err == nil {
			monthly[t.Format("2006-01")] += profit
		}

		perf, ok := brands[sn.Brand]
		if !ok {
			perf = &BrandPerformance{Brand: sn.Brand}
			brands[sn.Brand] = perf
		}
		perf.Sales++
		perf.Revenue += sale.SalePrice
		perf.Profit += profit
	}

	a.TotalProfit = profitSum
	if profitCount > 0 {
		a.AverageProfitPerSale = profitSum / float64(profitCount)
	}
	if daysCount > 0 {
		a.AverageDaysToSale = float64(daysSum) / float64(daysCount)
	}

	for month, profit := range monthly {
		a.MonthlyProfits = append(a.MonthlyProfits, MonthlyProfit{Month: month, Profit: profit})
	}
	sort.Slice(a.MonthlyProfits, func(i, j int) bool {
		return a.MonthlyProfits[i].Month < a.MonthlyProfits[j].Month
	})

	for _, perf := range brands {
		if perf.Sales > 0 {
			perf.AvgProfit = perf.Profit / float64(perf.Sales)
		}
		a.BrandPerformance = append(a.BrandPerformance, *perf)
	}
	sort.Slice(a.BrandPerformance, func(i, j int) bool {
		return a.BrandPerformance[i].Profit > a.BrandPerformance[j].Profit
	})

	return a
}
