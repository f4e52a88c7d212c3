// Package report holds the read side: pure functions over the sales and
// expense collections. Nothing here mutates state; callers recompute on
// demand from the repositories.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"labibshop/backend/internal/domain"
)

const dateLayout = "2006-01-02"

var hundred = decimal.NewFromInt(100)

// FilterSales keeps sales whose date falls inside [start, end]. Dates are
// canonical YYYY-MM-DD strings, so lexicographic comparison is correct.
func FilterSales(sales []domain.Sale, start, end string) []domain.Sale {
	out := make([]domain.Sale, 0, len(sales))
	for _, s := range sales {
		if s.Date >= start && s.Date <= end {
			out = append(out, s)
		}
	}
	return out
}

func FilterExpenses(expenses []domain.Expense, start, end string) []domain.Expense {
	out := make([]domain.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.Date >= start && e.Date <= end {
			out = append(out, e)
		}
	}
	return out
}

// Preset range names.
const (
	PresetToday     = "Today"
	PresetYesterday = "Yesterday"
	PresetThisWeek  = "This Week"
	PresetLastWeek  = "Last Week"
	PresetThisMonth = "This Month"
	PresetLastMonth = "Last Month"
	PresetThisYear  = "This Year"
)

// PresetRange resolves a named preset to inclusive start/end dates relative
// to now. Weeks start on Monday. Unknown presets report ok=false.
func PresetRange(preset string, now time.Time) (start, end string, ok bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch preset {
	case PresetToday:
		return today.Format(dateLayout), today.Format(dateLayout), true
	case PresetYesterday:
		y := today.AddDate(0, 0, -1)
		return y.Format(dateLayout), y.Format(dateLayout), true
	case PresetThisWeek:
		return mondayOf(today).Format(dateLayout), today.Format(dateLayout), true
	case PresetLastWeek:
		monday := mondayOf(today.AddDate(0, 0, -7))
		return monday.Format(dateLayout), monday.AddDate(0, 0, 6).Format(dateLayout), true
	case PresetThisMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return first.Format(dateLayout), today.Format(dateLayout), true
	case PresetLastMonth:
		firstOfThis := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		first := firstOfThis.AddDate(0, -1, 0)
		last := firstOfThis.AddDate(0, 0, -1)
		return first.Format(dateLayout), last.Format(dateLayout), true
	case PresetThisYear:
		first := time.Date(today.Year(), 1, 1, 0, 0, 0, 0, today.Location())
		return first.Format(dateLayout), today.Format(dateLayout), true
	}
	return "", "", false
}

func mondayOf(day time.Time) time.Time {
	offset := int(day.Weekday()) - 1
	if day.Weekday() == time.Sunday {
		offset = 6
	}
	return day.AddDate(0, 0, -offset)
}

// Summarize aggregates a filtered range. COGS uses the purchase price
// snapshotted on each sale item, not the product's current cost.
func Summarize(sales []domain.Sale, expenses []domain.Expense, start, end string) domain.Summary {
	revenue := decimal.Zero
	cogs := decimal.Zero
	for _, s := range sales {
		revenue = revenue.Add(s.FinalAmount)
		for _, item := range s.Items {
			cogs = cogs.Add(item.PurchasePrice.Mul(decimal.NewFromInt(int64(item.CartQuantity))))
		}
	}

	spent := decimal.Zero
	for _, e := range expenses {
		spent = spent.Add(e.Amount)
	}

	gross := revenue.Sub(cogs)
	margin := decimal.Zero
	if revenue.IsPositive() {
		margin = gross.Div(revenue).Mul(hundred)
	}

	return domain.Summary{
		StartDate:         start,
		EndDate:           end,
		TotalRevenue:      revenue,
		TotalCOGS:         cogs,
		TotalExpenses:     spent,
		GrossProfit:       gross,
		GrossProfitMargin: margin,
		NetProfit:         gross.Sub(spent),
	}
}

// CategoryBreakdown groups sale line items by category, summing gross sales
// (selling price x quantity), descending by value.
func CategoryBreakdown(sales []domain.Sale) []domain.CategorySales {
	totals := map[string]decimal.Decimal{}
	for _, s := range sales {
		for _, item := range s.Items {
			line := item.SellingPrice.Mul(decimal.NewFromInt(int64(item.CartQuantity)))
			totals[item.Category] = totals[item.Category].Add(line)
		}
	}

	out := make([]domain.CategorySales, 0, len(totals))
	for name, value := range totals {
		out = append(out, domain.CategorySales{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value.Equal(out[j].Value) {
			return out[i].Name < out[j].Name
		}
		return out[i].Value.GreaterThan(out[j].Value)
	})
	return out
}

// DailySeries buckets filtered sales and expenses per date, ascending.
func DailySeries(sales []domain.Sale, expenses []domain.Expense) []domain.DailyPoint {
	byDate := map[string]*domain.DailyPoint{}
	point := func(date string) *domain.DailyPoint {
		if p, ok := byDate[date]; ok {
			return p
		}
		p := &domain.DailyPoint{Date: date, Sales: decimal.Zero, Expenses: decimal.Zero}
		byDate[date] = p
		return p
	}

	for _, s := range sales {
		p := point(s.Date)
		p.Sales = p.Sales.Add(s.FinalAmount)
	}
	for _, e := range expenses {
		p := point(e.Date)
		p.Expenses = p.Expenses.Add(e.Amount)
	}

	out := make([]domain.DailyPoint, 0, len(byDate))
	for _, p := range byDate {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// MonthlySeries buckets all-time sales for the given year into a fixed
// 12-element series labelled Jan..Dec.
func MonthlySeries(sales []domain.Sale, year int) []domain.MonthlyPoint {
	out := make([]domain.MonthlyPoint, 12)
	for i := range out {
		out[i] = domain.MonthlyPoint{
			Month:      time.Month(i + 1).String()[:3],
			TotalSales: decimal.Zero,
		}
	}

	for _, s := range sales {
		day, err := time.Parse(dateLayout, s.Date)
		if err != nil || day.Year() != year {
			continue
		}
		idx := int(day.Month()) - 1
		out[idx].TotalSales = out[idx].TotalSales.Add(s.FinalAmount)
	}
	return out
}

// Dashboard computes the landing-page metrics: today's totals, stock value at
// purchase cost, all-time profit from snapshotted costs, and a 7-day series.
func Dashboard(products []domain.Product, sales []domain.Sale, expenses []domain.Expense, now time.Time) domain.DashboardMetrics {
	today := now.Format(dateLayout)

	todaySales := decimal.Zero
	for _, s := range sales {
		if s.Date == today {
			todaySales = todaySales.Add(s.FinalAmount)
		}
	}
	todayExpenses := decimal.Zero
	for _, e := range expenses {
		if e.Date == today {
			todayExpenses = todayExpenses.Add(e.Amount)
		}
	}

	stockValue := decimal.Zero
	for _, p := range products {
		stockValue = stockValue.Add(p.PurchasePrice.Mul(decimal.NewFromInt(int64(p.Quantity))))
	}

	profit := decimal.Zero
	for _, s := range sales {
		cost := decimal.Zero
		for _, item := range s.Items {
			cost = cost.Add(item.PurchasePrice.Mul(decimal.NewFromInt(int64(item.CartQuantity))))
		}
		profit = profit.Add(s.FinalAmount.Sub(cost))
	}

	start := now.AddDate(0, 0, -6).Format(dateLayout)
	series := DailySeries(FilterSales(sales, start, today), FilterExpenses(expenses, start, today))

	// The chart expects a point for every one of the 7 days, sold or not.
	filled := make([]domain.DailyPoint, 0, 7)
	byDate := map[string]domain.DailyPoint{}
	for _, p := range series {
		byDate[p.Date] = p
	}
	for i := 6; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format(dateLayout)
		if p, ok := byDate[date]; ok {
			filled = append(filled, p)
			continue
		}
		filled = append(filled, domain.DailyPoint{Date: date, Sales: decimal.Zero, Expenses: decimal.Zero})
	}

	return domain.DashboardMetrics{
		TodaySales:      todaySales,
		TodayExpenses:   todayExpenses,
		TotalStockValue: stockValue,
		TotalProfit:     profit,
		Last7Days:       filled,
	}
}
