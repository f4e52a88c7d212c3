package report

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"labibshop/backend/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func saleOn(date string, finalAmount string, items ...domain.CartItem) domain.Sale {
	return domain.Sale{
		ID:            "S001",
		Date:          date,
		FinalAmount:   dec(finalAmount),
		Items:         items,
		PaymentMethod: domain.PaymentCash,
	}
}

func TestFilterIsInclusive(t *testing.T) {
	sales := []domain.Sale{
		saleOn("2024-03-31", "1"),
		saleOn("2024-04-01", "2"),
		saleOn("2024-04-15", "3"),
		saleOn("2024-04-30", "4"),
		saleOn("2024-05-01", "5"),
	}
	got := FilterSales(sales, "2024-04-01", "2024-04-30")
	if len(got) != 3 {
		t.Fatalf("expected 3 sales in range, got %d", len(got))
	}
	if got[0].Date != "2024-04-01" || got[2].Date != "2024-04-30" {
		t.Fatalf("range boundaries must be inclusive: %+v", got)
	}
}

func TestSummarizeMatchesKnownNumbers(t *testing.T) {
	sales := []domain.Sale{saleOn("2024-04-05", "20", domain.CartItem{
		Name:          "Soap",
		Category:      "Household",
		PurchasePrice: dec("5"),
		SellingPrice:  dec("10"),
		CartQuantity:  2,
	})}
	expenses := []domain.Expense{{ID: "E001", Title: "Tea", Category: "Misc", Amount: dec("4"), Date: "2024-04-05"}}

	summary := Summarize(sales, expenses, "2024-04-01", "2024-04-30")

	if !summary.TotalRevenue.Equal(dec("20")) {
		t.Fatalf("revenue: want 20, got %s", summary.TotalRevenue)
	}
	if !summary.TotalCOGS.Equal(dec("10")) {
		t.Fatalf("cogs: want 10, got %s", summary.TotalCOGS)
	}
	if !summary.GrossProfit.Equal(dec("10")) {
		t.Fatalf("gross profit: want 10, got %s", summary.GrossProfit)
	}
	if !summary.GrossProfitMargin.Equal(dec("50")) {
		t.Fatalf("margin: want 50, got %s", summary.GrossProfitMargin)
	}
	if !summary.NetProfit.Equal(dec("6")) {
		t.Fatalf("net profit: want 6, got %s", summary.NetProfit)
	}
}

func TestSummarizeZeroRevenueHasZeroMargin(t *testing.T) {
	summary := Summarize(nil, nil, "2024-04-01", "2024-04-30")
	if !summary.GrossProfitMargin.IsZero() {
		t.Fatalf("expected zero margin with zero revenue, got %s", summary.GrossProfitMargin)
	}
}

func TestSummarizeUsesSnapshottedCost(t *testing.T) {
	// The sale item carries the purchase price at sale time; a later product
	// edit must not change historical COGS, so Summarize only ever reads the
	// snapshot.
	sales := []domain.Sale{saleOn("2024-04-05", "30", domain.CartItem{
		ID:            "P001",
		PurchasePrice: dec("3"),
		SellingPrice:  dec("10"),
		CartQuantity:  3,
	})}
	summary := Summarize(sales, nil, "2024-04-01", "2024-04-30")
	if !summary.TotalCOGS.Equal(dec("9")) {
		t.Fatalf("cogs from snapshot: want 9, got %s", summary.TotalCOGS)
	}
}

func TestPresetRangesMondayStart(t *testing.T) {
	// 2024-04-10 is a Wednesday.
	now := time.Date(2024, 4, 10, 15, 30, 0, 0, time.UTC)

	cases := []struct {
		preset string
		start  string
		end    string
	}{
		{PresetToday, "2024-04-10", "2024-04-10"},
		{PresetYesterday, "2024-04-09", "2024-04-09"},
		{PresetThisWeek, "2024-04-08", "2024-04-10"},
		{PresetLastWeek, "2024-04-01", "2024-04-07"},
		{PresetThisMonth, "2024-04-01", "2024-04-10"},
		{PresetLastMonth, "2024-03-01", "2024-03-31"},
		{PresetThisYear, "2024-01-01", "2024-04-10"},
	}
	for _, tc := range cases {
		start, end, ok := PresetRange(tc.preset, now)
		if !ok {
			t.Fatalf("%s: preset not recognized", tc.preset)
		}
		if start != tc.start || end != tc.end {
			t.Fatalf("%s: want %s..%s, got %s..%s", tc.preset, tc.start, tc.end, start, end)
		}
	}

	if _, _, ok := PresetRange("Fortnight", now); ok {
		t.Fatalf("unknown preset must not resolve")
	}
}

func TestPresetThisWeekOnSunday(t *testing.T) {
	// 2024-04-14 is a Sunday; the week still starts the previous Monday.
	now := time.Date(2024, 4, 14, 9, 0, 0, 0, time.UTC)
	start, end, ok := PresetRange(PresetThisWeek, now)
	if !ok || start != "2024-04-08" || end != "2024-04-14" {
		t.Fatalf("want 2024-04-08..2024-04-14, got %s..%s", start, end)
	}
}

func TestCategoryBreakdownSortsByValue(t *testing.T) {
	sales := []domain.Sale{saleOn("2024-04-05", "0",
		domain.CartItem{Category: "Snacks", SellingPrice: dec("2"), CartQuantity: 3},
		domain.CartItem{Category: "Dairy", SellingPrice: dec("10"), CartQuantity: 2},
		domain.CartItem{Category: "Snacks", SellingPrice: dec("4"), CartQuantity: 1},
	)}

	got := CategoryBreakdown(sales)
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got))
	}
	if got[0].Name != "Dairy" || !got[0].Value.Equal(dec("20")) {
		t.Fatalf("expected Dairy 20 first, got %+v", got[0])
	}
	if got[1].Name != "Snacks" || !got[1].Value.Equal(dec("10")) {
		t.Fatalf("expected Snacks 10, got %+v", got[1])
	}
}

func TestDailySeriesMergesAndSorts(t *testing.T) {
	sales := []domain.Sale{
		saleOn("2024-04-02", "10"),
		saleOn("2024-04-01", "5"),
		saleOn("2024-04-02", "7"),
	}
	expenses := []domain.Expense{
		{Amount: dec("3"), Date: "2024-04-03"},
		{Amount: dec("1"), Date: "2024-04-02"},
	}

	series := DailySeries(sales, expenses)
	if len(series) != 3 {
		t.Fatalf("expected 3 points, got %d", len(series))
	}
	if series[0].Date != "2024-04-01" || series[2].Date != "2024-04-03" {
		t.Fatalf("series not sorted: %+v", series)
	}
	if !series[1].Sales.Equal(dec("17")) || !series[1].Expenses.Equal(dec("1")) {
		t.Fatalf("2024-04-02 totals wrong: %+v", series[1])
	}
}

func TestMonthlySeriesFixedTwelveBuckets(t *testing.T) {
	sales := []domain.Sale{
		saleOn("2024-01-15", "10"),
		saleOn("2024-01-20", "5"),
		saleOn("2024-12-31", "7"),
		saleOn("2023-06-01", "99"), // other year, excluded
	}

	series := MonthlySeries(sales, 2024)
	if len(series) != 12 {
		t.Fatalf("expected 12 buckets, got %d", len(series))
	}
	if series[0].Month != "Jan" || !series[0].TotalSales.Equal(dec("15")) {
		t.Fatalf("january bucket wrong: %+v", series[0])
	}
	if series[11].Month != "Dec" || !series[11].TotalSales.Equal(dec("7")) {
		t.Fatalf("december bucket wrong: %+v", series[11])
	}
	if !series[5].TotalSales.IsZero() {
		t.Fatalf("june must exclude other years: %+v", series[5])
	}
}

func TestDashboardMetrics(t *testing.T) {
	now := time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC)
	products := []domain.Product{
		{ID: "P001", PurchasePrice: dec("5"), Quantity: 4},
		{ID: "P002", PurchasePrice: dec("2"), Quantity: 10},
	}
	sales := []domain.Sale{
		saleOn("2024-04-10", "20", domain.CartItem{PurchasePrice: dec("5"), CartQuantity: 2}),
		saleOn("2024-04-01", "8", domain.CartItem{PurchasePrice: dec("2"), CartQuantity: 2}),
	}
	expenses := []domain.Expense{{Amount: dec("4"), Date: "2024-04-10"}}

	m := Dashboard(products, sales, expenses, now)
	if !m.TodaySales.Equal(dec("20")) {
		t.Fatalf("today sales: want 20, got %s", m.TodaySales)
	}
	if !m.TodayExpenses.Equal(dec("4")) {
		t.Fatalf("today expenses: want 4, got %s", m.TodayExpenses)
	}
	if !m.TotalStockValue.Equal(dec("40")) {
		t.Fatalf("stock value: want 40, got %s", m.TotalStockValue)
	}
	// (20-10) + (8-4) = 14 all-time profit from snapshotted costs.
	if !m.TotalProfit.Equal(dec("14")) {
		t.Fatalf("total profit: want 14, got %s", m.TotalProfit)
	}
	if len(m.Last7Days) != 7 {
		t.Fatalf("expected 7 day points, got %d", len(m.Last7Days))
	}
	if m.Last7Days[6].Date != "2024-04-10" || !m.Last7Days[6].Sales.Equal(dec("20")) {
		t.Fatalf("last point must be today: %+v", m.Last7Days[6])
	}
	if !m.Last7Days[0].Sales.IsZero() {
		t.Fatalf("days without activity must be zero-filled: %+v", m.Last7Days[0])
	}
}

func TestExportCSV(t *testing.T) {
	sales := []domain.Sale{{
		ID:            "S001",
		Date:          "2024-04-05",
		FinalAmount:   dec("20"),
		PaymentMethod: domain.PaymentCash,
		Items: []domain.CartItem{
			{Name: "Soap", Category: "Household", CartQuantity: 2},
			{Name: `Rice "premium"`, Category: "Grocery", CartQuantity: 1},
			{Name: "Shampoo", Category: "Household", CartQuantity: 1},
		},
	}}
	expenses := []domain.Expense{{
		ID:       "E001",
		Title:    "Rent, April",
		Category: "Fixed",
		Amount:   dec("300"),
		Date:     "2024-04-01",
	}}

	out, err := ExportCSV(sales, expenses)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if lines[0] != "Type,Date,ID,Description,Category,Amount,Payment Method" {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	// Embedded quotes doubled, categories deduplicated in first-seen order.
	if !strings.Contains(lines[1], `"Soap x2; Rice ""premium"" x1; Shampoo x1"`) {
		t.Fatalf("sale description wrong: %s", lines[1])
	}
	if !strings.Contains(lines[1], "Household; Grocery") {
		t.Fatalf("sale categories wrong: %s", lines[1])
	}
	if !strings.Contains(lines[1], "20.00,Cash") {
		t.Fatalf("sale amount/method wrong: %s", lines[1])
	}
	if !strings.Contains(lines[2], `"Rent, April",Fixed,300.00,-`) {
		t.Fatalf("expense row wrong: %s", lines[2])
	}

	if name := ExportFileName("2024-04-01", "2024-04-30"); name != "Shop_Report_2024-04-01_to_2024-04-30.csv" {
		t.Fatalf("unexpected file name %s", name)
	}
}
