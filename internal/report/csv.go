package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"labibshop/backend/internal/domain"
)

// ExportCSV renders the filtered range as a combined sales + expenses report.
// Sale descriptions join line items as "name xQty; ..."; the category column
// carries the deduplicated set of item categories in first-seen order.
// csv.Writer escapes embedded quotes by doubling them.
func ExportCSV(sales []domain.Sale, expenses []domain.Expense) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Type", "Date", "ID", "Description", "Category", "Amount", "Payment Method"}); err != nil {
		return "", err
	}

	for _, sale := range sales {
		parts := make([]string, 0, len(sale.Items))
		seen := map[string]bool{}
		categories := make([]string, 0, len(sale.Items))
		for _, item := range sale.Items {
			parts = append(parts, fmt.Sprintf("%s x%d", item.Name, item.CartQuantity))
			if !seen[item.Category] {
				seen[item.Category] = true
				categories = append(categories, item.Category)
			}
		}
		record := []string{
			"Sale",
			sale.Date,
			sale.ID,
			strings.Join(parts, "; "),
			strings.Join(categories, "; "),
			sale.FinalAmount.StringFixed(2),
			sale.PaymentMethod,
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	for _, expense := range expenses {
		record := []string{
			"Expense",
			expense.Date,
			expense.ID,
			expense.Title,
			expense.Category,
			expense.Amount.StringFixed(2),
			"-",
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ExportFileName names the download after the selected range.
func ExportFileName(start, end string) string {
	return fmt.Sprintf("Shop_Report_%s_to_%s.csv", start, end)
}
