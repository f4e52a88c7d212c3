package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"labibshop/backend/internal/domain"
	"labibshop/backend/internal/report"
	"labibshop/backend/internal/store"
)

const walkInCustomerName = "Walk-in Customer"

const dateLayout = "2006-01-02"

type Service struct {
	repo     store.Repository
	validate *validator.Validate
	now      func() time.Time
}

func New(repo store.Repository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
		now:      time.Now,
	}
}

// WithClock pins the wall clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *Service) CreateProduct(ctx context.Context, req domain.ProductCreateRequest) (domain.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	if err := s.validate.Struct(req); err != nil {
		return domain.Product{}, fmt.Errorf("%w: %v", store.ErrInvalidInput, err)
	}
	if req.PurchasePrice.IsNegative() || req.SellingPrice.IsNegative() {
		return domain.Product{}, fmt.Errorf("%w: prices must not be negative", store.ErrInvalidInput)
	}

	created, err := s.repo.AddProduct(ctx, domain.Product{
		Name:          req.Name,
		Category:      req.Category,
		PurchasePrice: req.PurchasePrice,
		SellingPrice:  req.SellingPrice,
		Quantity:      req.Quantity,
	})
	if err != nil {
		return domain.Product{}, err
	}
	return *created, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, req domain.ProductCreateRequest) (domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Product{}, store.ErrInvalidInput
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	if err := s.validate.Struct(req); err != nil {
		return domain.Product{}, fmt.Errorf("%w: %v", store.ErrInvalidInput, err)
	}
	if req.PurchasePrice.IsNegative() || req.SellingPrice.IsNegative() {
		return domain.Product{}, fmt.Errorf("%w: prices must not be negative", store.ErrInvalidInput)
	}

	existing, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	updated := *existing
	updated.Name = req.Name
	updated.Category = req.Category
	updated.PurchasePrice = req.PurchasePrice
	updated.SellingPrice = req.SellingPrice
	updated.Quantity = req.Quantity

	saved, err := s.repo.UpdateProduct(ctx, updated)
	if err != nil {
		return domain.Product{}, err
	}
	return *saved, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return store.ErrInvalidInput
	}
	return s.repo.DeleteProduct(ctx, id)
}

func (s *Service) ListSales(ctx context.Context) ([]domain.Sale, error) {
	return s.repo.ListSales(ctx)
}

// Checkout validates the cart, snapshots the referenced products into line
// items and hands the assembled sale to the store. Totals are derived here
// from current catalog prices; the snapshot keeps them stable afterwards.
func (s *Service) Checkout(ctx context.Context, req domain.CheckoutRequest) (domain.Sale, error) {
	req.CustomerID = strings.TrimSpace(req.CustomerID)
	if err := s.validate.Struct(req); err != nil {
		return domain.Sale{}, fmt.Errorf("%w: %v", store.ErrInvalidInput, err)
	}
	if req.Discount.IsNegative() {
		return domain.Sale{}, fmt.Errorf("%w: discount must not be negative", store.ErrInvalidInput)
	}
	if req.PaymentMethod == domain.PaymentDue && req.CustomerID == "" {
		return domain.Sale{}, fmt.Errorf("%w: due sale requires a customer", store.ErrInvalidInput)
	}

	customerName := walkInCustomerName
	if req.CustomerID != "" {
		customer, err := s.repo.GetCustomer(ctx, req.CustomerID)
		if err != nil {
			return domain.Sale{}, err
		}
		customerName = customer.Name
	}

	items := make([]domain.CartItem, 0, len(req.Items))
	total := decimal.Zero
	for _, line := range req.Items {
		product, err := s.repo.GetProduct(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.Sale{}, fmt.Errorf("%w: unknown product %s", store.ErrInvalidInput, line.ProductID)
			}
			return domain.Sale{}, err
		}
		if product.Quantity < line.Quantity {
			return domain.Sale{}, fmt.Errorf("%w: insufficient stock for %s", store.ErrInvalidInput, product.ID)
		}

		qty := decimal.NewFromInt(int64(line.Quantity))
		items = append(items, domain.CartItem{
			ID:            product.ID,
			Name:          product.Name,
			Category:      product.Category,
			PurchasePrice: product.PurchasePrice,
			SellingPrice:  product.SellingPrice,
			Quantity:      product.Quantity,
			DateAdded:     product.DateAdded,
			CartQuantity:  line.Quantity,
			Cost:          product.PurchasePrice.Mul(qty),
		})
		total = total.Add(product.SellingPrice.Mul(qty))
	}

	sale := domain.Sale{
		Items:         items,
		Total:         total,
		Discount:      req.Discount,
		FinalAmount:   total.Sub(req.Discount),
		PaymentMethod: req.PaymentMethod,
		CustomerID:    req.CustomerID,
		CustomerName:  customerName,
	}

	created, err := s.repo.CompleteSale(ctx, sale)
	if err != nil {
		return domain.Sale{}, err
	}
	return *created, nil
}

func (s *Service) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	return s.repo.ListExpenses(ctx)
}

func (s *Service) CreateExpense(ctx context.Context, req domain.ExpenseCreateRequest) (domain.Expense, error) {
	expense, err := s.expenseFromRequest(req)
	if err != nil {
		return domain.Expense{}, err
	}
	created, err := s.repo.AddExpense(ctx, expense)
	if err != nil {
		return domain.Expense{}, err
	}
	return *created, nil
}

func (s *Service) UpdateExpense(ctx context.Context, id string, req domain.ExpenseCreateRequest) (domain.Expense, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Expense{}, store.ErrInvalidInput
	}
	expense, err := s.expenseFromRequest(req)
	if err != nil {
		return domain.Expense{}, err
	}
	expense.ID = id
	saved, err := s.repo.UpdateExpense(ctx, expense)
	if err != nil {
		return domain.Expense{}, err
	}
	return *saved, nil
}

func (s *Service) DeleteExpense(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return store.ErrInvalidInput
	}
	return s.repo.DeleteExpense(ctx, id)
}

func (s *Service) expenseFromRequest(req domain.ExpenseCreateRequest) (domain.Expense, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Category = strings.TrimSpace(req.Category)
	req.Date = strings.TrimSpace(req.Date)
	if err := s.validate.Struct(req); err != nil {
		return domain.Expense{}, fmt.Errorf("%w: %v", store.ErrInvalidInput, err)
	}
	if !req.Amount.IsPositive() {
		return domain.Expense{}, fmt.Errorf("%w: amount must be positive", store.ErrInvalidInput)
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return domain.Expense{}, fmt.Errorf("%w: date must be YYYY-MM-DD", store.ErrInvalidInput)
	}
	return domain.Expense{
		Title:    req.Title,
		Category: req.Category,
		Amount:   req.Amount,
		Date:     req.Date,
	}, nil
}

func (s *Service) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.ListCustomers(ctx)
}

func (s *Service) CreateCustomer(ctx context.Context, req domain.CustomerCreateRequest) (domain.Customer, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := s.validate.Struct(req); err != nil {
		return domain.Customer{}, fmt.Errorf("%w: %v", store.ErrInvalidInput, err)
	}
	if req.DueAmount.IsNegative() {
		return domain.Customer{}, fmt.Errorf("%w: due amount must not be negative", store.ErrInvalidInput)
	}

	created, err := s.repo.AddCustomer(ctx, domain.Customer{
		Name:      req.Name,
		Phone:     req.Phone,
		DueAmount: req.DueAmount,
	})
	if err != nil {
		return domain.Customer{}, err
	}
	return *created, nil
}

func (s *Service) UpdateCustomer(ctx context.Context, id string, req domain.CustomerCreateRequest) (domain.Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Customer{}, store.ErrInvalidInput
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := s.validate.Struct(req); err != nil {
		return domain.Customer{}, fmt.Errorf("%w: %v", store.ErrInvalidInput, err)
	}

	existing, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		return domain.Customer{}, err
	}

	updated := *existing
	updated.Name = req.Name
	updated.Phone = req.Phone
	updated.DueAmount = req.DueAmount

	saved, err := s.repo.UpdateCustomer(ctx, updated)
	if err != nil {
		return domain.Customer{}, err
	}
	return *saved, nil
}

func (s *Service) DeleteCustomer(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return store.ErrInvalidInput
	}
	return s.repo.DeleteCustomer(ctx, id)
}

// RecordPayment applies a payment against the customer's outstanding balance.
// Paying more than is owed is accepted and leaves the balance negative, which
// reads as shop credit.
func (s *Service) RecordPayment(ctx context.Context, customerID string, req domain.PaymentRequest) (domain.Customer, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return domain.Customer{}, store.ErrInvalidInput
	}
	req.Date = strings.TrimSpace(req.Date)
	if err := s.validate.Struct(req); err != nil {
		return domain.Customer{}, fmt.Errorf("%w: %v", store.ErrInvalidInput, err)
	}
	if !req.Amount.IsPositive() {
		return domain.Customer{}, fmt.Errorf("%w: amount must be positive", store.ErrInvalidInput)
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return domain.Customer{}, fmt.Errorf("%w: date must be YYYY-MM-DD", store.ErrInvalidInput)
	}

	updated, err := s.repo.AddPayment(ctx, customerID, req.Amount, req.Date)
	if err != nil {
		return domain.Customer{}, err
	}
	return *updated, nil
}

// ResolveScan looks a scanned or hand-typed code up as a product id. A miss
// is a regular outcome, not an error.
func (s *Service) ResolveScan(ctx context.Context, code string) (domain.ScanResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.ScanResult{}, store.ErrInvalidInput
	}

	product, err := s.repo.GetProduct(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.ScanResult{Found: false}, nil
		}
		return domain.ScanResult{}, err
	}
	return domain.ScanResult{Found: true, Product: product}, nil
}

// resolveRange turns either a named preset or an explicit start/end pair into
// an inclusive date range.
func (s *Service) resolveRange(preset, start, end string) (string, string, error) {
	if preset != "" {
		rangeStart, rangeEnd, ok := report.PresetRange(preset, s.now())
		if !ok {
			return "", "", fmt.Errorf("%w: unknown preset %q", store.ErrInvalidInput, preset)
		}
		return rangeStart, rangeEnd, nil
	}
	if _, err := time.Parse(dateLayout, start); err != nil {
		return "", "", fmt.Errorf("%w: start must be YYYY-MM-DD", store.ErrInvalidInput)
	}
	if _, err := time.Parse(dateLayout, end); err != nil {
		return "", "", fmt.Errorf("%w: end must be YYYY-MM-DD", store.ErrInvalidInput)
	}
	return start, end, nil
}

func (s *Service) rangeData(ctx context.Context, preset, start, end string) ([]domain.Sale, []domain.Expense, string, string, error) {
	rangeStart, rangeEnd, err := s.resolveRange(preset, start, end)
	if err != nil {
		return nil, nil, "", "", err
	}
	sales, err := s.repo.ListSales(ctx)
	if err != nil {
		return nil, nil, "", "", err
	}
	expenses, err := s.repo.ListExpenses(ctx)
	if err != nil {
		return nil, nil, "", "", err
	}
	return report.FilterSales(sales, rangeStart, rangeEnd), report.FilterExpenses(expenses, rangeStart, rangeEnd), rangeStart, rangeEnd, nil
}

func (s *Service) ReportSummary(ctx context.Context, preset, start, end string) (domain.Summary, error) {
	sales, expenses, rangeStart, rangeEnd, err := s.rangeData(ctx, preset, start, end)
	if err != nil {
		return domain.Summary{}, err
	}
	return report.Summarize(sales, expenses, rangeStart, rangeEnd), nil
}

func (s *Service) ReportCategories(ctx context.Context, preset, start, end string) ([]domain.CategorySales, error) {
	sales, _, _, _, err := s.rangeData(ctx, preset, start, end)
	if err != nil {
		return nil, err
	}
	return report.CategoryBreakdown(sales), nil
}

func (s *Service) ReportDaily(ctx context.Context, preset, start, end string) ([]domain.DailyPoint, error) {
	sales, expenses, _, _, err := s.rangeData(ctx, preset, start, end)
	if err != nil {
		return nil, err
	}
	return report.DailySeries(sales, expenses), nil
}

func (s *Service) ReportMonthly(ctx context.Context, year int) ([]domain.MonthlyPoint, error) {
	if year < 1 {
		year = s.now().Year()
	}
	sales, err := s.repo.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	return report.MonthlySeries(sales, year), nil
}

// ExportReport renders the combined sales and expense rows for the range as
// CSV and returns the suggested download file name alongside the payload.
func (s *Service) ExportReport(ctx context.Context, preset, start, end string) (csv string, fileName string, err error) {
	sales, expenses, rangeStart, rangeEnd, err := s.rangeData(ctx, preset, start, end)
	if err != nil {
		return "", "", err
	}
	payload, err := report.ExportCSV(sales, expenses)
	if err != nil {
		return "", "", err
	}
	return payload, report.ExportFileName(rangeStart, rangeEnd), nil
}

func (s *Service) Dashboard(ctx context.Context) (domain.DashboardMetrics, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return domain.DashboardMetrics{}, err
	}
	sales, err := s.repo.ListSales(ctx)
	if err != nil {
		return domain.DashboardMetrics{}, err
	}
	expenses, err := s.repo.ListExpenses(ctx)
	if err != nil {
		return domain.DashboardMetrics{}, err
	}
	return report.Dashboard(products, sales, expenses, s.now()), nil
}
