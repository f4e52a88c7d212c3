package store

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"labibshop/backend/internal/domain"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Repository owns the four entity collections. Mutations assign ids, apply
// derived fields and persist the updated collection before returning.
type Repository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	AddProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListSales(ctx context.Context) ([]domain.Sale, error)
	// CompleteSale appends the sale, decrements stock for every snapshotted
	// item, and on a Due sale raises the customer's outstanding balance. The
	// three updates happen under one lock with no partial-commit rollback.
	CompleteSale(ctx context.Context, sale domain.Sale) (*domain.Sale, error)

	ListExpenses(ctx context.Context) ([]domain.Expense, error)
	AddExpense(ctx context.Context, expense domain.Expense) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, expense domain.Expense) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, id string) error

	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
	AddCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
	AddPayment(ctx context.Context, customerID string, amount decimal.Decimal, date string) (*domain.Customer, error)
}
