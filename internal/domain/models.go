package domain

import "github.com/shopspring/decimal"

// Payment methods accepted at checkout. Due records the sale against the
// customer's outstanding balance instead of collecting payment.
const (
	PaymentCash = "Cash"
	PaymentCard = "Card"
	PaymentDue  = "Due"
)

type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	Quantity      int             `json:"quantity"`
	DateAdded     string          `json:"dateAdded"`
}

// CartItem is a snapshot of a Product at the moment it was added to a sale,
// plus the quantity sold. Later product edits never alter historical sales.
type CartItem struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	Quantity      int             `json:"quantity"`
	DateAdded     string          `json:"dateAdded"`
	CartQuantity  int             `json:"cartQuantity"`
	Cost          decimal.Decimal `json:"cost"`
}

type Sale struct {
	ID            string          `json:"id"`
	Items         []CartItem      `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Discount      decimal.Decimal `json:"discount"`
	FinalAmount   decimal.Decimal `json:"finalAmount"`
	PaymentMethod string          `json:"paymentMethod"`
	CustomerID    string          `json:"customerId,omitempty"`
	CustomerName  string          `json:"customerName,omitempty"`
	Date          string          `json:"date"`
}

type Expense struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date"`
}

type Payment struct {
	ID     string          `json:"id"`
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

type Customer struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	DueAmount decimal.Decimal `json:"dueAmount"`
	Payments  []Payment       `json:"payments,omitempty"`
}

type ProductCreateRequest struct {
	Name          string          `json:"name" validate:"required"`
	Category      string          `json:"category" validate:"required"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	Quantity      int             `json:"quantity" validate:"gte=0"`
}

type CheckoutItem struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type CheckoutRequest struct {
	Items         []CheckoutItem  `json:"items" validate:"required,min=1,dive"`
	Discount      decimal.Decimal `json:"discount"`
	PaymentMethod string          `json:"paymentMethod" validate:"required,oneof=Cash Card Due"`
	CustomerID    string          `json:"customerId,omitempty"`
}

type ExpenseCreateRequest struct {
	Title    string          `json:"title" validate:"required"`
	Category string          `json:"category" validate:"required"`
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date" validate:"required"`
}

type CustomerCreateRequest struct {
	Name      string          `json:"name" validate:"required"`
	Phone     string          `json:"phone"`
	DueAmount decimal.Decimal `json:"dueAmount"`
}

type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date" validate:"required"`
}

type ScanRequest struct {
	Code string `json:"code" validate:"required"`
}

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   string `json:"expires_at"`
}

// ScanResult reports whether a scanned or typed code resolved to a product.
type ScanResult struct {
	Found   bool     `json:"found"`
	Product *Product `json:"product,omitempty"`
}

type Summary struct {
	StartDate         string          `json:"startDate"`
	EndDate           string          `json:"endDate"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalCOGS         decimal.Decimal `json:"totalCogs"`
	TotalExpenses     decimal.Decimal `json:"totalExpenses"`
	GrossProfit       decimal.Decimal `json:"grossProfit"`
	GrossProfitMargin decimal.Decimal `json:"grossProfitMargin"`
	NetProfit         decimal.Decimal `json:"netProfit"`
}

type CategorySales struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

type DailyPoint struct {
	Date     string          `json:"date"`
	Sales    decimal.Decimal `json:"sales"`
	Expenses decimal.Decimal `json:"expenses"`
}

type MonthlyPoint struct {
	Month      string          `json:"month"`
	TotalSales decimal.Decimal `json:"totalSales"`
}

type DashboardMetrics struct {
	TodaySales      decimal.Decimal `json:"todaySales"`
	TodayExpenses   decimal.Decimal `json:"todayExpenses"`
	TotalStockValue decimal.Decimal `json:"totalStockValue"`
	TotalProfit     decimal.Decimal `json:"totalProfit"`
	Last7Days       []DailyPoint    `json:"last7Days"`
}
