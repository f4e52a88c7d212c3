// Package blob implements the repository over a key-value persistence port.
// Each collection lives in memory and is re-serialized as a JSON array to its
// key after every mutation: products, sales, expenses, customers.
package blob

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"labibshop/backend/internal/domain"
	"labibshop/backend/internal/kv"
	"labibshop/backend/internal/seqid"
	"labibshop/backend/internal/store"
)

type Store struct {
	mu  sync.RWMutex
	kv  kv.Store
	now func() time.Time

	products  []domain.Product
	sales     []domain.Sale
	expenses  []domain.Expense
	customers []domain.Customer
}

// New loads all collections from the port. A missing or unparsable blob
// initializes its collection to empty; load never fails the caller.
func New(ctx context.Context, port kv.Store) *Store {
	s := &Store{kv: port, now: time.Now}
	s.products = loadCollection[domain.Product](ctx, port, kv.KeyProducts)
	s.sales = loadCollection[domain.Sale](ctx, port, kv.KeySales)
	s.expenses = loadCollection[domain.Expense](ctx, port, kv.KeyExpenses)
	s.customers = loadCollection[domain.Customer](ctx, port, kv.KeyCustomers)
	return s
}

// WithClock overrides the wall clock, for tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func loadCollection[T any](ctx context.Context, port kv.Store, key string) []T {
	raw, ok, err := port.Get(ctx, key)
	if err != nil {
		log.Printf("[blob-store] WARN: loading %s: %v, starting empty", key, err)
		return []T{}
	}
	if !ok {
		return []T{}
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("[blob-store] WARN: stored %s is not a valid collection, starting empty", key)
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// persist serializes a collection to its key. Write failures are logged, not
// propagated: the in-memory state stays authoritative for the session.
func (s *Store) persist(ctx context.Context, key string, collection any) {
	payload, err := json.Marshal(collection)
	if err != nil {
		log.Printf("[blob-store] WARN: marshal %s: %v", key, err)
		return
	}
	if err := s.kv.Set(ctx, key, string(payload)); err != nil {
		log.Printf("[blob-store] WARN: persist %s: %v", key, err)
	}
}

func (s *Store) today() string {
	return s.now().Format("2006-01-02")
}

func (s *Store) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *Store) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) AddProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.products))
	for _, p := range s.products {
		ids = append(ids, p.ID)
	}
	product.ID = seqid.Next("P", ids)
	product.DateAdded = s.today()

	s.products = append(s.products, product)
	s.persist(ctx, kv.KeyProducts, s.products)
	created := product
	return &created, nil
}

func (s *Store) UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID == product.ID {
			s.products[i] = product
			s.persist(ctx, kv.KeyProducts, s.products)
			updated := product
			return &updated, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			s.persist(ctx, kv.KeyProducts, s.products)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) ListSales(_ context.Context) ([]domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Sale, len(s.sales))
	copy(out, s.sales)
	return out, nil
}

// CompleteSale performs the one cross-entity write in the system. The sale
// gets the next S id and today's date, each snapshotted item decrements its
// product's stock (ids that no longer exist are skipped), and a Due sale
// moves finalAmount onto the customer's balance. Stock is not re-validated
// here; the cart enforced quantity limits when items were added.
func (s *Store) CompleteSale(ctx context.Context, sale domain.Sale) (*domain.Sale, error) {
	if len(sale.Items) == 0 {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.sales))
	for _, existing := range s.sales {
		ids = append(ids, existing.ID)
	}
	sale.ID = seqid.Next("S", ids)
	sale.Date = s.today()

	s.sales = append(s.sales, sale)

	for _, item := range sale.Items {
		for i := range s.products {
			if s.products[i].ID == item.ID {
				s.products[i].Quantity -= item.CartQuantity
				break
			}
		}
	}

	customersTouched := false
	if sale.PaymentMethod == domain.PaymentDue && sale.CustomerID != "" {
		for i := range s.customers {
			if s.customers[i].ID == sale.CustomerID {
				s.customers[i].DueAmount = s.customers[i].DueAmount.Add(sale.FinalAmount)
				customersTouched = true
				break
			}
		}
	}

	s.persist(ctx, kv.KeySales, s.sales)
	s.persist(ctx, kv.KeyProducts, s.products)
	if customersTouched {
		s.persist(ctx, kv.KeyCustomers, s.customers)
	}

	created := sale
	return &created, nil
}

func (s *Store) ListExpenses(_ context.Context) ([]domain.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out, nil
}

func (s *Store) AddExpense(ctx context.Context, expense domain.Expense) (*domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.expenses))
	for _, e := range s.expenses {
		ids = append(ids, e.ID)
	}
	expense.ID = seqid.Next("E", ids)

	s.expenses = append(s.expenses, expense)
	s.persist(ctx, kv.KeyExpenses, s.expenses)
	created := expense
	return &created, nil
}

func (s *Store) UpdateExpense(ctx context.Context, expense domain.Expense) (*domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.expenses {
		if e.ID == expense.ID {
			s.expenses[i] = expense
			s.persist(ctx, kv.KeyExpenses, s.expenses)
			updated := expense
			return &updated, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.expenses {
		if e.ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			s.persist(ctx, kv.KeyExpenses, s.expenses)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) ListCustomers(_ context.Context) ([]domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Customer, len(s.customers))
	copy(out, s.customers)
	return out, nil
}

func (s *Store) GetCustomer(_ context.Context, id string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) AddCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.customers))
	for _, c := range s.customers {
		ids = append(ids, c.ID)
	}
	customer.ID = seqid.Next("C", ids)

	s.customers = append(s.customers, customer)
	s.persist(ctx, kv.KeyCustomers, s.customers)
	created := customer
	return &created, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.customers {
		if c.ID == customer.ID {
			s.customers[i] = customer
			s.persist(ctx, kv.KeyCustomers, s.customers)
			updated := customer
			return &updated, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.customers {
		if c.ID == id {
			s.customers = append(s.customers[:i], s.customers[i+1:]...)
			s.persist(ctx, kv.KeyCustomers, s.customers)
			return nil
		}
	}
	return store.ErrNotFound
}

// AddPayment prepends the payment to the customer's ledger (newest first) and
// subtracts the amount from the balance. Overpayment is not blocked; the
// balance may go negative.
func (s *Store) AddPayment(ctx context.Context, customerID string, amount decimal.Decimal, date string) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.customers {
		if s.customers[i].ID != customerID {
			continue
		}
		payment := domain.Payment{
			ID:     seqid.Payment(s.now()),
			Date:   date,
			Amount: amount,
		}
		s.customers[i].DueAmount = s.customers[i].DueAmount.Sub(amount)
		s.customers[i].Payments = append([]domain.Payment{payment}, s.customers[i].Payments...)
		s.persist(ctx, kv.KeyCustomers, s.customers)
		updated := s.customers[i]
		return &updated, nil
	}
	return nil, store.ErrNotFound
}
