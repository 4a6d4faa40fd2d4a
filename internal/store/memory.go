package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopcore-dev/shopcore/internal/catalog"
)

// Memory is an in-memory RecordStore. Useful for testing and development.
// Every call is tallied by method name so tests can assert that a cache hit
// never reaches the record store.
type Memory struct {
	mu sync.RWMutex

	orders     []catalog.Order // insertion order
	products   map[string]catalog.Product
	productSeq []string // insertion order of product ids
	users      []catalog.User
	accepting  *bool

	callMu      sync.Mutex
	callsByName map[string]int
}

// NewMemory creates an empty in-memory record store.
func NewMemory() *Memory {
	return &Memory{
		products:    make(map[string]catalog.Product),
		callsByName: make(map[string]int),
	}
}

// Calls returns how many times the named store method has been invoked.
func (m *Memory) Calls(method string) int {
	m.callMu.Lock()
	defer m.callMu.Unlock()
	return m.callsByName[method]
}

// TotalCalls returns the total number of store method invocations.
func (m *Memory) TotalCalls() int {
	m.callMu.Lock()
	defer m.callMu.Unlock()

	total := 0
	for _, n := range m.callsByName {
		total += n
	}
	return total
}

func (m *Memory) record(method string) {
	m.callMu.Lock()
	defer m.callMu.Unlock()
	m.callsByName[method]++
}

func (m *Memory) SaveOrder(_ context.Context, order *catalog.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("SaveOrder")

	for i := range m.orders {
		if m.orders[i].ID == order.ID {
			m.orders[i] = *order
			return nil
		}
	}
	m.orders = append(m.orders, *order)
	return nil
}

func (m *Memory) DeleteOrder(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("DeleteOrder")

	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) OrderByID(_ context.Context, id string) (*catalog.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.record("OrderByID")

	for _, o := range m.orders {
		if o.ID == id {
			out := o
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) OrdersByUser(_ context.Context, userID string) ([]catalog.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.record("OrdersByUser")

	var out []catalog.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *Memory) AllOrders(_ context.Context) ([]catalog.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.record("AllOrders")

	return append([]catalog.Order(nil), m.orders...), nil
}

func (m *Memory) OrdersBetween(_ context.Context, from, to time.Time) ([]catalog.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.record("OrdersBetween")

	var out []catalog.Order
	for _, o := range m.orders {
		if within(o.CreatedAt, from, to) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *Memory) LatestOrders(_ context.Context, limit int) ([]catalog.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.record("LatestOrders")

	if limit > len(m.orders) {
		limit = len(m.orders)
	}
	return append([]catalog.Order(nil), m.orders[:limit]...), nil
}

func (m *Memory) CountOrdersByStatus(_ context.Context, status catalog.OrderStatus) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.record("CountOrdersByStatus")

	var n int64
	for _, o := range m.orders {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *Memory) SaveProduct(_ context.Context, product *catalog.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("SaveProduct")

	if _, ok := m.products[product.ID]; !ok {
		m.productSeq = append(m.productSeq, product.ID)
	}
	m.products[product.ID] = *product
	return nil
}

func (m *Memory) DeleteProduct(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("DeleteProduct")

	if _, ok := m.products[id]; !ok {
		return ErrNotFound
	}
	delete(m.products, id)
	for i, pid := range m.productSeq {
		if pid == id {
			m.productSeq = append(m.productSeq[:i], m.productSeq[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) ProductByID(_ context.Context, id string) (*catalog.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.record("ProductByID")

	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *Memory) AllProducts(_ context.Context) ([]catalog.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.record("AllProducts")

	return m.productsInSeq(), nil
}

func (m *Memory) LatestProducts(_ context.Context) ([]catalog.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.record("LatestProducts")

	out := m.productsInSeq()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *Memory) ProductsBetween(_ context.Context, from, to time.Time) ([]catalog.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.record("ProductsBetween")

	var out []catalog.Product
	for _, p := range m.productsInSeq() {
		if within(p.CreatedAt, from, to) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *Memory) CountProducts(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.record("CountProducts")

	return int64(len(m.products)), nil
}

func (m *Memory) CountProductsInCategory(_ context.Context, category string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.record("CountProductsInCategory")

	var n int64
	for _, p := range m.products {
		if p.Category == category {
			n++
		}
	}
	return n, nil
}

func (m *Memory) CountOutOfStock(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.record("CountOutOfStock")

	var n int64
	for _, p := range m.products {
		if p.Stock == 0 {
			n++
		}
	}
	return n, nil
}

func (m *Memory) DistinctCategories(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.record("DistinctCategories")

	seen := make(map[string]bool)
	var out []string
	for _, id := range m.productSeq {
		category := m.products[id].Category
		if !seen[category] {
			seen[category] = true
			out = append(out, category)
		}
	}
	return out, nil
}

func (m *Memory) SaveUser(_ context.Context, user *catalog.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("SaveUser")

	for i := range m.users {
		if m.users[i].ID == user.ID {
			m.users[i] = *user
			return nil
		}
	}
	m.users = append(m.users, *user)
	return nil
}

func (m *Memory) AllUsers(_ context.Context) ([]catalog.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.record("AllUsers")

	return append([]catalog.User(nil), m.users...), nil
}

func (m *Memory) UsersBetween(_ context.Context, from, to time.Time) ([]catalog.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.record("UsersBetween")

	var out []catalog.User
	for _, u := range m.users {
		if within(u.CreatedAt, from, to) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *Memory) CountUsers(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.record("CountUsers")

	return int64(len(m.users)), nil
}

func (m *Memory) CountUsersByGender(_ context.Context, gender catalog.Gender) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.record("CountUsersByGender")

	var n int64
	for _, u := range m.users {
		if u.Gender == gender {
			n++
		}
	}
	return n, nil
}

func (m *Memory) CountUsersByRole(_ context.Context, role catalog.Role) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.record("CountUsersByRole")

	var n int64
	for _, u := range m.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (m *Memory) OrderAccepting(_ context.Context) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.record("OrderAccepting")

	if m.accepting == nil {
		return false, ErrNotFound
	}
	return *m.accepting, nil
}

func (m *Memory) SetOrderAccepting(_ context.Context, accepting bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("SetOrderAccepting")

	m.accepting = &accepting
	return nil
}

func (m *Memory) productsInSeq() []catalog.Product {
	out := make([]catalog.Product, 0, len(m.productSeq))
	for _, id := range m.productSeq {
		out = append(out, m.products[id])
	}
	return out
}

func within(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}
