package store

import (
	"context"
	"errors"
	"time"

	"github.com/shopcore-dev/shopcore/internal/catalog"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// OrderStore is the order collection surface consumed by services.
// Time-range queries are inclusive on both bounds.
type OrderStore interface {
	// SaveOrder inserts the order, or overwrites it when the id exists.
	SaveOrder(ctx context.Context, order *catalog.Order) error
	DeleteOrder(ctx context.Context, id string) error
	OrderByID(ctx context.Context, id string) (*catalog.Order, error)
	OrdersByUser(ctx context.Context, userID string) ([]catalog.Order, error)

	// AllOrders returns every order in insertion order.
	AllOrders(ctx context.Context) ([]catalog.Order, error)
	OrdersBetween(ctx context.Context, from, to time.Time) ([]catalog.Order, error)

	// LatestOrders returns up to limit orders in insertion order. Despite the
	// name there is no recency guarantee; callers must not assume one.
	LatestOrders(ctx context.Context, limit int) ([]catalog.Order, error)
	CountOrdersByStatus(ctx context.Context, status catalog.OrderStatus) (int64, error)
}

// ProductStore is the product collection surface consumed by services.
type ProductStore interface {
	SaveProduct(ctx context.Context, product *catalog.Product) error
	DeleteProduct(ctx context.Context, id string) error
	ProductByID(ctx context.Context, id string) (*catalog.Product, error)

	AllProducts(ctx context.Context) ([]catalog.Product, error)
	// LatestProducts returns all products, newest first.
	LatestProducts(ctx context.Context) ([]catalog.Product, error)
	ProductsBetween(ctx context.Context, from, to time.Time) ([]catalog.Product, error)

	CountProducts(ctx context.Context) (int64, error)
	CountProductsInCategory(ctx context.Context, category string) (int64, error)
	CountOutOfStock(ctx context.Context) (int64, error)
	DistinctCategories(ctx context.Context) ([]string, error)
}

// UserStore is the user collection surface consumed by the dashboard.
type UserStore interface {
	SaveUser(ctx context.Context, user *catalog.User) error
	AllUsers(ctx context.Context) ([]catalog.User, error)
	UsersBetween(ctx context.Context, from, to time.Time) ([]catalog.User, error)
	CountUsers(ctx context.Context) (int64, error)
	CountUsersByGender(ctx context.Context, gender catalog.Gender) (int64, error)
	CountUsersByRole(ctx context.Context, role catalog.Role) (int64, error)
}

// SettingsStore persists admin configuration.
type SettingsStore interface {
	// OrderAccepting reports whether new orders are accepted.
	// Returns ErrNotFound when the flag was never set.
	OrderAccepting(ctx context.Context) (bool, error)
	SetOrderAccepting(ctx context.Context, accepting bool) error
}

// RecordStore is the full persistent surface behind the analytics engine.
type RecordStore interface {
	OrderStore
	ProductStore
	UserStore
	SettingsStore
}
