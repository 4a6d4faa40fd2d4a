package cache

// Fixed cache keys owned by the dashboard and list read paths.
const (
	KeyStats      = "admin-stats"
	KeyPieCharts  = "admin-pie-charts"
	KeyBarCharts  = "admin-bar-charts"
	KeyLineCharts = "admin-line-charts"

	KeyLatestProducts = "latest-products"
	KeyCategories     = "categories"
	KeyAllProducts    = "all-products"

	KeyAllOrders = "all-orders"
)

// ProductKey is the per-product cache key.
func ProductKey(id string) string { return "product-" + id }

// OrderKey is the per-order cache key.
func OrderKey(id string) string { return "order-" + id }

// UserOrdersKey is the per-user order-list cache key.
func UserOrdersKey(userID string) string { return "my-orders-" + userID }

// Invalidation describes a committed domain mutation. The three flags are
// independent; scoping identifiers narrow the per-entity keys purged.
type Invalidation struct {
	Product bool
	Order   bool
	Admin   bool

	UserID     string
	OrderID    string
	ProductIDs []string
}

// Coordinator maps domain mutations to cache-key deletions.
type Coordinator struct {
	store *Store
}

// NewCoordinator creates a coordinator purging from the given store.
func NewCoordinator(store *Store) *Coordinator {
	return &Coordinator{store: store}
}

// Invalidate purges every cache key derived from the mutation. Each flag is
// applied independently; there is no transactionality across the deletions,
// which is acceptable under the invalidate-then-recompute consistency model.
func (c *Coordinator) Invalidate(iv Invalidation) {
	if iv.Product {
		keys := []string{KeyLatestProducts, KeyCategories, KeyAllProducts}
		for _, id := range iv.ProductIDs {
			keys = append(keys, ProductKey(id))
		}
		c.store.Delete(keys...)
	}

	if iv.Order {
		c.store.Delete(KeyAllOrders, UserOrdersKey(iv.UserID), OrderKey(iv.OrderID))
	}

	if iv.Admin {
		c.store.Delete(KeyStats, KeyPieCharts, KeyBarCharts, KeyLineCharts)
	}
}
