package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopcore-dev/shopcore/internal/cache"
	"github.com/shopcore-dev/shopcore/internal/catalog"
	"github.com/shopcore-dev/shopcore/internal/store"
	"github.com/shopspring/decimal"
)

// ValidationError marks a new-order request missing a required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// NewOrderRequest carries the fields of a checkout. Discount and shipping
// charges are optional and default to zero.
type NewOrderRequest struct {
	ShippingInfo    catalog.ShippingInfo `json:"shippingInfo"`
	Items           []catalog.OrderItem  `json:"orderItems"`
	UserID          string               `json:"user"`
	Subtotal        decimal.Decimal      `json:"subtotal"`
	Tax             decimal.Decimal      `json:"tax"`
	ShippingCharges decimal.Decimal      `json:"shippingCharges"`
	Discount        decimal.Decimal      `json:"discount"`
	Total           decimal.Decimal      `json:"total"`
}

// Service owns the order lifecycle: placement with stock decrement, status
// advancement, deletion, and the cached order read paths. Every committed
// mutation fans out through the invalidation coordinator.
type Service struct {
	orders   store.OrderStore
	products store.ProductStore
	cache    *cache.Store
	inval    *cache.Coordinator

	nowFn func() time.Time
	idFn  func() string
}

// NewService creates the order service.
func NewService(
	orders store.OrderStore,
	products store.ProductStore,
	cacheStore *cache.Store,
	inval *cache.Coordinator,
) *Service {
	return &Service{
		orders:   orders,
		products: products,
		cache:    cacheStore,
		inval:    inval,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
		idFn: uuid.NewString,
	}
}

// PlaceOrder validates and persists a new order, then decrements stock for
// every line item. Decrements are sequential, one product load and save per
// item; a missing product aborts the remaining items without rolling back
// the ones already applied. On success the order, admin and product caches
// are invalidated, the product scope being the order's line-item products.
func (s *Service) PlaceOrder(ctx context.Context, req NewOrderRequest) (*catalog.Order, error) {
	if err := validateNewOrder(req); err != nil {
		return nil, err
	}

	order := &catalog.Order{
		ID:              s.idFn(),
		UserID:          req.UserID,
		ShippingInfo:    req.ShippingInfo,
		Items:           req.Items,
		Subtotal:        req.Subtotal,
		Tax:             req.Tax,
		ShippingCharges: req.ShippingCharges,
		Discount:        req.Discount,
		Total:           req.Total,
		Status:          catalog.StatusProcessing,
		CreatedAt:       s.nowFn(),
	}

	if err := s.orders.SaveOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	if err := s.reduceStock(ctx, order.Items); err != nil {
		return nil, err
	}

	productIDs := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		productIDs = append(productIDs, item.ProductID)
	}

	s.inval.Invalidate(cache.Invalidation{
		Product:    true,
		Order:      true,
		Admin:      true,
		UserID:     order.UserID,
		OrderID:    order.ID,
		ProductIDs: productIDs,
	})

	slog.Info("Order placed", "order_id", order.ID, "user_id", order.UserID, "items", len(order.Items))
	return order, nil
}

// AdvanceOrder moves an order to its next status. Delivered is terminal and
// advancing it is a no-op save.
func (s *Service) AdvanceOrder(ctx context.Context, id string) (*catalog.Order, error) {
	order, err := s.orders.OrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load order %s: %w", id, err)
	}

	order.Status = catalog.NextStatus(order.Status)
	if err := s.orders.SaveOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("save order %s: %w", id, err)
	}

	s.inval.Invalidate(cache.Invalidation{
		Order:   true,
		Admin:   true,
		UserID:  order.UserID,
		OrderID: order.ID,
	})

	slog.Info("Order advanced", "order_id", order.ID, "status", order.Status)
	return order, nil
}

// DeleteOrder removes an order entirely.
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	order, err := s.orders.OrderByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load order %s: %w", id, err)
	}

	if err := s.orders.DeleteOrder(ctx, id); err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}

	s.inval.Invalidate(cache.Invalidation{
		Order:   true,
		Admin:   true,
		UserID:  order.UserID,
		OrderID: order.ID,
	})

	slog.Info("Order deleted", "order_id", id)
	return nil
}

// MyOrders returns a user's orders through the per-user cache.
func (s *Service) MyOrders(ctx context.Context, userID string) ([]catalog.Order, error) {
	key := cache.UserOrdersKey(userID)
	if blob, ok := s.cache.Get(key); ok {
		var orders []catalog.Order
		if err := json.Unmarshal(blob, &orders); err != nil {
			return nil, fmt.Errorf("decode cached %s: %w", key, err)
		}
		return orders, nil
	}

	orders, err := s.orders.OrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load orders for user %s: %w", userID, err)
	}

	if err := s.putCached(key, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// AllOrders returns every order, most recent insertion first. The cache
// holds insertion order; reversal happens on serve.
func (s *Service) AllOrders(ctx context.Context) ([]catalog.Order, error) {
	var orders []catalog.Order

	if blob, ok := s.cache.Get(cache.KeyAllOrders); ok {
		if err := json.Unmarshal(blob, &orders); err != nil {
			return nil, fmt.Errorf("decode cached %s: %w", cache.KeyAllOrders, err)
		}
	} else {
		var err error
		orders, err = s.orders.AllOrders(ctx)
		if err != nil {
			return nil, fmt.Errorf("load all orders: %w", err)
		}
		if err := s.putCached(cache.KeyAllOrders, orders); err != nil {
			return nil, err
		}
	}

	reversed := make([]catalog.Order, len(orders))
	for i, o := range orders {
		reversed[len(orders)-1-i] = o
	}
	return reversed, nil
}

// GetOrder returns one order through the per-order cache.
func (s *Service) GetOrder(ctx context.Context, id string) (*catalog.Order, error) {
	key := cache.OrderKey(id)
	if blob, ok := s.cache.Get(key); ok {
		var order catalog.Order
		if err := json.Unmarshal(blob, &order); err != nil {
			return nil, fmt.Errorf("decode cached %s: %w", key, err)
		}
		return &order, nil
	}

	order, err := s.orders.OrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load order %s: %w", id, err)
	}

	if err := s.putCached(key, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) reduceStock(ctx context.Context, items []catalog.OrderItem) error {
	for _, item := range items {
		product, err := s.products.ProductByID(ctx, item.ProductID)
		if err != nil {
			return fmt.Errorf("reduce stock for product %s: %w", item.ProductID, err)
		}
		product.Stock -= item.Quantity
		if err := s.products.SaveProduct(ctx, product); err != nil {
			return fmt.Errorf("save product %s: %w", item.ProductID, err)
		}
	}
	return nil
}

func (s *Service) putCached(key string, value any) error {
	blob, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	s.cache.Set(key, blob)
	return nil
}

func validateNewOrder(req NewOrderRequest) error {
	switch {
	case req.ShippingInfo.Address == "" || req.ShippingInfo.City == "" ||
		req.ShippingInfo.State == "" || req.ShippingInfo.Country == "" ||
		req.ShippingInfo.PinCode == "":
		return &ValidationError{Field: "shippingInfo"}
	case len(req.Items) == 0:
		return &ValidationError{Field: "orderItems"}
	case req.UserID == "":
		return &ValidationError{Field: "user"}
	case req.Subtotal.IsZero():
		return &ValidationError{Field: "subtotal"}
	case req.Tax.IsZero():
		return &ValidationError{Field: "tax"}
	case req.Total.IsZero():
		return &ValidationError{Field: "total"}
	}
	return nil
}
