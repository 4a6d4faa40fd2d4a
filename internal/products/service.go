package products

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopcore-dev/shopcore/internal/cache"
	"github.com/shopcore-dev/shopcore/internal/catalog"
	"github.com/shopcore-dev/shopcore/internal/store"
	"github.com/shopspring/decimal"
)

const maxPhotos = 5

// ValidationError marks a product request missing or exceeding a constraint.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// NewProductRequest carries the fields of a product creation.
type NewProductRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Photos      []string        `json:"photos"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
}

// UpdateProductRequest carries a partial product update. Zero-value fields
// are left untouched.
type UpdateProductRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Photos      []string        `json:"photos"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
}

// Service owns the product catalog: cached read paths and the mutations
// that invalidate them.
type Service struct {
	products store.ProductStore
	cache    *cache.Store
	inval    *cache.Coordinator

	nowFn func() time.Time
	idFn  func() string
}

// NewService creates the product service.
func NewService(products store.ProductStore, cacheStore *cache.Store, inval *cache.Coordinator) *Service {
	return &Service{
		products: products,
		cache:    cacheStore,
		inval:    inval,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
		idFn: uuid.NewString,
	}
}

// Latest returns the newest products through the latest-products cache.
func (s *Service) Latest(ctx context.Context) ([]catalog.Product, error) {
	return cachedList(s, cache.KeyLatestProducts, func() ([]catalog.Product, error) {
		return s.products.LatestProducts(ctx)
	})
}

// Categories returns the distinct product categories through its cache.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return cachedList(s, cache.KeyCategories, func() ([]string, error) {
		return s.products.DistinctCategories(ctx)
	})
}

// All returns every product through the all-products cache.
func (s *Service) All(ctx context.Context) ([]catalog.Product, error) {
	return cachedList(s, cache.KeyAllProducts, func() ([]catalog.Product, error) {
		return s.products.AllProducts(ctx)
	})
}

// Get returns a single product through its per-product cache key.
func (s *Service) Get(ctx context.Context, id string) (*catalog.Product, error) {
	key := cache.ProductKey(id)
	if blob, ok := s.cache.Get(key); ok {
		var product catalog.Product
		if err := json.Unmarshal(blob, &product); err != nil {
			return nil, fmt.Errorf("decode cached %s: %w", key, err)
		}
		return &product, nil
	}

	product, err := s.products.ProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load product %s: %w", id, err)
	}

	if err := s.putCached(key, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Create validates and persists a new product. The category is stored
// lowercased so share calculations and lookups stay case-insensitive.
func (s *Service) Create(ctx context.Context, req NewProductRequest) (*catalog.Product, error) {
	if err := validateNewProduct(req); err != nil {
		return nil, err
	}

	product := &catalog.Product{
		ID:          s.idFn(),
		Name:        req.Name,
		Category:    strings.ToLower(req.Category),
		Description: req.Description,
		Photos:      req.Photos,
		Price:       req.Price,
		Stock:       req.Stock,
		CreatedAt:   s.nowFn(),
	}

	if err := s.products.SaveProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("persist product: %w", err)
	}

	s.invalidate(product.ID)
	slog.Info("Product created", "product_id", product.ID, "category", product.Category)
	return product, nil
}

// Update applies the non-zero fields of the request to an existing product.
func (s *Service) Update(ctx context.Context, id string, req UpdateProductRequest) (*catalog.Product, error) {
	product, err := s.products.ProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load product %s: %w", id, err)
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Category != "" {
		product.Category = strings.ToLower(req.Category)
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if len(req.Photos) > 0 {
		if len(req.Photos) > maxPhotos {
			return nil, &ValidationError{Field: "photos", Reason: "at most 5 photos"}
		}
		product.Photos = req.Photos
	}
	if !req.Price.IsZero() {
		product.Price = req.Price
	}
	if req.Stock != 0 {
		product.Stock = req.Stock
	}

	if err := s.products.SaveProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("save product %s: %w", id, err)
	}

	s.invalidate(id)
	slog.Info("Product updated", "product_id", id)
	return product, nil
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}

	s.invalidate(id)
	slog.Info("Product deleted", "product_id", id)
	return nil
}

func (s *Service) invalidate(id string) {
	s.inval.Invalidate(cache.Invalidation{
		Product:    true,
		Admin:      true,
		ProductIDs: []string{id},
	})
}

func (s *Service) putCached(key string, value any) error {
	blob, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	s.cache.Set(key, blob)
	return nil
}

func cachedList[T any](s *Service, key string, load func() ([]T, error)) ([]T, error) {
	if blob, ok := s.cache.Get(key); ok {
		var out []T
		if err := json.Unmarshal(blob, &out); err != nil {
			return nil, fmt.Errorf("decode cached %s: %w", key, err)
		}
		return out, nil
	}

	out, err := load()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}

	if err := s.putCached(key, out); err != nil {
		return nil, err
	}
	return out, nil
}

func validateNewProduct(req NewProductRequest) error {
	switch {
	case req.Name == "":
		return &ValidationError{Field: "name", Reason: "required"}
	case req.Category == "":
		return &ValidationError{Field: "category", Reason: "required"}
	case req.Description == "":
		return &ValidationError{Field: "description", Reason: "required"}
	case len(req.Photos) == 0:
		return &ValidationError{Field: "photos", Reason: "at least 1 photo"}
	case len(req.Photos) > maxPhotos:
		return &ValidationError{Field: "photos", Reason: "at most 5 photos"}
	case req.Price.IsZero():
		return &ValidationError{Field: "price", Reason: "required"}
	case req.Stock == 0:
		return &ValidationError{Field: "stock", Reason: "required"}
	}
	return nil
}
