package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopcore-dev/shopcore/internal/cache"
	"github.com/shopcore-dev/shopcore/internal/catalog"
	"github.com/shopcore-dev/shopcore/internal/core/metrics"
	"github.com/shopcore-dev/shopcore/internal/core/timeseries"
	"github.com/shopcore-dev/shopcore/internal/store"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const defaultLatestTransactions = 4

// istZone anchors the daily comparison window: the store's reporting day
// rolls over at 15:00 IST (UTC+5:30).
var istZone = time.FixedZone("IST", 5*3600+30*60)

// Service builds the four dashboard views with a cache-aside read path.
// A cache hit is served without touching the record store; a miss runs the
// record-store queries concurrently, computes the view, caches the serialized
// result and returns it. Two concurrent misses for the same key may both
// rebuild and both write; the overwrite is idempotent and not serialized.
type Service struct {
	orders   store.OrderStore
	products store.ProductStore
	users    store.UserStore
	cache    *cache.Store

	latestTxLimit int
	nowFn         func() time.Time
}

// NewService creates a dashboard service over the given stores and cache.
func NewService(
	orders store.OrderStore,
	products store.ProductStore,
	users store.UserStore,
	cacheStore *cache.Store,
	latestTransactions int,
) *Service {
	if latestTransactions <= 0 {
		latestTransactions = defaultLatestTransactions
	}
	return &Service{
		orders:        orders,
		products:      products,
		users:         users,
		cache:         cacheStore,
		latestTxLimit: latestTransactions,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Stats returns the summary dashboard view.
func (s *Service) Stats(ctx context.Context) (*StatsView, error) {
	if view, ok, err := cachedView[StatsView](s.cache, cache.KeyStats); err != nil {
		return nil, err
	} else if ok {
		return view, nil
	}

	view, err := s.buildStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("build dashboard stats: %w", err)
	}
	if err := putView(s.cache, cache.KeyStats, view); err != nil {
		return nil, err
	}
	return view, nil
}

// Pie returns the breakdown dashboard view.
func (s *Service) Pie(ctx context.Context) (*PieView, error) {
	if view, ok, err := cachedView[PieView](s.cache, cache.KeyPieCharts); err != nil {
		return nil, err
	} else if ok {
		return view, nil
	}

	view, err := s.buildPie(ctx)
	if err != nil {
		return nil, fmt.Errorf("build pie charts: %w", err)
	}
	if err := putView(s.cache, cache.KeyPieCharts, view); err != nil {
		return nil, err
	}
	return view, nil
}

// Bar returns the bar-chart dashboard view.
func (s *Service) Bar(ctx context.Context) (*BarView, error) {
	if view, ok, err := cachedView[BarView](s.cache, cache.KeyBarCharts); err != nil {
		return nil, err
	} else if ok {
		return view, nil
	}

	view, err := s.buildBar(ctx)
	if err != nil {
		return nil, fmt.Errorf("build bar charts: %w", err)
	}
	if err := putView(s.cache, cache.KeyBarCharts, view); err != nil {
		return nil, err
	}
	return view, nil
}

// Line returns the line-chart dashboard view.
func (s *Service) Line(ctx context.Context) (*LineView, error) {
	if view, ok, err := cachedView[LineView](s.cache, cache.KeyLineCharts); err != nil {
		return nil, err
	} else if ok {
		return view, nil
	}

	view, err := s.buildLine(ctx)
	if err != nil {
		return nil, fmt.Errorf("build line charts: %w", err)
	}
	if err := putView(s.cache, cache.KeyLineCharts, view); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *Service) buildStats(ctx context.Context) (*StatsView, error) {
	now := s.nowFn()

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevMonthStart := monthStart.AddDate(0, -1, 0)
	prevMonthEnd := monthStart.Add(-time.Nanosecond)
	sixMonthsAgo := now.AddDate(0, -6, 0)

	dayStart := dailyWindowStart(now)
	prevDayStart := dayStart.Add(-24 * time.Hour)

	var (
		monthOrders, prevMonthOrders     []catalog.Order
		monthProducts, prevMonthProducts []catalog.Product
		monthUsers, prevMonthUsers       []catalog.User
		allOrders, sixMonthOrders        []catalog.Order
		dayOrders, prevDayOrders         []catalog.Order
		latestTx                         []catalog.Order
		productsCount, usersCount        int64
		femaleCount                      int64
		categories                       []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		monthOrders, err = s.orders.OrdersBetween(gctx, monthStart, now)
		return err
	})
	g.Go(func() (err error) {
		prevMonthOrders, err = s.orders.OrdersBetween(gctx, prevMonthStart, prevMonthEnd)
		return err
	})
	g.Go(func() (err error) {
		monthProducts, err = s.products.ProductsBetween(gctx, monthStart, now)
		return err
	})
	g.Go(func() (err error) {
		prevMonthProducts, err = s.products.ProductsBetween(gctx, prevMonthStart, prevMonthEnd)
		return err
	})
	g.Go(func() (err error) {
		monthUsers, err = s.users.UsersBetween(gctx, monthStart, now)
		return err
	})
	g.Go(func() (err error) {
		prevMonthUsers, err = s.users.UsersBetween(gctx, prevMonthStart, prevMonthEnd)
		return err
	})
	g.Go(func() (err error) {
		allOrders, err = s.orders.AllOrders(gctx)
		return err
	})
	g.Go(func() (err error) {
		sixMonthOrders, err = s.orders.OrdersBetween(gctx, sixMonthsAgo, now)
		return err
	})
	g.Go(func() (err error) {
		dayOrders, err = s.orders.OrdersBetween(gctx, dayStart, now)
		return err
	})
	g.Go(func() (err error) {
		prevDayOrders, err = s.orders.OrdersBetween(gctx, prevDayStart, dayStart)
		return err
	})
	g.Go(func() (err error) {
		latestTx, err = s.orders.LatestOrders(gctx, s.latestTxLimit)
		return err
	})
	g.Go(func() (err error) {
		productsCount, err = s.products.CountProducts(gctx)
		return err
	})
	g.Go(func() (err error) {
		usersCount, err = s.users.CountUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		femaleCount, err = s.users.CountUsersByGender(gctx, catalog.GenderFemale)
		return err
	})
	g.Go(func() (err error) {
		categories, err = s.products.DistinctCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	monthRevenue := sumTotals(monthOrders)
	prevMonthRevenue := sumTotals(prevMonthOrders)
	dayRevenue := sumTotals(dayOrders)
	prevDayRevenue := sumTotals(prevDayOrders)

	change := ChangePercent{
		Revenue:           metrics.PercentageChange(monthRevenue, prevMonthRevenue),
		Product:           metrics.PercentageChange(countOf(len(monthProducts)), countOf(len(prevMonthProducts))),
		User:              metrics.PercentageChange(countOf(len(monthUsers)), countOf(len(prevMonthUsers))),
		Order:             metrics.PercentageChange(countOf(len(monthOrders)), countOf(len(prevMonthOrders))),
		DailyTransactions: metrics.PercentageChange(countOf(len(dayOrders)), countOf(len(prevDayOrders))),
		DailyRevenue:      metrics.PercentageChange(dayRevenue, prevDayRevenue),
	}

	totals := Totals{
		Revenue:      sumTotals(allOrders),
		User:         usersCount,
		Product:      productsCount,
		Order:        int64(len(allOrders)),
		DailyOrders:  int64(len(dayOrders)),
		DailyRevenue: dayRevenue,
	}

	chart := StatsChart{
		Order: timeseries.MonthlyCounts(6, now, orderTimes(sixMonthOrders)),
		Revenue: timeseries.MonthlySums(6, now, orderPoints(sixMonthOrders, func(o catalog.Order) decimal.Decimal {
			return o.Total
		})),
	}

	categoryCount, err := s.categoryShares(ctx, categories, productsCount)
	if err != nil {
		return nil, err
	}

	transactions := make([]Transaction, 0, len(latestTx))
	for _, o := range latestTx {
		transactions = append(transactions, Transaction{
			ID:       o.ID,
			Discount: o.Discount,
			Amount:   o.Total,
			Quantity: len(o.Items),
			Status:   o.Status,
		})
	}

	return &StatsView{
		CategoryCount: categoryCount,
		ChangePercent: change,
		Count:         totals,
		Chart:         chart,
		UserRatio: UserRatio{
			Male:   usersCount - femaleCount,
			Female: femaleCount,
		},
		LatestTransactions: transactions,
	}, nil
}

func (s *Service) buildPie(ctx context.Context) (*PieView, error) {
	now := s.nowFn()

	var (
		processing, shipped, delivered int64
		productsCount, outOfStock      int64
		adminCount, customerCount      int64
		categories                     []string
		allOrders                      []catalog.Order
		allUsers                       []catalog.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		processing, err = s.orders.CountOrdersByStatus(gctx, catalog.StatusProcessing)
		return err
	})
	g.Go(func() (err error) {
		shipped, err = s.orders.CountOrdersByStatus(gctx, catalog.StatusShipped)
		return err
	})
	g.Go(func() (err error) {
		delivered, err = s.orders.CountOrdersByStatus(gctx, catalog.StatusDelivered)
		return err
	})
	g.Go(func() (err error) {
		categories, err = s.products.DistinctCategories(gctx)
		return err
	})
	g.Go(func() (err error) {
		productsCount, err = s.products.CountProducts(gctx)
		return err
	})
	g.Go(func() (err error) {
		outOfStock, err = s.products.CountOutOfStock(gctx)
		return err
	})
	g.Go(func() (err error) {
		allOrders, err = s.orders.AllOrders(gctx)
		return err
	})
	g.Go(func() (err error) {
		allUsers, err = s.users.AllUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		adminCount, err = s.users.CountUsersByRole(gctx, catalog.RoleAdmin)
		return err
	})
	g.Go(func() (err error) {
		customerCount, err = s.users.CountUsersByRole(gctx, catalog.RoleCustomer)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	productCategories, err := s.categoryShares(ctx, categories, productsCount)
	if err != nil {
		return nil, err
	}

	financials := make([]metrics.Financials, 0, len(allOrders))
	for _, o := range allOrders {
		financials = append(financials, metrics.Financials{
			Total:           o.Total,
			Discount:        o.Discount,
			ShippingCharges: o.ShippingCharges,
			Tax:             o.Tax,
		})
	}
	decomposition := metrics.RevenueDecomposition(financials)

	ages := make([]int, 0, len(allUsers))
	for _, u := range allUsers {
		ages = append(ages, u.Age(now))
	}
	cohorts := metrics.AgeCohorts(ages)

	return &PieView{
		OrderFulfillment: OrderFulfillment{
			Processing: processing,
			Shipped:    shipped,
			Delivered:  delivered,
		},
		ProductCategories: productCategories,
		StockAvailability: StockAvailability{
			InStock:    productsCount - outOfStock,
			OutOfStock: outOfStock,
		},
		RevenueDistribution: RevenueDistribution{
			NetMargin:      decomposition.NetMargin,
			Discount:       decomposition.Discount,
			ProductionCost: decomposition.ProductionCost,
			Burnt:          decomposition.Burnt,
			MarketingCost:  decomposition.MarketingCost,
		},
		UsersAgeGroup: AgeGroup{
			Teen:  cohorts.Teen,
			Adult: cohorts.Adult,
			Old:   cohorts.Old,
		},
		AdminCustomer: AdminCustomer{
			Admin:    adminCount,
			Customer: customerCount,
		},
	}, nil
}

func (s *Service) buildBar(ctx context.Context) (*BarView, error) {
	now := s.nowFn()
	sixMonthsAgo := now.AddDate(0, -6, 0)
	twelveMonthsAgo := now.AddDate(0, -12, 0)

	var (
		products []catalog.Product
		users    []catalog.User
		orders   []catalog.Order
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.products.ProductsBetween(gctx, sixMonthsAgo, now)
		return err
	})
	g.Go(func() (err error) {
		users, err = s.users.UsersBetween(gctx, sixMonthsAgo, now)
		return err
	})
	g.Go(func() (err error) {
		orders, err = s.orders.OrdersBetween(gctx, twelveMonthsAgo, now)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &BarView{
		Users:    timeseries.MonthlyCounts(6, now, userTimes(users)),
		Products: timeseries.MonthlyCounts(6, now, productTimes(products)),
		Orders:   timeseries.MonthlyCounts(12, now, orderTimes(orders)),
	}, nil
}

func (s *Service) buildLine(ctx context.Context) (*LineView, error) {
	now := s.nowFn()
	twelveMonthsAgo := now.AddDate(0, -12, 0)

	var (
		products []catalog.Product
		users    []catalog.User
		orders   []catalog.Order
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.products.ProductsBetween(gctx, twelveMonthsAgo, now)
		return err
	})
	g.Go(func() (err error) {
		users, err = s.users.UsersBetween(gctx, twelveMonthsAgo, now)
		return err
	})
	g.Go(func() (err error) {
		orders, err = s.orders.OrdersBetween(gctx, twelveMonthsAgo, now)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &LineView{
		Users:    timeseries.MonthlyCounts(12, now, userTimes(users)),
		Products: timeseries.MonthlyCounts(12, now, productTimes(products)),
		Discount: timeseries.MonthlySums(12, now, orderPoints(orders, func(o catalog.Order) decimal.Decimal {
			return o.Discount
		})),
		Revenue: timeseries.MonthlySums(12, now, orderPoints(orders, func(o catalog.Order) decimal.Decimal {
			return o.Total
		})),
	}, nil
}

// categoryShares counts products per category and derives each category's
// rounded share of the total.
func (s *Service) categoryShares(ctx context.Context, categories []string, total int64) ([]map[string]int64, error) {
	counts := make([]int64, len(categories))
	for i, category := range categories {
		n, err := s.products.CountProductsInCategory(ctx, category)
		if err != nil {
			return nil, fmt.Errorf("count category %q: %w", category, err)
		}
		counts[i] = n
	}
	return metrics.CategoryShares(categories, counts, total), nil
}

// dailyWindowStart returns the start of the current reporting day: the most
// recent 15:00 IST at or before now.
func dailyWindowStart(now time.Time) time.Time {
	local := now.In(istZone)
	start := time.Date(local.Year(), local.Month(), local.Day(), 15, 0, 0, 0, istZone)
	if now.Before(start) {
		start = start.AddDate(0, 0, -1)
	}
	return start
}

func cachedView[T any](cacheStore *cache.Store, key string) (*T, bool, error) {
	blob, ok := cacheStore.Get(key)
	if !ok {
		return nil, false, nil
	}
	var view T
	if err := json.Unmarshal(blob, &view); err != nil {
		return nil, false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return &view, true, nil
}

func putView(cacheStore *cache.Store, key string, view any) error {
	blob, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	cacheStore.Set(key, blob)
	return nil
}

func sumTotals(orders []catalog.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Total)
	}
	return total
}

func countOf(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

func orderTimes(orders []catalog.Order) []time.Time {
	out := make([]time.Time, len(orders))
	for i, o := range orders {
		out[i] = o.CreatedAt
	}
	return out
}

func productTimes(products []catalog.Product) []time.Time {
	out := make([]time.Time, len(products))
	for i, p := range products {
		out[i] = p.CreatedAt
	}
	return out
}

func userTimes(users []catalog.User) []time.Time {
	out := make([]time.Time, len(users))
	for i, u := range users {
		out[i] = u.CreatedAt
	}
	return out
}

func orderPoints(orders []catalog.Order, value func(catalog.Order) decimal.Decimal) []timeseries.Point {
	out := make([]timeseries.Point, len(orders))
	for i, o := range orders {
		out[i] = timeseries.Point{At: o.CreatedAt, Value: value(o)}
	}
	return out
}
