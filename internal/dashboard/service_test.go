package dashboard

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopcore-dev/shopcore/internal/cache"
	"github.com/shopcore-dev/shopcore/internal/catalog"
	"github.com/shopcore-dev/shopcore/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *store.Memory, *cache.Store) {
	t.Helper()
	ctx := context.Background()
	mem := store.NewMemory()

	products := []catalog.Product{
		{
			ID: "P1", Name: "ThinkBook", Category: "laptop", Stock: 5,
			Price: decimal.NewFromInt(900), CreatedAt: time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "P2", Name: "Pixel", Category: "phone", Stock: 0,
			Price: decimal.NewFromInt(500), CreatedAt: time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC),
		},
	}
	for i := range products {
		require.NoError(t, mem.SaveProduct(ctx, &products[i]))
	}

	users := []catalog.User{
		{
			ID: "U1", Gender: catalog.GenderFemale, Role: catalog.RoleCustomer,
			DOB:       time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
			CreatedAt: time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "U2", Gender: catalog.GenderMale, Role: catalog.RoleCustomer,
			DOB:       time.Date(2010, 6, 1, 0, 0, 0, 0, time.UTC),
			CreatedAt: time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "U3", Gender: catalog.GenderMale, Role: catalog.RoleAdmin,
			DOB:       time.Date(1980, 2, 1, 0, 0, 0, 0, time.UTC),
			CreatedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	for i := range users {
		require.NoError(t, mem.SaveUser(ctx, &users[i]))
	}

	orders := []catalog.Order{
		{
			ID: "O1", UserID: "U1", Status: catalog.StatusProcessing,
			Items:           []catalog.OrderItem{{ProductID: "P1", Quantity: 1}},
			Total:           decimal.NewFromInt(100),
			Discount:        decimal.NewFromInt(10),
			ShippingCharges: decimal.NewFromInt(5),
			Tax:             decimal.NewFromInt(9),
			CreatedAt:       time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "O2", UserID: "U1", Status: catalog.StatusDelivered,
			Items:           []catalog.OrderItem{{ProductID: "P1", Quantity: 2}, {ProductID: "P2", Quantity: 1}},
			Total:           decimal.NewFromInt(200),
			ShippingCharges: decimal.NewFromInt(5),
			Tax:             decimal.NewFromInt(18),
			CreatedAt:       time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC),
		},
	}
	for i := range orders {
		require.NoError(t, mem.SaveOrder(ctx, &orders[i]))
	}

	cacheStore := cache.NewStore()
	svc := NewService(mem, mem, mem, cacheStore, 4)
	svc.nowFn = func() time.Time { return testNow }
	return svc, mem, cacheStore
}

func TestStats(t *testing.T) {
	svc, _, _ := newTestService(t)

	view, err := svc.Stats(context.Background())
	require.NoError(t, err)

	// This month: O1 (100); previous month: O2 (200).
	require.Equal(t, int64(50), view.ChangePercent.Revenue)
	require.Equal(t, int64(100), view.ChangePercent.Order)
	require.Equal(t, int64(100), view.ChangePercent.Product)
	require.Equal(t, int64(100), view.ChangePercent.User)
	require.Equal(t, int64(0), view.ChangePercent.DailyTransactions)

	require.True(t, view.Count.Revenue.Equal(decimal.NewFromInt(300)), "revenue %s", view.Count.Revenue)
	require.Equal(t, int64(2), view.Count.Order)
	require.Equal(t, int64(2), view.Count.Product)
	require.Equal(t, int64(3), view.Count.User)

	require.Equal(t, []int64{0, 0, 0, 0, 1, 1}, view.Chart.Order)
	require.True(t, view.Chart.Revenue[4].Equal(decimal.NewFromInt(200)))
	require.True(t, view.Chart.Revenue[5].Equal(decimal.NewFromInt(100)))

	require.Equal(t, []map[string]int64{{"laptop": 50}, {"phone": 50}}, view.CategoryCount)
	require.Equal(t, UserRatio{Male: 2, Female: 1}, view.UserRatio)

	require.Len(t, view.LatestTransactions, 2)
	require.Equal(t, "O1", view.LatestTransactions[0].ID)
	require.Equal(t, 1, view.LatestTransactions[0].Quantity)
	require.Equal(t, catalog.StatusProcessing, view.LatestTransactions[0].Status)
	require.Equal(t, 2, view.LatestTransactions[1].Quantity)
}

func TestStatsCacheHitSkipsRecordStore(t *testing.T) {
	svc, mem, cacheStore := newTestService(t)
	ctx := context.Background()

	first, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.True(t, cacheStore.Has(cache.KeyStats))

	calls := mem.TotalCalls()
	second, err := svc.Stats(ctx)
	require.NoError(t, err)

	// The hit path must not issue a single record-store query.
	require.Equal(t, calls, mem.TotalCalls())

	// Serialization is symmetric: the cached view renders identically.
	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	require.JSONEq(t, string(firstJSON), string(secondJSON))
}

func TestStatsRebuildAfterInvalidation(t *testing.T) {
	svc, mem, cacheStore := newTestService(t)
	ctx := context.Background()

	view, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), view.Count.Order)

	extra := catalog.Order{
		ID: "O3", UserID: "U2", Status: catalog.StatusProcessing,
		Total: decimal.NewFromInt(40), CreatedAt: testNow.AddDate(0, 0, -1),
	}
	require.NoError(t, mem.SaveOrder(ctx, &extra))

	// Without invalidation the stale aggregate keeps being served.
	view, err = svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), view.Count.Order)

	cache.NewCoordinator(cacheStore).Invalidate(cache.Invalidation{Admin: true})

	view, err = svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), view.Count.Order)
}

func TestStatsEmptyStore(t *testing.T) {
	svc := NewService(store.NewMemory(), store.NewMemory(), store.NewMemory(), cache.NewStore(), 4)
	svc.nowFn = func() time.Time { return testNow }

	view, err := svc.Stats(context.Background())
	require.NoError(t, err)

	require.Equal(t, []int64{0, 0, 0, 0, 0, 0}, view.Chart.Order)
	require.True(t, view.Count.Revenue.IsZero())
	require.Equal(t, int64(0), view.ChangePercent.Order)
	require.Empty(t, view.LatestTransactions)
}

func TestPie(t *testing.T) {
	svc, _, _ := newTestService(t)

	view, err := svc.Pie(context.Background())
	require.NoError(t, err)

	require.Equal(t, OrderFulfillment{Processing: 1, Shipped: 0, Delivered: 1}, view.OrderFulfillment)
	require.Equal(t, StockAvailability{InStock: 1, OutOfStock: 1}, view.StockAvailability)
	require.Equal(t, []map[string]int64{{"laptop": 50}, {"phone": 50}}, view.ProductCategories)

	// Totals [100,200], discounts [10,0], shipping [5,5], tax [9,18].
	require.True(t, view.RevenueDistribution.NetMargin.Equal(decimal.NewFromInt(163)),
		"net margin %s", view.RevenueDistribution.NetMargin)
	require.True(t, view.RevenueDistribution.MarketingCost.Equal(decimal.NewFromInt(90)))
	require.True(t, view.RevenueDistribution.Burnt.Equal(decimal.NewFromInt(27)))

	require.Equal(t, AgeGroup{Teen: 1, Adult: 1, Old: 1}, view.UsersAgeGroup)
	require.Equal(t, AdminCustomer{Admin: 1, Customer: 2}, view.AdminCustomer)
}

func TestPieCacheHit(t *testing.T) {
	svc, mem, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Pie(ctx)
	require.NoError(t, err)

	calls := mem.TotalCalls()
	_, err = svc.Pie(ctx)
	require.NoError(t, err)
	require.Equal(t, calls, mem.TotalCalls())
}

func TestBar(t *testing.T) {
	svc, _, _ := newTestService(t)

	view, err := svc.Bar(context.Background())
	require.NoError(t, err)

	require.Equal(t, []int64{0, 0, 0, 0, 1, 1}, view.Products)
	require.Equal(t, []int64{0, 0, 1, 0, 1, 1}, view.Users)

	require.Len(t, view.Orders, 12)
	require.Equal(t, int64(1), view.Orders[10]) // July
	require.Equal(t, int64(1), view.Orders[11]) // August
}

func TestLine(t *testing.T) {
	svc, _, _ := newTestService(t)

	view, err := svc.Line(context.Background())
	require.NoError(t, err)

	require.Len(t, view.Users, 12)
	require.Len(t, view.Products, 12)

	require.True(t, view.Discount[11].Equal(decimal.NewFromInt(10)), "discount %s", view.Discount[11])
	require.True(t, view.Discount[10].IsZero())
	require.True(t, view.Revenue[10].Equal(decimal.NewFromInt(200)))
	require.True(t, view.Revenue[11].Equal(decimal.NewFromInt(100)))
}

func TestDailyWindowStart(t *testing.T) {
	// 12:00 UTC is 17:30 IST: the window opened at 15:00 IST the same day.
	start := dailyWindowStart(time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC))
	require.Equal(t, time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC), start.UTC())

	// 06:00 UTC is 11:30 IST: still inside yesterday's window.
	start = dailyWindowStart(time.Date(2026, 8, 20, 6, 0, 0, 0, time.UTC))
	require.Equal(t, time.Date(2026, 8, 19, 9, 30, 0, 0, time.UTC), start.UTC())
}
