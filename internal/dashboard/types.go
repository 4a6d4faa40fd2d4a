package dashboard

import (
	"github.com/shopcore-dev/shopcore/internal/catalog"
	"github.com/shopspring/decimal"
)

// StatsView is the summary dashboard aggregate ("admin-stats").
type StatsView struct {
	CategoryCount      []map[string]int64 `json:"categoryCount"`
	ChangePercent      ChangePercent      `json:"changePercent"`
	Count              Totals             `json:"count"`
	Chart              StatsChart         `json:"chart"`
	UserRatio          UserRatio          `json:"userRatio"`
	LatestTransactions []Transaction      `json:"latestTransactions"`
}

// ChangePercent compares the current calendar month (and the current daily
// window) against the previous one, as whole-number percentages.
type ChangePercent struct {
	Revenue           int64 `json:"revenue"`
	Product           int64 `json:"product"`
	User              int64 `json:"user"`
	Order             int64 `json:"order"`
	DailyTransactions int64 `json:"dailyTransactions"`
	DailyRevenue      int64 `json:"dailyRevenue"`
}

// Totals holds the all-time and daily-window counters.
type Totals struct {
	Revenue      decimal.Decimal `json:"revenue"`
	User         int64           `json:"user"`
	Product      int64           `json:"product"`
	Order        int64           `json:"order"`
	DailyOrders  int64           `json:"dailyOrders"`
	DailyRevenue decimal.Decimal `json:"dailyRevenue"`
}

// StatsChart is the trailing six-month order count and revenue series.
type StatsChart struct {
	Order   []int64           `json:"order"`
	Revenue []decimal.Decimal `json:"revenue"`
}

type UserRatio struct {
	Male   int64 `json:"male"`
	Female int64 `json:"female"`
}

// Transaction is one row of the latest-transactions table. Selection is store
// insertion order; there is no recency guarantee.
type Transaction struct {
	ID       string              `json:"id"`
	Discount decimal.Decimal     `json:"discount"`
	Amount   decimal.Decimal     `json:"amount"`
	Quantity int                 `json:"quantity"`
	Status   catalog.OrderStatus `json:"status"`
}

// PieView is the breakdown dashboard aggregate ("admin-pie-charts").
type PieView struct {
	OrderFulfillment    OrderFulfillment    `json:"orderFulfillment"`
	ProductCategories   []map[string]int64  `json:"productCategories"`
	StockAvailability   StockAvailability   `json:"stockAvailability"`
	RevenueDistribution RevenueDistribution `json:"revenueDistribution"`
	UsersAgeGroup       AgeGroup            `json:"usersAgeGroup"`
	AdminCustomer       AdminCustomer       `json:"adminCustomer"`
}

type OrderFulfillment struct {
	Processing int64 `json:"processing"`
	Shipped    int64 `json:"shipped"`
	Delivered  int64 `json:"delivered"`
}

type StockAvailability struct {
	InStock    int64 `json:"inStock"`
	OutOfStock int64 `json:"outOfStock"`
}

type RevenueDistribution struct {
	NetMargin      decimal.Decimal `json:"netMargin"`
	Discount       decimal.Decimal `json:"discount"`
	ProductionCost decimal.Decimal `json:"productionCost"`
	Burnt          decimal.Decimal `json:"burnt"`
	MarketingCost  decimal.Decimal `json:"marketingCost"`
}

type AgeGroup struct {
	Teen  int64 `json:"teen"`
	Adult int64 `json:"adult"`
	Old   int64 `json:"old"`
}

type AdminCustomer struct {
	Admin    int64 `json:"admin"`
	Customer int64 `json:"customer"`
}

// BarView is the bar-chart aggregate ("admin-bar-charts"): six-month product
// and user creation series plus a twelve-month order series.
type BarView struct {
	Users    []int64 `json:"users"`
	Products []int64 `json:"products"`
	Orders   []int64 `json:"orders"`
}

// LineView is the line-chart aggregate ("admin-line-charts"): twelve-month
// product, user, discount-sum and revenue-sum series.
type LineView struct {
	Users    []int64           `json:"users"`
	Products []int64           `json:"products"`
	Discount []decimal.Decimal `json:"discount"`
	Revenue  []decimal.Decimal `json:"revenue"`
}
