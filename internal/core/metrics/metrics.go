package metrics

import (
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// marketingRate is the fixed share of gross income written off as marketing
// spend in the revenue decomposition.
var marketingRate = decimal.NewFromFloat(0.30)

// PercentageChange returns the month-over-month change as a whole-number
// percentage. A zero previous value yields current*100 rather than a true
// percentage (any growth from nothing reads as "x100"); kept as specified,
// so PercentageChange(0, 0) == 0.
func PercentageChange(current, previous decimal.Decimal) int64 {
	if previous.IsZero() {
		return current.Mul(oneHundred).Round(0).IntPart()
	}
	return current.Div(previous).Mul(oneHundred).Round(0).IntPart()
}

// CategoryShares computes each category's rounded percentage of the total
// count, in input order, as a list of single-entry {category: share} objects.
// Shares are computed independently and are not normalized to sum to 100.
// A zero total short-circuits every share to 0.
func CategoryShares(categories []string, counts []int64, total int64) []map[string]int64 {
	shares := make([]map[string]int64, 0, len(categories))
	for i, category := range categories {
		var pct int64
		if total != 0 {
			pct = decimal.NewFromInt(counts[i]).
				Div(decimal.NewFromInt(total)).
				Mul(oneHundred).
				Round(0).
				IntPart()
		}
		shares = append(shares, map[string]int64{category: pct})
	}
	return shares
}

// Cohorts partitions a user population by age band.
type Cohorts struct {
	Teen  int64 `json:"teen"`  // age < 20
	Adult int64 `json:"adult"` // 20 <= age < 40
	Old   int64 `json:"old"`   // age >= 40
}

// AgeCohorts buckets ages into teen/adult/old by exact integer comparison.
func AgeCohorts(ages []int) Cohorts {
	var c Cohorts
	for _, age := range ages {
		switch {
		case age < 20:
			c.Teen++
		case age < 40:
			c.Adult++
		default:
			c.Old++
		}
	}
	return c
}

// Financials carries the monetary fields of one order into the decomposition.
type Financials struct {
	Total           decimal.Decimal
	Discount        decimal.Decimal
	ShippingCharges decimal.Decimal
	Tax             decimal.Decimal
}

// Decomposition breaks gross income down into cost and margin components.
type Decomposition struct {
	GrossIncome    decimal.Decimal
	Discount       decimal.Decimal
	ProductionCost decimal.Decimal
	Burnt          decimal.Decimal
	MarketingCost  decimal.Decimal
	NetMargin      decimal.Decimal
}

// RevenueDecomposition sums order financials and derives the margin split.
// Marketing cost is a fixed 30% of gross income rounded to a whole unit;
// net margin subtracts discount, production cost (shipping), burnt (tax) and
// marketing cost from gross, in that order. The constant and the subtraction
// order are part of the reporting contract.
func RevenueDecomposition(orders []Financials) Decomposition {
	gross, discount, production, burnt := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for _, o := range orders {
		gross = gross.Add(o.Total)
		discount = discount.Add(o.Discount)
		production = production.Add(o.ShippingCharges)
		burnt = burnt.Add(o.Tax)
	}

	marketing := gross.Mul(marketingRate).Round(0)
	net := gross.Sub(discount).Sub(production).Sub(burnt).Sub(marketing)

	return Decomposition{
		GrossIncome:    gross,
		Discount:       discount,
		ProductionCost: production,
		Burnt:          burnt,
		MarketingCost:  marketing,
		NetMargin:      net,
	}
}
