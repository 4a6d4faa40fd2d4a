package timeseries

import (
	"time"

	"github.com/shopspring/decimal"
)

// Point is a timestamped value feeding a summed series.
type Point struct {
	At    time.Time
	Value decimal.Decimal
}

// MonthlyCounts buckets timestamps into a fixed-length calendar-month series
// ending at now. Slot 0 is length-1 months ago, the last slot is the current
// month. Records whose month distance is >= length are dropped.
//
// Distance is calendar-month-of-year modulo 12: a record more than a year old
// that lands on the same month-of-year as a recent one is counted in that
// recent bucket. Inherited behavior; callers bound their query windows to
// the trailing `length` months to avoid it. Day-of-month is ignored.
func MonthlyCounts(length int, now time.Time, stamps []time.Time) []int64 {
	series := make([]int64, length)
	for _, at := range stamps {
		if slot, ok := slotFor(length, now, at); ok {
			series[slot]++
		}
	}
	return series
}

// MonthlySums buckets points into a fixed-length calendar-month series of
// value sums, with the same slotting and aliasing rules as MonthlyCounts.
func MonthlySums(length int, now time.Time, points []Point) []decimal.Decimal {
	series := make([]decimal.Decimal, length)
	for i := range series {
		series[i] = decimal.Zero
	}
	for _, p := range points {
		if slot, ok := slotFor(length, now, p.At); ok {
			series[slot] = series[slot].Add(p.Value)
		}
	}
	return series
}

func slotFor(length int, now, at time.Time) (int, bool) {
	monthDiff := (int(now.Month()) - int(at.Month()) + 12) % 12
	if monthDiff >= length {
		return 0, false
	}
	return length - 1 - monthDiff, true
}
