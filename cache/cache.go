// Package cache implements the price cache: a per-(symbol, currency) pair,
// date-ordered series of prices with binary-search lookup, range queries,
// freshness tracking, and pruning. It is embedded verbatim inside the
// encrypted container.
//
// The series implementation is grounded on the ordered, binary-searched
// History[T] design the teacher project uses for its own time series, but
// is hand-written here (not generic) because shopspring/decimal.Decimal is
// a struct type and Go generics cannot overload += for it the way the
// teacher's float/string History[T] does in AppendAdd.
package cache

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/stonevault/svtk/date"
)

// Pair is the (symbol, currency) key into the cache, both uppercased.
type Pair struct {
	Symbol   string
	Currency string
}

// point is one (date, price) entry in a pair's series.
type point struct {
	date  date.Date
	price decimal.Decimal
}

// series is a date-ordered, duplicate-free sequence of points for one pair.
type series struct {
	points      []point
	lastUpdated date.Date
}

// Cache is the full price cache: one ordered series plus a last-refresh
// date, per pair.
type Cache struct {
	pairs map[Pair]*series
}

// New returns an empty price cache.
func New() *Cache {
	return &Cache{pairs: make(map[Pair]*series)}
}

func normalizedPair(symbol, currency string) Pair {
	return Pair{Symbol: toUpper(symbol), Currency: toUpper(currency)}
}

func toUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

func searchFunc(p point, d date.Date) int {
	if p.date.Before(d) {
		return -1
	}
	if p.date.After(d) {
		return 1
	}
	return 0
}

// Get returns the exact price point for the pair on date d, if present.
func (c *Cache) Get(symbol, currency string, d date.Date) (decimal.Decimal, bool) {
	s, ok := c.pairs[normalizedPair(symbol, currency)]
	if !ok {
		return decimal.Decimal{}, false
	}
	i, found := slices.BinarySearchFunc(s.points, d, searchFunc)
	if !found {
		return decimal.Decimal{}, false
	}
	return s.points[i].price, true
}

// RangeQuery returns the dates of the contiguous run of points with
// from <= date <= to, in ascending order; Prices returns the prices too.
func (c *Cache) RangeQuery(symbol, currency string, from, to date.Date) []date.Date {
	s, ok := c.pairs[normalizedPair(symbol, currency)]
	if !ok {
		return nil
	}
	lo, _ := slices.BinarySearchFunc(s.points, from, searchFunc)
	hi, _ := slices.BinarySearchFunc(s.points, to, func(p point, d date.Date) int {
		if !p.date.After(d) {
			return -1
		}
		return 1
	})
	dates := make([]date.Date, 0, hi-lo)
	for _, p := range s.points[lo:hi] {
		dates = append(dates, p.date)
	}
	return dates
}

// Prices returns the (date, price) pairs for the contiguous range
// [from, to], in ascending date order.
func (c *Cache) Prices(symbol, currency string, from, to date.Date) []PricePoint {
	s, ok := c.pairs[normalizedPair(symbol, currency)]
	if !ok {
		return nil
	}
	lo, _ := slices.BinarySearchFunc(s.points, from, searchFunc)
	hi, _ := slices.BinarySearchFunc(s.points, to, func(p point, d date.Date) int {
		if !p.date.After(d) {
			return -1
		}
		return 1
	})
	out := make([]PricePoint, 0, hi-lo)
	for _, p := range s.points[lo:hi] {
		out = append(out, PricePoint{Date: p.date, Price: p.price})
	}
	return out
}

// PricePoint is one (date, price) observation.
type PricePoint struct {
	Date  date.Date
	Price decimal.Decimal
}

// SetPrice performs a sorted insert for the pair, overwriting on date
// collision, and advances lastUpdated for the pair to d when d is later
// than the current lastUpdated (an older d leaves it as is). Cache writes never
// fail; an invalid (negative) price is silently ignored.
func (c *Cache) SetPrice(symbol, currency string, d date.Date, price decimal.Decimal) {
	if price.IsNegative() {
		return
	}
	pair := normalizedPair(symbol, currency)
	s, ok := c.pairs[pair]
	if !ok {
		s = &series{}
		c.pairs[pair] = s
	}
	i, found := slices.BinarySearchFunc(s.points, d, searchFunc)
	if found {
		s.points[i].price = price
	} else {
		s.points = slices.Insert(s.points, i, point{date: d, price: price})
	}
	if s.lastUpdated.IsZero() || d.After(s.lastUpdated) {
		s.lastUpdated = d
	}
}

// IsTodayFresh reports whether the pair was last refreshed today.
func (c *Cache) IsTodayFresh(symbol, currency string, today date.Date) bool {
	s, ok := c.pairs[normalizedPair(symbol, currency)]
	if !ok {
		return false
	}
	return s.lastUpdated.Equal(today)
}

// PruneBefore drops every point before cutoff across every pair and reports
// the total removed count. lastUpdated is left untouched.
func (c *Cache) PruneBefore(cutoff date.Date) int {
	removed := 0
	for _, s := range c.pairs {
		i, _ := slices.BinarySearchFunc(s.points, cutoff, searchFunc)
		removed += i
		s.points = slices.Delete(s.points, 0, i)
	}
	return removed
}

// Clear removes every pair's series entirely.
func (c *Cache) Clear() {
	c.pairs = make(map[Pair]*series)
}
