package cache

import (
	"github.com/shopspring/decimal"

	"github.com/stonevault/svtk/date"
)

// PointSnapshot is the serializable form of one price point, used only for
// msgpack encoding inside the container.
type PointSnapshot struct {
	Date  date.Date       `msgpack:"date"`
	Price decimal.Decimal `msgpack:"price"`
}

// PairSnapshot is the serializable form of one pair's series.
type PairSnapshot struct {
	Symbol      string          `msgpack:"symbol"`
	Currency    string          `msgpack:"currency"`
	Points      []PointSnapshot `msgpack:"points"`
	LastUpdated date.Date       `msgpack:"last_updated"`
}

// Snapshot returns a flat, msgpack-friendly view of the whole cache.
func (c *Cache) Snapshot() []PairSnapshot {
	out := make([]PairSnapshot, 0, len(c.pairs))
	for pair, s := range c.pairs {
		ps := PairSnapshot{Symbol: pair.Symbol, Currency: pair.Currency, LastUpdated: s.lastUpdated}
		for _, p := range s.points {
			ps.Points = append(ps.Points, PointSnapshot{Date: p.date, Price: p.price})
		}
		out = append(out, ps)
	}
	return out
}

// Restore rebuilds a cache from a snapshot previously produced by Snapshot.
func Restore(snapshots []PairSnapshot) *Cache {
	c := New()
	for _, ps := range snapshots {
		pair := Pair{Symbol: ps.Symbol, Currency: ps.Currency}
		s := &series{lastUpdated: ps.LastUpdated}
		for _, p := range ps.Points {
			s.points = append(s.points, point{date: p.Date, price: p.Price})
		}
		c.pairs[pair] = s
	}
	return c
}
