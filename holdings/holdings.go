// Package holdings computes point-in-time holdings from a ledger: the
// per-asset net position (buys minus sells) as of a date, either as a
// one-shot fold or as an incremental sweep suitable for dense chart
// generation.
package holdings

import (
	"github.com/stonevault/svtk/asset"
	"github.com/stonevault/svtk/date"
	"github.com/stonevault/svtk/ledger"
	"github.com/stonevault/svtk/money"
)

// epsilon is the minimum absolute magnitude a holding must have to be
// retained in a holdings map; positions that net to (near) zero are dropped.
const epsilon = 1e-10

// Map is a snapshot of net holdings keyed by asset identity, alongside the
// Asset value last seen for that identity (for its descriptive Name).
type Map map[asset.Key]Position

// Position pairs a holding amount with the asset it belongs to.
type Position struct {
	Asset  asset.Asset
	Amount money.Quantity
}

func negligible(q money.Quantity) bool {
	f, _ := q.Decimal().Float64()
	if f < 0 {
		f = -f
	}
	return f <= epsilon
}

// At folds every live event with date <= d into a holdings map.
func At(events []ledger.Event, d date.Date) Map {
	running := make(map[asset.Key]money.Quantity)
	seen := make(map[asset.Key]asset.Asset)
	for _, e := range events {
		if e.Date.After(d) {
			continue
		}
		apply(running, seen, e)
	}
	return finalize(running, seen)
}

func apply(running map[asset.Key]money.Quantity, seen map[asset.Key]asset.Asset, e ledger.Event) {
	k := e.Asset.Identity()
	seen[k] = e.Asset
	cur, ok := running[k]
	if !ok {
		cur = money.Q(0)
	}
	switch e.Type {
	case ledger.Buy:
		running[k] = cur.Add(e.Amount)
	case ledger.Sell:
		running[k] = cur.Sub(e.Amount)
	}
}

func finalize(running map[asset.Key]money.Quantity, seen map[asset.Key]asset.Asset) Map {
	out := make(Map, len(running))
	for k, amt := range running {
		if negligible(amt) {
			continue
		}
		out[k] = Position{Asset: seen[k], Amount: amt}
	}
	return out
}

// Visit is called once per day in a Walk, with the day's holdings snapshot
// (already advanced with that day's events) and the events dated exactly d.
type Visit func(d date.Date, snapshot Map, eventsOnDay []ledger.Event)

// Walk performs an incremental sweep from from to to (inclusive), advancing
// a running holdings map with each day's events and invoking visit once per
// day. This achieves O(days + events) rather than the O(days * events) of
// calling At once per day.
func Walk(events []ledger.Event, from, to date.Date, visit Visit) {
	byDay := make(map[date.Date][]ledger.Event)
	for _, e := range events {
		if e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		byDay[e.Date] = append(byDay[e.Date], e)
	}

	running := make(map[asset.Key]money.Quantity)
	seen := make(map[asset.Key]asset.Asset)
	// Seed the running balance with every event strictly before `from` so
	// the first visited day reflects holdings carried in from history.
	for _, e := range events {
		if e.Date.Before(from) {
			apply(running, seen, e)
		}
	}

	for d := from; !d.After(to); d = d.Add(1) {
		dayEvents := byDay[d]
		for _, e := range dayEvents {
			apply(running, seen, e)
		}
		visit(d, finalize(running, seen), dayEvents)
	}
}
