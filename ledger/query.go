package ledger

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/stonevault/svtk/asset"
	"github.com/stonevault/svtk/date"
	"github.com/stonevault/svtk/svtkerr"
)

// displayOrder sorts events newest-first (date descending; ties broken by
// insertion order, newest insertion first) — the order every listing
// operation derives on demand.
func displayOrder(events []Event) []Event {
	out := append([]Event(nil), events...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].seq > out[j].seq
	})
	return out
}

// GetAll returns every live event in display order (newest first).
func (l *Ledger) GetAll() []Event { return displayOrder(l.events) }

// ByAsset filters to events on the given asset identity, in display order.
func (l *Ledger) ByAsset(a asset.Asset) []Event {
	return l.filter(func(e Event) bool { return e.Asset.Equal(a) })
}

// ByType filters to events of the given type, in display order.
func (l *Ledger) ByType(t Type) []Event {
	return l.filter(func(e Event) bool { return e.Type == t })
}

// ByAssetKind filters to events whose asset is of the given kind, in display order.
func (l *Ledger) ByAssetKind(k asset.Kind) []Event {
	return l.filter(func(e Event) bool { return e.Asset.Kind == k })
}

// InRange filters to events with from <= date <= to (inclusive), in display order.
func (l *Ledger) InRange(from, to date.Date) []Event {
	return l.filter(func(e Event) bool {
		return !e.Date.Before(from) && !e.Date.After(to)
	})
}

// Search filters to events whose symbol, asset name, or notes match query
// case-insensitively, in display order.
func (l *Ledger) Search(query string) []Event {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return l.GetAll()
	}
	return l.filter(func(e Event) bool {
		return strings.Contains(strings.ToLower(e.Asset.Symbol), q) ||
			strings.Contains(strings.ToLower(e.Asset.Name), q) ||
			strings.Contains(strings.ToLower(e.Notes), q)
	})
}

func (l *Ledger) filter(pred func(Event) bool) []Event {
	ordered := displayOrder(l.events)
	out := make([]Event, 0, len(ordered))
	for _, e := range ordered {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// Order enumerates the materialised sort orders Sorted accepts.
type Order int

const (
	DateDesc Order = iota
	DateAsc
	AmountDesc
	AmountAsc
	AssetAsc
	AssetDesc
)

// Sorted materialises the live events in the requested order, stable
// tie-breaking by ID string for full determinism.
func (l *Ledger) Sorted(order Order) []Event {
	out := append([]Event(nil), l.events...)
	less := func(i, j int) bool {
		a, b := out[i], out[j]
		switch order {
		case DateDesc:
			if !a.Date.Equal(b.Date) {
				return a.Date.After(b.Date)
			}
		case DateAsc:
			if !a.Date.Equal(b.Date) {
				return a.Date.Before(b.Date)
			}
		case AmountDesc:
			if !a.Amount.Equal(b.Amount) {
				return a.Amount.GreaterThan(b.Amount)
			}
		case AmountAsc:
			if !a.Amount.Equal(b.Amount) {
				return b.Amount.GreaterThan(a.Amount)
			}
		case AssetAsc:
			if a.Asset.Symbol != b.Asset.Symbol {
				return a.Asset.Symbol < b.Asset.Symbol
			}
		case AssetDesc:
			if a.Asset.Symbol != b.Asset.Symbol {
				return a.Asset.Symbol > b.Asset.Symbol
			}
		}
		return a.ID.String() < b.ID.String()
	}
	sort.SliceStable(out, less)
	return out
}

// ImportFromJSON decodes a JSON array in the exportEventsToJson shape,
// ignores any supplied ids (regenerating fresh ones), and adds every event
// atomically: a validation failure on any single event rejects the whole
// batch, leaving the ledger untouched. It returns the number of events
// imported.
func (l *Ledger) ImportFromJSON(today date.Date, data []byte) (int, error) {
	var raw []eventJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, svtkerr.Wrap(svtkerr.Deserialization, err, "decoding event import batch")
	}

	events := make([]Event, 0, len(raw))
	for _, r := range raw {
		typ, err := ParseType(r.Type)
		if err != nil {
			return 0, err
		}
		notes := ""
		if r.Notes != nil {
			notes = *r.Notes
		}
		events = append(events, newEvent(typ, r.Asset, r.Amount, r.Date, notes))
	}

	if err := l.AddMany(today, events...); err != nil {
		return 0, err
	}
	return len(events), nil
}
