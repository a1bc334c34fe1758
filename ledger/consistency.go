package ledger

import (
	"sort"

	"github.com/stonevault/svtk/asset"
	"github.com/stonevault/svtk/money"
	"github.com/stonevault/svtk/svtkerr"
)

// checkConsistency enforces the sell-consistency invariant across the whole
// proposed event set: for every asset, sweeping the events in date order
// (stable on ties, by original insertion order) must never drive the
// running balance negative.
//
// events is assumed to carry stable seq numbers reflecting insertion order;
// the input slice is not mutated.
func checkConsistency(events []Event) error {
	byAsset := make(map[asset.Key][]Event)
	for _, e := range events {
		k := e.Asset.Identity()
		byAsset[k] = append(byAsset[k], e)
	}

	keys := make([]asset.Key, 0, len(byAsset))
	for k := range byAsset {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Symbol != keys[j].Symbol {
			return keys[i].Symbol < keys[j].Symbol
		}
		return keys[i].Kind < keys[j].Kind
	})

	for _, k := range keys {
		evs := append([]Event(nil), byAsset[k]...)
		sort.SliceStable(evs, func(i, j int) bool {
			if !evs[i].Date.Equal(evs[j].Date) {
				return evs[i].Date.Before(evs[j].Date)
			}
			return evs[i].seq < evs[j].seq
		})

		balance := money.Q(0)
		for _, e := range evs {
			balance = balance.Add(e.signedAmount())
			if balance.IsNegative() {
				return svtkerr.NewValidationf(
					"sell of %s exceeds holdings for %s on %s", e.Amount, k.Symbol, e.Date)
			}
		}
	}
	return nil
}
