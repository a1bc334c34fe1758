package portfolio

import (
	"github.com/stonevault/svtk/asset"
	"github.com/stonevault/svtk/date"
	"github.com/stonevault/svtk/holdings"
	"github.com/stonevault/svtk/ledger"
)

// currentHoldings returns the distinct assets currently held as of d.
func currentHoldings(events []ledger.Event, d date.Date) []asset.Asset {
	m := holdings.At(events, d)
	out := make([]asset.Asset, 0, len(m))
	for _, pos := range m {
		out = append(out, pos.Asset)
	}
	return out
}
