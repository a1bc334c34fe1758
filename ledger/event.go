// Package ledger holds the authoritative event list: the Buy/Sell history of
// every asset, its trash (single-level undo), and the atomic mutation
// operations that keep the sell-consistency invariant intact.
package ledger

import (
	"strings"

	"github.com/google/uuid"

	"github.com/stonevault/svtk/asset"
	"github.com/stonevault/svtk/date"
	"github.com/stonevault/svtk/money"
	"github.com/stonevault/svtk/svtkerr"
)

// Type distinguishes the two event kinds the ledger tracks.
type Type int

const (
	Buy Type = iota
	Sell
)

func (t Type) String() string {
	if t == Sell {
		return "sell"
	}
	return "buy"
}

// ParseType parses a case-insensitive event type name.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(s) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return 0, svtkerr.NewValidationf("unknown event type %q", s)
	}
}

// Event is one Buy or Sell transaction against one asset.
//
// ID is a freshly generated 128-bit identifier at creation; it is preserved
// across updates and export, and regenerated on import.
type Event struct {
	ID     uuid.UUID
	Type   Type
	Asset  asset.Asset
	Amount money.Quantity
	Date   date.Date
	Notes  string

	// seq records insertion order, used only to break ties deterministically
	// when two events fall on the same date; it has no external meaning.
	seq int
}

func newEvent(typ Type, a asset.Asset, amount money.Quantity, d date.Date, notes string) Event {
	return Event{ID: uuid.New(), Type: typ, Asset: a, Amount: amount, Date: d, Notes: notes}
}

// validate enforces the single-event invariants: a positive amount and a
// date not in the future. Sell-consistency is checked separately, against
// the full proposed ledger.
func (e Event) validate(today date.Date) error {
	if !e.Amount.IsPositive() {
		return svtkerr.NewValidationf("event amount must be positive, got %s", e.Amount)
	}
	if e.Date.After(today) {
		return svtkerr.NewValidationf("event date %s is after today %s", e.Date, today)
	}
	return nil
}

// signedAmount returns +Amount for a Buy and -Amount for a Sell.
func (e Event) signedAmount() money.Quantity {
	if e.Type == Sell {
		return money.Q(0).Sub(e.Amount)
	}
	return e.Amount
}
