package ledger

import (
	"github.com/google/uuid"

	"github.com/stonevault/svtk/asset"
	"github.com/stonevault/svtk/date"
	"github.com/stonevault/svtk/money"
)

// NewEventWithID reconstructs an Event with an explicit ID, for callers
// restoring previously-persisted state (the container's load path). It
// performs no validation: a saved ledger is assumed already consistent.
func NewEventWithID(id uuid.UUID, typ Type, a asset.Asset, amount money.Quantity, d date.Date, notes string) Event {
	return Event{ID: id, Type: typ, Asset: a, Amount: amount, Date: d, Notes: notes}
}

// Restore replaces the ledger's live events and trash wholesale, assigning
// fresh seq numbers in slice order. It performs no validation, trusting the
// caller (the container's load path) that the data was consistent when
// last saved.
func (l *Ledger) Restore(events, trash []Event) {
	for i := range events {
		events[i].seq = i
	}
	l.events = events
	l.trash = append([]Event(nil), trash...)
	l.nextSeq = len(events)
}
