package ledger

import (
	"github.com/google/uuid"

	"github.com/stonevault/svtk/asset"
	"github.com/stonevault/svtk/date"
	"github.com/stonevault/svtk/money"
	"github.com/stonevault/svtk/svtkerr"
)

// Ledger is an unordered collection of events plus a trash list (ordered
// newest-trashed-last, so a single undo always reinstates the most recent
// removal). Display order is always derived on demand by the listing
// operations in query.go.
type Ledger struct {
	events []Event
	trash  []Event
	nextSeq int
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// cloneEvents returns a copy of the ledger's live event slice so proposed
// mutations can be validated without touching the live state.
func (l *Ledger) cloneEvents() []Event {
	return append([]Event(nil), l.events...)
}

// AddMany validates and appends events atomically: every event must satisfy
// the single-event invariants, and the resulting combined ledger must
// satisfy sell-consistency, or nothing is added.
func (l *Ledger) AddMany(today date.Date, events ...Event) error {
	if len(events) == 0 {
		return nil
	}
	proposed := l.cloneEvents()
	seq := l.nextSeq
	for _, e := range events {
		if err := e.validate(today); err != nil {
			return err
		}
		e.seq = seq
		seq++
		proposed = append(proposed, e)
	}
	if err := checkConsistency(proposed); err != nil {
		return err
	}
	l.events = proposed
	l.nextSeq = seq
	return nil
}

// Add is a convenience wrapper around AddMany for a single event; it
// returns the stored event (with its generated ID) on success.
func (l *Ledger) Add(today date.Date, typ Type, a asset.Asset, amount money.Quantity, d date.Date, notes string) (Event, error) {
	e := newEvent(typ, a, amount, d, notes)
	if err := l.AddMany(today, e); err != nil {
		return Event{}, err
	}
	return e, nil
}

// RemoveMany permanently deletes events by ID, atomically: if removing them
// would violate sell-consistency for the remaining events, nothing is
// removed. Unknown IDs are ignored.
func (l *Ledger) RemoveMany(ids ...uuid.UUID) error {
	idSet := toSet(ids)
	proposed := make([]Event, 0, len(l.events))
	for _, e := range l.events {
		if _, drop := idSet[e.ID]; drop {
			continue
		}
		proposed = append(proposed, e)
	}
	if err := checkConsistency(proposed); err != nil {
		return err
	}
	l.events = proposed
	return nil
}

// Remove permanently deletes a single event by ID.
func (l *Ledger) Remove(id uuid.UUID) error { return l.RemoveMany(id) }

// RemoveToTrash moves an event from the live ledger into the trash,
// following the same atomic validate-then-commit pattern.
func (l *Ledger) RemoveToTrash(id uuid.UUID) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return svtkerr.NewEventNotFound(id.String())
	}
	proposed := make([]Event, 0, len(l.events)-1)
	var removed Event
	for i, e := range l.events {
		if i == idx {
			removed = e
			continue
		}
		proposed = append(proposed, e)
	}
	if err := checkConsistency(proposed); err != nil {
		return err
	}
	l.events = proposed
	l.trash = append(l.trash, removed)
	return nil
}

// UndoLastRemoval re-inserts the most recently trashed event, re-checking
// sell-consistency against the ledger's current state (which may have
// evolved since the event was trashed). On failure the trash is left
// untouched and no event is restored.
func (l *Ledger) UndoLastRemoval() (uuid.UUID, error) {
	if len(l.trash) == 0 {
		return uuid.UUID{}, svtkerr.NewValidationf("trash is empty")
	}
	last := l.trash[len(l.trash)-1]
	proposed := append(l.cloneEvents(), last)
	if err := checkConsistency(proposed); err != nil {
		return uuid.UUID{}, err
	}
	l.events = proposed
	l.trash = l.trash[:len(l.trash)-1]
	return last.ID, nil
}

// Update replaces the type, asset, amount, and date of an existing event,
// atomically; the event's ID and notes are preserved unchanged.
func (l *Ledger) Update(today date.Date, id uuid.UUID, typ Type, a asset.Asset, amount money.Quantity, d date.Date) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return svtkerr.NewEventNotFound(id.String())
	}
	updated := l.events[idx]
	updated.Type = typ
	updated.Asset = a
	updated.Amount = amount
	updated.Date = d
	if err := updated.validate(today); err != nil {
		return err
	}

	proposed := l.cloneEvents()
	proposed[idx] = updated
	if err := checkConsistency(proposed); err != nil {
		return err
	}
	l.events = proposed
	return nil
}

func (l *Ledger) indexOf(id uuid.UUID) int {
	for i, e := range l.events {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func toSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	s := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Count returns the number of live (non-trashed) events.
func (l *Ledger) Count() int { return len(l.events) }

// EarliestDate returns the date of the oldest live event, or the zero Date
// if the ledger is empty.
func (l *Ledger) EarliestDate() date.Date {
	var earliest date.Date
	first := true
	for _, e := range l.events {
		if first || e.Date.Before(earliest) {
			earliest = e.Date
			first = false
		}
	}
	return earliest
}

// LatestDate returns the date of the newest live event, or the zero Date if
// the ledger is empty.
func (l *Ledger) LatestDate() date.Date {
	var latest date.Date
	first := true
	for _, e := range l.events {
		if first || e.Date.After(latest) {
			latest = e.Date
			first = false
		}
	}
	return latest
}

// AgeDays returns the number of days between today and the earliest event's
// date, or 0 for an empty ledger.
func (l *Ledger) AgeDays(today date.Date) int {
	if len(l.events) == 0 {
		return 0
	}
	return today.Sub(l.EarliestDate())
}

// Trash returns the trashed events, oldest-trashed-first.
func (l *Ledger) Trash() []Event { return append([]Event(nil), l.trash...) }
