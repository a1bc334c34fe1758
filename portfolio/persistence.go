package portfolio

import (
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stonevault/svtk/asset"
	"github.com/stonevault/svtk/cache"
	"github.com/stonevault/svtk/container"
	"github.com/stonevault/svtk/ledger"
	"github.com/stonevault/svtk/money"
	"github.com/stonevault/svtk/resolver"
	"github.com/stonevault/svtk/svtkerr"
)

func (p *Portfolio) toAggregate() container.Aggregate {
	// GetAll is newest-first; persist oldest-first so ledger.Restore, which
	// numbers events in slice order, keeps same-date events in insertion order.
	events := p.ledger.GetAll()
	slices.Reverse(events)
	trash := p.ledger.Trash()

	snap := make([]container.EventSnapshot, len(events))
	for i, e := range events {
		snap[i] = container.ToSnapshot(e)
	}
	trashSnap := make([]container.EventSnapshot, len(trash))
	for i, e := range trash {
		trashSnap[i] = container.ToSnapshot(e)
	}

	return container.Aggregate{
		Events: snap,
		Trash:  trashSnap,
		Cache:  p.cache.Snapshot(),
		Settings: container.Settings{
			DefaultCurrency: p.settings.DefaultCurrency,
			APIKeys:         p.settings.APIKeys,
		},
	}
}

func fromSnapshot(s container.EventSnapshot) (ledger.Event, error) {
	id, err := uuid.Parse(s.ID)
	if err != nil {
		return ledger.Event{}, err
	}
	typ, err := ledger.ParseType(s.Type)
	if err != nil {
		return ledger.Event{}, err
	}
	kind, err := asset.ParseKind(s.Kind)
	if err != nil {
		return ledger.Event{}, err
	}
	amount, err := decimalQuantity(s.Amount)
	if err != nil {
		return ledger.Event{}, err
	}
	a := asset.New(s.Symbol, s.Name, kind)
	return ledger.NewEventWithID(id, typ, a, amount, s.Date, s.Notes), nil
}

// applyAggregate rebuilds the facade's live state from a freshly decrypted
// aggregate, replacing the ledger, cache, and settings wholesale.
func (p *Portfolio) applyAggregate(agg container.Aggregate) error {
	events := make([]ledger.Event, len(agg.Events))
	for i, s := range agg.Events {
		e, err := fromSnapshot(s)
		if err != nil {
			return svtkerr.Wrap(svtkerr.Decryption, err, "decoding persisted event")
		}
		events[i] = e
	}
	trash := make([]ledger.Event, len(agg.Trash))
	for i, s := range agg.Trash {
		e, err := fromSnapshot(s)
		if err != nil {
			return svtkerr.Wrap(svtkerr.Decryption, err, "decoding persisted trash event")
		}
		trash[i] = e
	}

	p.ledger = ledger.New()
	p.ledger.Restore(events, trash)
	p.cache = cache.Restore(agg.Cache)
	p.settings = Settings{DefaultCurrency: agg.Settings.DefaultCurrency, APIKeys: agg.Settings.APIKeys}
	if p.settings.APIKeys == nil {
		p.settings.APIKeys = make(map[string]string)
	}
	p.registry.Rebuild(p.candidates)
	// The resolver closes over the cache pointer at construction time, so
	// swapping p.cache above orphans it unless the resolver is rebuilt too.
	p.resolver = resolver.New(p.cache, p.registry, p.log)
	return nil
}

// Save serializes and encrypts the portfolio under password, clearing dirty.
func (p *Portfolio) Save(password string) ([]byte, error) {
	data, err := container.Save(p.toAggregate(), password)
	if err != nil {
		return nil, err
	}
	p.dirty = false
	return data, nil
}

// Load replaces the facade's state with the container decrypted from data
// under password, clearing dirty.
func (p *Portfolio) Load(data []byte, password string) error {
	agg, err := container.Load(data, password)
	if err != nil {
		return err
	}
	if err := p.applyAggregate(agg); err != nil {
		return err
	}
	p.dirty = false
	return nil
}

// ChangePassword decrypts lastSeen under currentPassword, then re-encrypts
// the current in-memory portfolio under newPassword, clearing dirty.
func (p *Portfolio) ChangePassword(lastSeen []byte, currentPassword, newPassword string) ([]byte, error) {
	data, err := container.ChangePassword(lastSeen, currentPassword, p.toAggregate(), newPassword)
	if err != nil {
		return nil, err
	}
	p.dirty = false
	return data, nil
}

func decimalQuantity(s string) (money.Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return money.Quantity{}, err
	}
	return money.Q(d), nil
}
