// Package portfolio is the facade: the single entry point a host embeds,
// owning the ledger, price cache, settings, and provider registry, and
// wiring them into the holdings/analytics/resolver/container components.
//
// The facade is single-writer per spec §5: a host holds exactly one mutable
// reference and drives it from one task at a time. It does not internally
// synchronize.
package portfolio

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/stonevault/svtk/analytics"
	"github.com/stonevault/svtk/asset"
	"github.com/stonevault/svtk/cache"
	"github.com/stonevault/svtk/date"
	"github.com/stonevault/svtk/ledger"
	"github.com/stonevault/svtk/money"
	"github.com/stonevault/svtk/provider"
	"github.com/stonevault/svtk/resolver"
)

// Portfolio is the facade over the ledger, cache, settings, and price
// resolution pipeline. It exclusively owns the aggregate for its lifetime.
type Portfolio struct {
	ledger     *ledger.Ledger
	cache      *cache.Cache
	settings   Settings
	candidates []provider.Provider
	registry   *provider.Registry
	resolver   *resolver.Resolver
	log        zerolog.Logger
	dirty      bool
}

// New constructs an empty Portfolio with default settings (USD, no API
// keys), wired to the given candidate providers. log may be the zero value
// (a disabled logger).
func New(candidates []provider.Provider, log zerolog.Logger) *Portfolio {
	l := log.With().Str("component", "portfolio").Logger()
	reg := provider.NewRegistry(candidates)
	c := cache.New()
	p := &Portfolio{
		ledger:     ledger.New(),
		cache:      c,
		settings:   defaultSettings(),
		candidates: candidates,
		registry:   reg,
		log:        l,
	}
	p.resolver = resolver.New(c, reg, l)
	return p
}

// Dirty reports whether in-memory state has diverged from last persisted bytes.
func (p *Portfolio) Dirty() bool { return p.dirty }

// Settings returns a copy of the current settings.
func (p *Portfolio) Settings() Settings {
	keys := make(map[string]string, len(p.settings.APIKeys))
	for k, v := range p.settings.APIKeys {
		keys[k] = v
	}
	return Settings{DefaultCurrency: p.settings.DefaultCurrency, APIKeys: keys}
}

// SetDefaultCurrency validates and sets the display currency.
func (p *Portfolio) SetDefaultCurrency(code string) error {
	normalized, err := validateCurrency(code)
	if err != nil {
		return err
	}
	p.settings.DefaultCurrency = normalized
	p.dirty = true
	return nil
}

// SetAPIKey sets (or clears, for an empty value) an API key and rebuilds
// the provider registry so readiness is reconsidered.
func (p *Portfolio) SetAPIKey(id, key string) {
	if key == "" {
		delete(p.settings.APIKeys, id)
	} else {
		p.settings.APIKeys[id] = key
	}
	p.registry.Rebuild(p.candidates)
	p.dirty = true
}

// --- Ledger operations ---

// AddEvent validates and appends a single event.
func (p *Portfolio) AddEvent(typ ledger.Type, a asset.Asset, amount money.Quantity, d date.Date, notes string) (ledger.Event, error) {
	e, err := p.ledger.Add(date.Today(), typ, a, amount, d, notes)
	if err != nil {
		return ledger.Event{}, err
	}
	p.dirty = true
	return e, nil
}

// RemoveEvent permanently deletes an event by ID.
func (p *Portfolio) RemoveEvent(id [16]byte) error {
	if err := p.ledger.Remove(id); err != nil {
		return err
	}
	p.dirty = true
	return nil
}

// RemoveToTrash moves an event to the trash.
func (p *Portfolio) RemoveToTrash(id [16]byte) error {
	if err := p.ledger.RemoveToTrash(id); err != nil {
		return err
	}
	p.dirty = true
	return nil
}

// UndoLastRemoval restores the most recently trashed event.
func (p *Portfolio) UndoLastRemoval() ([16]byte, error) {
	id, err := p.ledger.UndoLastRemoval()
	if err != nil {
		return [16]byte{}, err
	}
	p.dirty = true
	return id, nil
}

// UpdateEvent replaces the type, asset, amount, and date of an existing
// event; its ID and notes are preserved.
func (p *Portfolio) UpdateEvent(id [16]byte, typ ledger.Type, a asset.Asset, amount money.Quantity, d date.Date) error {
	if err := p.ledger.Update(date.Today(), id, typ, a, amount, d); err != nil {
		return err
	}
	p.dirty = true
	return nil
}

// ImportEventsFromJSON bulk-imports events, rejecting the whole batch on
// any failure.
func (p *Portfolio) ImportEventsFromJSON(data []byte) (int, error) {
	n, err := p.ledger.ImportFromJSON(date.Today(), data)
	if err != nil {
		return 0, err
	}
	p.dirty = true
	return n, nil
}

// GetAllEvents returns every live event, newest first.
func (p *Portfolio) GetAllEvents() []ledger.Event { return p.ledger.GetAll() }

// Ledger exposes the underlying ledger for read-only listing/filter/sort
// operations (ByAsset, ByType, InRange, Search, Sorted, Trash, ...).
func (p *Portfolio) Ledger() *ledger.Ledger { return p.ledger }

// --- Price resolution & analytics ---

// PriceOf resolves asset's price in the default currency on date d.
func (p *Portfolio) PriceOf(ctx context.Context, a asset.Asset, d date.Date) (money.Money, error) {
	price, err := p.resolver.PriceOf(ctx, a, p.settings.DefaultCurrency, d)
	if err != nil {
		return money.Money{}, err
	}
	p.dirty = true
	return money.M(price, p.settings.DefaultCurrency), nil
}

func (p *Portfolio) analyticsEngine() *analytics.Engine {
	return analytics.New(p.ledger.GetAll(), p.resolver.PriceOf, p.settings.DefaultCurrency)
}

// PortfolioValue is the current total value of all holdings on date d.
func (p *Portfolio) PortfolioValue(ctx context.Context, d date.Date) (money.Money, error) {
	v, err := p.analyticsEngine().PortfolioValue(ctx, d)
	p.dirty = p.dirty || err == nil
	return v, err
}

// PortfolioChart computes a dense daily value series over [from, to].
func (p *Portfolio) PortfolioChart(ctx context.Context, from, to date.Date) ([]analytics.ChartDataPoint, error) {
	points, err := p.analyticsEngine().PortfolioChart(ctx, from, to)
	p.dirty = p.dirty || err == nil
	return points, err
}

// AssetChart restricts PortfolioChart to a single symbol.
func (p *Portfolio) AssetChart(ctx context.Context, symbol string, from, to date.Date) ([]analytics.ChartDataPoint, error) {
	points, err := p.analyticsEngine().AssetChart(ctx, symbol, from, to)
	p.dirty = p.dirty || err == nil
	return points, err
}

// PortfolioSummary computes the full cost-basis summary as of date d.
func (p *Portfolio) PortfolioSummary(ctx context.Context, d date.Date) (analytics.Summary, error) {
	s, err := p.analyticsEngine().PortfolioSummary(ctx, d)
	p.dirty = p.dirty || err == nil
	return s, err
}

// RefreshPrices re-fetches today's price for every currently held asset,
// unconditionally bypassing the cache. Historical dates are never
// re-fetched once present.
func (p *Portfolio) RefreshPrices(ctx context.Context) error {
	today := date.Today()
	for _, pos := range currentHoldings(p.ledger.GetAll(), today) {
		if _, err := p.resolver.Refresh(ctx, pos, p.settings.DefaultCurrency, today); err != nil {
			p.log.Warn().Err(err).Str("symbol", pos.Symbol).Msg("refresh price failed")
		}
	}
	p.dirty = true
	return nil
}
