// Package analytics computes portfolio valuation, charts, and the
// cost-basis summary over a ledger's holdings, using an injected price
// function so it never depends on the concrete resolver/provider stack.
package analytics

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/stonevault/svtk/asset"
	"github.com/stonevault/svtk/date"
	"github.com/stonevault/svtk/holdings"
	"github.com/stonevault/svtk/ledger"
	"github.com/stonevault/svtk/money"
	"github.com/stonevault/svtk/svtkerr"
)

// maxChartDays bounds portfolioChart/assetChart spans per spec §4.5/§8.
const maxChartDays = 3650

// PriceFunc resolves the price of an asset, in a display currency, on a
// date. It is satisfied by (*resolver.Resolver).PriceOf; analytics depends
// only on this shape so it stays decoupled from the provider stack.
type PriceFunc func(ctx context.Context, a asset.Asset, currency string, d date.Date) (decimal.Decimal, error)

// Engine computes analytics over one ledger's events, priced in currency.
type Engine struct {
	events   []ledger.Event
	price    PriceFunc
	currency string
}

// New builds an analytics Engine over the given events, using price to
// resolve asset values in currency.
func New(events []ledger.Event, price PriceFunc, currency string) *Engine {
	return &Engine{events: events, price: price, currency: currency}
}

// PortfolioValue is Σ amount(A) * priceOf(A, date) over holdings at date.
func (e *Engine) PortfolioValue(ctx context.Context, d date.Date) (money.Money, error) {
	h := holdings.At(e.events, d)
	total := money.Zero(e.currency)
	for _, pos := range h {
		p, err := e.price(ctx, pos.Asset, e.currency, d)
		if err != nil {
			return money.Money{}, err
		}
		total = total.Add(money.M(p, e.currency).Mul(pos.Amount))
	}
	return total, nil
}

// ChartEvent is one day's event, converted for display.
type ChartEvent struct {
	Type   ledger.Type
	Symbol string
	Amount money.Quantity
	Value  money.Money // amount * price, in the engine's display currency
}

// ChartDataPoint is one day of a portfolio or asset chart.
type ChartDataPoint struct {
	Date           date.Date
	PortfolioValue money.Money
	Events         []ChartEvent
}

func validateRange(from, to date.Date) error {
	if to.Before(from) {
		return svtkerr.NewValidationf("chart range invalid: to %s is before from %s", to, from)
	}
	if to.Sub(from) > maxChartDays {
		return svtkerr.NewValidationf("chart range exceeds %d days", maxChartDays)
	}
	return nil
}

// PortfolioChart advances holdings day by day over [from, to], valuing each
// asset with carry-forward: if a day's price lookup fails, the asset's last
// known value that day is reused; if there is no prior value, it is
// treated as 0 and not persisted as a carried value.
func (e *Engine) PortfolioChart(ctx context.Context, from, to date.Date) ([]ChartDataPoint, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	lastValue := make(map[asset.Key]money.Money)
	var points []ChartDataPoint

	holdings.Walk(e.events, from, to, func(d date.Date, snap holdings.Map, dayEvents []ledger.Event) {
		dayTotal := money.Zero(e.currency)
		for k, pos := range snap {
			v, ok := e.valueOrCarry(ctx, pos, d, lastValue, k)
			if ok {
				dayTotal = dayTotal.Add(v)
			}
		}
		var events []ChartEvent
		for _, ev := range dayEvents {
			p, err := e.price(ctx, ev.Asset, e.currency, d)
			var val money.Money
			if err == nil {
				val = money.M(p, e.currency).Mul(ev.Amount)
			} else {
				val = money.Zero(e.currency)
			}
			events = append(events, ChartEvent{Type: ev.Type, Symbol: ev.Asset.Symbol, Amount: ev.Amount, Value: val})
		}
		points = append(points, ChartDataPoint{Date: d, PortfolioValue: dayTotal, Events: events})
	})
	return points, nil
}

// valueOrCarry resolves pos's value on d, falling back to the last known
// value for its asset identity on lookup failure.
func (e *Engine) valueOrCarry(ctx context.Context, pos holdings.Position, d date.Date, lastValue map[asset.Key]money.Money, k asset.Key) (money.Money, bool) {
	p, err := e.price(ctx, pos.Asset, e.currency, d)
	if err == nil {
		v := money.M(p, e.currency).Mul(pos.Amount)
		lastValue[k] = v
		return v, true
	}
	if v, ok := lastValue[k]; ok {
		return v, true
	}
	return money.Money{}, false
}

// AssetChart restricts PortfolioChart to a single symbol's holdings and
// events; it fails ValidationError if symbol never appears in the ledger.
func (e *Engine) AssetChart(ctx context.Context, symbol string, from, to date.Date) ([]ChartDataPoint, error) {
	symbol = strings.ToUpper(symbol)
	found := false
	for _, ev := range e.events {
		if ev.Asset.Symbol == symbol {
			found = true
			break
		}
	}
	if !found {
		return nil, svtkerr.NewValidationf("symbol %q never appears in the ledger", symbol)
	}
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	lastValue := make(map[asset.Key]money.Money)
	var points []ChartDataPoint
	holdings.Walk(e.events, from, to, func(d date.Date, snap holdings.Map, dayEvents []ledger.Event) {
		var dayTotal money.Money
		var has bool
		for k, pos := range snap {
			if k.Symbol != symbol {
				continue
			}
			if v, ok := e.valueOrCarry(ctx, pos, d, lastValue, k); ok {
				dayTotal = v
				has = true
			}
		}
		if !has {
			dayTotal = money.Zero(e.currency)
		}
		var events []ChartEvent
		for _, ev := range dayEvents {
			if ev.Asset.Symbol != symbol {
				continue
			}
			p, err := e.price(ctx, ev.Asset, e.currency, d)
			var val money.Money
			if err == nil {
				val = money.M(p, e.currency).Mul(ev.Amount)
			} else {
				val = money.Zero(e.currency)
			}
			events = append(events, ChartEvent{Type: ev.Type, Symbol: ev.Asset.Symbol, Amount: ev.Amount, Value: val})
		}
		points = append(points, ChartDataPoint{Date: d, PortfolioValue: dayTotal, Events: events})
	})
	return points, nil
}
