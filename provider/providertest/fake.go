// Package providertest provides an in-memory fake Provider implementation
// for exercising the resolver and facade without network access.
package providertest

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/stonevault/svtk/asset"
	"github.com/stonevault/svtk/date"
	"github.com/stonevault/svtk/provider"
	"github.com/stonevault/svtk/svtkerr"
)

// key is the (symbol, currency, date) lookup key for a seeded price.
type key struct {
	symbol, currency string
	date             date.Date
}

// Fake is a scripted Provider: it serves prices from a seeded map and can
// be configured to always fail, for exercising fallback behavior.
type Fake struct {
	name        string
	kinds       []asset.Kind
	ready       bool
	alwaysFails error
	prices      map[key]decimal.Decimal
	calls       int
}

// New returns a ready Fake provider for the given name and supported kinds.
func New(name string, kinds ...asset.Kind) *Fake {
	return &Fake{name: name, kinds: kinds, ready: true, prices: make(map[key]decimal.Decimal)}
}

// AlwaysFail makes every FetchPrice/FetchRange call return err.
func (f *Fake) AlwaysFail(err error) *Fake {
	f.alwaysFails = err
	return f
}

// SetReady overrides readiness, e.g. to simulate a missing API key.
func (f *Fake) SetReady(ready bool) *Fake {
	f.ready = ready
	return f
}

// Seed records a price to be served for (symbol, currency, d).
func (f *Fake) Seed(symbol, currency string, d date.Date, price decimal.Decimal) *Fake {
	f.prices[key{symbol, currency, d}] = price
	return f
}

// Calls returns the number of FetchPrice and FetchRange calls made so far,
// counted together, for asserting
// that write-through caching prevents redundant provider calls.
func (f *Fake) Calls() int { return f.calls }

func (f *Fake) Name() string                  { return f.name }
func (f *Fake) SupportedKinds() []asset.Kind  { return f.kinds }
func (f *Fake) Ready() bool                   { return f.ready }

func (f *Fake) FetchPrice(ctx context.Context, symbol, currency string, d date.Date) (decimal.Decimal, error) {
	f.calls++
	if f.alwaysFails != nil {
		return decimal.Decimal{}, f.alwaysFails
	}
	p, ok := f.prices[key{symbol, currency, d}]
	if !ok {
		return decimal.Decimal{}, svtkerr.NewPriceNotAvailable(symbol, currency, d.String())
	}
	return p, nil
}

func (f *Fake) FetchRange(ctx context.Context, symbol, currency string, from, to date.Date) ([]provider.Point, error) {
	f.calls++
	if f.alwaysFails != nil {
		return nil, f.alwaysFails
	}
	var out []provider.Point
	for d := from; !d.After(to); d = d.Add(1) {
		if p, ok := f.prices[key{symbol, currency, d}]; ok {
			out = append(out, provider.Point{Date: d, Price: p})
		}
	}
	if len(out) == 0 {
		return nil, svtkerr.NewPriceNotAvailable(symbol, currency, fmt.Sprintf("%s..%s", from, to))
	}
	return out, nil
}

var _ provider.Provider = (*Fake)(nil)
