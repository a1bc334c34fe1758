// Package provider defines the price-provider contract and the ordered,
// rebuildable registry the resolver consults. Concrete HTTP clients for
// CoinCap, Frankfurter, metals.dev, YahooFinance, and AlphaVantage are host
// collaborators outside this module's scope (spec §1); Provider is the
// narrow interface those clients must satisfy to plug into the registry.
package provider

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/stonevault/svtk/asset"
	"github.com/stonevault/svtk/date"
)

// Provider is an external market-data source wrapped in the fetch
// capability set the resolver needs.
type Provider interface {
	// Name is a stable identifier used in Api errors and logs.
	Name() string
	// SupportedKinds lists the asset kinds this provider can serve.
	SupportedKinds() []asset.Kind
	// Ready reports whether the provider's preconditions are currently met
	// (e.g. an API key is configured). The registry is rebuilt whenever
	// this might have changed.
	Ready() bool
	// FetchPrice returns the price of symbol in currency on date d.
	FetchPrice(ctx context.Context, symbol, currency string, d date.Date) (decimal.Decimal, error)
	// FetchRange returns the price series of symbol in currency over
	// [from, to], inclusive, as available.
	FetchRange(ctx context.Context, symbol, currency string, from, to date.Date) ([]Point, error)
}

// Point is one (date, price) observation returned by a provider.
type Point struct {
	Date  date.Date
	Price decimal.Decimal
}
