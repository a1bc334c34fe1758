// Package resolver implements price resolution: cache-first reads, ordered
// per-asset-kind provider fallback with write-through caching, and
// cross-currency conversion when no provider quotes the target currency
// directly.
package resolver

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/stonevault/svtk/asset"
	"github.com/stonevault/svtk/cache"
	"github.com/stonevault/svtk/date"
	"github.com/stonevault/svtk/provider"
	"github.com/stonevault/svtk/svtkerr"
)

// baseCurrency is the currency native-quote fallback providers are assumed
// to quote non-fiat assets in, per spec §4.4's conversion fallback example.
const baseCurrency = "USD"

// Resolver resolves the price of an asset, in a display currency, on a
// date, consulting the cache first and falling back to registered
// providers and then cross-currency conversion.
type Resolver struct {
	cache    *cache.Cache
	registry *provider.Registry
	log      zerolog.Logger
}

// New builds a Resolver over the given cache and provider registry. log may
// be the zero value (a disabled logger).
func New(c *cache.Cache, r *provider.Registry, log zerolog.Logger) *Resolver {
	return &Resolver{cache: c, registry: r, log: log.With().Str("component", "resolver").Logger()}
}

// PriceOf resolves asset's price in currency on date d, per the six-step
// algorithm in spec §4.4.
func (r *Resolver) PriceOf(ctx context.Context, a asset.Asset, currency string, d date.Date) (decimal.Decimal, error) {
	return r.resolve(ctx, a, currency, d, false)
}

// Refresh resolves asset's price the same way PriceOf does, except it skips
// step 2 of the algorithm (the cache lookup) and always consults providers,
// per spec §4.4's today-refresh policy. The result is still written through
// to the cache, as any successful provider fetch is.
func (r *Resolver) Refresh(ctx context.Context, a asset.Asset, currency string, d date.Date) (decimal.Decimal, error) {
	return r.resolve(ctx, a, currency, d, true)
}

func (r *Resolver) resolve(ctx context.Context, a asset.Asset, currency string, d date.Date, skipCache bool) (decimal.Decimal, error) {
	// 1. Fiat identity shortcut.
	if a.Kind == asset.Fiat && a.Symbol == currency {
		return decimal.NewFromInt(1), nil
	}

	// 2. Cache hit.
	if !skipCache {
		if p, ok := r.cache.Get(a.Symbol, currency, d); ok {
			return p, nil
		}
	}

	// 3. No provider registered for this kind.
	providers := r.registry.For(a.Kind)
	if len(providers) == 0 {
		return decimal.Decimal{}, svtkerr.NewNoProvider(a.Kind.String())
	}

	// 4. Ordered provider fallback.
	var lastErr error
	for _, p := range providers {
		price, err := fetchWithTimeout(ctx, p, a.Symbol, currency, d)
		if err == nil {
			r.cache.SetPrice(a.Symbol, currency, d, price)
			r.log.Debug().Str("provider", p.Name()).Str("symbol", a.Symbol).Str("currency", currency).
				Str("date", d.String()).Msg("resolved price")
			return price, nil
		}
		lastErr = err
		r.log.Warn().Err(err).Str("provider", p.Name()).Str("symbol", a.Symbol).Msg("provider fetch failed")
	}

	// 5. Conversion fallback, non-Fiat only.
	if a.Kind != asset.Fiat {
		if price, err := r.convertViaBase(ctx, a, currency, d, skipCache); err == nil {
			return price, nil
		}
	}

	// 6. Surface the last provider error, or a generic PriceNotAvailable.
	if lastErr != nil {
		return decimal.Decimal{}, lastErr
	}
	return decimal.Decimal{}, svtkerr.NewPriceNotAvailable(a.Symbol, currency, d.String())
}

func (r *Resolver) convertViaBase(ctx context.Context, a asset.Asset, currency string, d date.Date, skipCache bool) (decimal.Decimal, error) {
	if currency == baseCurrency {
		return decimal.Decimal{}, svtkerr.NewPriceNotAvailable(a.Symbol, currency, d.String())
	}
	native, err := r.resolve(ctx, asset.New(a.Symbol, a.Name, a.Kind), baseCurrency, d, skipCache)
	if err != nil {
		return decimal.Decimal{}, err
	}
	rate, err := r.resolve(ctx, asset.New(baseCurrency, baseCurrency, asset.Fiat), currency, d, skipCache)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return native.Mul(rate), nil
}

func fetchWithTimeout(ctx context.Context, p provider.Provider, symbol, currency string, d date.Date) (decimal.Decimal, error) {
	var price decimal.Decimal
	err := provider.WithRetry(ctx, func(ctx context.Context) error {
		var err error
		price, err = p.FetchPrice(ctx, symbol, currency, d)
		return err
	})
	return price, err
}
