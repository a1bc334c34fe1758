package resolver

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stonevault/svtk/asset"
	"github.com/stonevault/svtk/cache"
	"github.com/stonevault/svtk/date"
	"github.com/stonevault/svtk/provider"
	"github.com/stonevault/svtk/provider/providertest"
	"github.com/stonevault/svtk/svtkerr"
)

func TestFiatIdentityShortcut(t *testing.T) {
	c := cache.New()
	reg := provider.NewRegistry(nil)
	r := New(c, reg, zerolog.Nop())

	usd := asset.New("USD", "US Dollar", asset.Fiat)
	price, err := r.PriceOf(context.Background(), usd, "USD", date.MustParse("2024-01-01"))
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(1)))
}

func TestNoProviderRegisteredFails(t *testing.T) {
	c := cache.New()
	reg := provider.NewRegistry(nil)
	r := New(c, reg, zerolog.Nop())

	btc := asset.New("BTC", "Bitcoin", asset.Crypto)
	_, err := r.PriceOf(context.Background(), btc, "USD", date.MustParse("2024-01-01"))
	require.Error(t, err)
	assert.True(t, svtkerr.Is(err, svtkerr.NoProvider))
}

func TestProviderFallbackCachesAndAvoidsRefetch(t *testing.T) {
	d := date.MustParse("2024-05-01")
	p1 := providertest.New("p1", asset.Stock).AlwaysFail(svtkerr.NewApi("p1", "rate limited"))
	p2 := providertest.New("p2", asset.Stock).Seed("AAPL", "USD", d, decimal.NewFromInt(190))

	c := cache.New()
	reg := provider.NewRegistry([]provider.Provider{p1, p2})
	r := New(c, reg, zerolog.Nop())

	aapl := asset.New("AAPL", "Apple", asset.Stock)
	price, err := r.PriceOf(context.Background(), aapl, "USD", d)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(190)))
	assert.Equal(t, 1, p2.Calls())

	// second call must be served from cache, no further provider calls.
	_, err = r.PriceOf(context.Background(), aapl, "USD", d)
	require.NoError(t, err)
	assert.Equal(t, 1, p2.Calls())
}

func TestRefreshBypassesCacheHit(t *testing.T) {
	d := date.MustParse("2024-05-01")
	p1 := providertest.New("p1", asset.Stock).Seed("AAPL", "USD", d, decimal.NewFromInt(190))

	c := cache.New()
	reg := provider.NewRegistry([]provider.Provider{p1})
	r := New(c, reg, zerolog.Nop())

	aapl := asset.New("AAPL", "Apple", asset.Stock)
	_, err := r.PriceOf(context.Background(), aapl, "USD", d)
	require.NoError(t, err)
	assert.Equal(t, 1, p1.Calls())

	// PriceOf now hits the cache and makes no further provider call.
	_, err = r.PriceOf(context.Background(), aapl, "USD", d)
	require.NoError(t, err)
	assert.Equal(t, 1, p1.Calls())

	// Refresh must still call the provider despite the cache entry.
	p1.Seed("AAPL", "USD", d, decimal.NewFromInt(195))
	price, err := r.Refresh(context.Background(), aapl, "USD", d)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(195)))
	assert.Equal(t, 2, p1.Calls())

	// The refreshed value is written through, so a later PriceOf sees it.
	cached, ok := c.Get("AAPL", "USD", d)
	require.True(t, ok)
	assert.True(t, cached.Equal(decimal.NewFromInt(195)))
}

func TestConversionFallback(t *testing.T) {
	d := date.MustParse("2024-05-01")
	crypto := providertest.New("crypto", asset.Crypto).Seed("BTC", "USD", d, decimal.NewFromInt(60000))
	fx := providertest.New("fx", asset.Fiat).Seed("USD", "EUR", d, decimal.NewFromFloat(0.9))

	c := cache.New()
	reg := provider.NewRegistry([]provider.Provider{crypto, fx})
	r := New(c, reg, zerolog.Nop())

	btc := asset.New("BTC", "Bitcoin", asset.Crypto)
	price, err := r.PriceOf(context.Background(), btc, "EUR", d)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(54000)))
}
