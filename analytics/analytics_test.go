package analytics

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stonevault/svtk/asset"
	"github.com/stonevault/svtk/cache"
	"github.com/stonevault/svtk/date"
	"github.com/stonevault/svtk/ledger"
	"github.com/stonevault/svtk/money"
)

func priceFuncFromCache(c *cache.Cache) PriceFunc {
	return func(ctx context.Context, a asset.Asset, currency string, d date.Date) (decimal.Decimal, error) {
		p, ok := c.Get(a.Symbol, currency, d)
		if !ok {
			return decimal.Decimal{}, assertNotFoundErr{a.Symbol, d}
		}
		return p, nil
	}
}

type assertNotFoundErr struct {
	symbol string
	date   date.Date
}

func (e assertNotFoundErr) Error() string { return "no price for " + e.symbol }

func TestBuyValueGainScenario(t *testing.T) {
	today := date.MustParse("2025-01-01")
	l := ledger.New()
	btc := asset.New("BTC", "Bitcoin", asset.Crypto)
	_, err := l.Add(today, ledger.Buy, btc, money.Q(1), date.MustParse("2024-01-01"), "")
	require.NoError(t, err)

	c := cache.New()
	c.SetPrice("BTC", "USD", date.MustParse("2024-01-01"), decimal.NewFromInt(40000))
	c.SetPrice("BTC", "USD", today, decimal.NewFromInt(60000))

	e := New(l.GetAll(), priceFuncFromCache(c), "USD")

	value, err := e.PortfolioValue(context.Background(), today)
	require.NoError(t, err)
	assert.True(t, value.Equal(money.M(60000, "USD")))

	summary, err := e.PortfolioSummary(context.Background(), today)
	require.NoError(t, err)
	assert.True(t, summary.TotalInvested.Equal(money.M(40000, "USD")))
	assert.True(t, summary.TotalValue.Equal(money.M(60000, "USD")))
	assert.InDelta(t, 50.0, float64(summary.TotalReturnPct), 0.001)
}

func TestPartialSellScenario(t *testing.T) {
	today := date.MustParse("2025-06-01")
	l := ledger.New()
	eth := asset.New("ETH", "Ethereum", asset.Crypto)
	_, err := l.Add(today, ledger.Buy, eth, money.Q(10), date.MustParse("2024-06-01"), "")
	require.NoError(t, err)
	_, err = l.Add(today, ledger.Sell, eth, money.Q(4), date.MustParse("2024-12-01"), "")
	require.NoError(t, err)

	c := cache.New()
	c.SetPrice("ETH", "USD", date.MustParse("2024-06-01"), decimal.NewFromInt(2000))
	c.SetPrice("ETH", "USD", date.MustParse("2024-12-01"), decimal.NewFromInt(3000))
	c.SetPrice("ETH", "USD", today, decimal.NewFromInt(4000))

	e := New(l.GetAll(), priceFuncFromCache(c), "USD")
	summary, err := e.PortfolioSummary(context.Background(), today)
	require.NoError(t, err)

	assert.True(t, summary.TotalInvested.Equal(money.M(20000, "USD")))
	assert.True(t, summary.TotalReturned.Equal(money.M(12000, "USD")))
	assert.True(t, summary.TotalValue.Equal(money.M(24000, "USD")))
	assert.True(t, summary.TotalGainLoss.Equal(money.M(16000, "USD")))
	assert.InDelta(t, 80.0, float64(summary.TotalReturnPct), 0.001)
}

func TestChartCarryForward(t *testing.T) {
	l := ledger.New()
	today := date.MustParse("2024-02-01")
	goog := asset.New("GOOG", "Alphabet", asset.Stock)
	_, err := l.Add(today, ledger.Buy, goog, money.Q(1), date.MustParse("2024-01-01"), "")
	require.NoError(t, err)

	c := cache.New()
	// weekday prices only: Fri 2024-01-05 and Mon 2024-01-08
	c.SetPrice("GOOG", "USD", date.MustParse("2024-01-05"), decimal.NewFromInt(140))
	c.SetPrice("GOOG", "USD", date.MustParse("2024-01-08"), decimal.NewFromInt(150))

	e := New(l.GetAll(), priceFuncFromCache(c), "USD")
	points, err := e.PortfolioChart(context.Background(), date.MustParse("2024-01-05"), date.MustParse("2024-01-08"))
	require.NoError(t, err)
	require.Len(t, points, 4)

	assert.True(t, points[0].PortfolioValue.Equal(money.M(140, "USD"))) // Fri
	assert.True(t, points[1].PortfolioValue.Equal(money.M(140, "USD"))) // Sat carries Fri
	assert.True(t, points[2].PortfolioValue.Equal(money.M(140, "USD"))) // Sun carries Fri
	assert.True(t, points[3].PortfolioValue.Equal(money.M(150, "USD"))) // Mon
}

func TestChartRangeValidation(t *testing.T) {
	l := ledger.New()
	e := New(l.GetAll(), priceFuncFromCache(cache.New()), "USD")

	from := date.MustParse("2015-01-01")
	_, err := e.PortfolioChart(context.Background(), from, from.Add(3650))
	require.NoError(t, err)

	_, err = e.PortfolioChart(context.Background(), from, from.Add(3651))
	require.Error(t, err)

	_, err = e.PortfolioChart(context.Background(), from.Add(1), from)
	require.Error(t, err)
}

func TestAssetChartFailsForUnknownSymbol(t *testing.T) {
	l := ledger.New()
	e := New(l.GetAll(), priceFuncFromCache(cache.New()), "USD")
	_, err := e.AssetChart(context.Background(), "ZZZ", date.MustParse("2024-01-01"), date.MustParse("2024-01-02"))
	require.Error(t, err)
}
