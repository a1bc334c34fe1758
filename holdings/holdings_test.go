package holdings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stonevault/svtk/asset"
	"github.com/stonevault/svtk/date"
	"github.com/stonevault/svtk/ledger"
	"github.com/stonevault/svtk/money"
)

func TestAtFoldsBuysAndSells(t *testing.T) {
	today := date.MustParse("2024-12-01")
	l := ledger.New()
	eth := asset.New("eth", "Ethereum", asset.Crypto)
	_, err := l.Add(today, ledger.Buy, eth, money.Q(10), date.MustParse("2024-06-01"), "")
	require.NoError(t, err)
	_, err = l.Add(today, ledger.Sell, eth, money.Q(4), date.MustParse("2024-12-01"), "")
	require.NoError(t, err)

	m := At(l.GetAll(), today)
	pos, ok := m[eth.Identity()]
	require.True(t, ok)
	assert.True(t, pos.Amount.Equal(money.Q(6)))
}

func TestAtDropsNegligiblePositions(t *testing.T) {
	today := date.MustParse("2024-12-01")
	l := ledger.New()
	btc := asset.New("btc", "Bitcoin", asset.Crypto)
	_, err := l.Add(today, ledger.Buy, btc, money.Q(1), date.MustParse("2024-01-01"), "")
	require.NoError(t, err)
	_, err = l.Add(today, ledger.Sell, btc, money.Q(1), date.MustParse("2024-02-01"), "")
	require.NoError(t, err)

	m := At(l.GetAll(), today)
	_, ok := m[btc.Identity()]
	assert.False(t, ok)
}

func TestWalkMatchesAtOnEachDay(t *testing.T) {
	l := ledger.New()
	today := date.MustParse("2024-01-10")
	goog := asset.New("goog", "Alphabet", asset.Stock)
	_, err := l.Add(today, ledger.Buy, goog, money.Q(1), date.MustParse("2024-01-01"), "")
	require.NoError(t, err)

	from := date.MustParse("2024-01-05")
	to := date.MustParse("2024-01-08")
	var visited []date.Date
	Walk(l.GetAll(), from, to, func(d date.Date, snap Map, events []ledger.Event) {
		visited = append(visited, d)
		want := At(l.GetAll(), d)
		assert.Equal(t, want[goog.Identity()].Amount.String(), snap[goog.Identity()].Amount.String())
	})
	assert.Len(t, visited, 4)
}
