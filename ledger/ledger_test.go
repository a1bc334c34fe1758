package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stonevault/svtk/asset"
	"github.com/stonevault/svtk/date"
	"github.com/stonevault/svtk/money"
)

var btc = asset.New("btc", "Bitcoin", asset.Crypto)

func TestAddRejectsNonPositiveAmount(t *testing.T) {
	l := New()
	today := date.MustParse("2024-06-01")
	_, err := l.Add(today, Buy, btc, money.Q(0), today, "")
	require.Error(t, err)
	assert.Equal(t, 0, l.Count())
}

func TestAddRejectsFutureDate(t *testing.T) {
	l := New()
	today := date.MustParse("2024-06-01")
	future := date.MustParse("2024-06-02")
	_, err := l.Add(today, Buy, btc, money.Q(1), future, "")
	require.Error(t, err)
}

func TestSellConsistencyRejectsOverdraw(t *testing.T) {
	l := New()
	today := date.MustParse("2024-06-01")
	_, err := l.Add(today, Buy, btc, money.Q(1), date.MustParse("2024-01-01"), "")
	require.NoError(t, err)

	_, err = l.Add(today, Sell, btc, money.Q(2), date.MustParse("2024-02-01"), "")
	require.Error(t, err)
	assert.Equal(t, 1, l.Count(), "ledger must be unchanged after a rejected sell")
}

func TestSellExactlyEqualToHoldingsIsAccepted(t *testing.T) {
	l := New()
	today := date.MustParse("2024-06-01")
	_, err := l.Add(today, Buy, btc, money.Q(1), date.MustParse("2024-01-01"), "")
	require.NoError(t, err)

	_, err = l.Add(today, Sell, btc, money.Q(1), date.MustParse("2024-02-01"), "")
	require.NoError(t, err)
	assert.Equal(t, 2, l.Count())
}

func TestRemoveRejectedWhenItBreaksConsistency(t *testing.T) {
	l := New()
	today := date.MustParse("2024-06-01")
	buy, err := l.Add(today, Buy, btc, money.Q(1), date.MustParse("2024-01-01"), "")
	require.NoError(t, err)
	_, err = l.Add(today, Sell, btc, money.Q(0.5), date.MustParse("2024-06-01"), "")
	require.NoError(t, err)

	err = l.Remove(buy.ID)
	require.Error(t, err)
	assert.Equal(t, 2, l.Count())

	err = l.RemoveToTrash(buy.ID)
	require.Error(t, err)
	assert.Equal(t, 2, l.Count())
	assert.Empty(t, l.Trash())
}

func TestUndoRoundTrip(t *testing.T) {
	l := New()
	today := date.MustParse("2024-06-01")
	sol := asset.New("sol", "Solana", asset.Crypto)
	e, err := l.Add(today, Buy, sol, money.Q(10), date.MustParse("2024-03-01"), "long term")
	require.NoError(t, err)

	require.NoError(t, l.RemoveToTrash(e.ID))
	assert.Equal(t, 0, l.Count())
	require.Len(t, l.Trash(), 1)

	restoredID, err := l.UndoLastRemoval()
	require.NoError(t, err)
	assert.Equal(t, e.ID, restoredID)
	require.Equal(t, 1, l.Count())
	assert.Equal(t, "long term", l.GetAll()[0].Notes)
	assert.Empty(t, l.Trash())
}

func TestGetAllOrdersNewestFirst(t *testing.T) {
	l := New()
	today := date.MustParse("2024-06-01")
	_, err := l.Add(today, Buy, btc, money.Q(1), date.MustParse("2024-01-01"), "first")
	require.NoError(t, err)
	_, err = l.Add(today, Buy, btc, money.Q(1), date.MustParse("2024-03-01"), "second")
	require.NoError(t, err)

	all := l.GetAll()
	require.Len(t, all, 2)
	assert.Equal(t, "second", all[0].Notes)
	assert.Equal(t, "first", all[1].Notes)
}

func TestSearchMatchesSymbolNameAndNotes(t *testing.T) {
	l := New()
	today := date.MustParse("2024-06-01")
	_, err := l.Add(today, Buy, btc, money.Q(1), date.MustParse("2024-01-01"), "tax lot A")
	require.NoError(t, err)

	assert.Len(t, l.Search("bitcoin"), 1)
	assert.Len(t, l.Search("BTC"), 1)
	assert.Len(t, l.Search("tax lot"), 1)
	assert.Len(t, l.Search("nonexistent"), 0)
}

func TestImportFromJSONRegeneratesIDsAndRollsBackOnFailure(t *testing.T) {
	l := New()
	today := date.MustParse("2024-06-01")

	good := `[
		{"id":"ignored","type":"buy","asset":{"symbol":"BTC","name":"Bitcoin","asset_type":"crypto"},"amount":"1","date":"2024-01-01","notes":null}
	]`
	n, err := l.ImportFromJSON(today, []byte(good))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NotEqual(t, "ignored", l.GetAll()[0].ID.String())

	bad := `[
		{"id":"x","type":"buy","asset":{"symbol":"ETH","name":"Ethereum","asset_type":"crypto"},"amount":"1","date":"2024-01-01","notes":null},
		{"id":"y","type":"sell","asset":{"symbol":"ETH","name":"Ethereum","asset_type":"crypto"},"amount":"5","date":"2024-02-01","notes":null}
	]`
	_, err = l.ImportFromJSON(today, []byte(bad))
	require.Error(t, err)
	assert.Equal(t, 1, l.Count(), "failed import must leave the ledger untouched")
}
