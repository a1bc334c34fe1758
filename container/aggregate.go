package container

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/stonevault/svtk/cache"
	"github.com/stonevault/svtk/date"
	"github.com/stonevault/svtk/ledger"
	"github.com/stonevault/svtk/svtkerr"
)

// Aggregate is the persisted root per spec §3: events, trash, cache, and
// settings. The non-persisted `dirty` flag lives on the facade, not here.
type Aggregate struct {
	Events   []EventSnapshot     `msgpack:"events"`
	Trash    []EventSnapshot     `msgpack:"trash"`
	Cache    []cache.PairSnapshot `msgpack:"cache"`
	Settings Settings            `msgpack:"settings"`
}

// EventSnapshot is the msgpack-serializable form of a ledger.Event; ledger
// events carry an unexported insertion-order field, so this package stores
// its own flat shape instead of round-tripping the type directly.
type EventSnapshot struct {
	ID     string  `msgpack:"id"`
	Type   string  `msgpack:"type"`
	Symbol string  `msgpack:"symbol"`
	Name   string  `msgpack:"name"`
	Kind   string  `msgpack:"kind"`
	Amount string  `msgpack:"amount"`
	Date   date.Date `msgpack:"date"`
	Notes  string  `msgpack:"notes"`
}

// Settings is the persisted (defaultCurrency, apiKeys) pair.
type Settings struct {
	DefaultCurrency string            `msgpack:"default_currency"`
	APIKeys         map[string]string `msgpack:"api_keys"`
}

// ToSnapshot converts a ledger.Event into its persisted form.
func ToSnapshot(e ledger.Event) EventSnapshot {
	return EventSnapshot{
		ID:     e.ID.String(),
		Type:   e.Type.String(),
		Symbol: e.Asset.Symbol,
		Name:   e.Asset.Name,
		Kind:   e.Asset.Kind.String(),
		Amount: e.Amount.String(),
		Date:   e.Date,
		Notes:  e.Notes,
	}
}

// marshal serializes an Aggregate to msgpack bytes.
func marshal(agg Aggregate) ([]byte, error) {
	b, err := msgpack.Marshal(agg)
	if err != nil {
		return nil, svtkerr.Wrap(svtkerr.Serialization, err, "encoding portfolio aggregate")
	}
	return b, nil
}

// unmarshal deserializes msgpack bytes back into an Aggregate. It is only
// ever called on plaintext that has just passed AEAD authentication, so a
// parse failure here is reported the same way a wrong password is: per
// spec §4.6, a corrupt plaintext must not be distinguishable from a
// decryption failure.
func unmarshal(b []byte) (Aggregate, error) {
	var agg Aggregate
	if err := msgpack.Unmarshal(b, &agg); err != nil {
		return Aggregate{}, svtkerr.Wrap(svtkerr.Decryption, err, "decoding portfolio aggregate")
	}
	return agg, nil
}
