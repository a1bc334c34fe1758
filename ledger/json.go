package ledger

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/stonevault/svtk/asset"
	"github.com/stonevault/svtk/date"
	"github.com/stonevault/svtk/money"
)

// eventJSON mirrors the export/import wire shape:
// {id, type, asset:{symbol,name,asset_type}, amount, date, notes|null}.
type eventJSON struct {
	ID     string          `json:"id"`
	Type   string          `json:"type"`
	Asset  asset.Asset     `json:"asset"`
	Amount money.Quantity  `json:"amount"`
	Date   date.Date       `json:"date"`
	Notes  *string         `json:"notes"`
}

func (e Event) MarshalJSON() ([]byte, error) {
	var notes *string
	if e.Notes != "" {
		notes = &e.Notes
	}
	return json.Marshal(eventJSON{
		ID:     e.ID.String(),
		Type:   e.Type.String(),
		Asset:  e.Asset,
		Amount: e.Amount,
		Date:   e.Date,
		Notes:  notes,
	})
}

func (e *Event) UnmarshalJSON(b []byte) error {
	var raw eventJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	typ, err := ParseType(raw.Type)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(raw.ID)
	if err != nil {
		// Import regenerates IDs, so a missing/invalid one is fine; export
		// always writes a valid one.
		id = uuid.Nil
	}
	notes := ""
	if raw.Notes != nil {
		notes = *raw.Notes
	}
	*e = Event{ID: id, Type: typ, Asset: raw.Asset, Amount: raw.Amount, Date: raw.Date, Notes: notes}
	return nil
}

var (
	_ json.Marshaler   = Event{}
	_ json.Unmarshaler = (*Event)(nil)
)
