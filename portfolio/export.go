package portfolio

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/stonevault/svtk/cache"
	"github.com/stonevault/svtk/svtkerr"
)

// ExportEventsToJSON emits a JSON array of live events, in the shape
// [{id, type, asset:{symbol,name,asset_type}, amount, date, notes|null}, ...].
func (p *Portfolio) ExportEventsToJSON() ([]byte, error) {
	b, err := json.Marshal(p.ledger.GetAll())
	if err != nil {
		return nil, svtkerr.Wrap(svtkerr.Serialization, err, "exporting events to JSON")
	}
	return b, nil
}

// debugDump is the unencrypted, full-fidelity shape ToJSON emits; it is for
// debugging only and is never the persistence format (see container.Save).
type debugDump struct {
	Events   json.RawMessage      `json:"events"`
	Trash    json.RawMessage      `json:"trash"`
	Cache    []cache.PairSnapshot `json:"cache"`
	Settings Settings             `json:"settings"`
	Dirty    bool                 `json:"dirty"`
}

// ToJSON emits the full portfolio aggregate, unencrypted, for debugging.
func (p *Portfolio) ToJSON() ([]byte, error) {
	events, err := json.Marshal(p.ledger.GetAll())
	if err != nil {
		return nil, svtkerr.Wrap(svtkerr.Serialization, err, "encoding events")
	}
	trash, err := json.Marshal(p.ledger.Trash())
	if err != nil {
		return nil, svtkerr.Wrap(svtkerr.Serialization, err, "encoding trash")
	}
	b, err := json.MarshalIndent(debugDump{
		Events:   events,
		Trash:    trash,
		Cache:    p.cache.Snapshot(),
		Settings: p.Settings(),
		Dirty:    p.dirty,
	}, "", "  ")
	if err != nil {
		return nil, svtkerr.Wrap(svtkerr.Serialization, err, "encoding portfolio debug dump")
	}
	return b, nil
}

// csvHeader matches spec §6's required column order exactly.
const csvHeader = "id,type,symbol,name,asset_type,amount,date,notes"

// ExportCSV emits the live events as RFC-4180-style CSV: fields containing
// a comma, double quote, or newline are double-quoted, with embedded quotes
// doubled.
func (p *Portfolio) ExportCSV() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(csvHeader)
	buf.WriteString("\r\n")

	for _, e := range p.ledger.GetAll() {
		fields := []string{
			e.ID.String(),
			e.Type.String(),
			e.Asset.Symbol,
			e.Asset.Name,
			e.Asset.Kind.String(),
			e.Amount.String(),
			e.Date.String(),
			e.Notes,
		}
		for i, f := range fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(csvEscape(f))
		}
		buf.WriteString("\r\n")
	}
	return buf.Bytes(), nil
}

func csvEscape(field string) string {
	if strings.ContainsAny(field, ",\"\n\r") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}
