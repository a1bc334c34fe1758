package asset

import "encoding/json"

// MarshalJSON renders a in the export wire shape {symbol, name, asset_type}.
func (a Asset) MarshalJSON() ([]byte, error) {
	return json.Marshal(assetJSON{Symbol: a.Symbol, Name: a.Name, Type: a.Kind.String()})
}

// UnmarshalJSON parses the export wire shape, normalising the symbol.
func (a *Asset) UnmarshalJSON(b []byte) error {
	var raw assetJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	kind, err := ParseKind(raw.Type)
	if err != nil {
		return err
	}
	*a = New(raw.Symbol, raw.Name, kind)
	return nil
}

var (
	_ json.Marshaler   = Asset{}
	_ json.Unmarshaler = (*Asset)(nil)
)
