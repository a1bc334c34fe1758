// Package asset defines the tradable instrument identity shared by the
// ledger, price cache, and resolver: a (symbol, kind) tuple normalised on
// ingress so callers never have to re-validate or re-uppercase it.
package asset

import (
	"strings"

	"github.com/stonevault/svtk/svtkerr"
)

// Kind enumerates the classes of instrument the engine tracks.
type Kind int

const (
	Crypto Kind = iota
	Fiat
	Metal
	Stock
)

func (k Kind) String() string {
	switch k {
	case Crypto:
		return "crypto"
	case Fiat:
		return "fiat"
	case Metal:
		return "metal"
	case Stock:
		return "stock"
	default:
		return "unknown"
	}
}

// ParseKind parses a case-insensitive Kind name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "crypto":
		return Crypto, nil
	case "fiat":
		return Fiat, nil
	case "metal":
		return Metal, nil
	case "stock":
		return Stock, nil
	default:
		return 0, svtkerr.NewValidationf("unknown asset kind %q", s)
	}
}

// Asset identifies one tradable instrument. Identity (equality, map keying)
// is Symbol+Kind only; Name is descriptive and does not participate.
type Asset struct {
	Symbol string
	Name   string
	Kind   Kind
}

// New builds an Asset, uppercasing the symbol as required on ingress.
func New(symbol, name string, kind Kind) Asset {
	return Asset{Symbol: strings.ToUpper(strings.TrimSpace(symbol)), Name: name, Kind: kind}
}

// Key is the comparable identity of an Asset, suitable as a map key.
type Key struct {
	Symbol string
	Kind   Kind
}

// Identity returns a's comparable identity key.
func (a Asset) Identity() Key { return Key{Symbol: a.Symbol, Kind: a.Kind} }

// Equal reports whether a and b share the same identity, ignoring Name.
func (a Asset) Equal(b Asset) bool { return a.Identity() == b.Identity() }

func (a Asset) String() string { return a.Symbol + ":" + a.Kind.String() }

// assetJSON mirrors the wire shape used by JSON export/import:
// {symbol, name, asset_type}.
type assetJSON struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Type   string `json:"asset_type"`
}
