// Package money provides exact decimal-backed monetary and quantity types
// shared by every other package in the engine: Money (a currency-tagged
// amount), Quantity (a unitless amount of an asset), and Percent (a
// display-only ratio). All arithmetic goes through shopspring/decimal so
// nothing is ever rounded until it is formatted for display.
package money

import (
	"fmt"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// numeric is the set of concrete types that can seed a Money or Quantity.
type numeric interface {
	float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal
}

func newDecimal[T numeric](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("money: unsupported numeric type")
	}
}

// Money is an exact amount denominated in an ISO-4217-ish currency code.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M builds a Money in the given currency from any supported numeric seed.
func M[T numeric](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// Zero returns a zero-valued Money in the given currency.
func Zero(currency string) Money { return Money{cur: currency} }

func (m Money) currency() gomoney.Currency {
	return *gomoney.New(0, m.cur).Currency()
}

// Currency returns the ISO currency code of m.
func (m Money) Currency() string { return m.cur }

// Decimal exposes the exact underlying value, for callers that need the raw
// decimal.
func (m Money) Decimal() decimal.Decimal { return m.value }

// String formats m using the currency's conventional fraction digits and
// symbol placement.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString is like String but prefixes a "+" for positive values and
// renders a zero amount as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(q Quantity) Money            { return Money{value: m.value.Mul(q.value), cur: m.cur} }
func (m Money) Div(q Quantity) Money            { return Money{value: m.value.Div(q.value), cur: m.cur} }

// DivPrice divides one money amount by a price expressed in the same
// currency, yielding a unitless Quantity (e.g. spend / price = units).
func (m Money) DivPrice(price Money) Quantity { return Quantity{value: m.value.Div(price.value)} }

// Add and Sub panic on currency mismatch, mirroring the accounting
// engine's refusal to silently mix currencies; an empty currency on either
// side defers to the other's.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: currencyOf(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: currencyOf(m, n)} }

func currencyOf(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic(fmt.Sprintf("money: currency mismatch %s != %s", a.cur, b.cur))
	}
	return a.cur
}

// AsFloat loses precision and exists only for callers that must interop
// with float64-only APIs (e.g. chart rendering on the host side).
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// MarshalJSON renders the amount rounded to the currency's fraction digits.
func (m Money) MarshalJSON() ([]byte, error) {
	rounded := m.value.Round(int32(m.currency().Fraction))
	return fmt.Appendf(nil, `{"currency":%q,"amount":%s}`, m.cur, rounded.String()), nil
}
