package money

import "fmt"

// Percent is a display-only ratio (e.g. a return percentage or portfolio
// allocation share), stored as a plain float64 since it is only ever
// derived for presentation, never accumulated or fed back into exact
// decimal computations.
type Percent float64

// Equal compares two percentages within a small fixed tolerance, since they
// are usually derived from divisions that don't land on exact floats.
func (p Percent) Equal(q Percent) bool {
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string { return fmt.Sprintf("%.2f%%", float64(p)) }

// SignedString prefixes "+" for positive values and renders a (near-)zero
// value as "-".
func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}
