package provider

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// ExtractField decodes body as JSON and evaluates a jsonpath expression
// against it, returning the matched value. Concrete adapters use this
// instead of hand-rolling a struct per provider response shape, since the
// providers this registry targets (CoinCap, Frankfurter, metals.dev,
// YahooFinance, AlphaVantage) each nest the quote differently.
func ExtractField(body []byte, path string) (any, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("provider: decoding response body: %w", err)
	}
	result, err := jsonpath.Get(path, v)
	if err != nil {
		return nil, fmt.Errorf("provider: evaluating jsonpath %q: %w", path, err)
	}
	return result, nil
}

// ExtractFloat is ExtractField plus a numeric coercion, for the common case
// of pulling a bare price out of a provider's JSON response.
func ExtractFloat(body []byte, path string) (float64, error) {
	v, err := ExtractField(body, path)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case json.Number:
		return n.Float64()
	default:
		return 0, fmt.Errorf("provider: value at %q is not numeric: %v", path, v)
	}
}
