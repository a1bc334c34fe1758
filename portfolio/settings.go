package portfolio

import (
	"regexp"
	"strings"

	"github.com/stonevault/svtk/svtkerr"
)

// DefaultCurrency is used for a freshly constructed Portfolio.
const DefaultCurrency = "USD"

var currencyCodeRE = regexp.MustCompile(`^[A-Z]{3}$`)

// Settings is (defaultCurrency, apiKeys: provider -> key).
type Settings struct {
	DefaultCurrency string
	APIKeys         map[string]string
}

func defaultSettings() Settings {
	return Settings{DefaultCurrency: DefaultCurrency, APIKeys: make(map[string]string)}
}

// validateCurrency uppercases code and rejects anything but exactly 3 ASCII
// letters.
func validateCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !currencyCodeRE.MatchString(code) {
		return "", svtkerr.NewValidationf("currency code %q must be exactly 3 ASCII letters", code)
	}
	return code, nil
}
