package store

import (
	"strings"

	"github.com/mveges/grocery/internal/domain/shared"
	"github.com/mveges/grocery/internal/domain/shared/valueobject"
)

// Default store settings
const (
	DefaultName     = "M-Veges Grocery Store"
	DefaultLocation = "Nairobi, Kenya"
)

// ErrInvalidSettings is returned when settings cannot describe a store
var ErrInvalidSettings = shared.NewDomainError("INVALID_SETTINGS", "Store settings require a name, location and currency")

// Settings describes the store itself. It is read-only once the application starts.
type Settings struct {
	Name     string
	Location string
	Currency valueobject.Currency
	IsOpen   bool
}

// DefaultSettings returns the settings the store ships with
func DefaultSettings() Settings {
	return Settings{
		Name:     DefaultName,
		Location: DefaultLocation,
		Currency: valueobject.DefaultCurrency,
		IsOpen:   true,
	}
}

// NewSettings builds settings from configured values
func NewSettings(name, location, currency string, isOpen bool) (Settings, error) {
	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)
	if name == "" || location == "" {
		return Settings{}, ErrInvalidSettings
	}
	cur, err := valueobject.ParseCurrency(currency)
	if err != nil {
		return Settings{}, ErrInvalidSettings
	}
	return Settings{
		Name:     name,
		Location: location,
		Currency: cur,
		IsOpen:   isOpen,
	}, nil
}

// Status returns "Open" or "Closed"
func (s Settings) Status() string {
	if s.IsOpen {
		return "Open"
	}
	return "Closed"
}
