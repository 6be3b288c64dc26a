package dto

import (
	"github.com/Rhymond/go-money"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
)

// DefaultCurrency is used when the configured currency is unknown or not cent based
const DefaultCurrency = money.USD

// MoneyFormatter renders cent amounts for responses
type MoneyFormatter struct {
	currency string
}

// NewMoneyFormatter creates a formatter for an ISO 4217 code. Ledger amounts have
// exactly two decimal places, so currencies with another fraction fall back to USD.
func NewMoneyFormatter(code string) *MoneyFormatter {
	currency := money.GetCurrency(code)
	if currency == nil || currency.Fraction != entity.MaxDecimalPlaces {
		return &MoneyFormatter{currency: DefaultCurrency}
	}
	return &MoneyFormatter{currency: currency.Code}
}

// Currency returns the ISO code used for display
func (f *MoneyFormatter) Currency() string {
	return f.currency
}

// Amount converts cents into the API amount representation
func (f *MoneyFormatter) Amount(cents int64) Amount {
	return Amount{
		Value:   entity.FormatAmount(cents),
		Cents:   cents,
		Display: money.New(cents, f.currency).Display(),
	}
}

// Amount is a money value as exact decimal text, integer cents and a display string
type Amount struct {
	Value   string `json:"value"`
	Cents   int64  `json:"cents"`
	Display string `json:"display"`
}
