package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Money is a catalog price in a given ISO 4217 currency.
type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, isoCode string) (Money, error) {
	unit, err := currency.ParseISO(isoCode)
	if err != nil {
		return Money{}, fmt.Errorf("currency[%s] is not valid: %w", isoCode, err)
	}

	return Money{Amount: amount, Currency: unit}, nil
}
