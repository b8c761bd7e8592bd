package domain_test

import (
	"testing"

	"github.com/nikolayk812/cart-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestNewMoney(t *testing.T) {
	m, err := domain.NewMoney(decimal.RequireFromString("9.99"), "EUR")
	require.NoError(t, err)
	assert.Equal(t, currency.EUR, m.Currency)
	assert.True(t, m.Amount.Equal(decimal.RequireFromString("9.99")))

	_, err = domain.NewMoney(decimal.Zero, "XYZW")
	assert.ErrorContains(t, err, "currency[XYZW] is not valid")
}
