package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyAdd(t *testing.T) {
	a := NewMoneyVND(decimal.NewFromInt(300))
	b := NewMoneyVND(decimal.NewFromInt(150))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(450)))
}

func TestMoneyAddCurrencyMismatch(t *testing.T) {
	a := NewMoneyVND(decimal.NewFromInt(100))
	b, err := NewMoney(decimal.NewFromInt(100), USD)
	require.NoError(t, err)

	_, err = a.Add(b)
	assert.Error(t, err)
}

func TestMoneyMultiplyByInt(t *testing.T) {
	price, err := NewMoneyVNDFromString("150.00")
	require.NoError(t, err)

	total := price.MultiplyByInt(3)
	assert.Equal(t, "450.00", total.StringFixed(2))
}

func TestMoneyDecimalExactness(t *testing.T) {
	// 0.1 + 0.2 must be exactly 0.3
	a, err := NewMoneyVNDFromString("0.1")
	require.NoError(t, err)
	b, err := NewMoneyVNDFromString("0.2")
	require.NoError(t, err)

	sum := a.MustAdd(b)
	expected, err := NewMoneyVNDFromString("0.3")
	require.NoError(t, err)
	assert.True(t, sum.Equals(expected))
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := NewMoneyVND(decimal.NewFromFloat(99.99))

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoneyScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("1450.00"))
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(1450)))
	assert.Equal(t, DefaultCurrency, m.Currency())
}
