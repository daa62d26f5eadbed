package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(120.5), KES)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(120.5)))
		assert.Equal(t, KES, m.Currency())
	})

	t.Run("fails with empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), "")
		assert.Error(t, err)
	})
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("99.99", KES)
	require.NoError(t, err)
	assert.Equal(t, "99.99", m.Amount().String())

	_, err = NewMoneyFromString("abc", KES)
	assert.Error(t, err)
}

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		in      string
		want    Currency
		wantErr bool
	}{
		{"KES", KES, false},
		{"usd", USD, false},
		{" EUR ", EUR, false},
		{"XXXX", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCurrency(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoneyAdd(t *testing.T) {
	a := NewMoneyKES(decimal.NewFromInt(100))
	b := NewMoneyKES(decimal.NewFromInt(50))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(150)))

	_, err = a.Add(Zero(USD))
	assert.Error(t, err)
}

func TestMoneyApplyDiscount(t *testing.T) {
	m := NewMoneyKES(decimal.NewFromInt(200))

	discounted := m.ApplyDiscount(decimal.NewFromFloat(0.10))

	assert.True(t, discounted.Amount().Equal(decimal.NewFromInt(180)))
	assert.Equal(t, KES, discounted.Currency())
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "KES 120.50", NewMoneyKES(decimal.NewFromFloat(120.5)).String())
	assert.Equal(t, "KES 80.00", NewMoneyKES(decimal.NewFromInt(80)).String())
}

func TestMoneyEquals(t *testing.T) {
	a := NewMoneyKES(decimal.NewFromInt(10))
	assert.True(t, a.Equals(NewMoneyKES(decimal.NewFromFloat(10.0))))
	assert.False(t, a.Equals(Zero(KES)))
	assert.True(t, a.IsPositive())
	assert.True(t, Zero(KES).IsZero())
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(NewMoneyKES(decimal.NewFromFloat(12.5)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"12.5","currency":"KES"}`, string(data))
}
