package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid money creation", func(t *testing.T) {
		m, err := NewMoney(54999950, 100)
		require.NoError(t, err)
		assert.Equal(t, "549999.50", m.String())
	})

	t.Run("zero denominator returns error", func(t *testing.T) {
		_, err := NewMoney(100, 0)
		assert.Error(t, err)
	})
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "integer", input: "650000", want: "650000.00"},
		{name: "two decimals", input: "650000.75", want: "650000.75"},
		{name: "surrounding space", input: " 12.5 ", want: "12.50"},
		{name: "zero", input: "0", want: "0.00"},
		{name: "three decimals", input: "1.005", wantErr: true},
		{name: "negative", input: "-5", wantErr: true},
		{name: "exponent", input: "1e6", wantErr: true},
		{name: "fraction", input: "1/3", wantErr: true},
		{name: "hex prefix", input: "0x10", wantErr: true},
		{name: "binary prefix", input: "0b1", wantErr: true},
		{name: "garbage", input: "lots", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMoney(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.String())
		})
	}

	_, err := ParseMoney("-1")
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestMoney_Divide(t *testing.T) {
	m1, _ := NewMoney(100, 1)
	zero, _ := NewMoney(0, 1)

	_, err := m1.Divide(zero)
	assert.Error(t, err)
}

func TestDiscountPercent(t *testing.T) {
	mustParse := func(s string) *Money {
		m, err := ParseMoney(s)
		require.NoError(t, err)
		return m
	}

	t.Run("rounds to two decimals", func(t *testing.T) {
		pct, ok := DiscountPercent(mustParse("300000"), mustParse("200000"))
		require.True(t, ok)
		assert.Equal(t, "33.33", pct)
	})

	t.Run("whole percentage", func(t *testing.T) {
		pct, ok := DiscountPercent(mustParse("500000"), mustParse("450000"))
		require.True(t, ok)
		assert.Equal(t, "10.00", pct)
	})

	t.Run("no discount", func(t *testing.T) {
		_, ok := DiscountPercent(mustParse("500000"), nil)
		assert.False(t, ok)
	})

	t.Run("zero price is guarded", func(t *testing.T) {
		_, ok := DiscountPercent(mustParse("0"), mustParse("0"))
		assert.False(t, ok)
	})
}

func TestValidateDiscount(t *testing.T) {
	price, err := ParseMoney("500000")
	require.NoError(t, err)

	tests := []struct {
		name     string
		discount string
		wantErr  bool
	}{
		{"below price", "450000", false},
		{"equal to price", "500000", false},
		{"above price", "500001", true},
		{"zero", "0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseMoney(tt.discount)
			require.NoError(t, err)
			err = ValidateDiscount(price, d)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDiscount)
				return
			}
			assert.NoError(t, err)
		})
	}

	t.Run("no discount", func(t *testing.T) {
		assert.NoError(t, ValidateDiscount(price, nil))
	})
}
