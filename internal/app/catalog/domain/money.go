package domain

import (
	"fmt"
	"math/big"
	"strings"
)

// Money represents a monetary value with precise decimal arithmetic using big.Rat.
// It stores the value as a rational number (numerator/denominator) to avoid floating-point precision issues.
type Money struct {
	rat *big.Rat
}

// NewMoney creates a new Money instance from numerator and denominator.
// Example: NewMoney(54999900, 100) represents 549999.00
func NewMoney(numerator, denominator int64) (*Money, error) {
	if denominator == 0 {
		return nil, fmt.Errorf("denominator cannot be zero")
	}

	rat := big.NewRat(numerator, denominator)
	return &Money{rat: rat}, nil
}

// NewMoneyFromRat creates a new Money instance from a big.Rat.
func NewMoneyFromRat(rat *big.Rat) *Money {
	if rat == nil {
		return &Money{rat: big.NewRat(0, 1)}
	}
	return &Money{rat: new(big.Rat).Set(rat)}
}

// ParseMoney parses a decimal string such as "549999.50".
// At most two fractional digits are accepted and the value must not be negative.
func ParseMoney(s string) (*Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}
	rat, err := ParseDecimal(s, 2)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	if rat.Sign() < 0 {
		return nil, ErrNegativePrice
	}
	return &Money{rat: rat}, nil
}

// Rat returns a copy of the underlying rational value.
func (m *Money) Rat() *big.Rat {
	return new(big.Rat).Set(m.rat)
}

// Subtract subtracts another Money value from this one and returns a new Money instance.
func (m *Money) Subtract(other *Money) *Money {
	result := new(big.Rat).Sub(m.rat, other.rat)
	return &Money{rat: result}
}

// Divide divides this Money value by another and returns a new Money instance.
func (m *Money) Divide(other *Money) (*Money, error) {
	if other.rat.Sign() == 0 {
		return nil, fmt.Errorf("cannot divide by zero")
	}
	result := new(big.Rat).Quo(m.rat, other.rat)
	return &Money{rat: result}, nil
}

// IsZero returns true if the money value is zero.
func (m *Money) IsZero() bool {
	return m.rat.Sign() == 0
}

// IsPositive returns true if the money value is positive.
func (m *Money) IsPositive() bool {
	return m.rat.Sign() > 0
}

// Cmp compares m and other, returning -1, 0 or +1.
func (m *Money) Cmp(other *Money) int {
	return m.rat.Cmp(other.rat)
}

// String returns the value with exactly two decimal places, rounded half away from zero.
func (m *Money) String() string {
	return m.rat.FloatString(2)
}

// ValidateDiscount checks that a discounted price is positive and not above price.
func ValidateDiscount(price, discounted *Money) error {
	if discounted == nil {
		return nil
	}
	if price == nil || !discounted.IsPositive() || discounted.Cmp(price) > 0 {
		return ErrInvalidDiscount
	}
	return nil
}

// DiscountPercent returns ((price - discounted) / price) * 100 rounded to two
// decimals. ok is false when there is no discount or price is zero.
func DiscountPercent(price, discounted *Money) (percent string, ok bool) {
	if price == nil || discounted == nil || !price.IsPositive() {
		return "", false
	}
	ratio, err := price.Subtract(discounted).Divide(price)
	if err != nil {
		return "", false
	}
	pct := new(big.Rat).Mul(ratio.rat, big.NewRat(100, 1))
	return pct.FloatString(2), true
}
