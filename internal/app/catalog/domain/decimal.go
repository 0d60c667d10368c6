package domain

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// Bounds of a Spanner NUMERIC column.
const (
	NumericIntegerDigits = 29
	NumericScale         = 9
)

// ErrInvalidDecimal is returned for values that are not a plain decimal
// within NUMERIC bounds.
var ErrInvalidDecimal = errors.New("invalid decimal")

var plainDecimal = regexp.MustCompile(`^[+-]?([0-9]+)(?:\.([0-9]+))?$`)

// ParseDecimal parses a plain decimal such as "-12.50". Exponents, fractions
// and base prefixes are rejected, as are values with more than maxScale
// fractional digits or more integer digits than NUMERIC holds.
func ParseDecimal(s string, maxScale int) (*big.Rat, error) {
	s = strings.TrimSpace(s)
	m := plainDecimal.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("%w: %q is not a plain decimal", ErrInvalidDecimal, s)
	}
	if len(m[2]) > maxScale {
		return nil, fmt.Errorf("%w: %q has more than %d decimal places", ErrInvalidDecimal, s, maxScale)
	}
	if digits := strings.TrimLeft(m[1], "0"); len(digits) > NumericIntegerDigits {
		return nil, fmt.Errorf("%w: %q is out of range", ErrInvalidDecimal, s)
	}
	rat, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}
	return rat, nil
}
