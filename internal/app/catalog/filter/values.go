package filter

import (
	"strconv"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/light-bringer/carcat-service/internal/app/catalog/domain"
)

func parseValue(param, raw string, vt ValueType) (interface{}, error) {
	raw = strings.TrimSpace(raw)
	switch vt {
	case Int:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, domain.NewValidationError(param, "expected an integer", nil)
		}
		return v, nil
	case Decimal:
		v, err := domain.ParseDecimal(raw, domain.NumericScale)
		if err != nil {
			return nil, domain.NewValidationError(param, "expected a decimal number", err)
		}
		return v, nil
	case Count:
		return parseCount(param, raw)
	case Float:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, domain.NewValidationError(param, "expected a number", nil)
		}
		return v, nil
	case Date, Day:
		v, err := civil.ParseDate(raw)
		if err != nil {
			return nil, domain.NewValidationError(param, "expected a date (YYYY-MM-DD)", nil)
		}
		return v, nil
	}
	return nil, domain.NewValidationError(param, "unsupported value type", nil)
}

func parseCount(param, raw string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || v < 0 {
		return 0, domain.NewValidationError(param, "expected a non-negative integer", nil)
	}
	return v, nil
}

func parseBool(param, raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	}
	return false, domain.NewValidationError(param, "expected true or false", nil)
}

// splitList splits a comma-separated list, dropping blank entries. A list
// with no entries is rejected so that it never silently matches everything.
func splitList(param, raw string) ([]string, error) {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	if len(values) == 0 {
		return nil, domain.NewValidationError(param, "empty value list", nil)
	}
	return values, nil
}
