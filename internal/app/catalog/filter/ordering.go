package filter

import (
	"strings"

	"github.com/light-bringer/carcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/carcat-service/internal/models/m_car"
	"github.com/light-bringer/carcat-service/internal/pkg/query"
)

var orderingColumns = map[string]string{
	"created_at": m_car.CreatedAt,
	"price":      m_car.Price,
	"year":       m_car.Year,
	"km":         m_car.KM,
}

// Ordering is a validated sort for the car listing.
type Ordering struct {
	Column    string
	Direction query.Direction
}

// DefaultOrdering lists newest cars first.
var DefaultOrdering = Ordering{Column: m_car.CreatedAt, Direction: query.Desc}

// ParseOrdering reads an ordering parameter such as "price" or "-year".
// A blank value yields DefaultOrdering.
func ParseOrdering(raw string) (Ordering, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultOrdering, nil
	}
	dir := query.Asc
	name := raw
	if strings.HasPrefix(raw, "-") {
		dir = query.Desc
		name = raw[1:]
	}
	column, ok := orderingColumns[name]
	if !ok {
		return Ordering{}, domain.NewValidationError("ordering", "unsupported ordering "+raw, nil)
	}
	return Ordering{Column: column, Direction: dir}, nil
}

// Apply adds the sort plus a car_id tie-breaker so pages are stable.
func (o Ordering) Apply(b *query.Builder) *query.Builder {
	return b.OrderBy(m_car.Col(o.Column), o.Direction).OrderBy(m_car.Col(m_car.CarID), query.Asc)
}
