package contracts

import (
	"context"

	"github.com/light-bringer/carcat-service/internal/app/catalog/filter"
	"github.com/light-bringer/carcat-service/internal/app/catalog/readmodel"
)

// ListFilter is a compiled listing request.
type ListFilter struct {
	Plan     *filter.Plan
	Ordering filter.Ordering
	Page     int // 1-based
	PageSize int
}

// ListResult contains one page of assembled cars.
type ListResult struct {
	Cars       []*readmodel.CarDocument
	TotalCount int64
}

// ReadModel defines the interface for catalog queries.
// Read models bypass the import path and assemble documents directly.
type ReadModel interface {
	// GetCar assembles the detail document for one car
	GetCar(ctx context.Context, carID string) (*readmodel.CarDocument, error)

	// ListCars assembles one page of cars matching the filter
	ListCars(ctx context.Context, filter *ListFilter) (*ListResult, error)
}

// HealthChecker reports whether the store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
