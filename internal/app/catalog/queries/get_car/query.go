package get_car

import (
	"context"

	"github.com/light-bringer/carcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/carcat-service/internal/app/catalog/readmodel"
)

// Request contains the car ID to retrieve.
type Request struct {
	CarID string
}

// Query handles the get car query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new get car query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves the detail document for one car.
func (q *Query) Execute(ctx context.Context, req *Request) (*readmodel.CarDocument, error) {
	return q.readModel.GetCar(ctx, req.CarID)
}
