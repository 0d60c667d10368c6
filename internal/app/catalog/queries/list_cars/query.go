package list_cars

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/light-bringer/carcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/carcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/carcat-service/internal/app/catalog/filter"
	"github.com/light-bringer/carcat-service/internal/app/catalog/readmodel"
)

// Request carries the raw query parameters of a listing.
type Request struct {
	Params map[string]string
}

// Response is one page of cars.
type Response struct {
	Count    int64
	Page     int
	PageSize int
	// Next and Previous are page numbers, nil at either end.
	Next     *int
	Previous *int
	Results  []*readmodel.CarDocument
}

// Pagination bounds the page size.
type Pagination struct {
	DefaultPageSize int
	MaxPageSize     int
}

// Query handles the list cars query use case.
type Query struct {
	readModel  contracts.ReadModel
	engine     *filter.Engine
	pagination Pagination
}

// NewQuery creates a new list cars query.
func NewQuery(readModel contracts.ReadModel, engine *filter.Engine, pagination Pagination) *Query {
	if pagination.DefaultPageSize <= 0 {
		pagination.DefaultPageSize = 30
	}
	if pagination.MaxPageSize < pagination.DefaultPageSize {
		pagination.MaxPageSize = pagination.DefaultPageSize
	}
	return &Query{
		readModel:  readModel,
		engine:     engine,
		pagination: pagination,
	}
}

// Execute compiles the filters and reads the requested page.
// A page past the end yields an empty result, not an error.
func (q *Query) Execute(ctx context.Context, req *Request) (*Response, error) {
	page, err := q.page(req.Params["page"])
	if err != nil {
		return nil, err
	}
	pageSize := q.pageSize(req.Params["page_size"])

	ordering, err := filter.ParseOrdering(req.Params["ordering"])
	if err != nil {
		return nil, err
	}

	plan, err := q.engine.Compile(req.Params)
	if err != nil {
		return nil, err
	}

	result, err := q.readModel.ListCars(ctx, &contracts.ListFilter{
		Plan:     plan,
		Ordering: ordering,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}

	resp := &Response{
		Count:    result.TotalCount,
		Page:     page,
		PageSize: pageSize,
		Results:  result.Cars,
	}
	last := lastPage(result.TotalCount, pageSize)
	if int64(page) < last {
		next := page + 1
		resp.Next = &next
	}
	if page > 1 {
		prev := page - 1
		if int64(prev) > last {
			prev = int(last)
		}
		if prev >= 1 {
			resp.Previous = &prev
		}
	}
	return resp, nil
}

func (q *Query) page(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, domain.NewValidationError("page", "expected a positive integer", nil)
	}
	return page, nil
}

// pageSize falls back to the default for unusable values and clamps to the maximum.
func (q *Query) pageSize(raw string) int {
	size, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || size < 1 {
		return q.pagination.DefaultPageSize
	}
	if size > q.pagination.MaxPageSize {
		return q.pagination.MaxPageSize
	}
	return size
}

// lastPage is computed by division so huge page numbers never overflow.
func lastPage(total int64, pageSize int) int64 {
	if total == 0 {
		return 1
	}
	return (total-1)/int64(pageSize) + 1
}
