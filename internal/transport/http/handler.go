package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/light-bringer/carcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/carcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/carcat-service/internal/app/catalog/queries/get_car"
	"github.com/light-bringer/carcat-service/internal/app/catalog/queries/list_cars"
	"github.com/light-bringer/carcat-service/internal/app/catalog/readmodel"
	"github.com/light-bringer/carcat-service/internal/app/catalog/usecases/upload_cars"
	"github.com/light-bringer/carcat-service/internal/logger"
)

const maxUploadBytes = 10 << 20

// CarLister runs a catalog listing.
type CarLister interface {
	Execute(ctx context.Context, req *list_cars.Request) (*list_cars.Response, error)
}

// CarGetter loads one detail document.
type CarGetter interface {
	Execute(ctx context.Context, req *get_car.Request) (*readmodel.CarDocument, error)
}

// CarUploader runs a dealer's bulk upload.
type CarUploader interface {
	Execute(ctx context.Context, req *upload_cars.Request) (*upload_cars.Response, error)
}

// CarsHandler serves the catalog endpoints.
type CarsHandler struct {
	list          CarLister
	get           CarGetter
	upload        CarUploader
	health        contracts.HealthChecker
	errorHandlers []errorHandler
}

// NewCarsHandler creates a new HTTP catalog handler.
func NewCarsHandler(list CarLister, get CarGetter, upload CarUploader, health contracts.HealthChecker) *CarsHandler {
	return &CarsHandler{
		list:          list,
		get:           get,
		upload:        upload,
		health:        health,
		errorHandlers: defaultErrorHandlers(),
	}
}

// ListResponse is one page of the catalog.
type ListResponse struct {
	Count    int64                    `json:"count"`
	Page     int                      `json:"page"`
	PageSize int                      `json:"page_size"`
	Next     *int                     `json:"next"`
	Previous *int                     `json:"previous"`
	Results  []*readmodel.CarDocument `json:"results"`
}

// UploadResponse reports a bulk upload.
type UploadResponse struct {
	Status     string `json:"status"`
	Created    int    `json:"created"`
	Updated    int    `json:"updated"`
	Skipped    int    `json:"skipped"`
	Highlights int    `json:"highlights"`
	Reasons    int    `json:"reasons_to_buy"`
}

// ListCars handles GET /api/cars.
func (h *CarsHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	resp, err := h.list.Execute(r.Context(), &list_cars.Request{Params: queryParams(r)})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	results := resp.Results
	if results == nil {
		results = []*readmodel.CarDocument{}
	}
	writeJSON(w, http.StatusOK, ListResponse{
		Count:    resp.Count,
		Page:     resp.Page,
		PageSize: resp.PageSize,
		Next:     resp.Next,
		Previous: resp.Previous,
		Results:  results,
	})
}

// GetCar handles GET /api/cars/{id}.
func (h *CarsHandler) GetCar(w http.ResponseWriter, r *http.Request) {
	doc, err := h.get.Execute(r.Context(), &get_car.Request{CarID: chi.URLParam(r, "id")})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// UploadCars handles POST /api/cars/import/csv with a multipart "file" and "dealer_id".
func (h *CarsHandler) UploadCars(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.handleError(w, r, domain.NewValidationError("file", "expected a multipart form", err))
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		h.handleError(w, r, domain.NewValidationError("file", "is required", err))
		return
	}
	defer file.Close()

	resp, err := h.upload.Execute(r.Context(), &upload_cars.Request{
		DealerID: r.FormValue("dealer_id"),
		File:     file,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, UploadResponse{
		Status:     "CSV imported successfully",
		Created:    resp.Created,
		Updated:    resp.Updated,
		Skipped:    resp.Skipped,
		Highlights: resp.Highlights,
		Reasons:    resp.Reasons,
	})
}

// Health handles GET /health.
func (h *CarsHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.health.Ping(r.Context()); err != nil {
		logger.FromContext(r.Context()).Warn("store not ready", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// queryParams flattens the query string. A repeated parameter keeps its last value.
func queryParams(r *http.Request) map[string]string {
	values := r.URL.Query()
	params := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			params[strings.TrimSpace(k)] = v[len(v)-1]
		}
	}
	return params
}
