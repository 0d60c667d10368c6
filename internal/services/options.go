package services

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/light-bringer/carcat-service/internal/app/catalog/filter"
	"github.com/light-bringer/carcat-service/internal/app/catalog/queries/get_car"
	"github.com/light-bringer/carcat-service/internal/app/catalog/queries/list_cars"
	"github.com/light-bringer/carcat-service/internal/app/catalog/repo"
	"github.com/light-bringer/carcat-service/internal/app/catalog/usecases/import_catalog"
	"github.com/light-bringer/carcat-service/internal/app/catalog/usecases/upload_cars"
	"github.com/light-bringer/carcat-service/internal/config"
	"github.com/light-bringer/carcat-service/internal/metrics"
	"github.com/light-bringer/carcat-service/internal/pkg/clock"
	"github.com/light-bringer/carcat-service/internal/transport/grpc/health"
	httphandler "github.com/light-bringer/carcat-service/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	CarsHandler   *httphandler.CarsHandler
	Importer      *import_catalog.Interactor
	HealthProbe   *health.Probe
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg config.Config, log *zap.Logger) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.Spanner.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	// 2. Create infrastructure components
	clk := clock.NewRealClock()
	comm := repo.NewCommitter(spannerClient)
	engine := filter.NewEngine(clk)

	// 3. Create repositories
	readModel := repo.NewReadModel(spannerClient)
	importRepo := repo.NewImportRepo(spannerClient)

	// 4. Create command use cases (write operations)
	uploadCars := upload_cars.NewInteractor(importRepo, comm)
	importCatalog := import_catalog.NewInteractor(importRepo, comm, clk, metrics.NewImportRecorder())

	// 5. Create query use cases (read operations)
	getCarQuery := get_car.NewQuery(readModel)
	listCarsQuery := list_cars.NewQuery(readModel, engine, list_cars.Pagination{
		DefaultPageSize: cfg.Catalog.DefaultPageSize,
		MaxPageSize:     cfg.Catalog.MaxPageSize,
	})

	// 6. Create transport handlers
	carsHandler := httphandler.NewCarsHandler(listCarsQuery, getCarQuery, uploadCars, readModel)
	probe := health.NewProbe(readModel, 15*time.Second, log.Named("health"))

	return &ServiceOptions{
		SpannerClient: spannerClient,
		CarsHandler:   carsHandler,
		Importer:      importCatalog,
		HealthProbe:   probe,
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
