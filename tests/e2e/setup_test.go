//go:build integration

package e2e

import (
	"context"
	"testing"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/carcat-service/internal/app/catalog/filter"
	"github.com/light-bringer/carcat-service/internal/app/catalog/queries/get_car"
	"github.com/light-bringer/carcat-service/internal/app/catalog/queries/list_cars"
	"github.com/light-bringer/carcat-service/internal/app/catalog/repo"
	"github.com/light-bringer/carcat-service/internal/app/catalog/usecases/import_catalog"
	"github.com/light-bringer/carcat-service/internal/app/catalog/usecases/upload_cars"
	"github.com/light-bringer/carcat-service/internal/pkg/clock"
	"github.com/light-bringer/carcat-service/tests/testutil"
)

// Services holds all use cases and queries for E2E tests.
type Services struct {
	// Commands
	ImportCatalog *import_catalog.Interactor
	UploadCars    *upload_cars.Interactor

	// Queries
	GetCar   *get_car.Query
	ListCars *list_cars.Query

	// Infrastructure
	Clock  *clock.MockClock
	Client *spanner.Client
}

// setupTest wires every use case against a clean database, with the clock
// fixed at testutil.FixtureNow.
func setupTest(t *testing.T) (*Services, func()) {
	t.Helper()

	client, cleanup := testutil.SetupSpannerTest(t)

	clk := testutil.NewFixedClock(testutil.FixtureNow)
	comm := repo.NewCommitter(client)

	importRepo := repo.NewImportRepo(client)
	readModel := repo.NewReadModel(client)

	services := &Services{
		ImportCatalog: import_catalog.NewInteractor(importRepo, comm, clk, nil),
		UploadCars:    upload_cars.NewInteractor(importRepo, comm),
		GetCar:        get_car.NewQuery(readModel),
		ListCars: list_cars.NewQuery(readModel, filter.NewEngine(clk), list_cars.Pagination{
			DefaultPageSize: 30,
			MaxPageSize:     50,
		}),
		Clock:  clk,
		Client: client,
	}
	return services, cleanup
}

// setupCatalog is setupTest with testutil.FiveCarCatalog imported.
func setupCatalog(t *testing.T) (*Services, map[string]string, func()) {
	t.Helper()

	services, cleanup := setupTest(t)
	_, err := services.ImportCatalog.Execute(ctx(), &import_catalog.Request{FS: testutil.FiveCarCatalog()})
	if err != nil {
		cleanup()
		t.Fatalf("failed to import catalog: %v", err)
	}
	return services, testutil.CarIDsByCode(t, services.Client), cleanup
}

// ctx returns a context for testing.
func ctx() context.Context {
	return context.Background()
}
