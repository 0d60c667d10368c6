//go:build integration

package e2e

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/carcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/carcat-service/internal/app/catalog/queries/get_car"
	"github.com/light-bringer/carcat-service/internal/app/catalog/queries/list_cars"
	"github.com/light-bringer/carcat-service/internal/app/catalog/usecases/upload_cars"
	"github.com/light-bringer/carcat-service/tests/testutil"
)

func dealerID(t *testing.T, s *Services, carID string) string {
	t.Helper()
	doc, err := s.GetCar.Execute(ctx(), &get_car.Request{CarID: carID})
	require.NoError(t, err)
	return doc.Dealer.ID
}

func TestUploadCars_CreatesAndUpdates(t *testing.T) {
	services, ids, cleanup := setupCatalog(t)
	defer cleanup()
	d1 := dealerID(t, services, ids["C1"])

	resp, err := services.UploadCars.Execute(ctx(), BuildUpload(d1,
		// existing C1, matched on registration
		NewListingBuilder("MH12AB1001").WithTitle("Honda City ZX (new photos)").WithPrice("540000").
			WithHighlights("Single owner", "New tyres").
			WithReason("Warranty", "Extended to two years"),
		NewListingBuilder("MH12AB9999").WithCode("C9").
			WithReason("Low mileage", "Barely driven").WithReason("Certified", "200 point check"),
		NewListingBuilder("MH12AB8888"),
	))
	require.NoError(t, err)

	assert.Equal(t, &upload_cars.Response{Created: 2, Updated: 1, Highlights: 1, Reasons: 3}, resp)

	doc, err := services.GetCar.Execute(ctx(), &get_car.Request{CarID: ids["C1"]})
	require.NoError(t, err)
	assert.Equal(t, "Honda City ZX (new photos)", doc.Title)
	assert.Equal(t, "540000.00", doc.Price)
	assert.Len(t, doc.Highlights, 3)
	require.Len(t, doc.ReasonsToBuy, 1)
	assert.Equal(t, "Extended to two years", doc.ReasonsToBuy[0].Description)
	// columns outside the listing survive the upload
	assert.Equal(t, []string{"suv", "certified"}, doc.Tags)

	ids = testutil.CarIDsByCode(t, services.Client)
	assert.Contains(t, ids, "C9")
	assert.Len(t, ids, 7)

	generated := 0
	for code := range ids {
		if strings.HasPrefix(code, "CAR-") {
			generated++
		}
	}
	assert.Equal(t, 1, generated)

	listed, err := services.ListCars.Execute(ctx(), &list_cars.Request{Params: map[string]string{"dealer_id": d1}})
	require.NoError(t, err)
	assert.Equal(t, int64(4), listed.Count)
}

func TestUploadCars_Rejections(t *testing.T) {
	services, ids, cleanup := setupCatalog(t)
	defer cleanup()

	_, err := services.UploadCars.Execute(ctx(), BuildUpload("11111111-1111-1111-1111-111111111111",
		NewListingBuilder("MH12AB7777")))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = services.UploadCars.Execute(ctx(), &upload_cars.Request{DealerID: dealerID(t, services, ids["C1"])})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "file", verr.Param)

	resp, err := services.UploadCars.Execute(ctx(), BuildUpload(dealerID(t, services, ids["C1"]),
		NewListingBuilder("MH12AB6666").WithPrice("lots")))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Skipped)
	testutil.AssertRowCount(t, services.Client, "cars", 5)
}
