package readmodel

import (
	"encoding/json"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/carcat-service/internal/app/catalog/domain"
)

func mustMoney(t *testing.T, s string) *domain.Money {
	t.Helper()
	m, err := domain.ParseMoney(s)
	require.NoError(t, err)
	return m
}

func testCar(t *testing.T) *domain.Car {
	return &domain.Car{
		ID:                 "11111111-1111-1111-1111-111111111111",
		Code:               "CAR-001",
		Title:              "Honda City ZX",
		Brand:              "Honda",
		Model:              "City",
		Price:              mustMoney(t, "800000"),
		Fuel:               "petrol",
		AvailabilityStatus: domain.AvailabilityAvailable,
		InsuranceType:      domain.InsuranceComprehensive,
		OwnerCount:         1,
		CreatedAt:          time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func testTaxonomy() []domain.InspectionSection {
	return []domain.InspectionSection{
		{
			Key: "supporting_systems", Title: "Supporting systems", Position: 3,
		},
		{
			Key: "exterior", Title: "Exterior", Description: "Body and paint", Position: 1,
			Subsections: []domain.InspectionSubsection{
				{SectionKey: "exterior", Key: "paint", Title: "Paint", SortOrder: 2, Remarks: "Factory paint"},
				{SectionKey: "exterior", Key: "panels", Title: "Panels", SortOrder: 1, Remarks: "No dents"},
			},
		},
		{
			Key: "engine", Title: "Engine", Position: 2,
			Subsections: []domain.InspectionSubsection{
				{SectionKey: "engine", Key: "oil", Title: "Oil", SortOrder: 1},
				{SectionKey: "engine", Key: "belts", Title: "Belts", SortOrder: 2, Remarks: "Checked"},
			},
		},
	}
}

func TestAssemble_EmptyCarHasEmptyCollections(t *testing.T) {
	doc := Assemble(&CarBundle{Car: testCar(t)}, testTaxonomy())

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, map[string]interface{}{}, decoded["images"])
	assert.Equal(t, map[string]interface{}{}, decoded["specs"])
	assert.Equal(t, map[string]interface{}{}, decoded["features"])
	assert.Equal(t, []interface{}{}, decoded["highlights"])
	assert.Equal(t, []interface{}{}, decoded["reasons_to_buy"])
	assert.Equal(t, []interface{}{}, decoded["inspections"])
	assert.Equal(t, []interface{}{}, decoded["tags"])
	assert.Equal(t, map[string]interface{}{}, decoded["metadata"])
	assert.Nil(t, decoded["dealer"])
	assert.Nil(t, decoded["discount_price"])
	assert.Nil(t, decoded["discount_percent"])
	assert.Nil(t, decoded["thumbnail"])
	assert.Equal(t, "800000.00", decoded["price"])
}

func TestAssemble_RootFields(t *testing.T) {
	car := testCar(t)
	car.DiscountPrice = mustMoney(t, "720000")
	car.Thumbnail = "cars/city.jpg"
	car.InsuranceValidTill = &civil.Date{Year: 2025, Month: 3, Day: 31}
	car.Tags = []string{"sedan"}
	car.Metadata = map[string]interface{}{"variant": "ZX"}

	doc := Assemble(&CarBundle{
		Car:    car,
		Dealer: &domain.Dealer{ID: "d-1", Code: "DLR1", Name: "Prime Motors", City: "Pune", Tier: domain.TierPremium},
	}, nil)

	assert.Equal(t, "800000.00", doc.Price)
	require.NotNil(t, doc.DiscountPrice)
	assert.Equal(t, "720000.00", *doc.DiscountPrice)
	require.NotNil(t, doc.DiscountPercent)
	assert.Equal(t, "10.00", *doc.DiscountPercent)
	require.NotNil(t, doc.Thumbnail)
	assert.Equal(t, "cars/city.jpg", *doc.Thumbnail)
	require.NotNil(t, doc.InsuranceValidTill)
	assert.Equal(t, "2025-03-31", *doc.InsuranceValidTill)
	assert.Equal(t, &DealerDocument{ID: "d-1", DealerCode: "DLR1", Name: "Prime Motors", City: "Pune", Tier: "premium"}, doc.Dealer)
}

func TestAssemble_GroupsKeepFirstSeenCategoryOrder(t *testing.T) {
	doc := Assemble(&CarBundle{
		Car: testCar(t),
		Images: []domain.CarImage{
			{CategoryKey: "interior", Path: "i2.jpg", SortOrder: 2},
			{CategoryKey: "exterior", Path: "e1.jpg", SortOrder: 1},
			{CategoryKey: "interior", Path: "i1.jpg", SortOrder: 1},
			{CategoryKey: "interior", Path: "i0.jpg", SortOrder: 1},
		},
		Specs: []domain.CarSpec{
			{CategoryKey: "engine", Label: "Displacement", Value: "1498 cc"},
			{CategoryKey: "dimensions", Label: "Length", Value: "4549 mm"},
			{CategoryKey: "engine", Label: "Power", Value: "119 bhp"},
		},
		Features: []domain.CarFeature{
			{CategoryKey: "safety", Name: "ABS", Status: domain.FeatureFlawless},
			{CategoryKey: "comfort", Name: "Sunroof", Status: domain.FeatureLittleFlaw},
		},
	}, nil)

	assert.Equal(t, []string{"interior", "exterior"}, doc.Images.Keys())
	interior, _ := doc.Images.Get("interior")
	require.Len(t, interior, 3)
	assert.Equal(t, "i1.jpg", interior[0].Image)
	assert.Equal(t, "i0.jpg", interior[1].Image)
	assert.Equal(t, "i2.jpg", interior[2].Image)

	assert.Equal(t, []string{"engine", "dimensions"}, doc.Specs.Keys())
	engine, _ := doc.Specs.Get("engine")
	assert.Equal(t, []SpecDocument{
		{Category: "engine", Label: "Displacement", Value: "1498 cc"},
		{Category: "engine", Label: "Power", Value: "119 bhp"},
	}, engine)

	assert.Equal(t, []string{"safety", "comfort"}, doc.Features.Keys())

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"specs":{"engine":[`)
	assert.Contains(t, string(raw), `"images":{"interior":[`)
}

func TestAssemble_ReasonsSortedAndHighlightsInOrder(t *testing.T) {
	doc := Assemble(&CarBundle{
		Car: testCar(t),
		Highlights: []domain.CarHighlight{
			{Text: "Single owner"}, {Text: "Full service history"},
		},
		Reasons: []domain.CarReason{
			{Title: "Warranty", SortOrder: 2},
			{Title: "Low km", SortOrder: 1},
			{Title: "Fresh tyres", SortOrder: 2},
		},
	}, nil)

	assert.Equal(t, []HighlightDocument{{Text: "Single owner"}, {Text: "Full service history"}}, doc.Highlights)
	require.Len(t, doc.ReasonsToBuy, 3)
	assert.Equal(t, "Low km", doc.ReasonsToBuy[0].Title)
	assert.Equal(t, "Warranty", doc.ReasonsToBuy[1].Title)
	assert.Equal(t, "Fresh tyres", doc.ReasonsToBuy[2].Title)
}

func TestAssemble_SectionWithItemsOmitsEmptySiblings(t *testing.T) {
	doc := Assemble(&CarBundle{
		Car: testCar(t),
		Items: []domain.InspectionItem{
			{SectionKey: "engine", SubsectionKey: "oil", Name: "Oil level", Status: domain.ItemFlawless},
			{SectionKey: "engine", SubsectionKey: "oil", Name: "Oil leak", Status: domain.ItemMinor, Remarks: "Seepage"},
		},
	}, testTaxonomy())

	require.Len(t, doc.Inspections, 1)
	section := doc.Inspections[0]
	assert.Equal(t, "engine", section.Key)
	assert.Nil(t, section.Score)
	assert.Empty(t, section.Rating)

	require.Len(t, section.Subsections, 1)
	oil := section.Subsections[0]
	assert.Equal(t, "oil", oil.Key)
	assert.Equal(t, "", oil.Status)
	assert.Equal(t, []ItemDocument{
		{Name: "Oil level", Status: "flawless"},
		{Name: "Oil leak", Status: "minor", Remarks: "Seepage"},
	}, oil.Items)
}

func TestAssemble_ScoredSectionWithoutSubsections(t *testing.T) {
	doc := Assemble(&CarBundle{
		Car: testCar(t),
		Scores: []domain.SectionScore{
			{SectionKey: "supporting_systems", Score: 8.5, Rating: domain.RatingGood},
		},
	}, testTaxonomy())

	require.Len(t, doc.Inspections, 1)
	section := doc.Inspections[0]
	assert.Equal(t, "supporting_systems", section.Key)
	require.NotNil(t, section.Score)
	assert.Equal(t, 8.5, *section.Score)
	assert.Equal(t, "good", section.Rating)
	assert.Equal(t, []SubsectionDocument{}, section.Subsections)

	raw, err := json.Marshal(section)
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"supporting_systems","title":"Supporting systems","description":"","subsections":[],"score":8.5,"rating":"good"}`, string(raw))
}

func TestAssemble_ScoredSectionIncludesAllSubsections(t *testing.T) {
	doc := Assemble(&CarBundle{
		Car: testCar(t),
		Scores: []domain.SectionScore{
			{SectionKey: "exterior", Score: 7, Rating: domain.RatingFair, Status: "attention", Remarks: "Repainted door"},
		},
	}, testTaxonomy())

	require.Len(t, doc.Inspections, 1)
	section := doc.Inspections[0]
	assert.Equal(t, "attention", section.Status)
	assert.Equal(t, "Repainted door", section.Remarks)

	require.Len(t, section.Subsections, 2)
	assert.Equal(t, "panels", section.Subsections[0].Key)
	assert.Equal(t, "No dents", section.Subsections[0].Remarks)
	assert.Equal(t, "paint", section.Subsections[1].Key)
	assert.Equal(t, []ItemDocument{}, section.Subsections[1].Items)
}

func TestAssemble_RemarkOverridesMasterText(t *testing.T) {
	doc := Assemble(&CarBundle{
		Car: testCar(t),
		Remarks: []domain.SubsectionRemark{
			{SectionKey: "engine", SubsectionKey: "belts", Status: "minor", Remarks: "Replace soon"},
		},
		Items: []domain.InspectionItem{
			{SectionKey: "exterior", SubsectionKey: "paint", Name: "Bonnet", Status: domain.ItemMajor},
		},
	}, testTaxonomy())

	require.Len(t, doc.Inspections, 2)
	assert.Equal(t, "exterior", doc.Inspections[0].Key)
	assert.Equal(t, "engine", doc.Inspections[1].Key)

	paint := doc.Inspections[0].Subsections
	require.Len(t, paint, 1)
	assert.Equal(t, "Factory paint", paint[0].Remarks)

	belts := doc.Inspections[1].Subsections
	require.Len(t, belts, 1)
	assert.Equal(t, "belts", belts[0].Key)
	assert.Equal(t, "minor", belts[0].Status)
	assert.Equal(t, "Replace soon", belts[0].Remarks)
	assert.Equal(t, []ItemDocument{}, belts[0].Items)
}

func TestAssemble_ItemsOutsideTaxonomyAreIgnored(t *testing.T) {
	doc := Assemble(&CarBundle{
		Car: testCar(t),
		Items: []domain.InspectionItem{
			{SectionKey: "engine", SubsectionKey: "turbo", Name: "Boost", Status: domain.ItemFlawless},
		},
	}, testTaxonomy())

	assert.Empty(t, doc.Inspections)
}

func TestAssemble_DoesNotReorderCallerTaxonomy(t *testing.T) {
	taxonomy := testTaxonomy()
	Assemble(&CarBundle{Car: testCar(t)}, taxonomy)
	assert.Equal(t, "supporting_systems", taxonomy[0].Key)
	assert.Equal(t, "paint", taxonomy[1].Subsections[0].Key)
}
