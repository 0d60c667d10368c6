package import_catalog

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/carcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/carcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/carcat-service/internal/models/m_car"
	"github.com/light-bringer/carcat-service/internal/pkg/clock"
	"github.com/light-bringer/carcat-service/internal/pkg/csvrow"
)

func files(m map[string]string) fstest.MapFS {
	out := fstest.MapFS{}
	for name, body := range m {
		out[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return out
}

func run(t *testing.T, newStep func(deps) Step, lookup *fakeLookup, fsys fs.FS) (*Report, *fakeCommitter) {
	t.Helper()
	comm := &fakeCommitter{}
	step := newStep(deps{repo: newFakeRepo(lookup), committer: comm})
	report, err := step.Run(context.Background(), fsys)
	require.NoError(t, err)
	return report, comm
}

func TestDealersStep(t *testing.T) {
	lookup := newFakeLookup()
	lookup.dealers["D-OLD"] = "11111111-1111-1111-1111-111111111111"

	fsys := files(map[string]string{DealersFile: "dealer_code,name,city,tier,tags\n" +
		"D-OLD,Old Motors,Pune,premium,[]\n" +
		"D-NEW,New Motors,Delhi,vip,\"['trusted', 'quick']\"\n" +
		"D-NEW,New Motors Again,Delhi,vip,[]\n" +
		"D-NONAME,,Delhi,standard,[]\n" +
		"D-BADTIER,Bad Tier,Delhi,gold,[]\n" +
		"D-BADTAGS,Bad Tags,Delhi,standard,\"__import__('os')\"\n",
	})

	report, comm := run(t, func(d deps) Step { return &dealersStep{d} }, lookup, fsys)

	assert.Equal(t, &Report{Step: "dealers", Created: 1, Unchanged: 2, Skipped: 3}, report)
	assert.Equal(t, 1, comm.lastCount())
}

func TestDealersStep_MalformedRecordIsSkipped(t *testing.T) {
	fsys := files(map[string]string{DealersFile: "dealer_code,name,city,tier,tags\n" +
		"D1,Good Motors,Pune,premium,[]\n" +
		"D2,Bad \"Quote Motors,Pune,standard,[]\n" +
		"D3,Fine Cars,Delhi,standard,[]\n",
	})

	report, comm := run(t, func(d deps) Step { return &dealersStep{d} }, newFakeLookup(), fsys)

	assert.Equal(t, &Report{Step: "dealers", Created: 2, Skipped: 1}, report)
	assert.Equal(t, 2, comm.lastCount())
}

func TestCarsStep(t *testing.T) {
	lookup := newFakeLookup()
	lookup.dealers["D1"] = "dealer-1"
	lookup.cars["C-OLD"] = "car-old"

	header := "car_code,dealer_code,title,brand,model,year,price,discount_price,km,fuel,transmission,city,colorKey,registration_number,tags,metadata\n"
	fsys := files(map[string]string{CarsFile: header +
		"C-OLD,D1,City ZX,Honda,City,2020,650000,,42000,petrol,manual,Pune,white,MH12AB1234,\"['sedan']\",\"{'variant': 'ZX'}\"\n" +
		"C-NEW,D1,Creta SX,Hyundai,Creta,2022,1200000,1100000,15000,diesel,automatic,Delhi,black,DL3CAB0001,[],{}\n" +
		"C-NEW,D1,Creta SX(O),Hyundai,Creta,2022,1250000,,15000,diesel,automatic,Delhi,black,DL3CAB0001,[],{}\n" +
		"C-NODEALER,D9,Swift,Maruti,Swift,2019,500000,,30000,petrol,manual,Pune,red,MH12X,[],{}\n" +
		"C-BIGDISC,D1,Nexon,Tata,Nexon,2021,900000,950000,20000,petrol,manual,Pune,blue,MH12Y,[],{}\n" +
		"C-EVAL,D1,Polo,VW,Polo,2018,450000,,50000,petrol,manual,Pune,grey,MH12Z,[],\"__import__('os').system('x')\"\n" +
		"C-NOPRICE,D1,i20,Hyundai,i20,2020,,,10000,petrol,manual,Pune,grey,MH12W,[],{}\n" +
		"C-BADYEAR,D1,i10,Hyundai,i10,twenty,300000,,10000,petrol,manual,Pune,grey,MH12V,[],{}\n",
	})

	report, comm := run(t, func(d deps) Step { return &carsStep{d} }, lookup, fsys)

	assert.Equal(t, &Report{Step: "cars", Created: 1, Updated: 2, Skipped: 5}, report)
	assert.Equal(t, 3, comm.lastCount())
}

func TestParseCar(t *testing.T) {
	row := csvrow.NewRow(2, map[string]string{
		"car_code":             "C1",
		"title":                "City ZX",
		"price":                "650000",
		"discount_price":       "600000",
		"owner_count":          "",
		"insurance_valid_till": "2025-03-31",
		"availability_status":  "Reserved",
		"colorKey":             "white",
		"tags":                 `["sedan", "family"]`,
		"metadata":             `{'sunroof': True, 'airbags': 6}`,
	})

	car, err := parseCar(row)
	require.NoError(t, err)

	assert.Equal(t, "650000.00", car.Price.String())
	assert.Equal(t, "600000.00", car.DiscountPrice.String())
	assert.Equal(t, int64(1), car.OwnerCount)
	assert.Equal(t, domain.AvailabilityReserved, car.AvailabilityStatus)
	assert.Equal(t, domain.InsuranceComprehensive, car.InsuranceType)
	assert.Equal(t, "2025-03-31", car.InsuranceValidTill.String())
	assert.Equal(t, "white", car.ColorKey)
	assert.Equal(t, []string{"sedan", "family"}, car.Tags)
	assert.Equal(t, map[string]interface{}{"sunroof": true, "airbags": int64(6)}, car.Metadata)
	assert.Nil(t, car.Year)
}

func TestUpdateColumns(t *testing.T) {
	t.Run("base columns only", func(t *testing.T) {
		row := csvrow.NewRow(2, map[string]string{"car_code": "C1", "price": "1"})
		assert.Equal(t, baseCarColumns, updateColumns(row))
	})

	t.Run("optional columns present in the header", func(t *testing.T) {
		row := csvrow.NewRow(2, map[string]string{"car_code": "C1", "seats": "", "owner_count": "2"})
		cols := updateColumns(row)
		assert.Contains(t, cols, m_car.Seats)
		assert.Contains(t, cols, m_car.OwnerCount)
		assert.NotContains(t, cols, m_car.DiscountPrice)
		assert.NotContains(t, cols, m_car.CarCode)
	})
}

func TestImagesStep(t *testing.T) {
	lookup := newFakeLookup()
	lookup.cars["C1"] = "car-1"
	lookup.categories[domain.ImageCategory] = map[string]bool{"exterior": true}
	stored := contracts.NewChildIndex()
	stored.Observe("car-1", 0, "exterior", "cars/c1/front.jpg")
	lookup.children[contracts.ImageRows] = stored

	fsys := files(map[string]string{ImagesFile: "car_code,category_key,category_label,image,caption,sort_order\n" +
		"C1,exterior,,cars/c1/front.jpg,Front view,1\n" +
		"C1,interior,Interior,cars/c1/dash.jpg,Dashboard,1\n" +
		"C1,interior,Interior,cars/c1/seats.jpg,Seats,2\n" +
		"C1,interior,,,No path,3\n" +
		"C9,exterior,,cars/c9/front.jpg,Unknown car,1\n" +
		"C1,exterior,,cars/c1/rear.jpg,Rear,x\n",
	})

	report, comm := run(t, func(d deps) Step { return &imagesStep{d} }, lookup, fsys)

	assert.Equal(t, &Report{Step: "car_images", Created: 2, Updated: 1, Skipped: 3}, report)
	// one new category plus three image rows
	assert.Equal(t, 4, comm.lastCount())
}

func TestHighlightsStep(t *testing.T) {
	lookup := newFakeLookup()
	lookup.cars["C1"] = "car-1"

	fsys := files(map[string]string{HighlightsFile: "car_code,text\n" +
		"C1,Single owner\n" +
		"C1,  Single owner  \n" +
		"C1,Full service history with every invoice kept in the glovebox\n" +
		"C1,\n" +
		"C1,Low mileage\n",
	})

	report, comm := run(t, func(d deps) Step { return &highlightsStep{d} }, lookup, fsys)

	assert.Equal(t, &Report{Step: "car_highlights", Created: 2, Unchanged: 1, Skipped: 2}, report)
	assert.Equal(t, 2, comm.lastCount())
}

func TestSpecsAndFeaturesSteps(t *testing.T) {
	t.Run("specs", func(t *testing.T) {
		lookup := newFakeLookup()
		lookup.cars["C1"] = "car-1"

		fsys := files(map[string]string{SpecsFile: "car_code,category_key,category_title,label,value\n" +
			"C1,engine,,Displacement,1497 cc\n" +
			"C1,engine,,Power,119 bhp\n" +
			"C1,engine,,Power,121 bhp\n" +
			"C1,dimensions,Size,,4549 mm\n",
		})

		report, comm := run(t, func(d deps) Step { return &specsStep{d} }, lookup, fsys)
		assert.Equal(t, &Report{Step: "car_specs", Created: 2, Updated: 1, Skipped: 1}, report)
		assert.Equal(t, 4, comm.lastCount())
	})

	t.Run("features", func(t *testing.T) {
		lookup := newFakeLookup()
		lookup.cars["C1"] = "car-1"
		lookup.categories[domain.FeatureCategory] = map[string]bool{"safety": true}

		fsys := files(map[string]string{FeaturesFile: "car_code,category_key,category_title,name,status\n" +
			"C1,safety,,ABS,\n" +
			"C1,safety,,Airbags,little_flaw\n" +
			"C1,safety,,Sunroof,cracked\n",
		})

		report, comm := run(t, func(d deps) Step { return &featuresStep{d} }, lookup, fsys)
		assert.Equal(t, &Report{Step: "car_features", Created: 2, Skipped: 1}, report)
		assert.Equal(t, 2, comm.lastCount())
	})
}

func TestReasonsStep(t *testing.T) {
	lookup := newFakeLookup()
	lookup.cars["C1"] = "car-1"
	stored := contracts.NewChildIndex()
	stored.Observe("car-1", 4, "Warranty")
	lookup.children[contracts.ReasonRows] = stored

	fsys := files(map[string]string{ReasonsFile: "car_code,title,description,sort_order\n" +
		"C1,Warranty,One year left,1\n" +
		"C1,Service history,Dealer serviced,2\n" +
		"C1,,No title,3\n",
	})

	report, _ := run(t, func(d deps) Step { return &reasonsStep{d} }, lookup, fsys)
	assert.Equal(t, &Report{Step: "car_reasons", Created: 1, Updated: 1, Skipped: 1}, report)
}

func TestTaxonomyStep(t *testing.T) {
	lookup := newFakeLookup()
	lookup.sections["exterior"] = 0
	lookup.sections["engine"] = 1
	lookup.subsections = []domain.InspectionSubsection{{SectionKey: "exterior", Key: "paint"}}

	fsys := files(map[string]string{
		SectionsFile: "key,title,description\n" +
			"exterior,Exterior,Body and paint\n" +
			"supporting_systems,Supporting systems,Battery and cooling\n" +
			",Untitled,\n",
		SubsectionsFile: "section_key,key,title,order,remarks\n" +
			"exterior,paint,Paint,1,No repaint\n" +
			"supporting_systems,battery,Battery,1,\n" +
			"interior,seats,Seats,1,\n" +
			"exterior,glass,Glass,x,\n",
	})

	report, comm := run(t, func(d deps) Step { return &taxonomyStep{d} }, lookup, fsys)

	assert.Equal(t, &Report{Step: "inspection_master", Created: 2, Updated: 2, Skipped: 3}, report)
	assert.Equal(t, 4, comm.lastCount())
}

func TestSubsectionIndexResolve(t *testing.T) {
	ix := &subsectionIndex{
		pairs: map[[2]string]bool{
			{"exterior", "paint"}: true,
			{"exterior", "glass"}: true,
			{"interior", "glass"}: true,
		},
		sections: map[string][]string{
			"paint": {"exterior"},
			"glass": {"exterior", "interior"},
		},
	}

	tests := []struct {
		name    string
		section string
		sub     string
		want    string
		wantErr error
	}{
		{"explicit section", "interior", "glass", "interior", nil},
		{"unique key", "", "paint", "exterior", nil},
		{"ambiguous key", "", "glass", "", domain.ErrAmbiguousLookup},
		{"unknown key", "", "tyres", "", domain.ErrSubsectionNotFound},
		{"wrong section", "interior", "paint", "", domain.ErrSubsectionNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ix.resolve(tt.section, tt.sub)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestItemsStep(t *testing.T) {
	lookup := newFakeLookup()
	lookup.cars["C1"] = "car-1"
	lookup.subsections = []domain.InspectionSubsection{
		{SectionKey: "exterior", Key: "paint"},
		{SectionKey: "exterior", Key: "glass"},
		{SectionKey: "interior", Key: "glass"},
	}

	fsys := files(map[string]string{ItemsFile: "car_code,section_key,subsection_key,name,status,remarks\n" +
		"C1,,paint,Bonnet,minor,Scratch\n" +
		"C1,interior,glass,Sunroof glass,,\n" +
		"C1,,glass,Windshield,,\n" +
		"C1,,tyres,Front left,,\n" +
		"C1,,paint,Roof,broken,\n" +
		"C1,,paint,Bonnet,major,Dent\n",
	})

	report, comm := run(t, func(d deps) Step { return &itemsStep{d} }, lookup, fsys)

	assert.Equal(t, &Report{Step: "inspection_items", Created: 2, Updated: 1, Skipped: 3}, report)
	assert.Equal(t, 3, comm.lastCount())
}

func TestScoresStep(t *testing.T) {
	lookup := newFakeLookup()
	lookup.cars["C1"] = "car-1"
	lookup.sections["exterior"] = 0
	lookup.sections["supporting_systems"] = 1

	fsys := files(map[string]string{ScoresFile: "car_code,section_key,score,rating,status,remarks\n" +
		"C1,exterior,8.5,GOOD,ok,Minor scratches\n" +
		"C1,supporting_systems,9,excellent,,\n" +
		"C1,exterior,10.5,good,,\n" +
		"C1,exterior,8.25,good,,\n" +
		"C1,engine,7,fair,,\n" +
		"C1,exterior,7,great,,\n",
	})

	report, _ := run(t, func(d deps) Step { return &scoresStep{d} }, lookup, fsys)
	assert.Equal(t, &Report{Step: "car_inspection_scores", Created: 2, Skipped: 4}, report)
}

func TestRemarksStep(t *testing.T) {
	t.Run("missing file skips the step", func(t *testing.T) {
		report, comm := run(t, func(d deps) Step { return &remarksStep{d} }, newFakeLookup(), fstest.MapFS{})
		assert.Equal(t, &Report{Step: "car_subsection_remarks"}, report)
		assert.Empty(t, comm.plans)
	})

	t.Run("upserts remarks", func(t *testing.T) {
		lookup := newFakeLookup()
		lookup.cars["C1"] = "car-1"
		lookup.subsections = []domain.InspectionSubsection{{SectionKey: "exterior", Key: "paint"}}

		fsys := files(map[string]string{RemarksFile: "car_code,section_key,subsection_key,status,remarks\n" +
			"C1,,paint,repainted,Door repainted\n" +
			"C1,exterior,paint,repainted,Both doors repainted\n" +
			"C1,,,x,\n",
		})

		report, comm := run(t, func(d deps) Step { return &remarksStep{d} }, lookup, fsys)
		assert.Equal(t, &Report{Step: "car_subsection_remarks", Created: 1, Updated: 1, Skipped: 1}, report)
		assert.Equal(t, 2, comm.lastCount())
	})
}

func TestCategoryTitle(t *testing.T) {
	assert.Equal(t, "Interior Photos", categoryTitle("", "interior_photos"))
	assert.Equal(t, "360 view", categoryTitle("360 view", "spin"))
}

func fullCatalog() fstest.MapFS {
	return files(map[string]string{
		DealersFile:     "dealer_code,name\nD1,Dealer One\n",
		CarsFile:        "car_code,dealer_code,title,price\nC1,D1,City,650000\n",
		ImagesFile:      "car_code,category_key,image\nC1,exterior,a.jpg\n",
		HighlightsFile:  "car_code,text\nC1,Single owner\n",
		SpecsFile:       "car_code,category_key,label,value\nC1,engine,Power,119 bhp\n",
		FeaturesFile:    "car_code,category_key,name\nC1,safety,ABS\n",
		ReasonsFile:     "car_code,title\nC1,Warranty\n",
		SectionsFile:    "key,title\nexterior,Exterior\n",
		SubsectionsFile: "section_key,key,title\nexterior,paint,Paint\n",
		ItemsFile:       "car_code,subsection_key,name\nC1,paint,Bonnet\n",
		ScoresFile:      "car_code,section_key,score,rating\nC1,exterior,8.5,good\n",
	})
}

func TestInteractor_Execute(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC))

	t.Run("runs every step in order", func(t *testing.T) {
		lookup := newFakeLookup()
		// rows created by earlier steps are visible to later ones in a real store
		lookup.dealers["D1"] = "dealer-1"
		lookup.cars["C1"] = "car-1"
		lookup.sections["exterior"] = 0
		lookup.subsections = []domain.InspectionSubsection{{SectionKey: "exterior", Key: "paint"}}

		comm := &fakeCommitter{}
		rec := &fakeRecorder{}
		interactor := NewInteractor(newFakeRepo(lookup), comm, clk, rec)

		resp, err := interactor.Execute(context.Background(), &Request{FS: fullCatalog()})
		require.NoError(t, err)

		var steps []string
		for _, r := range resp.Reports {
			steps = append(steps, r.Step)
		}
		assert.Equal(t, interactor.Steps(), steps)
		assert.Equal(t, []string{
			"dealers", "cars", "car_images", "car_highlights", "car_specs", "car_features",
			"car_reasons", "inspection_master", "inspection_items", "car_inspection_scores",
			"car_subsection_remarks",
		}, steps)
		assert.Len(t, rec.seen, 11)
		for _, o := range rec.seen {
			assert.False(t, o.failed, o.step)
		}
	})

	t.Run("store failure names the step", func(t *testing.T) {
		lookup := newFakeLookup()
		lookup.dealers["D1"] = "dealer-1"
		storeErr := errors.New("spanner unavailable")
		comm := &fakeCommitter{failOn: 1, err: storeErr}
		rec := &fakeRecorder{}

		resp, err := NewInteractor(newFakeRepo(lookup), comm, clk, rec).
			Execute(context.Background(), &Request{FS: fullCatalog()})

		var stepErr *StepError
		require.ErrorAs(t, err, &stepErr)
		assert.Equal(t, "cars", stepErr.Step)
		assert.ErrorIs(t, err, storeErr)
		require.Len(t, resp.Reports, 1)
		assert.Equal(t, "dealers", resp.Reports[0].Step)
		require.Len(t, rec.seen, 2)
		assert.True(t, rec.seen[1].failed)
	})

	t.Run("missing required file", func(t *testing.T) {
		_, err := NewInteractor(newFakeRepo(newFakeLookup()), &fakeCommitter{}, clk, nil).
			Execute(context.Background(), &Request{FS: fstest.MapFS{}})

		var stepErr *StepError
		require.ErrorAs(t, err, &stepErr)
		assert.Equal(t, "dealers", stepErr.Step)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("lookup failure", func(t *testing.T) {
		lookup := newFakeLookup()
		lookup.err = errors.New("deadline exceeded")

		_, err := NewInteractor(newFakeRepo(lookup), &fakeCommitter{}, clk, nil).
			Execute(context.Background(), &Request{FS: fullCatalog()})

		var stepErr *StepError
		require.ErrorAs(t, err, &stepErr)
		assert.Equal(t, "dealers", stepErr.Step)
	})
}
