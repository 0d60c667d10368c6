package testutil

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/carcat-service/internal/app/catalog/repo"
	"github.com/light-bringer/carcat-service/internal/app/catalog/usecases/import_catalog"
)

// csvFile joins a header and rows into file contents.
func csvFile(header string, rows ...string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(header + "\n" + strings.Join(rows, "\n") + "\n")}
}

// FiveCarCatalog is a complete CSV catalog dated against FixtureNow.
//
// Cars C1 and C2 are the only ones inside price 500000..800000, fuelled by
// petrol or diesel and insured on or after 2024-06-15:
//
//	C1  550000 petrol   insured till 2025-01-01
//	C2  750000 diesel   insured till 2024-06-15
//	C3  700000 electric insured till 2025-03-01
//	C4  900000 petrol   insured till 2025-02-01
//	C5  600000 diesel   insured till 2024-01-01
//
// C1 carries the inspection shapes the detail document cares about: items
// under exterior/paint with no exterior score, and an engine score with no
// items or remarks. C3 has no children at all.
func FiveCarCatalog() fstest.MapFS {
	return fstest.MapFS{
		import_catalog.DealersFile: csvFile("dealer_code,name,city,tier,tags",
			`D1,Prime Motors,Pune,premium,"['trusted']"`,
			`D2,City Cars,Delhi,standard,[]`,
		),
		import_catalog.CarsFile: csvFile(
			"car_code,dealer_code,title,brand,model,year,price,discount_price,km,fuel,transmission,body,seats,city,colorKey,registration_number,insurance_type,insurance_valid_till,owner_count,tags,metadata",
			`C1,D1,Honda City ZX,Honda,City,2021,550000,500000,32000,petrol,manual,sedan,5,Pune,white,MH12AB1001,comprehensive,2025-01-01,1,"['suv', 'certified']","{'variant': 'zx'}"`,
			`C2,D1,Hyundai Creta SX,Hyundai,Creta,2020,750000,,41000,diesel,automatic,suv,5,Pune,black,MH12AB1002,comprehensive,2024-06-15,2,"['suv']",{}`,
			`C3,D2,Tata Nexon EV,Tata,Nexon,2022,700000,,15000,electric,automatic,suv,5,Delhi,blue,DL01AB1003,comprehensive,2025-03-01,1,"['certified']",{}`,
			`C4,D2,Toyota Innova,Toyota,Innova,2019,900000,850000,68000,petrol,manual,muv,7,Delhi,silver,DL01AB1004,third_party,2025-02-01,1,[],{}`,
			`C5,D2,Maruti Ciaz,Maruti,Ciaz,2018,600000,,72000,diesel,manual,sedan,5,Delhi,grey,DL01AB1005,third_party,2024-01-01,3,[],{}`,
		),
		import_catalog.ImagesFile: csvFile("car_code,category_key,category_label,image,caption",
			"C1,exterior,,c1-front.jpg,Front",
			"C1,interior,Cabin,c1-dash.jpg,Dashboard",
			"C2,exterior,,c2-front.jpg,Front",
		),
		import_catalog.HighlightsFile: csvFile("car_code,text",
			"C1,Single owner",
			"C1,Full service history",
		),
		import_catalog.SpecsFile: csvFile("car_code,category_key,category_title,label,value",
			"C1,engine,,Power,119 bhp",
			"C2,engine,,Power,113 bhp",
		),
		import_catalog.FeaturesFile: csvFile("car_code,category_key,category_title,name,status",
			"C1,safety,,ABS,flawless",
			"C1,safety,,Airbags,flawless",
			"C4,comfort,,Sunroof,damaged",
		),
		import_catalog.ReasonsFile: csvFile("car_code,title,description",
			"C1,Warranty,One year engine warranty",
			"C2,Low mileage,Driven mostly on highways",
		),
		import_catalog.SectionsFile: csvFile("key,title,description",
			"exterior,Exterior,Body and paint",
			"engine,Engine,Engine bay",
		),
		import_catalog.SubsectionsFile: csvFile("section_key,key,title,order",
			"exterior,paint,Paint,1",
			"exterior,glass,Glass,2",
			"engine,oil,Oil,1",
		),
		import_catalog.ItemsFile: csvFile("car_code,section_key,subsection_key,name,status,remarks",
			"C1,exterior,paint,Bonnet,minor,Light scratches",
			"C1,exterior,paint,Roof,flawless,",
			"C4,exterior,paint,Door,major,Repainted",
		),
		import_catalog.ScoresFile: csvFile("car_code,section_key,score,rating,status",
			"C1,engine,8.5,good,ok",
			"C2,exterior,9,excellent,ok",
		),
	}
}

// ImportCatalog runs the full import pipeline against client.
func ImportCatalog(t *testing.T, client *spanner.Client, fsys fstest.MapFS) *import_catalog.Response {
	t.Helper()

	interactor := import_catalog.NewInteractor(
		repo.NewImportRepo(client),
		repo.NewCommitter(client),
		NewFixedClock(FixtureNow),
		nil,
	)
	resp, err := interactor.Execute(context.Background(), &import_catalog.Request{FS: fsys})
	require.NoError(t, err, "failed to import catalog")
	return resp
}

// CarIDsByCode maps every stored car_code to its car_id.
func CarIDsByCode(t *testing.T, client *spanner.Client) map[string]string {
	t.Helper()

	ids := make(map[string]string)
	err := client.Single().Query(context.Background(), spanner.Statement{
		SQL: "SELECT car_code, car_id FROM cars",
	}).Do(func(row *spanner.Row) error {
		var code, id string
		if err := row.Columns(&code, &id); err != nil {
			return err
		}
		ids[code] = id
		return nil
	})
	require.NoError(t, err, "failed to load car ids")
	return ids
}
