package import_catalog

import (
	"context"
	"fmt"
	"io/fs"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/light-bringer/carcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/carcat-service/internal/models/m_car"
	"github.com/light-bringer/carcat-service/internal/pkg/csvrow"
	"github.com/light-bringer/carcat-service/internal/pkg/literal"
)

// CarsFile is the car listing file.
const CarsFile = "cars.csv"

// baseCarColumns are rewritten on every update of an existing car.
var baseCarColumns = []string{
	m_car.DealerID, m_car.Title, m_car.Brand, m_car.CarModel, m_car.Year, m_car.Price,
	m_car.KM, m_car.Fuel, m_car.Transmission, m_car.Body, m_car.City, m_car.ColorKey,
	m_car.RegistrationNumber, m_car.Tags, m_car.Metadata,
}

// optionalCarColumns are rewritten only when the file carries the CSV column.
var optionalCarColumns = []struct {
	csv    string
	column string
}{
	{"discount_price", m_car.DiscountPrice},
	{"seats", m_car.Seats},
	{"rto", m_car.RTO},
	{"thumbnail", m_car.Thumbnail},
	{"availability_status", m_car.AvailabilityStatus},
	{"insurance_type", m_car.InsuranceType},
	{"insurance_valid_till", m_car.InsuranceValidTill},
	{"owner_count", m_car.OwnerCount},
}

// carsStep upserts cars on car_code. The referenced dealer must exist.
type carsStep struct{ deps }

func (s *carsStep) Name() string { return "cars" }

func (s *carsStep) Run(ctx context.Context, fsys fs.FS) (*Report, error) {
	rows, err := readRows(fsys, CarsFile)
	if err != nil {
		return nil, err
	}
	dealers, err := s.repo.DealerIDsByCode(ctx, distinct(rows, "dealer_code"))
	if err != nil {
		return nil, err
	}
	cars, err := s.repo.CarIDsByCode(ctx, distinct(rows, "car_code"))
	if err != nil {
		return nil, err
	}

	b := newBatch(ctx, s.Name())
	for _, row := range rows {
		if b.malformed(row) {
			continue
		}
		if err := row.Require("car_code", "dealer_code", "title", "price"); err != nil {
			b.skip(row, "missing required field", err)
			continue
		}
		dealerID, ok := dealers[row.Get("dealer_code")]
		if !ok {
			b.skip(row, "unknown dealer_code", domain.ErrDealerNotFound)
			continue
		}
		car, err := parseCar(row)
		if err != nil {
			b.skip(row, "invalid value", err)
			continue
		}
		car.DealerID = dealerID

		if id, ok := cars[car.Code]; ok {
			car.ID = id
			mut, err := s.repo.UpdateCarMut(car, updateColumns(row))
			if err != nil {
				return nil, err
			}
			b.plan.Add(mut)
			b.report.Updated++
			continue
		}

		car.ID = uuid.New().String()
		mut, err := s.repo.InsertCarMut(car)
		if err != nil {
			return nil, err
		}
		b.plan.Add(mut)
		cars[car.Code] = car.ID
		b.report.Created++
	}

	if err := s.commit(ctx, b.plan); err != nil {
		return nil, err
	}
	return b.done(), nil
}

func updateColumns(row csvrow.Row) []string {
	columns := append([]string(nil), baseCarColumns...)
	for _, opt := range optionalCarColumns {
		if row.Has(opt.csv) {
			columns = append(columns, opt.column)
		}
	}
	return columns
}

// parseCar reads every car column except the dealer reference.
func parseCar(row csvrow.Row) (*domain.Car, error) {
	car := &domain.Car{
		Code:               row.Get("car_code"),
		Title:              row.Get("title"),
		Brand:              row.Get("brand"),
		Model:              row.Get("model"),
		Fuel:               row.Get("fuel"),
		Transmission:       row.Get("transmission"),
		Body:               row.Get("body"),
		City:               row.Get("city"),
		RTO:                row.Get("rto"),
		ColorKey:           row.Get("colorKey"),
		Thumbnail:          row.Get("thumbnail"),
		RegistrationNumber: row.Get("registration_number"),
	}

	var err error
	if car.Price, err = domain.ParseMoney(row.Get("price")); err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}
	if v := row.Get("discount_price"); v != "" {
		if car.DiscountPrice, err = domain.ParseMoney(v); err != nil {
			return nil, fmt.Errorf("discount_price: %w", err)
		}
		if err := domain.ValidateDiscount(car.Price, car.DiscountPrice); err != nil {
			return nil, err
		}
	}
	if car.Year, err = row.OptionalInt("year"); err != nil {
		return nil, err
	}
	if car.KM, err = row.OptionalInt("km"); err != nil {
		return nil, err
	}
	if car.Seats, err = row.OptionalInt("seats"); err != nil {
		return nil, err
	}
	if car.OwnerCount, err = row.IntOr("owner_count", 1); err != nil {
		return nil, err
	}
	if car.OwnerCount < 0 {
		return nil, fmt.Errorf("owner_count cannot be negative")
	}
	if car.AvailabilityStatus, err = domain.ParseAvailabilityStatus(row.Get("availability_status")); err != nil {
		return nil, err
	}
	if car.InsuranceType, err = domain.ParseInsuranceType(row.Get("insurance_type")); err != nil {
		return nil, err
	}
	if v := row.Get("insurance_valid_till"); v != "" {
		d, err := civil.ParseDate(v)
		if err != nil {
			return nil, fmt.Errorf("insurance_valid_till: %w", err)
		}
		car.InsuranceValidTill = &d
	}
	if car.Tags, err = literal.ParseList(row.Get("tags")); err != nil {
		return nil, fmt.Errorf("tags: %w", err)
	}
	if car.Metadata, err = literal.ParseMap(row.Get("metadata")); err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}
	return car, nil
}
