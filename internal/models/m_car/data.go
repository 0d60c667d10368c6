package m_car

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the cars table.
type Data struct {
	CarID              string              `spanner:"car_id"`
	CarCode            string              `spanner:"car_code"`
	DealerID           spanner.NullString  `spanner:"dealer_id"`
	Title              string              `spanner:"title"`
	Brand              string              `spanner:"brand"`
	Model              string              `spanner:"model"`
	Year               spanner.NullInt64   `spanner:"year"`
	Price              big.Rat             `spanner:"price"`
	DiscountPrice      spanner.NullNumeric `spanner:"discount_price"`
	KM                 spanner.NullInt64   `spanner:"km"`
	Fuel               string              `spanner:"fuel"`
	Transmission       string              `spanner:"transmission"`
	Body               string              `spanner:"body"`
	Seats              spanner.NullInt64   `spanner:"seats"`
	City               string              `spanner:"city"`
	RTO                string              `spanner:"rto"`
	ColorKey           string              `spanner:"color_key"`
	Thumbnail          spanner.NullString  `spanner:"thumbnail"`
	RegistrationNumber string              `spanner:"registration_number"`
	AvailabilityStatus string              `spanner:"availability_status"`
	InsuranceType      string              `spanner:"insurance_type"`
	InsuranceValidTill spanner.NullDate    `spanner:"insurance_valid_till"`
	OwnerCount         int64               `spanner:"owner_count"`
	Tags               []string            `spanner:"tags"`
	Metadata           spanner.NullJSON    `spanner:"metadata"`
	CreatedAt          time.Time           `spanner:"created_at"`
	UpdatedAt          time.Time           `spanner:"updated_at"`
}

func (d *Data) columnValues() map[string]interface{} {
	return map[string]interface{}{
		CarID:              d.CarID,
		CarCode:            d.CarCode,
		DealerID:           d.DealerID,
		Title:              d.Title,
		Brand:              d.Brand,
		CarModel:           d.Model,
		Year:               d.Year,
		Price:              d.Price,
		DiscountPrice:      d.DiscountPrice,
		KM:                 d.KM,
		Fuel:               d.Fuel,
		Transmission:       d.Transmission,
		Body:               d.Body,
		Seats:              d.Seats,
		City:               d.City,
		RTO:                d.RTO,
		ColorKey:           d.ColorKey,
		Thumbnail:          d.Thumbnail,
		RegistrationNumber: d.RegistrationNumber,
		AvailabilityStatus: d.AvailabilityStatus,
		InsuranceType:      d.InsuranceType,
		InsuranceValidTill: d.InsuranceValidTill,
		OwnerCount:         d.OwnerCount,
		Tags:               d.Tags,
		Metadata:           d.Metadata,
	}
}

// values returns the row's values for columns, in order.
func (d *Data) values(columns []string) []interface{} {
	all := d.columnValues()
	out := make([]interface{}, len(columns))
	for i, col := range columns {
		out[i] = all[col]
	}
	return out
}
