package repo

import (
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/carcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/carcat-service/internal/models/m_car"
	"github.com/light-bringer/carcat-service/internal/models/m_dealer"
)

// carToData converts a domain Car to database Data.
func carToData(car *domain.Car) (*m_car.Data, error) {
	if car.Price == nil {
		return nil, fmt.Errorf("car %s: price is required", car.Code)
	}

	data := &m_car.Data{
		CarID:              car.ID,
		CarCode:            car.Code,
		Title:              car.Title,
		Brand:              car.Brand,
		Model:              car.Model,
		Price:              *car.Price.Rat(),
		Fuel:               car.Fuel,
		Transmission:       car.Transmission,
		Body:               car.Body,
		City:               car.City,
		RTO:                car.RTO,
		ColorKey:           car.ColorKey,
		RegistrationNumber: car.RegistrationNumber,
		AvailabilityStatus: string(car.AvailabilityStatus),
		InsuranceType:      string(car.InsuranceType),
		OwnerCount:         car.OwnerCount,
		Tags:               car.Tags,
		Year:               nullInt(car.Year),
		KM:                 nullInt(car.KM),
		Seats:              nullInt(car.Seats),
	}
	if data.Tags == nil {
		data.Tags = []string{}
	}
	if car.DealerID != "" {
		data.DealerID = spanner.NullString{StringVal: car.DealerID, Valid: true}
	}
	if car.DiscountPrice != nil {
		data.DiscountPrice = spanner.NullNumeric{Numeric: *car.DiscountPrice.Rat(), Valid: true}
	}
	if car.Thumbnail != "" {
		data.Thumbnail = spanner.NullString{StringVal: car.Thumbnail, Valid: true}
	}
	if car.InsuranceValidTill != nil {
		data.InsuranceValidTill = spanner.NullDate{Date: *car.InsuranceValidTill, Valid: true}
	}
	metadata := car.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	data.Metadata = spanner.NullJSON{Value: metadata, Valid: true}

	return data, nil
}

// dataToCar converts database Data to a domain Car.
func dataToCar(data *m_car.Data) *domain.Car {
	car := &domain.Car{
		ID:                 data.CarID,
		Code:               data.CarCode,
		DealerID:           data.DealerID.StringVal,
		Title:              data.Title,
		Brand:              data.Brand,
		Model:              data.Model,
		Price:              domain.NewMoneyFromRat(&data.Price),
		Fuel:               data.Fuel,
		Transmission:       data.Transmission,
		Body:               data.Body,
		City:               data.City,
		RTO:                data.RTO,
		ColorKey:           data.ColorKey,
		Thumbnail:          data.Thumbnail.StringVal,
		RegistrationNumber: data.RegistrationNumber,
		AvailabilityStatus: domain.AvailabilityStatus(data.AvailabilityStatus),
		InsuranceType:      domain.InsuranceType(data.InsuranceType),
		OwnerCount:         data.OwnerCount,
		Tags:               data.Tags,
		Year:               intPtr(data.Year),
		KM:                 intPtr(data.KM),
		Seats:              intPtr(data.Seats),
		CreatedAt:          data.CreatedAt,
	}
	if data.DiscountPrice.Valid {
		car.DiscountPrice = domain.NewMoneyFromRat(&data.DiscountPrice.Numeric)
	}
	if data.InsuranceValidTill.Valid {
		d := data.InsuranceValidTill.Date
		car.InsuranceValidTill = &d
	}
	if data.Metadata.Valid {
		if m, ok := data.Metadata.Value.(map[string]interface{}); ok {
			car.Metadata = m
		}
	}
	return car
}

func dealerToData(dealer *domain.Dealer) *m_dealer.Data {
	tags := dealer.Tags
	if tags == nil {
		tags = []string{}
	}
	return &m_dealer.Data{
		DealerID:   dealer.ID,
		DealerCode: dealer.Code,
		Name:       dealer.Name,
		Phone:      dealer.Phone,
		Email:      dealer.Email,
		Address:    dealer.Address,
		City:       dealer.City,
		State:      dealer.State,
		PostalCode: dealer.PostalCode,
		Tier:       string(dealer.Tier),
		Tags:       tags,
	}
}

func dataToDealer(data *m_dealer.Data) *domain.Dealer {
	return &domain.Dealer{
		ID:         data.DealerID,
		Code:       data.DealerCode,
		Name:       data.Name,
		Phone:      data.Phone,
		Email:      data.Email,
		Address:    data.Address,
		City:       data.City,
		State:      data.State,
		PostalCode: data.PostalCode,
		Tier:       domain.DealerTier(data.Tier),
		Tags:       data.Tags,
		CreatedAt:  data.CreatedAt,
	}
}

func nullInt(v *int64) spanner.NullInt64 {
	if v == nil {
		return spanner.NullInt64{}
	}
	return spanner.NullInt64{Int64: *v, Valid: true}
}

func intPtr(v spanner.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
