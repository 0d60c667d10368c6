package domain

import (
	"time"

	"cloud.google.com/go/civil"
)

// Car is the catalog root entity.
type Car struct {
	ID                 string
	Code               string
	DealerID           string // empty when the car has no dealer
	Title              string
	Brand              string
	Model              string
	Year               *int64
	Price              *Money
	DiscountPrice      *Money
	KM                 *int64
	Fuel               string
	Transmission       string
	Body               string
	Seats              *int64
	City               string
	RTO                string
	ColorKey           string
	Thumbnail          string
	RegistrationNumber string
	AvailabilityStatus AvailabilityStatus
	InsuranceType      InsuranceType
	InsuranceValidTill *civil.Date
	OwnerCount         int64
	Tags               []string
	Metadata           map[string]interface{}
	CreatedAt          time.Time
}

// DiscountPercent returns the rounded discount percentage, if any.
func (c *Car) DiscountPercent() (string, bool) {
	return DiscountPercent(c.Price, c.DiscountPrice)
}

// Dealer sells cars.
type Dealer struct {
	ID         string
	Code       string
	Name       string
	Phone      string
	Email      string
	Address    string
	City       string
	State      string
	PostalCode string
	Tier       DealerTier
	Tags       []string
	CreatedAt  time.Time
}

// CategoryKind selects one of the master category tables.
type CategoryKind int

const (
	ImageCategory CategoryKind = iota
	SpecCategory
	FeatureCategory
)

func (k CategoryKind) String() string {
	switch k {
	case ImageCategory:
		return "image"
	case SpecCategory:
		return "spec"
	case FeatureCategory:
		return "feature"
	default:
		return "unknown"
	}
}

// CarImage is a photo of a car within an image category.
type CarImage struct {
	CategoryKey string
	Path        string
	Caption     string
	SortOrder   int64
}

// CarHighlight is a short selling point.
type CarHighlight struct {
	Text string
}

// CarReason is a reason to buy, unique per car by title.
type CarReason struct {
	Title       string
	Description string
	SortOrder   int64
}

// CarSpec is a labelled specification value in a spec category.
type CarSpec struct {
	CategoryKey string
	Label       string
	Value       string
}

// CarFeature is a named feature with its condition.
type CarFeature struct {
	CategoryKey string
	Name        string
	Status      FeatureStatus
}
