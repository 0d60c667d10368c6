package readmodel

import (
	"time"

	"github.com/light-bringer/carcat-service/internal/pkg/orderedmap"
)

// CarDocument is the nested detail view of one car.
type CarDocument struct {
	ID                 string                 `json:"id"`
	CarCode            string                 `json:"car_code"`
	Title              string                 `json:"title"`
	Brand              string                 `json:"brand"`
	Model              string                 `json:"model"`
	Year               *int64                 `json:"year"`
	Price              string                 `json:"price"`
	DiscountPrice      *string                `json:"discount_price"`
	DiscountPercent    *string                `json:"discount_percent"`
	KM                 *int64                 `json:"km"`
	Fuel               string                 `json:"fuel"`
	Transmission       string                 `json:"transmission"`
	Body               string                 `json:"body"`
	Seats              *int64                 `json:"seats"`
	City               string                 `json:"city"`
	RTO                string                 `json:"rto"`
	ColorKey           string                 `json:"colorKey"`
	Thumbnail          *string                `json:"thumbnail"`
	RegistrationNumber string                 `json:"registration_number"`
	AvailabilityStatus string                 `json:"availability_status"`
	InsuranceType      string                 `json:"insurance_type"`
	InsuranceValidTill *string                `json:"insurance_valid_till"`
	OwnerCount         int64                  `json:"owner_count"`
	Tags               []string               `json:"tags"`
	Metadata           map[string]interface{} `json:"metadata"`
	CreatedAt          time.Time              `json:"created_at"`
	Dealer             *DealerDocument        `json:"dealer"`

	Images       *orderedmap.Map[[]ImageDocument]   `json:"images"`
	Highlights   []HighlightDocument                `json:"highlights"`
	ReasonsToBuy []ReasonDocument                   `json:"reasons_to_buy"`
	Specs        *orderedmap.Map[[]SpecDocument]    `json:"specs"`
	Features     *orderedmap.Map[[]FeatureDocument] `json:"features"`
	Inspections  []SectionDocument                  `json:"inspections"`
}

// DealerDocument is the dealer summary embedded in a car.
type DealerDocument struct {
	ID         string `json:"id"`
	DealerCode string `json:"dealer_code"`
	Name       string `json:"name"`
	City       string `json:"city"`
	Tier       string `json:"tier"`
}

type ImageDocument struct {
	Category  string `json:"category"`
	Image     string `json:"image"`
	Caption   string `json:"caption"`
	SortOrder int64  `json:"sort_order"`
}

type HighlightDocument struct {
	Text string `json:"text"`
}

type ReasonDocument struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	SortOrder   int64  `json:"sort_order"`
}

type SpecDocument struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Value    string `json:"value"`
}

type FeatureDocument struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Status   string `json:"status"`
}

// SectionDocument is one inspection section. Score and rating are present
// only when the car was scored on the section.
type SectionDocument struct {
	Key         string               `json:"key"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Subsections []SubsectionDocument `json:"subsections"`
	Score       *float64             `json:"score,omitempty"`
	Rating      string               `json:"rating,omitempty"`
	Status      string               `json:"status,omitempty"`
	Remarks     string               `json:"remarks,omitempty"`
}

type SubsectionDocument struct {
	Key     string         `json:"key"`
	Title   string         `json:"title"`
	Status  string         `json:"status"`
	Remarks string         `json:"remarks"`
	Items   []ItemDocument `json:"items"`
}

type ItemDocument struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Remarks string `json:"remarks"`
}
