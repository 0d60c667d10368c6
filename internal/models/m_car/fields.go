package m_car

// Field name constants for the cars table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "cars"

	CarID              = "car_id"
	CarCode            = "car_code"
	DealerID           = "dealer_id"
	Title              = "title"
	Brand              = "brand"
	CarModel           = "model"
	Year               = "year"
	Price              = "price"
	DiscountPrice      = "discount_price"
	KM                 = "km"
	Fuel               = "fuel"
	Transmission       = "transmission"
	Body               = "body"
	Seats              = "seats"
	City               = "city"
	RTO                = "rto"
	ColorKey           = "color_key"
	Thumbnail          = "thumbnail"
	RegistrationNumber = "registration_number"
	AvailabilityStatus = "availability_status"
	InsuranceType      = "insurance_type"
	InsuranceValidTill = "insurance_valid_till"
	OwnerCount         = "owner_count"
	Tags               = "tags"
	Metadata           = "metadata"
	CreatedAt          = "created_at"
	UpdatedAt          = "updated_at"
)

// Col qualifies a column with the table name for use in correlated sub-queries.
func Col(name string) string {
	return TableName + "." + name
}

// ReadColumns lists the columns loaded into Data.
var ReadColumns = []string{
	CarID, CarCode, DealerID, Title, Brand, CarModel, Year, Price, DiscountPrice,
	KM, Fuel, Transmission, Body, Seats, City, RTO, ColorKey, Thumbnail,
	RegistrationNumber, AvailabilityStatus, InsuranceType, InsuranceValidTill,
	OwnerCount, Tags, Metadata, CreatedAt, UpdatedAt,
}

// MutableColumns are the columns an update may write. The key, car_code
// and timestamps are excluded.
var MutableColumns = []string{
	DealerID, Title, Brand, CarModel, Year, Price, DiscountPrice,
	KM, Fuel, Transmission, Body, Seats, City, RTO, ColorKey, Thumbnail,
	RegistrationNumber, AvailabilityStatus, InsuranceType, InsuranceValidTill,
	OwnerCount, Tags, Metadata,
}

// ListingColumns are the columns a dealer's bulk upload maintains.
var ListingColumns = []string{Title, Brand, CarModel, Year, Price, KM, Fuel, Transmission, City}
