package m_car_feature

// Field name constants for the car_features table.
const (
	TableName = "car_features"

	CarID       = "car_id"
	CategoryKey = "category_key"
	Name        = "name"
	Status      = "status"
	Position    = "position"
)

// Col qualifies a column with the table name for use in correlated sub-queries.
func Col(name string) string {
	return TableName + "." + name
}

// KeyColumns is the primary key, car_id first.
var KeyColumns = []string{CarID, CategoryKey, Name}

// ReadColumns lists the columns loaded into Data.
var ReadColumns = []string{CarID, CategoryKey, Name, Status, Position}

var mutableColumns = []string{Status}
