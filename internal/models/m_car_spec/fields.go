package m_car_spec

// Field name constants for the car_specs table.
const (
	TableName = "car_specs"

	CarID       = "car_id"
	CategoryKey = "category_key"
	Label       = "label"
	Value       = "value"
	Position    = "position"
)

// Col qualifies a column with the table name for use in correlated sub-queries.
func Col(name string) string {
	return TableName + "." + name
}

// KeyColumns is the primary key, car_id first.
var KeyColumns = []string{CarID, CategoryKey, Label}

// ReadColumns lists the columns loaded into Data.
var ReadColumns = []string{CarID, CategoryKey, Label, Value, Position}

var mutableColumns = []string{Value}
