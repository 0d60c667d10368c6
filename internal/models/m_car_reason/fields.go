package m_car_reason

// Field name constants for the car_reasons table.
const (
	TableName = "car_reasons"

	CarID       = "car_id"
	Title       = "title"
	Description = "description"
	SortOrder   = "sort_order"
	Position    = "position"
)

// Col qualifies a column with the table name for use in correlated sub-queries.
func Col(name string) string {
	return TableName + "." + name
}

// KeyColumns is the primary key, car_id first.
var KeyColumns = []string{CarID, Title}

// ReadColumns lists the columns loaded into Data.
var ReadColumns = []string{CarID, Title, Description, SortOrder, Position}

var mutableColumns = []string{Description, SortOrder}
