package m_car_highlight

// Field name constants for the car_highlights table.
const (
	TableName = "car_highlights"

	CarID    = "car_id"
	Text     = "text"
	Position = "position"
)

// Col qualifies a column with the table name for use in correlated sub-queries.
func Col(name string) string {
	return TableName + "." + name
}

// KeyColumns is the primary key, car_id first.
var KeyColumns = []string{CarID, Text}

// ReadColumns lists the columns loaded into Data.
var ReadColumns = []string{CarID, Text, Position}
