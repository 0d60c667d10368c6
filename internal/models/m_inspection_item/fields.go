package m_inspection_item

// Field name constants for the inspection_items table.
const (
	TableName = "inspection_items"

	CarID         = "car_id"
	SectionKey    = "section_key"
	SubsectionKey = "subsection_key"
	Name          = "name"
	Status        = "status"
	Remarks       = "remarks"
	Position      = "position"
)

// Col qualifies a column with the table name for use in correlated sub-queries.
func Col(name string) string {
	return TableName + "." + name
}

// KeyColumns is the primary key, car_id first.
var KeyColumns = []string{CarID, SectionKey, SubsectionKey, Name}

// ReadColumns lists the columns loaded into Data.
var ReadColumns = []string{CarID, SectionKey, SubsectionKey, Name, Status, Remarks, Position}

var mutableColumns = []string{Status, Remarks}
