package m_subsection_remark

// Field name constants for the car_subsection_remarks table.
const (
	TableName = "car_subsection_remarks"

	CarID         = "car_id"
	SectionKey    = "section_key"
	SubsectionKey = "subsection_key"
	Status        = "status"
	Remarks       = "remarks"
	Position      = "position"
)

// Col qualifies a column with the table name for use in correlated sub-queries.
func Col(name string) string {
	return TableName + "." + name
}

// KeyColumns is the primary key, car_id first.
var KeyColumns = []string{CarID, SectionKey, SubsectionKey}

// ReadColumns lists the columns loaded into Data.
var ReadColumns = []string{CarID, SectionKey, SubsectionKey, Status, Remarks, Position}

var mutableColumns = []string{Status, Remarks}
