package m_section_score

// Field name constants for the car_section_scores table.
const (
	TableName = "car_section_scores"

	CarID      = "car_id"
	SectionKey = "section_key"
	Score      = "score"
	Rating     = "rating"
	Status     = "status"
	Remarks    = "remarks"
	Position   = "position"
)

// Col qualifies a column with the table name for use in correlated sub-queries.
func Col(name string) string {
	return TableName + "." + name
}

// KeyColumns is the primary key, car_id first.
var KeyColumns = []string{CarID, SectionKey}

// ReadColumns lists the columns loaded into Data.
var ReadColumns = []string{CarID, SectionKey, Score, Rating, Status, Remarks, Position}

var mutableColumns = []string{Score, Rating, Status, Remarks}
