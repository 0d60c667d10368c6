package m_inspection_section

// Field name constants for the inspection_sections table.
const (
	TableName = "inspection_sections"

	SectionKey  = "section_key"
	Title       = "title"
	Description = "description"
	Position    = "position"
)

// ReadColumns lists the columns loaded into Data.
var ReadColumns = []string{SectionKey, Title, Description, Position}
