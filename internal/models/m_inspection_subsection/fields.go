package m_inspection_subsection

// Field name constants for the inspection_subsections table.
const (
	TableName = "inspection_subsections"

	SectionKey    = "section_key"
	SubsectionKey = "subsection_key"
	Title         = "title"
	SortOrder     = "sort_order"
	Remarks       = "remarks"
)

// ReadColumns lists the columns loaded into Data.
var ReadColumns = []string{SectionKey, SubsectionKey, Title, SortOrder, Remarks}
