package m_inspection_subsection

// Data represents the database model for the inspection_subsections table.
type Data struct {
	SectionKey    string `spanner:"section_key"`
	SubsectionKey string `spanner:"subsection_key"`
	Title         string `spanner:"title"`
	SortOrder     int64  `spanner:"sort_order"`
	Remarks       string `spanner:"remarks"`
}
