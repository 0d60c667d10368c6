package m_inspection_section

// Data represents the database model for the inspection_sections table.
type Data struct {
	SectionKey  string `spanner:"section_key"`
	Title       string `spanner:"title"`
	Description string `spanner:"description"`
	Position    int64  `spanner:"position"`
}
