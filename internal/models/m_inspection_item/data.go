package m_inspection_item

// Data represents the database model for the inspection_items table.
type Data struct {
	CarID         string `spanner:"car_id"`
	SectionKey    string `spanner:"section_key"`
	SubsectionKey string `spanner:"subsection_key"`
	Name          string `spanner:"name"`
	Status        string `spanner:"status"`
	Remarks       string `spanner:"remarks"`
	Position      int64  `spanner:"position"`
}
