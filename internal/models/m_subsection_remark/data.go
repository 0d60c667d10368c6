package m_subsection_remark

// Data represents the database model for the car_subsection_remarks table.
type Data struct {
	CarID         string `spanner:"car_id"`
	SectionKey    string `spanner:"section_key"`
	SubsectionKey string `spanner:"subsection_key"`
	Status        string `spanner:"status"`
	Remarks       string `spanner:"remarks"`
	Position      int64  `spanner:"position"`
}
