package m_section_score

// Data represents the database model for the car_section_scores table.
type Data struct {
	CarID      string  `spanner:"car_id"`
	SectionKey string  `spanner:"section_key"`
	Score      float64 `spanner:"score"`
	Rating     string  `spanner:"rating"`
	Status     string  `spanner:"status"`
	Remarks    string  `spanner:"remarks"`
	Position   int64   `spanner:"position"`
}
