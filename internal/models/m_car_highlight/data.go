package m_car_highlight

// Data represents the database model for the car_highlights table.
type Data struct {
	CarID    string `spanner:"car_id"`
	Text     string `spanner:"text"`
	Position int64  `spanner:"position"`
}
