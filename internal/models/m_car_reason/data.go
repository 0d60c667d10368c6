package m_car_reason

// Data represents the database model for the car_reasons table.
type Data struct {
	CarID       string `spanner:"car_id"`
	Title       string `spanner:"title"`
	Description string `spanner:"description"`
	SortOrder   int64  `spanner:"sort_order"`
	Position    int64  `spanner:"position"`
}
