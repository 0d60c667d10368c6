package m_car_spec

// Data represents the database model for the car_specs table.
type Data struct {
	CarID       string `spanner:"car_id"`
	CategoryKey string `spanner:"category_key"`
	Label       string `spanner:"label"`
	Value       string `spanner:"value"`
	Position    int64  `spanner:"position"`
}
