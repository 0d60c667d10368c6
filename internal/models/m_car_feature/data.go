package m_car_feature

// Data represents the database model for the car_features table.
type Data struct {
	CarID       string `spanner:"car_id"`
	CategoryKey string `spanner:"category_key"`
	Name        string `spanner:"name"`
	Status      string `spanner:"status"`
	Position    int64  `spanner:"position"`
}
