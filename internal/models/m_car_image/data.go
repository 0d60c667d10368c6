package m_car_image

// Data represents the database model for the car_images table.
type Data struct {
	CarID       string `spanner:"car_id"`
	CategoryKey string `spanner:"category_key"`
	ImagePath   string `spanner:"image_path"`
	Caption     string `spanner:"caption"`
	SortOrder   int64  `spanner:"sort_order"`
	Position    int64  `spanner:"position"`
}
