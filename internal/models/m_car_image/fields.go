package m_car_image

// Field name constants for the car_images table.
const (
	TableName = "car_images"

	CarID       = "car_id"
	CategoryKey = "category_key"
	ImagePath   = "image_path"
	Caption     = "caption"
	SortOrder   = "sort_order"
	Position    = "position"
)

// Col qualifies a column with the table name for use in correlated sub-queries.
func Col(name string) string {
	return TableName + "." + name
}

// KeyColumns is the primary key, car_id first.
var KeyColumns = []string{CarID, CategoryKey, ImagePath}

// ReadColumns lists the columns loaded into Data.
var ReadColumns = []string{CarID, CategoryKey, ImagePath, Caption, SortOrder, Position}

var mutableColumns = []string{Caption, SortOrder}
