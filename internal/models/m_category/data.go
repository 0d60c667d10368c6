package m_category

// Data represents a row of any category table.
type Data struct {
	CategoryKey string `spanner:"category_key"`
	Title       string `spanner:"title"`
}
