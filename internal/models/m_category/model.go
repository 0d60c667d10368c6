package m_category

import "cloud.google.com/go/spanner"

// Model provides a facade for type-safe operations on one category table.
type Model struct {
	kind Kind
}

// NewModel creates a Model bound to the kind's table.
func NewModel(kind Kind) *Model {
	return &Model{kind: kind}
}

// InsertMut creates a Spanner mutation for inserting a category.
// Existing categories are never renamed by imports, so there is no update.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(m.kind.TableName(), ReadColumns, []interface{}{data.CategoryKey, data.Title})
}
