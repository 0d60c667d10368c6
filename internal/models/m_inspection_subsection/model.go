package m_inspection_subsection

import "cloud.google.com/go/spanner"

// Model provides a facade for type-safe operations on the inspection_subsections table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut writes a subsection, creating it or overwriting title, order and remarks.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(TableName, ReadColumns,
		[]interface{}{data.SectionKey, data.SubsectionKey, data.Title, data.SortOrder, data.Remarks})
}
