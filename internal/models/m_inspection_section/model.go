package m_inspection_section

import "cloud.google.com/go/spanner"

// Model provides a facade for type-safe operations on the inspection_sections table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a section.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, ReadColumns,
		[]interface{}{data.SectionKey, data.Title, data.Description, data.Position})
}

// UpdateMut refreshes title and description. The display position is fixed at first import.
func (m *Model) UpdateMut(data *Data) *spanner.Mutation {
	return spanner.Update(TableName, []string{SectionKey, Title, Description},
		[]interface{}{data.SectionKey, data.Title, data.Description})
}
