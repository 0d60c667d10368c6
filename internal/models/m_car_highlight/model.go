package m_car_highlight

import "cloud.google.com/go/spanner"

// Model provides a facade for type-safe operations on the car_highlights table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a car highlight.
func (m *Model) InsertMut(data *Data) (*spanner.Mutation, error) {
	return spanner.InsertStruct(TableName, data)
}
