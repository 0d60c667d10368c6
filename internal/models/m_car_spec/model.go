package m_car_spec

import "cloud.google.com/go/spanner"

// Model provides a facade for type-safe operations on the car_specs table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a car spec.
func (m *Model) InsertMut(data *Data) (*spanner.Mutation, error) {
	return spanner.InsertStruct(TableName, data)
}

// UpdateMut creates a Spanner mutation refreshing the non-key columns of an
// existing car spec. Position is kept from the original insert.
func (m *Model) UpdateMut(data *Data) *spanner.Mutation {
	columns := append(append([]string{}, KeyColumns...), mutableColumns...)
	return spanner.Update(TableName, columns, []interface{}{data.CarID, data.CategoryKey, data.Label, data.Value})
}
