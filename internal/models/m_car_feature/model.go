package m_car_feature

import "cloud.google.com/go/spanner"

// Model provides a facade for type-safe operations on the car_features table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a car feature.
func (m *Model) InsertMut(data *Data) (*spanner.Mutation, error) {
	return spanner.InsertStruct(TableName, data)
}

// UpdateMut creates a Spanner mutation refreshing the non-key columns of an
// existing car feature. Position is kept from the original insert.
func (m *Model) UpdateMut(data *Data) *spanner.Mutation {
	columns := append(append([]string{}, KeyColumns...), mutableColumns...)
	return spanner.Update(TableName, columns, []interface{}{data.CarID, data.CategoryKey, data.Name, data.Status})
}
