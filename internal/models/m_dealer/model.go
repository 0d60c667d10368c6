package m_dealer

import "cloud.google.com/go/spanner"

// Model provides a facade for type-safe operations on the dealers table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a dealer.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	columns := append([]string{DealerID, DealerCode}, mutableColumns...)
	columns = append(columns, CreatedAt, UpdatedAt)

	values := append([]interface{}{data.DealerID, data.DealerCode}, data.mutableValues()...)
	values = append(values, spanner.CommitTimestamp, spanner.CommitTimestamp)

	return spanner.Insert(TableName, columns, values)
}
