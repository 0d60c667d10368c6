package m_car

import (
	"fmt"

	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the cars table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a car.
// Timestamps are set to the commit timestamp.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	columns := append([]string{CarID, CarCode}, MutableColumns...)
	values := data.values(columns)

	columns = append(columns, CreatedAt, UpdatedAt)
	values = append(values, spanner.CommitTimestamp, spanner.CommitTimestamp)

	return spanner.Insert(TableName, columns, values)
}

// UpdateMut creates a Spanner mutation writing the given mutable columns of
// an existing car. Columns outside MutableColumns are rejected.
func (m *Model) UpdateMut(data *Data, columns []string) (*spanner.Mutation, error) {
	allowed := make(map[string]bool, len(MutableColumns))
	for _, col := range MutableColumns {
		allowed[col] = true
	}
	for _, col := range columns {
		if !allowed[col] {
			return nil, fmt.Errorf("column %q is not updatable", col)
		}
	}

	cols := append([]string{CarID}, columns...)
	values := data.values(cols)

	cols = append(cols, UpdatedAt)
	values = append(values, spanner.CommitTimestamp)

	return spanner.Update(TableName, cols, values), nil
}
