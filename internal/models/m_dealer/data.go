package m_dealer

import "time"

// Data represents the database model for the dealers table.
type Data struct {
	DealerID   string    `spanner:"dealer_id"`
	DealerCode string    `spanner:"dealer_code"`
	Name       string    `spanner:"name"`
	Phone      string    `spanner:"phone"`
	Email      string    `spanner:"email"`
	Address    string    `spanner:"address"`
	City       string    `spanner:"city"`
	State      string    `spanner:"state"`
	PostalCode string    `spanner:"postal_code"`
	Tier       string    `spanner:"tier"`
	Tags       []string  `spanner:"tags"`
	CreatedAt  time.Time `spanner:"created_at"`
	UpdatedAt  time.Time `spanner:"updated_at"`
}

func (d *Data) mutableValues() []interface{} {
	return []interface{}{d.Name, d.Phone, d.Email, d.Address, d.City, d.State, d.PostalCode, d.Tier, d.Tags}
}
