package m_dealer

// Field name constants for the dealers table.
const (
	TableName = "dealers"

	DealerID   = "dealer_id"
	DealerCode = "dealer_code"
	Name       = "name"
	Phone      = "phone"
	Email      = "email"
	Address    = "address"
	City       = "city"
	State      = "state"
	PostalCode = "postal_code"
	Tier       = "tier"
	Tags       = "tags"
	CreatedAt  = "created_at"
	UpdatedAt  = "updated_at"
)

// Col qualifies a column with the table name.
func Col(name string) string {
	return TableName + "." + name
}

// ReadColumns lists the columns loaded into Data.
var ReadColumns = []string{
	DealerID, DealerCode, Name, Phone, Email, Address, City, State, PostalCode, Tier, Tags, CreatedAt, UpdatedAt,
}

// mutableColumns follow the key on insert.
var mutableColumns = []string{Name, Phone, Email, Address, City, State, PostalCode, Tier, Tags}
