package models

// Domain models matching the database schema ensured by internal/db.

// EstimateItem is one line of an estimate. Items carry no identity of their
// own; they live and die with their parent estimate.
type EstimateItem struct {
	Description string  `json:"description" db:"description" validate:"required"`
	Quantity    float64 `json:"quantity" db:"quantity"`
	UnitPrice   float64 `json:"unit_price" db:"unit_price"`
	Amount      float64 `json:"amount" db:"amount"`
}

// Estimate is the aggregate root: one header row plus its item rows.
// ID is zero until the estimate is first saved. CreatedAt and UpdatedAt are
// RFC3339 UTC text set by the store, never by callers. Amount fields are
// stored as supplied; the store does not recompute them from quantity and
// unit price.
type Estimate struct {
	ID          int64          `json:"id" db:"id"`
	ClientName  string         `json:"client_name" db:"client_name" validate:"required"`
	ProjectName string         `json:"project_name" db:"project_name" validate:"required"`
	Items       []EstimateItem `json:"items"`
	TotalAmount float64        `json:"total_amount" db:"total_amount"`
	CreatedAt   string         `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt   string         `json:"updated_at,omitempty" db:"updated_at"`
}
