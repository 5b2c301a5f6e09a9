package model

// SortField is field requirements can be sorted by
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByBudget    SortField = "budget"
	SortByFlatSize  SortField = "flatSize"
)

// SortOrder is sorting direction
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Criteria is admin dashboard filter state, never persisted.
// Budget bounds are kept raw, blank or non-numeric bounds are ignored.
type Criteria struct {
	Search     string    `query:"search" json:"search"`
	Status     string    `query:"status" json:"status"`
	LookingFor string    `query:"lookingFor" json:"lookingFor"`
	MinBudget  string    `query:"minBudget" json:"minBudget"`
	MaxBudget  string    `query:"maxBudget" json:"maxBudget"`
	Sort       SortField `query:"sort" json:"sort" validate:"omitempty,oneof=createdAt budget flatSize"`
	Order      SortOrder `query:"order" json:"order" validate:"omitempty,oneof=asc desc"`
}
