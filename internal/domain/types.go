package domain

// Pagination carries paging params and totals computed from the
// pre-pagination (filtered) set.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}
