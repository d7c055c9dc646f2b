package models

// ExpenseSummary aggregates the expenses matched by a filter.
type ExpenseSummary struct {
	TotalAmount float64            `json:"total_amount"`
	TotalCount  int64              `json:"total_count"`
	ByCategory  map[string]float64 `json:"by_category"`
}
