package services

import (
	"context"
	"database/sql"

	"github.com/isdelr/mycarexpenses-be/internal/models"
)

// AnalyticsServiceProvider defines the interface for expense analytics.
type AnalyticsServiceProvider interface {
	Summarize(ctx context.Context, userID int64, filter models.ExpenseFilter) (models.ExpenseSummary, error)
}

// AnalyticsService aggregates a user's expenses.
type AnalyticsService struct {
	db *sql.DB
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(db *sql.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// Summarize totals the caller's expenses and breaks them down by category.
// The category member of filter is ignored. Totals are derived from the
// per-category rows of a single statement, so they always agree with
// by_category.
func (s *AnalyticsService) Summarize(ctx context.Context, userID int64, filter models.ExpenseFilter) (models.ExpenseSummary, error) {
	filter.Category = nil
	where, args := ownedExpensesWhere(userID, filter)

	rows, err := s.db.QueryContext(ctx, `
		SELECT e.category, SUM(e.amount), COUNT(e.expense_id)
		FROM expenses e
		JOIN cars c ON e.car_id = c.car_id`+where+`
		GROUP BY e.category`, args...)
	if err != nil {
		return models.ExpenseSummary{}, err
	}
	defer rows.Close()

	summary := models.ExpenseSummary{ByCategory: make(map[string]float64)}
	for rows.Next() {
		var category string
		var total float64
		var count int64
		if err := rows.Scan(&category, &total, &count); err != nil {
			return models.ExpenseSummary{}, err
		}
		summary.ByCategory[category] = total
		summary.TotalAmount += total
		summary.TotalCount += count
	}
	if err := rows.Err(); err != nil {
		return models.ExpenseSummary{}, err
	}
	return summary, nil
}
