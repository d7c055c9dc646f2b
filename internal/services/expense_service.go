package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/isdelr/mycarexpenses-be/internal/models"
)

// ExpenseServiceProvider defines the interface for expense services.
type ExpenseServiceProvider interface {
	ListExpenses(ctx context.Context, userID int64, filter models.ExpenseFilter) ([]models.Expense, error)
	CreateExpense(ctx context.Context, userID int64, expense models.NewExpense) (int64, error)
	UpdateExpense(ctx context.Context, userID, expenseID int64, patch models.ExpensePatch) error
	DeleteExpense(ctx context.Context, userID, expenseID int64) error
}

// ExpenseService provides business logic for expenses. Every query joins
// through cars so that only the car owner can see or touch an expense.
type ExpenseService struct {
	db *sql.DB
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(db *sql.DB) *ExpenseService {
	return &ExpenseService{db: db}
}

// ValidateDate checks that s is a zero-padded YYYY-MM-DD calendar date.
func ValidateDate(s string) error {
	if _, err := time.Parse(models.DateLayout, s); err != nil {
		return fmt.Errorf("%w: date %q must be formatted as YYYY-MM-DD", ErrValidation, s)
	}
	return nil
}

// ownedExpensesWhere builds the WHERE clause shared by listings and
// summaries. Every present filter member adds one conjunct. Date bounds
// are compared as text, so partial bounds such as "2024-06" are allowed.
func ownedExpensesWhere(userID int64, filter models.ExpenseFilter) (string, []interface{}) {
	var b strings.Builder
	args := []interface{}{userID}
	b.WriteString(" WHERE c.user_id = ?")

	if filter.CarID != nil {
		b.WriteString(" AND e.car_id = ?")
		args = append(args, *filter.CarID)
	}
	if filter.StartDate != nil {
		b.WriteString(" AND e.date >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		b.WriteString(" AND e.date <= ?")
		args = append(args, *filter.EndDate)
	}
	if filter.Category != nil {
		b.WriteString(" AND e.category = ?")
		args = append(args, *filter.Category)
	}
	return b.String(), args
}

// ListExpenses returns the caller's expenses matching filter, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, userID int64, filter models.ExpenseFilter) ([]models.Expense, error) {
	where, args := ownedExpensesWhere(userID, filter)
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.expense_id, e.car_id, e.date, e.amount, e.category, e.description
		FROM expenses e
		JOIN cars c ON e.car_id = c.car_id`+where+`
		ORDER BY e.date DESC, e.expense_id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0)
	for rows.Next() {
		var e models.Expense
		var description sql.NullString
		if err := rows.Scan(&e.ID, &e.CarID, &e.Date, &e.Amount, &e.Category, &description); err != nil {
			return nil, err
		}
		e.Description = description.String
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// CreateExpense logs a new expense against a car owned by userID.
func (s *ExpenseService) CreateExpense(ctx context.Context, userID int64, in models.NewExpense) (int64, error) {
	if in.CarID == nil || in.Date == nil || in.Amount == nil || in.Category == nil ||
		*in.Date == "" || strings.TrimSpace(*in.Category) == "" {
		return 0, fmt.Errorf("%w: car_id, date, amount and category are required", ErrValidation)
	}
	if err := ValidateDate(*in.Date); err != nil {
		return 0, err
	}
	if *in.Amount < 0 {
		return 0, fmt.Errorf("%w: amount must not be negative", ErrValidation)
	}
	description := ""
	if in.Description != nil {
		description = *in.Description
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM cars WHERE car_id = ? AND user_id = ?", *in.CarID, userID).Scan(&exists)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("%w: car %d", ErrNotFound, *in.CarID)
	}
	if err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO expenses (car_id, date, amount, category, description)
		VALUES (?, ?, ?, ?, ?)`,
		*in.CarID, *in.Date, *in.Amount, *in.Category, description,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

// checkExpenseOwner fails with ErrNotFound unless expenseID belongs to a
// car owned by userID.
func checkExpenseOwner(ctx context.Context, tx *sql.Tx, userID, expenseID int64) error {
	var exists int
	err := tx.QueryRowContext(ctx, `
		SELECT 1 FROM expenses e
		JOIN cars c ON e.car_id = c.car_id
		WHERE e.expense_id = ? AND c.user_id = ?`, expenseID, userID).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: expense %d", ErrNotFound, expenseID)
	}
	return err
}

// UpdateExpense writes exactly the fields present in patch.
func (s *ExpenseService) UpdateExpense(ctx context.Context, userID, expenseID int64, patch models.ExpensePatch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := checkExpenseOwner(ctx, tx, userID, expenseID); err != nil {
		return err
	}
	if patch.Empty() {
		return fmt.Errorf("%w: nothing to update", ErrValidation)
	}

	var sets []string
	var args []interface{}

	if patch.Date.Set {
		if patch.Date.Null {
			return fmt.Errorf("%w: date cannot be null", ErrValidation)
		}
		if err := ValidateDate(patch.Date.Value); err != nil {
			return err
		}
		sets = append(sets, "date = ?")
		args = append(args, patch.Date.Value)
	}
	if patch.Amount.Set {
		if patch.Amount.Null || patch.Amount.Value < 0 {
			return fmt.Errorf("%w: amount must be a non-negative number", ErrValidation)
		}
		sets = append(sets, "amount = ?")
		args = append(args, patch.Amount.Value)
	}
	if patch.Category.Set {
		if patch.Category.Null || strings.TrimSpace(patch.Category.Value) == "" {
			return fmt.Errorf("%w: category cannot be empty", ErrValidation)
		}
		sets = append(sets, "category = ?")
		args = append(args, patch.Category.Value)
	}
	if patch.Description.Set {
		// null clears the description
		sets = append(sets, "description = ?")
		args = append(args, patch.Description.Value)
	}

	args = append(args, expenseID)
	query := "UPDATE expenses SET " + strings.Join(sets, ", ") + " WHERE expense_id = ?"
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteExpense removes an expense owned (through its car) by userID.
func (s *ExpenseService) DeleteExpense(ctx context.Context, userID, expenseID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := checkExpenseOwner(ctx, tx, userID, expenseID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE expense_id = ?", expenseID); err != nil {
		return err
	}
	return tx.Commit()
}
