package models

import (
	"bytes"
	"encoding/json"
)

// DateLayout is the on-disk and wire format of expense dates. Range filters
// compare dates as strings, which is only chronological for this layout.
const DateLayout = "2006-01-02"

// Expense is a dated cost logged against a car.
type Expense struct {
	ID          int64   `json:"expense_id"`
	CarID       int64   `json:"car_id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// NewExpense is the input for creating an expense. Required fields are
// pointers so that a missing key can be told apart from a zero value.
type NewExpense struct {
	CarID       *int64   `json:"car_id"`
	Date        *string  `json:"date"`
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
}

// ExpensePatch is a partial update. Only fields whose key was present in
// the request body are written.
type ExpensePatch struct {
	Date        Optional[string]  `json:"date"`
	Amount      Optional[float64] `json:"amount"`
	Category    Optional[string]  `json:"category"`
	Description Optional[string]  `json:"description"`
}

// Empty reports whether the patch carries no recognized field.
func (p ExpensePatch) Empty() bool {
	return !p.Date.Set && !p.Amount.Set && !p.Category.Set && !p.Description.Set
}

// ExpenseFilter narrows expense listings and summaries. Nil members impose
// no constraint.
type ExpenseFilter struct {
	CarID     *int64
	StartDate *string
	EndDate   *string
	Category  *string
}

// Optional records whether a JSON key was present at all, separately from
// its value. A present null leaves Set true and Null true.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// UnmarshalJSON is only invoked by encoding/json when the key exists.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}
