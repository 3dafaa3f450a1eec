package expense

import (
	"time"

	"github.com/paydivvy/paydivvy/internal/money"
	"github.com/paydivvy/paydivvy/internal/rest"
)

// ExpenseSplit charges a portion of an expense against one specific income.
type ExpenseSplit struct {
	IncomeId string
	Amount   money.Cents
}

// Expense is a named, categorized, due-dated cost allocated across one or
// more incomes via splits. Its total cost is never stored; it is always the
// sum of its split amounts.
type Expense struct {
	Id       string
	Name     string
	Category string
	DueDate  time.Time
	Splits   []ExpenseSplit
}

// Total is the derived cost of the expense.
func (e Expense) Total() money.Cents {
	var total money.Cents
	for _, split := range e.Splits {
		total += split.Amount
	}
	return total
}

// Validate enforces the split reconciliation rules: an expense must have a
// name and a due date, at least one split, every split assigned to a distinct
// existing income, and no negative amounts. Existence of the referenced
// income and category is checked separately at the service boundary.
func (e Expense) Validate() error {
	if e.Name == "" {
		return rest.NewValidationError("name", "Expense name is required")
	}
	if e.DueDate.IsZero() {
		return rest.NewValidationError("dueDate", "Due date is required")
	}
	if len(e.Splits) == 0 {
		return rest.NewValidationError("splits", "An expense needs at least one split")
	}
	seen := make(map[string]bool, len(e.Splits))
	for _, split := range e.Splits {
		if split.IncomeId == "" {
			return rest.NewValidationError("splits", "Every split must be assigned to a paycheck")
		}
		if seen[split.IncomeId] {
			return rest.NewValidationError("splits", "A paycheck cannot be used twice on the same expense")
		}
		seen[split.IncomeId] = true
		if split.Amount < 0 {
			return rest.NewValidationError("splits", "Split amount cannot be negative")
		}
	}
	return nil
}

// CascadeRemoveIncome reconciles a list of expenses against the deletion of
// one income: splits referencing it are removed, and any expense that loses
// its last split is scheduled for deletion rather than being kept empty.
// Inputs are not mutated.
func CascadeRemoveIncome(expenses []Expense, incomeId string) (toUpdate []Expense, toDelete []string) {
	for _, e := range expenses {
		remaining := make([]ExpenseSplit, 0, len(e.Splits))
		for _, split := range e.Splits {
			if split.IncomeId != incomeId {
				remaining = append(remaining, split)
			}
		}
		if len(remaining) == len(e.Splits) {
			continue
		}
		if len(remaining) == 0 {
			toDelete = append(toDelete, e.Id)
			continue
		}
		e.Splits = remaining
		toUpdate = append(toUpdate, e)
	}
	return toUpdate, toDelete
}
