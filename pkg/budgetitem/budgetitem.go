package budgetitem

import (
	"github.com/paydivvy/paydivvy/internal/money"
	"github.com/paydivvy/paydivvy/internal/rest"
)

// BudgetItem is a planning entry for the budget-vs-actual view. It lives
// beside the paycheck ledger: it references a category but carries no
// relationship to incomes or expenses.
type BudgetItem struct {
	Id         string
	CategoryId string
	Name       string
	Expected   money.Cents
	Received   money.Cents
}

func (b BudgetItem) Validate() error {
	if b.Name == "" {
		return rest.NewValidationError("name", "Budget item name is required")
	}
	if b.Expected < 0 {
		return rest.NewValidationError("expected", "Expected amount cannot be negative")
	}
	if b.Received < 0 {
		return rest.NewValidationError("received", "Received amount cannot be negative")
	}
	return nil
}
