package expense

import (
	"testing"
	"time"

	"github.com/paydivvy/paydivvy/internal/rest"
	"github.com/stretchr/testify/assert"
)

func TestExpense_Total(t *testing.T) {
	expense := Expense{Splits: []ExpenseSplit{
		{IncomeId: "a", Amount: 30000},
		{IncomeId: "b", Amount: 20000},
	}}

	assert.EqualValues(t, 50000, expense.Total())
}

func TestExpense_Validate(t *testing.T) {
	dueDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	valid := Expense{
		Name:    "Rent",
		DueDate: dueDate,
		Splits:  []ExpenseSplit{{IncomeId: "a", Amount: 120000}},
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name      string
		expense   Expense
		wantField string
	}{
		{
			name:      "missing name",
			expense:   Expense{DueDate: dueDate, Splits: []ExpenseSplit{{IncomeId: "a"}}},
			wantField: "name",
		},
		{
			name:      "missing due date",
			expense:   Expense{Name: "Rent", Splits: []ExpenseSplit{{IncomeId: "a"}}},
			wantField: "dueDate",
		},
		{
			name:      "no splits",
			expense:   Expense{Name: "Rent", DueDate: dueDate},
			wantField: "splits",
		},
		{
			name:      "unassigned split",
			expense:   Expense{Name: "Rent", DueDate: dueDate, Splits: []ExpenseSplit{{Amount: 100}}},
			wantField: "splits",
		},
		{
			name: "duplicate income",
			expense: Expense{Name: "Rent", DueDate: dueDate, Splits: []ExpenseSplit{
				{IncomeId: "a", Amount: 100},
				{IncomeId: "a", Amount: 200},
			}},
			wantField: "splits",
		},
		{
			name:      "negative amount",
			expense:   Expense{Name: "Rent", DueDate: dueDate, Splits: []ExpenseSplit{{IncomeId: "a", Amount: -1}}},
			wantField: "splits",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.expense.Validate()
			var validationErr *rest.ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}

func TestCascadeRemoveIncome(t *testing.T) {
	dueDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	expenses := []Expense{
		{
			Id: "rent", Name: "Rent", DueDate: dueDate,
			Splits: []ExpenseSplit{{IncomeId: "paycheck-1", Amount: 120000}},
		},
		{
			Id: "groceries", Name: "Groceries", DueDate: dueDate,
			Splits: []ExpenseSplit{
				{IncomeId: "paycheck-1", Amount: 20000},
				{IncomeId: "paycheck-2", Amount: 15000},
			},
		},
		{
			Id: "internet", Name: "Internet", DueDate: dueDate,
			Splits: []ExpenseSplit{{IncomeId: "paycheck-2", Amount: 6000}},
		},
	}

	toUpdate, toDelete := CascadeRemoveIncome(expenses, "paycheck-1")

	// The single-split expense disappears entirely, the two-split expense
	// keeps exactly its other split, and the untouched one stays out of
	// both lists.
	assert.Equal(t, []string{"rent"}, toDelete)
	assert.Len(t, toUpdate, 1)
	assert.Equal(t, "groceries", toUpdate[0].Id)
	assert.Equal(t, []ExpenseSplit{{IncomeId: "paycheck-2", Amount: 15000}}, toUpdate[0].Splits)
}

func TestCascadeRemoveIncome_UnknownIncome(t *testing.T) {
	expenses := []Expense{
		{Id: "rent", Splits: []ExpenseSplit{{IncomeId: "paycheck-1", Amount: 120000}}},
	}

	toUpdate, toDelete := CascadeRemoveIncome(expenses, "paycheck-9")

	assert.Empty(t, toUpdate)
	assert.Empty(t, toDelete)
}

func TestCascadeRemoveIncome_DoesNotMutateInput(t *testing.T) {
	expenses := []Expense{
		{Id: "groceries", Splits: []ExpenseSplit{
			{IncomeId: "paycheck-1", Amount: 20000},
			{IncomeId: "paycheck-2", Amount: 15000},
		}},
	}

	_, _ = CascadeRemoveIncome(expenses, "paycheck-1")

	assert.Len(t, expenses[0].Splits, 2)
}
