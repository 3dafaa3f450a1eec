package summary

import (
	"testing"
	"time"

	"github.com/paydivvy/paydivvy/pkg/category"
	"github.com/paydivvy/paydivvy/pkg/expense"
	"github.com/paydivvy/paydivvy/pkg/income"
	"github.com/stretchr/testify/assert"
)

func TestBuildSummary(t *testing.T) {
	incomes := []income.Income{
		{Id: "i1", Source: "Acme", Expected: 1000, Received: 1000},
	}
	expenses := []expense.Expense{
		{Id: "e1", Splits: []expense.ExpenseSplit{{IncomeId: "i1", Amount: 300}}},
		{Id: "e2", Splits: []expense.ExpenseSplit{{IncomeId: "i1", Amount: 200}}},
	}

	summary := BuildSummary(incomes, expenses)

	assert.EqualValues(t, 1000, summary.TotalExpectedIncome)
	assert.EqualValues(t, 1000, summary.TotalReceivedIncome)
	assert.EqualValues(t, 500, summary.TotalExpenseAmount)
	assert.EqualValues(t, 500, summary.RemainingBudget)
}

func TestPerPaycheckRemaining(t *testing.T) {
	inc := income.Income{Id: "i1", Expected: 1000, Received: 1000}
	expenses := []expense.Expense{
		{Id: "e1", Splits: []expense.ExpenseSplit{{IncomeId: "i1", Amount: 300}}},
		{Id: "e2", Splits: []expense.ExpenseSplit{{IncomeId: "i1", Amount: 200}}},
	}

	assert.EqualValues(t, 500, PerPaycheckExpenseTotal(expenses, "i1"))
	assert.EqualValues(t, 500, PerPaycheckRemaining(inc, expenses))
}

func TestPerPaycheckTotals_MatchGlobalTotal(t *testing.T) {
	// Summing per-paycheck totals over every referenced income must equal
	// the flat total: no split counted twice, none missed.
	expenses := []expense.Expense{
		{Id: "e1", Splits: []expense.ExpenseSplit{
			{IncomeId: "i1", Amount: 300},
			{IncomeId: "i2", Amount: 150},
		}},
		{Id: "e2", Splits: []expense.ExpenseSplit{{IncomeId: "i2", Amount: 50}}},
	}

	perPaycheck := PerPaycheckExpenseTotal(expenses, "i1") + PerPaycheckExpenseTotal(expenses, "i2")
	assert.Equal(t, TotalExpenseAmount(expenses), perPaycheck)
}

func TestAggregation_OrderIndependent(t *testing.T) {
	incomes := []income.Income{
		{Id: "i1", Received: 700},
		{Id: "i2", Received: 300},
	}
	expenses := []expense.Expense{
		{Id: "e1", Category: "c1", Splits: []expense.ExpenseSplit{{IncomeId: "i1", Amount: 400}}},
		{Id: "e2", Category: "c2", Splits: []expense.ExpenseSplit{{IncomeId: "i2", Amount: 100}}},
	}
	reversedIncomes := []income.Income{incomes[1], incomes[0]}
	reversedExpenses := []expense.Expense{expenses[1], expenses[0]}

	assert.Equal(t, RemainingBudget(incomes, expenses), RemainingBudget(reversedIncomes, reversedExpenses))
	assert.Equal(t, PerCategoryTotal(expenses, "c1"), PerCategoryTotal(reversedExpenses, "c1"))
}

func TestPerCategoryTotal_Idempotent(t *testing.T) {
	expenses := []expense.Expense{
		{Id: "e1", Category: "c1", Splits: []expense.ExpenseSplit{{IncomeId: "i1", Amount: 300}}},
	}

	first := PerCategoryTotal(expenses, "c1")
	second := PerCategoryTotal(expenses, "c1")
	assert.Equal(t, first, second)
}

func TestAggregation_EmptyInput(t *testing.T) {
	summary := BuildSummary(nil, nil)

	assert.EqualValues(t, 0, summary.TotalExpectedIncome)
	assert.EqualValues(t, 0, summary.TotalReceivedIncome)
	assert.EqualValues(t, 0, summary.TotalExpenseAmount)
	assert.EqualValues(t, 0, summary.RemainingBudget)
	assert.EqualValues(t, 0, PerCategoryPercentage(nil, "c1"))
	assert.EqualValues(t, 0, PerPaycheckExpenseTotal(nil, "i1"))
}

func TestBuildCategorySlices(t *testing.T) {
	categories := []category.Category{
		{Id: "c1", Name: "Housing", Color: "#aa0000"},
		{Id: "c2", Name: "Food", Color: "#00aa00"},
	}
	expenses := []expense.Expense{
		{Id: "e1", Category: "c1", Splits: []expense.ExpenseSplit{{IncomeId: "i1", Amount: 300}}},
		{Id: "e2", Category: "c2", Splits: []expense.ExpenseSplit{{IncomeId: "i1", Amount: 700}}},
	}

	slices := BuildCategorySlices(categories, expenses)

	assert.Len(t, slices, 2)
	assert.Equal(t, "c1", slices[0].Category.Id)
	assert.InDelta(t, 30.0, slices[0].Percentage, 1e-9)
	assert.InDelta(t, 0.0, slices[0].StartAngle, 1e-9)
	assert.InDelta(t, 108.0, slices[0].EndAngle, 1e-9)
	assert.InDelta(t, 108.0, slices[1].StartAngle, 1e-9)
	assert.InDelta(t, 360.0, slices[1].EndAngle, 1e-9)
}

func TestBuildCategorySlices_SkipsZeroTotals(t *testing.T) {
	categories := []category.Category{
		{Id: "c1", Name: "Housing"},
		{Id: "c2", Name: "Food"},
		{Id: "c3", Name: "Transport"},
	}
	expenses := []expense.Expense{
		{Id: "e1", Category: "c1", Splits: []expense.ExpenseSplit{{IncomeId: "i1", Amount: 250}}},
		{Id: "e2", Category: "c3", Splits: []expense.ExpenseSplit{{IncomeId: "i1", Amount: 750}}},
	}

	slices := BuildCategorySlices(categories, expenses)

	assert.Len(t, slices, 2)
	assert.Equal(t, "c1", slices[0].Category.Id)
	assert.Equal(t, "c3", slices[1].Category.Id)
	// consecutive layout: no gap where the zero-total category would sit
	assert.Equal(t, slices[0].EndAngle, slices[1].StartAngle)
}

func TestBuildCategorySlices_NothingSpent(t *testing.T) {
	categories := []category.Category{{Id: "c1", Name: "Housing"}}

	slices := BuildCategorySlices(categories, nil)

	assert.Empty(t, slices)
}

func TestCascadeLeavesZeroExpenseTotal(t *testing.T) {
	// Deleting the only income behind two single-split expenses removes
	// both of them, so the global total drops to zero.
	expenses := []expense.Expense{
		{Id: "e1", Splits: []expense.ExpenseSplit{{IncomeId: "i1", Amount: 300}}},
		{Id: "e2", Splits: []expense.ExpenseSplit{{IncomeId: "i1", Amount: 200}}},
	}

	toUpdate, toDelete := expense.CascadeRemoveIncome(expenses, "i1")
	assert.Empty(t, toUpdate)
	assert.ElementsMatch(t, []string{"e1", "e2"}, toDelete)

	var remaining []expense.Expense
	assert.EqualValues(t, 0, TotalExpenseAmount(remaining))
}

func TestBuildSummary_WithDates(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	incomes := []income.Income{
		{Id: "i1", Date: date, Source: "Acme", Expected: 250000, Received: 248000},
		{Id: "i2", Date: date.AddDate(0, 0, 14), Source: "Acme", Expected: 250000, Received: 0},
	}
	expenses := []expense.Expense{
		{Id: "e1", DueDate: date.AddDate(0, 0, 5), Splits: []expense.ExpenseSplit{
			{IncomeId: "i1", Amount: 120000},
			{IncomeId: "i2", Amount: 30000},
		}},
	}

	summary := BuildSummary(incomes, expenses)

	assert.EqualValues(t, 500000, summary.TotalExpectedIncome)
	assert.EqualValues(t, 248000, summary.TotalReceivedIncome)
	assert.EqualValues(t, 150000, summary.TotalExpenseAmount)
	assert.EqualValues(t, 98000, summary.RemainingBudget)
}
