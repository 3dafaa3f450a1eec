package summary

import (
	"github.com/paydivvy/paydivvy/internal/money"
	"github.com/paydivvy/paydivvy/pkg/category"
	"github.com/paydivvy/paydivvy/pkg/expense"
	"github.com/paydivvy/paydivvy/pkg/income"
)

// Summary is the top-line view of the ledger: how much income was planned,
// how much arrived, how much is committed to expenses, and what is left.
type Summary struct {
	TotalExpectedIncome money.Cents
	TotalReceivedIncome money.Cents
	TotalExpenseAmount  money.Cents
	RemainingBudget     money.Cents
}

// CategorySlice is one category's share of total spending, carrying the
// angular extent of its pie-chart slice in degrees.
type CategorySlice struct {
	Category   category.Category
	Total      money.Cents
	Percentage float64
	StartAngle float64
	EndAngle   float64
}

// PaycheckSummary shows how much of one income is already allocated to
// expense splits and how much of the received amount remains.
type PaycheckSummary struct {
	IncomeId  string
	Source    string
	Expected  money.Cents
	Received  money.Cents
	Allocated money.Cents
	Remaining money.Cents
}

// The aggregation functions below are pure and total: they are defined for
// empty input (returning zero) and their results do not depend on input
// ordering.

func TotalExpectedIncome(incomes []income.Income) money.Cents {
	var total money.Cents
	for _, inc := range incomes {
		total += inc.Expected
	}
	return total
}

func TotalReceivedIncome(incomes []income.Income) money.Cents {
	var total money.Cents
	for _, inc := range incomes {
		total += inc.Received
	}
	return total
}

func TotalExpenseAmount(expenses []expense.Expense) money.Cents {
	var total money.Cents
	for _, exp := range expenses {
		total += exp.Total()
	}
	return total
}

func RemainingBudget(incomes []income.Income, expenses []expense.Expense) money.Cents {
	return TotalReceivedIncome(incomes) - TotalExpenseAmount(expenses)
}

func PerCategoryTotal(expenses []expense.Expense, categoryId string) money.Cents {
	var total money.Cents
	for _, exp := range expenses {
		if exp.Category == categoryId {
			total += exp.Total()
		}
	}
	return total
}

// PerCategoryPercentage returns the category's share of total spending on a
// 0-100 scale. It reports 0 when nothing is spent at all, never NaN.
func PerCategoryPercentage(expenses []expense.Expense, categoryId string) float64 {
	total := TotalExpenseAmount(expenses)
	if total == 0 {
		return 0
	}
	return float64(PerCategoryTotal(expenses, categoryId)) / float64(total) * 100
}

func PerPaycheckExpenseTotal(expenses []expense.Expense, incomeId string) money.Cents {
	var total money.Cents
	for _, exp := range expenses {
		for _, split := range exp.Splits {
			if split.IncomeId == incomeId {
				total += split.Amount
			}
		}
	}
	return total
}

func PerPaycheckRemaining(inc income.Income, expenses []expense.Expense) money.Cents {
	return inc.Received - PerPaycheckExpenseTotal(expenses, inc.Id)
}

func BuildSummary(incomes []income.Income, expenses []expense.Expense) Summary {
	return Summary{
		TotalExpectedIncome: TotalExpectedIncome(incomes),
		TotalReceivedIncome: TotalReceivedIncome(incomes),
		TotalExpenseAmount:  TotalExpenseAmount(expenses),
		RemainingBudget:     RemainingBudget(incomes, expenses),
	}
}
