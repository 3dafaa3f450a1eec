package summary

import (
	"context"
	"fmt"

	"github.com/paydivvy/paydivvy/internal/rest"
	"github.com/paydivvy/paydivvy/pkg/category"
	"github.com/paydivvy/paydivvy/pkg/expense"
	"github.com/paydivvy/paydivvy/pkg/income"
)

type SummaryService interface {
	GetSummary(ctx context.Context) (Summary, error)
	GetCategoryBreakdown(ctx context.Context) ([]CategorySlice, error)
	GetPaycheckSummary(ctx context.Context, incomeId string) (PaycheckSummary, error)
	GetPaycheckSummaries(ctx context.Context) ([]PaycheckSummary, error)
}

type SummaryServiceImpl struct {
	incomeService   income.IncomeService
	expenseService  expense.ExpenseService
	categoryService category.CategoryService
}

func NewSummaryService(
	incomeService income.IncomeService,
	expenseService expense.ExpenseService,
	categoryService category.CategoryService,
) *SummaryServiceImpl {
	return &SummaryServiceImpl{
		incomeService:   incomeService,
		expenseService:  expenseService,
		categoryService: categoryService,
	}
}

func (s *SummaryServiceImpl) GetSummary(ctx context.Context) (Summary, error) {
	incomes, err := s.incomeService.GetAll(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load incomes: %w", err)
	}
	expenses, err := s.expenseService.GetAll(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load expenses: %w", err)
	}
	return BuildSummary(incomes, expenses), nil
}

func (s *SummaryServiceImpl) GetCategoryBreakdown(ctx context.Context) ([]CategorySlice, error) {
	categories, err := s.categoryService.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	expenses, err := s.expenseService.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	return BuildCategorySlices(categories, expenses), nil
}

func (s *SummaryServiceImpl) GetPaycheckSummary(ctx context.Context, incomeId string) (PaycheckSummary, error) {
	incomes, err := s.incomeService.GetAll(ctx)
	if err != nil {
		return PaycheckSummary{}, fmt.Errorf("failed to load incomes: %w", err)
	}
	for _, inc := range incomes {
		if inc.Id == incomeId {
			expenses, err := s.expenseService.GetAll(ctx)
			if err != nil {
				return PaycheckSummary{}, fmt.Errorf("failed to load expenses: %w", err)
			}
			return buildPaycheckSummary(inc, expenses), nil
		}
	}
	return PaycheckSummary{}, fmt.Errorf("income %s: %w", incomeId, rest.ErrNotFound)
}

func (s *SummaryServiceImpl) GetPaycheckSummaries(ctx context.Context) ([]PaycheckSummary, error) {
	incomes, err := s.incomeService.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load incomes: %w", err)
	}
	expenses, err := s.expenseService.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	summaries := make([]PaycheckSummary, 0, len(incomes))
	for _, inc := range incomes {
		summaries = append(summaries, buildPaycheckSummary(inc, expenses))
	}
	return summaries, nil
}

func buildPaycheckSummary(inc income.Income, expenses []expense.Expense) PaycheckSummary {
	allocated := PerPaycheckExpenseTotal(expenses, inc.Id)
	return PaycheckSummary{
		IncomeId:  inc.Id,
		Source:    inc.Source,
		Expected:  inc.Expected,
		Received:  inc.Received,
		Allocated: allocated,
		Remaining: inc.Received - allocated,
	}
}
