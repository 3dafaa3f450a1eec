package income

import (
	"context"
	"sort"

	"github.com/paydivvy/paydivvy/pkg/expense"
)

type StubIncomeRepo struct {
	data     map[string]Income
	Expenses []expense.Expense
	Cascaded []string
}

func NewStubIncomeRepo() *StubIncomeRepo {
	return &StubIncomeRepo{data: map[string]Income{}}
}

func (s *StubIncomeRepo) Store(ctx context.Context, userId int, income Income) error {
	s.data[income.Id] = income
	return nil
}

func (s *StubIncomeRepo) GetAll(ctx context.Context, userId int) ([]Income, error) {
	incomes := make([]Income, 0, len(s.data))
	for _, income := range s.data {
		incomes = append(incomes, income)
	}
	sort.Slice(incomes, func(i, j int) bool {
		return incomes[i].Date.After(incomes[j].Date)
	})
	return incomes, nil
}

func (s *StubIncomeRepo) Exists(ctx context.Context, userId int, incomeId string) (bool, error) {
	_, ok := s.data[incomeId]
	return ok, nil
}

func (s *StubIncomeRepo) Update(ctx context.Context, userId int, income Income) (bool, error) {
	if _, ok := s.data[income.Id]; !ok {
		return false, nil
	}
	s.data[income.Id] = income
	return true, nil
}

// DeleteWithCascade reconciles the in-memory expenses the same way the SQL
// cascade does: splits of the deleted income vanish, expenses left without
// splits vanish with them.
func (s *StubIncomeRepo) DeleteWithCascade(ctx context.Context, userId int, incomeId string) (bool, error) {
	if _, ok := s.data[incomeId]; !ok {
		return false, nil
	}
	delete(s.data, incomeId)

	toUpdate, toDelete := expense.CascadeRemoveIncome(s.Expenses, incomeId)
	remaining := make([]expense.Expense, 0, len(s.Expenses))
	for _, e := range s.Expenses {
		if containsId(toDelete, e.Id) {
			continue
		}
		for _, updated := range toUpdate {
			if updated.Id == e.Id {
				e = updated
				break
			}
		}
		remaining = append(remaining, e)
	}
	s.Expenses = remaining

	s.Cascaded = append(s.Cascaded, incomeId)
	return true, nil
}

func (s *StubIncomeRepo) Cleanup() {
	s.data = map[string]Income{}
	s.Expenses = nil
	s.Cascaded = nil
}

func containsId(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
