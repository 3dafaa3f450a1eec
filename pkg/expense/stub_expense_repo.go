package expense

import (
	"context"
	"sort"
)

type StubExpenseRepo struct {
	data map[string]Expense
}

func NewStubExpenseRepo() *StubExpenseRepo {
	return &StubExpenseRepo{data: map[string]Expense{}}
}

func (s *StubExpenseRepo) Store(ctx context.Context, userId int, expense Expense) error {
	s.data[expense.Id] = expense
	return nil
}

func (s *StubExpenseRepo) GetAll(ctx context.Context, userId int) ([]Expense, error) {
	expenses := make([]Expense, 0, len(s.data))
	for _, expense := range s.data {
		expenses = append(expenses, expense)
	}
	sort.Slice(expenses, func(i, j int) bool {
		return expenses[i].DueDate.After(expenses[j].DueDate)
	})
	return expenses, nil
}

func (s *StubExpenseRepo) Update(ctx context.Context, userId int, expense Expense) (bool, error) {
	if _, ok := s.data[expense.Id]; !ok {
		return false, nil
	}
	s.data[expense.Id] = expense
	return true, nil
}

func (s *StubExpenseRepo) Delete(ctx context.Context, userId int, expenseId string) (bool, error) {
	if _, ok := s.data[expenseId]; !ok {
		return false, nil
	}
	delete(s.data, expenseId)
	return true, nil
}

func (s *StubExpenseRepo) Cleanup() {
	s.data = map[string]Expense{}
}
