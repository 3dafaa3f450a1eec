package budgetitem

import (
	"context"
	"sort"
)

type StubBudgetItemRepo struct {
	data map[string]BudgetItem
}

func NewStubBudgetItemRepo() *StubBudgetItemRepo {
	return &StubBudgetItemRepo{data: map[string]BudgetItem{}}
}

func (s *StubBudgetItemRepo) Store(ctx context.Context, userId int, item BudgetItem) error {
	s.data[item.Id] = item
	return nil
}

func (s *StubBudgetItemRepo) GetAll(ctx context.Context, userId int) ([]BudgetItem, error) {
	items := make([]BudgetItem, 0, len(s.data))
	for _, item := range s.data {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Name < items[j].Name
	})
	return items, nil
}

func (s *StubBudgetItemRepo) Update(ctx context.Context, userId int, item BudgetItem) (bool, error) {
	if _, ok := s.data[item.Id]; !ok {
		return false, nil
	}
	s.data[item.Id] = item
	return true, nil
}

func (s *StubBudgetItemRepo) Delete(ctx context.Context, userId int, itemId string) (bool, error) {
	if _, ok := s.data[itemId]; !ok {
		return false, nil
	}
	delete(s.data, itemId)
	return true, nil
}

func (s *StubBudgetItemRepo) Cleanup() {
	s.data = map[string]BudgetItem{}
}
