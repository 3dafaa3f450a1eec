package category

import (
	"context"
)

type StubCategoryRepo struct {
	data []Category
}

func NewStubCategoryRepo() *StubCategoryRepo {
	return &StubCategoryRepo{}
}

func (s *StubCategoryRepo) Store(ctx context.Context, userId int, category Category) error {
	s.data = append(s.data, category)
	return nil
}

func (s *StubCategoryRepo) GetAll(ctx context.Context, userId int) ([]Category, error) {
	return append([]Category{}, s.data...), nil
}

func (s *StubCategoryRepo) Exists(ctx context.Context, userId int, categoryId string) (bool, error) {
	for _, category := range s.data {
		if category.Id == categoryId {
			return true, nil
		}
	}
	return false, nil
}

func (s *StubCategoryRepo) Update(ctx context.Context, userId int, category Category) (bool, error) {
	for i := range s.data {
		if s.data[i].Id == category.Id {
			s.data[i] = category
			return true, nil
		}
	}
	return false, nil
}

func (s *StubCategoryRepo) Cleanup() {
	s.data = nil
}
