package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/paydivvy/paydivvy/internal/rest"
	"github.com/paydivvy/paydivvy/internal/snapshot"
	"github.com/paydivvy/paydivvy/pkg/user"
	log "github.com/sirupsen/logrus"
)

type CategoryService interface {
	GetAll(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, category Category) (Category, error)
	Update(ctx context.Context, category Category) (bool, error)
	Exists(ctx context.Context, categoryId string) (bool, error)
}

type CategoryServiceImpl struct {
	repo CategoryRepo
	hub  *snapshot.Hub
}

func NewCategoryService(repo CategoryRepo, hub *snapshot.Hub) *CategoryServiceImpl {
	return &CategoryServiceImpl{repo: repo, hub: hub}
}

func (s *CategoryServiceImpl) GetAll(ctx context.Context) ([]Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *CategoryServiceImpl) Create(ctx context.Context, category Category) (Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Category{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := category.Validate(); err != nil {
		return Category{}, err
	}

	category.Id = uuid.NewString()
	if err := s.repo.Store(ctx, userId, category); err != nil {
		return Category{}, err
	}

	s.publish(ctx, userId)
	return category, nil
}

func (s *CategoryServiceImpl) Update(ctx context.Context, category Category) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := category.Validate(); err != nil {
		return false, err
	}

	updated, err := s.repo.Update(ctx, userId, category)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("category not updated, probably because it does not exist (%s) or the user (%d) is not the owner", category.Id, userId)
		return false, fmt.Errorf("category %s: %w", category.Id, rest.ErrNotFound)
	}

	s.publish(ctx, userId)
	return true, nil
}

func (s *CategoryServiceImpl) Exists(ctx context.Context, categoryId string) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Exists(ctx, userId, categoryId)
}

func (s *CategoryServiceImpl) publish(ctx context.Context, userId int) {
	categories, err := s.repo.GetAll(ctx, userId)
	if err != nil {
		log.Warnf("skipping categories snapshot publication: %v", err)
		return
	}
	s.hub.Publish(snapshot.Snapshot{Collection: snapshot.Categories, UserId: userId, Records: categories})
}
