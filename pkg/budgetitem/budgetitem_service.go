package budgetitem

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/paydivvy/paydivvy/internal/rest"
	"github.com/paydivvy/paydivvy/internal/snapshot"
	"github.com/paydivvy/paydivvy/pkg/user"
	log "github.com/sirupsen/logrus"
)

// CategoryChecker reports whether the current user owns the given category.
type CategoryChecker func(ctx context.Context, categoryId string) (bool, error)

type BudgetItemService interface {
	GetAll(ctx context.Context) ([]BudgetItem, error)
	Create(ctx context.Context, item BudgetItem) (BudgetItem, error)
	Update(ctx context.Context, item BudgetItem) (bool, error)
	Delete(ctx context.Context, itemId string) (bool, error)
}

type BudgetItemServiceImpl struct {
	repo           BudgetItemRepo
	hub            *snapshot.Hub
	categoryExists CategoryChecker
}

func NewBudgetItemService(repo BudgetItemRepo, hub *snapshot.Hub, categoryExists CategoryChecker) *BudgetItemServiceImpl {
	return &BudgetItemServiceImpl{repo: repo, hub: hub, categoryExists: categoryExists}
}

func (s *BudgetItemServiceImpl) GetAll(ctx context.Context) ([]BudgetItem, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *BudgetItemServiceImpl) Create(ctx context.Context, item BudgetItem) (BudgetItem, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return BudgetItem{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := s.validateItem(ctx, item); err != nil {
		return BudgetItem{}, err
	}

	item.Id = uuid.NewString()
	if err := s.repo.Store(ctx, userId, item); err != nil {
		return BudgetItem{}, err
	}

	s.publish(ctx, userId)
	return item, nil
}

func (s *BudgetItemServiceImpl) Update(ctx context.Context, item BudgetItem) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := s.validateItem(ctx, item); err != nil {
		return false, err
	}

	updated, err := s.repo.Update(ctx, userId, item)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("budget item not updated, probably because it does not exist (%s) or the user (%d) is not the owner", item.Id, userId)
		return false, fmt.Errorf("budget item %s: %w", item.Id, rest.ErrNotFound)
	}

	s.publish(ctx, userId)
	return true, nil
}

func (s *BudgetItemServiceImpl) Delete(ctx context.Context, itemId string) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, userId, itemId)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("budget item not deleted, probably because it does not exist (%s) or the user (%d) is not the owner", itemId, userId)
		return false, fmt.Errorf("budget item %s: %w", itemId, rest.ErrNotFound)
	}

	s.publish(ctx, userId)
	return true, nil
}

func (s *BudgetItemServiceImpl) validateItem(ctx context.Context, item BudgetItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if item.CategoryId != "" {
		exists, err := s.categoryExists(ctx, item.CategoryId)
		if err != nil {
			return fmt.Errorf("failed to check category %s: %w", item.CategoryId, err)
		}
		if !exists {
			return rest.NewValidationError("categoryId", "Category does not exist")
		}
	}
	return nil
}

func (s *BudgetItemServiceImpl) publish(ctx context.Context, userId int) {
	items, err := s.repo.GetAll(ctx, userId)
	if err != nil {
		log.Warnf("skipping budget items snapshot publication: %v", err)
		return
	}
	s.hub.Publish(snapshot.Snapshot{Collection: snapshot.BudgetItems, UserId: userId, Records: items})
}
