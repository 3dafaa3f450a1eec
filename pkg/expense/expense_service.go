package expense

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/paydivvy/paydivvy/internal/rest"
	"github.com/paydivvy/paydivvy/internal/snapshot"
	"github.com/paydivvy/paydivvy/pkg/user"
	log "github.com/sirupsen/logrus"
)

// IncomeChecker reports whether the current user owns an income with the
// given id. Income references are plain strings in the store, so dangling
// references are caught here, at the boundary, not by the database.
type IncomeChecker func(ctx context.Context, incomeId string) (bool, error)

// CategoryChecker reports whether the current user owns the given category.
type CategoryChecker func(ctx context.Context, categoryId string) (bool, error)

type ExpenseService interface {
	GetAll(ctx context.Context) ([]Expense, error)
	Create(ctx context.Context, expense Expense) (Expense, error)
	Update(ctx context.Context, expense Expense) (bool, error)
	Delete(ctx context.Context, expenseId string) (bool, error)
}

type ExpenseServiceImpl struct {
	repo           ExpenseRepo
	hub            *snapshot.Hub
	incomeExists   IncomeChecker
	categoryExists CategoryChecker
}

func NewExpenseService(repo ExpenseRepo, hub *snapshot.Hub, incomeExists IncomeChecker, categoryExists CategoryChecker) *ExpenseServiceImpl {
	return &ExpenseServiceImpl{
		repo:           repo,
		hub:            hub,
		incomeExists:   incomeExists,
		categoryExists: categoryExists,
	}
}

func (s *ExpenseServiceImpl) GetAll(ctx context.Context) ([]Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ExpenseServiceImpl) Create(ctx context.Context, expense Expense) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := s.validateReferences(ctx, expense); err != nil {
		return Expense{}, err
	}

	expense.Id = uuid.NewString()
	if err := s.repo.Store(ctx, userId, expense); err != nil {
		return Expense{}, err
	}

	s.publish(ctx, userId)
	return expense, nil
}

func (s *ExpenseServiceImpl) Update(ctx context.Context, expense Expense) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := s.validateReferences(ctx, expense); err != nil {
		return false, err
	}

	updated, err := s.repo.Update(ctx, userId, expense)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("expense not updated, probably because it does not exist (%s) or the user (%d) is not the owner", expense.Id, userId)
		return false, fmt.Errorf("expense %s: %w", expense.Id, rest.ErrNotFound)
	}

	s.publish(ctx, userId)
	return true, nil
}

func (s *ExpenseServiceImpl) Delete(ctx context.Context, expenseId string) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, userId, expenseId)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("expense not deleted, probably because it does not exist (%s) or the user (%d) is not the owner", expenseId, userId)
		return false, fmt.Errorf("expense %s: %w", expenseId, rest.ErrNotFound)
	}

	s.publish(ctx, userId)
	return true, nil
}

// validateReferences runs the structural rules first, then confirms every
// referenced income and the category actually exist before any mutation is
// issued.
func (s *ExpenseServiceImpl) validateReferences(ctx context.Context, expense Expense) error {
	if err := expense.Validate(); err != nil {
		return err
	}
	for _, split := range expense.Splits {
		exists, err := s.incomeExists(ctx, split.IncomeId)
		if err != nil {
			return fmt.Errorf("failed to check income %s: %w", split.IncomeId, err)
		}
		if !exists {
			return rest.NewValidationError("splits", "Split references a paycheck that does not exist")
		}
	}
	if expense.Category != "" {
		exists, err := s.categoryExists(ctx, expense.Category)
		if err != nil {
			return fmt.Errorf("failed to check category %s: %w", expense.Category, err)
		}
		if !exists {
			return rest.NewValidationError("category", "Category does not exist")
		}
	}
	return nil
}

func (s *ExpenseServiceImpl) publish(ctx context.Context, userId int) {
	expenses, err := s.repo.GetAll(ctx, userId)
	if err != nil {
		log.Warnf("skipping expenses snapshot publication: %v", err)
		return
	}
	s.hub.Publish(snapshot.Snapshot{Collection: snapshot.Expenses, UserId: userId, Records: expenses})
}
