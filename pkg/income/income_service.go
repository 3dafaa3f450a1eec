package income

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/paydivvy/paydivvy/internal/rest"
	"github.com/paydivvy/paydivvy/internal/snapshot"
	"github.com/paydivvy/paydivvy/pkg/user"
	log "github.com/sirupsen/logrus"
)

// ExpenseSnapshotProvider loads the current expense collection so that the
// deletion cascade can publish a fresh expenses snapshot alongside incomes.
type ExpenseSnapshotProvider func(ctx context.Context) (any, error)

type IncomeService interface {
	GetAll(ctx context.Context) ([]Income, error)
	Create(ctx context.Context, income Income) (Income, error)
	Update(ctx context.Context, income Income) (bool, error)
	Delete(ctx context.Context, incomeId string) (bool, error)
	Exists(ctx context.Context, incomeId string) (bool, error)
}

type IncomeServiceImpl struct {
	repo     IncomeRepo
	hub      *snapshot.Hub
	expenses ExpenseSnapshotProvider
}

func NewIncomeService(repo IncomeRepo, hub *snapshot.Hub, expenses ExpenseSnapshotProvider) *IncomeServiceImpl {
	return &IncomeServiceImpl{repo: repo, hub: hub, expenses: expenses}
}

func (s *IncomeServiceImpl) GetAll(ctx context.Context) ([]Income, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *IncomeServiceImpl) Create(ctx context.Context, income Income) (Income, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Income{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(income); err != nil {
		return Income{}, err
	}

	income.Id = uuid.NewString()
	if err := s.repo.Store(ctx, userId, income); err != nil {
		return Income{}, err
	}

	s.publishIncomes(ctx, userId)
	return income, nil
}

func (s *IncomeServiceImpl) Update(ctx context.Context, income Income) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(income); err != nil {
		return false, err
	}

	updated, err := s.repo.Update(ctx, userId, income)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("income not updated, probably because it does not exist (%s) or the user (%d) is not the owner", income.Id, userId)
		return false, fmt.Errorf("income %s: %w", income.Id, rest.ErrNotFound)
	}

	s.publishIncomes(ctx, userId)
	return true, nil
}

// Delete removes the income and cascades to every expense split referencing
// it. Expenses left without splits are deleted entirely. The repository
// applies both phases atomically, so callers never observe orphaned splits.
func (s *IncomeServiceImpl) Delete(ctx context.Context, incomeId string) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.DeleteWithCascade(ctx, userId, incomeId)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("income not deleted, probably because it does not exist (%s) or the user (%d) is not the owner", incomeId, userId)
		return false, fmt.Errorf("income %s: %w", incomeId, rest.ErrNotFound)
	}

	s.publishIncomes(ctx, userId)
	s.publishExpenses(ctx, userId)
	return true, nil
}

func (s *IncomeServiceImpl) Exists(ctx context.Context, incomeId string) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Exists(ctx, userId, incomeId)
}

func (s *IncomeServiceImpl) publishIncomes(ctx context.Context, userId int) {
	incomes, err := s.repo.GetAll(ctx, userId)
	if err != nil {
		log.Warnf("skipping incomes snapshot publication: %v", err)
		return
	}
	s.hub.Publish(snapshot.Snapshot{Collection: snapshot.Incomes, UserId: userId, Records: incomes})
}

func (s *IncomeServiceImpl) publishExpenses(ctx context.Context, userId int) {
	if s.expenses == nil {
		return
	}
	expenses, err := s.expenses(ctx)
	if err != nil {
		log.Warnf("skipping expenses snapshot publication: %v", err)
		return
	}
	s.hub.Publish(snapshot.Snapshot{Collection: snapshot.Expenses, UserId: userId, Records: expenses})
}

func validate(income Income) error {
	if income.Source == "" {
		return rest.NewValidationError("source", "Income source is required")
	}
	if income.Date.IsZero() {
		return rest.NewValidationError("date", "Income date is required")
	}
	if income.Expected < 0 {
		return rest.NewValidationError("expected", "Expected amount cannot be negative")
	}
	if income.Received < 0 {
		return rest.NewValidationError("received", "Received amount cannot be negative")
	}
	return nil
}
