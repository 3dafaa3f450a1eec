package income

import (
	"context"
	"testing"
	"time"

	"github.com/paydivvy/paydivvy/internal/rest"
	"github.com/paydivvy/paydivvy/internal/snapshot"
	"github.com/paydivvy/paydivvy/pkg/expense"
	"github.com/paydivvy/paydivvy/pkg/user"
	"github.com/stretchr/testify/assert"
)

func setupIncomeService() (*IncomeServiceImpl, *StubIncomeRepo, *snapshot.Hub, context.Context) {
	repo := NewStubIncomeRepo()
	hub := snapshot.NewHub()
	service := NewIncomeService(repo, hub, nil)
	ctx := user.WithUser(context.Background(), user.User{Id: 1, Uid: "user-1"})
	return service, repo, hub, ctx
}

func TestIncomeServiceImpl_Create(t *testing.T) {
	service, _, hub, ctx := setupIncomeService()
	ch, unsubscribe := hub.Subscribe(1, snapshot.Incomes)
	defer unsubscribe()

	created, err := service.Create(ctx, Income{
		Date:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local),
		Source:   "Acme Corp",
		Expected: 100000,
		Received: 98000,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, created.Id)

	select {
	case snap := <-ch:
		incomes := snap.Records.([]Income)
		assert.Len(t, incomes, 1)
		assert.Equal(t, "Acme Corp", incomes[0].Source)
	case <-time.After(time.Second):
		t.Fatal("no incomes snapshot published after create")
	}
}

func TestIncomeServiceImpl_Create_Validation(t *testing.T) {
	service, _, _, ctx := setupIncomeService()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name      string
		income    Income
		wantField string
	}{
		{name: "missing source", income: Income{Date: date}, wantField: "source"},
		{name: "missing date", income: Income{Source: "Acme"}, wantField: "date"},
		{name: "negative expected", income: Income{Date: date, Source: "Acme", Expected: -1}, wantField: "expected"},
		{name: "negative received", income: Income{Date: date, Source: "Acme", Received: -1}, wantField: "received"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(ctx, tt.income)
			var validationErr *rest.ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}

func TestIncomeServiceImpl_Create_NoUser(t *testing.T) {
	service, _, _, _ := setupIncomeService()

	_, err := service.Create(context.Background(), Income{Source: "Acme", Date: time.Now()})
	assert.ErrorIs(t, err, user.ErrNoUser)
}

func TestIncomeServiceImpl_Update_NotFound(t *testing.T) {
	service, _, _, ctx := setupIncomeService()

	_, err := service.Update(ctx, Income{
		Id:     "missing",
		Date:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local),
		Source: "Acme",
	})
	assert.ErrorIs(t, err, rest.ErrNotFound)
}

func TestIncomeServiceImpl_Delete_Cascades(t *testing.T) {
	service, repo, hub, ctx := setupIncomeService()

	created, err := service.Create(ctx, Income{
		Date:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local),
		Source: "Acme",
	})
	assert.NoError(t, err)

	// One expense funded solely by the deleted paycheck, one funded by two.
	repo.Expenses = []expense.Expense{
		{Id: "e1", Name: "Rent", Splits: []expense.ExpenseSplit{
			{IncomeId: created.Id, Amount: 50000},
		}},
		{Id: "e2", Name: "Utilities", Splits: []expense.ExpenseSplit{
			{IncomeId: created.Id, Amount: 5000},
			{IncomeId: "other-income", Amount: 7000},
		}},
	}

	ch, unsubscribe := hub.Subscribe(1, snapshot.Incomes)
	defer unsubscribe()

	deleted, err := service.Delete(ctx, created.Id)
	assert.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []string{created.Id}, repo.Cascaded)

	// The fully-funded expense is gone; the shared one keeps only the
	// surviving paycheck's split.
	assert.Len(t, repo.Expenses, 1)
	assert.Equal(t, "e2", repo.Expenses[0].Id)
	assert.Equal(t, []expense.ExpenseSplit{{IncomeId: "other-income", Amount: 7000}}, repo.Expenses[0].Splits)

	select {
	case snap := <-ch:
		assert.Empty(t, snap.Records.([]Income))
	case <-time.After(time.Second):
		t.Fatal("no incomes snapshot published after delete")
	}
}

func TestIncomeServiceImpl_Delete_NotFound(t *testing.T) {
	service, _, _, ctx := setupIncomeService()

	_, err := service.Delete(ctx, "missing")
	assert.ErrorIs(t, err, rest.ErrNotFound)
}
