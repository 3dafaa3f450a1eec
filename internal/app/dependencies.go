package app

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paydivvy/paydivvy/internal/auth"
	"github.com/paydivvy/paydivvy/internal/config"
	"github.com/paydivvy/paydivvy/internal/snapshot"
	"github.com/paydivvy/paydivvy/internal/utils"
	"github.com/paydivvy/paydivvy/pkg/budgetitem"
	"github.com/paydivvy/paydivvy/pkg/category"
	"github.com/paydivvy/paydivvy/pkg/expense"
	"github.com/paydivvy/paydivvy/pkg/google"
	"github.com/paydivvy/paydivvy/pkg/income"
	"github.com/paydivvy/paydivvy/pkg/stream"
	"github.com/paydivvy/paydivvy/pkg/summary"
	"github.com/paydivvy/paydivvy/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	TokenManager *auth.TokenManager

	UserService user.Service
	UserHandler *user.Handler

	GoogleAuth *google.GoogleAuth

	SnapshotHub   *snapshot.Hub
	StreamHandler *stream.StreamHandler

	IncomeRepo    income.IncomeRepo
	IncomeService *income.IncomeServiceImpl
	IncomeHandler *income.IncomeHandler

	ExpenseRepo    expense.ExpenseRepo
	ExpenseService *expense.ExpenseServiceImpl
	ExpenseHandler *expense.ExpenseHandler

	CategoryRepo    category.CategoryRepo
	CategoryService *category.CategoryServiceImpl
	CategoryHandler *category.CategoryHandler

	BudgetItemRepo    budgetitem.BudgetItemRepo
	BudgetItemService *budgetitem.BudgetItemServiceImpl
	BudgetItemHandler *budgetitem.BudgetItemHandler

	SummaryService     *summary.SummaryServiceImpl
	CsvSummaryRenderer *summary.CsvSummaryRendererImpl
	SummaryHandler     *summary.SummaryHandler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.TokenManager = auth.NewTokenManager(cfg.Auth.TokenSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour, deps.Clock)

	deps.UserService = user.NewUserService(user.NewUserRepo(db), deps.TokenManager)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.GoogleAuth = google.NewGoogleAuth(deps.UserService, cfg)

	deps.SnapshotHub = snapshot.NewHub()

	deps.ExpenseRepo = expense.NewExpenseRepo(db)
	deps.IncomeRepo = income.NewIncomeRepo(db)
	deps.CategoryRepo = category.NewCategoryRepo(db)
	deps.BudgetItemRepo = budgetitem.NewBudgetItemRepo(db)

	deps.IncomeService = income.NewIncomeService(deps.IncomeRepo, deps.SnapshotHub, func(ctx context.Context) (any, error) {
		return deps.ExpenseService.GetAll(ctx)
	})
	deps.IncomeHandler = income.NewIncomeHandler(deps.IncomeService)

	deps.CategoryService = category.NewCategoryService(deps.CategoryRepo, deps.SnapshotHub)
	deps.CategoryHandler = category.NewCategoryHandler(deps.CategoryService)

	deps.ExpenseService = expense.NewExpenseService(deps.ExpenseRepo, deps.SnapshotHub,
		deps.IncomeService.Exists, deps.CategoryService.Exists)
	deps.ExpenseHandler = expense.NewExpenseHandler(deps.ExpenseService)

	deps.BudgetItemService = budgetitem.NewBudgetItemService(deps.BudgetItemRepo, deps.SnapshotHub, deps.CategoryService.Exists)
	deps.BudgetItemHandler = budgetitem.NewBudgetItemHandler(deps.BudgetItemService)

	deps.StreamHandler = stream.NewStreamHandler(deps.SnapshotHub, map[snapshot.Collection]stream.CollectionLoader{
		snapshot.Incomes:     func(ctx context.Context) (any, error) { return deps.IncomeService.GetAll(ctx) },
		snapshot.Expenses:    func(ctx context.Context) (any, error) { return deps.ExpenseService.GetAll(ctx) },
		snapshot.Categories:  func(ctx context.Context) (any, error) { return deps.CategoryService.GetAll(ctx) },
		snapshot.BudgetItems: func(ctx context.Context) (any, error) { return deps.BudgetItemService.GetAll(ctx) },
	})

	deps.SummaryService = summary.NewSummaryService(deps.IncomeService, deps.ExpenseService, deps.CategoryService)
	deps.CsvSummaryRenderer = summary.NewCsvSummaryRenderer()
	deps.SummaryHandler = summary.NewSummaryHandler(deps.SummaryService, deps.CsvSummaryRenderer)

	return deps
}
