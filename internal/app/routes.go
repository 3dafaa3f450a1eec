package app

import (
	"github.com/gorilla/mux"
	"github.com/paydivvy/paydivvy/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Authentication
	r.HandleFunc("/api/auth/signup", deps.UserHandler.SignUp).Methods("POST")
	r.HandleFunc("/api/auth/signin", deps.UserHandler.SignIn).Methods("POST")
	r.HandleFunc("/api/auth/signout", deps.UserHandler.SignOut).Methods("POST")
	r.HandleFunc("/api/auth/me", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/auth/google/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/auth/google/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")

	// Incomes
	r.HandleFunc("/api/income", deps.IncomeHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/income", deps.IncomeHandler.Create).Methods("POST")
	r.HandleFunc("/api/income/{id}", deps.IncomeHandler.Update).Methods("PUT")
	r.HandleFunc("/api/income/{id}", deps.IncomeHandler.Delete).Methods("DELETE")

	// Expenses
	r.HandleFunc("/api/expense", deps.ExpenseHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/expense", deps.ExpenseHandler.Create).Methods("POST")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.Update).Methods("PUT")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.Delete).Methods("DELETE")

	// Categories (append-only: no delete endpoint)
	r.HandleFunc("/api/category", deps.CategoryHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/category", deps.CategoryHandler.Create).Methods("POST")
	r.HandleFunc("/api/category/{id}", deps.CategoryHandler.Update).Methods("PUT")

	// Budget items
	r.HandleFunc("/api/budgetitem", deps.BudgetItemHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/budgetitem", deps.BudgetItemHandler.Create).Methods("POST")
	r.HandleFunc("/api/budgetitem/{id}", deps.BudgetItemHandler.Update).Methods("PUT")
	r.HandleFunc("/api/budgetitem/{id}", deps.BudgetItemHandler.Delete).Methods("DELETE")

	// Summary
	r.HandleFunc("/api/summary", deps.SummaryHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/summary/categories", deps.SummaryHandler.GetCategoryBreakdown).Methods("GET")
	r.HandleFunc("/api/summary/paycheck", deps.SummaryHandler.GetPaycheckSummaries).Methods("GET")
	r.HandleFunc("/api/summary/paycheck/{incomeId}", deps.SummaryHandler.GetPaycheckSummary).Methods("GET")
	r.HandleFunc("/api/summary/csv", deps.SummaryHandler.DownloadCsv).Methods("GET")

	// Snapshot stream
	r.HandleFunc("/api/stream", deps.StreamHandler.Stream).Methods("GET")
}
