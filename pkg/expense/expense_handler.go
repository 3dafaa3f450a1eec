package expense

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/paydivvy/paydivvy/internal/money"
	"github.com/paydivvy/paydivvy/internal/rest"
	"github.com/paydivvy/paydivvy/internal/utils"
	log "github.com/sirupsen/logrus"
)

type ExpenseSplitDTO struct {
	IncomeId string      `json:"incomeId"`
	Amount   money.Cents `json:"amount"`
}

type ExpenseDTO struct {
	Id       string            `json:"id,omitempty"`
	Name     string            `json:"name"`
	Category string            `json:"category"`
	DueDate  string            `json:"dueDate"`
	Splits   []ExpenseSplitDTO `json:"splits"`
	Amount   money.Cents       `json:"amount"`
}

type ExpenseHandler struct {
	expenseService ExpenseService
}

func NewExpenseHandler(expenseService ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService}
}

func (handler *ExpenseHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	expenses, err := handler.expenseService.GetAll(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	expensesDTO := make([]ExpenseDTO, 0, len(expenses))
	for _, expense := range expenses {
		expensesDTO = append(expensesDTO, ExpenseToDTO(expense))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(expensesDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new expense")
	w.Header().Set("Content-Type", "application/json")

	var expenseDTO ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&expenseDTO); err != nil {
		rest.WriteError(w, rest.NewValidationError("body", "invalid request body"))
		return
	}
	expense, err := DTOToExpense(expenseDTO)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	createdExpense, err := handler.expenseService.Create(r.Context(), expense)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ExpenseToDTO(createdExpense)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	expenseId := mux.Vars(r)["id"]

	var expenseDTO ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&expenseDTO); err != nil {
		rest.WriteError(w, rest.NewValidationError("body", "invalid request body"))
		return
	}
	if expenseDTO.Id != "" && expenseDTO.Id != expenseId {
		rest.WriteError(w, rest.NewValidationError("id", "expense id in body does not match URL"))
		return
	}
	expenseDTO.Id = expenseId

	expense, err := DTOToExpense(expenseDTO)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	if _, err := handler.expenseService.Update(r.Context(), expense); err != nil {
		rest.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ExpenseToDTO(expense)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	expenseId := mux.Vars(r)["id"]

	if _, err := handler.expenseService.Delete(r.Context(), expenseId); err != nil {
		rest.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExpenseToDTO includes the derived total so clients never have to add up
// splits themselves.
func ExpenseToDTO(expense Expense) ExpenseDTO {
	splitsDTO := make([]ExpenseSplitDTO, 0, len(expense.Splits))
	for _, split := range expense.Splits {
		splitsDTO = append(splitsDTO, ExpenseSplitDTO{IncomeId: split.IncomeId, Amount: split.Amount})
	}
	return ExpenseDTO{
		Id:       expense.Id,
		Name:     expense.Name,
		Category: expense.Category,
		DueDate:  utils.FormatDate(expense.DueDate),
		Splits:   splitsDTO,
		Amount:   expense.Total(),
	}
}

func DTOToExpense(dto ExpenseDTO) (Expense, error) {
	dueDate, err := utils.ParseDate(dto.DueDate)
	if err != nil {
		return Expense{}, rest.NewValidationError("dueDate", "dueDate must be formatted as YYYY-MM-DD")
	}
	splits := make([]ExpenseSplit, 0, len(dto.Splits))
	for _, split := range dto.Splits {
		splits = append(splits, ExpenseSplit{IncomeId: split.IncomeId, Amount: split.Amount})
	}
	return Expense{
		Id:       dto.Id,
		Name:     dto.Name,
		Category: dto.Category,
		DueDate:  dueDate,
		Splits:   splits,
	}, nil
}
