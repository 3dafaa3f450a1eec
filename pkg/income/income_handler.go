package income

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/paydivvy/paydivvy/internal/money"
	"github.com/paydivvy/paydivvy/internal/rest"
	"github.com/paydivvy/paydivvy/internal/utils"
	log "github.com/sirupsen/logrus"
)

type IncomeDTO struct {
	Id       string      `json:"id,omitempty"`
	Date     string      `json:"date"`
	Source   string      `json:"source"`
	Expected money.Cents `json:"expected"`
	Received money.Cents `json:"received"`
}

type IncomeHandler struct {
	incomeService IncomeService
}

func NewIncomeHandler(incomeService IncomeService) *IncomeHandler {
	return &IncomeHandler{incomeService}
}

func (handler *IncomeHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	incomes, err := handler.incomeService.GetAll(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	incomesDTO := make([]IncomeDTO, 0, len(incomes))
	for _, income := range incomes {
		incomesDTO = append(incomesDTO, IncomeToDTO(income))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(incomesDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *IncomeHandler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new income")
	w.Header().Set("Content-Type", "application/json")

	var incomeDTO IncomeDTO
	if err := json.NewDecoder(r.Body).Decode(&incomeDTO); err != nil {
		rest.WriteError(w, rest.NewValidationError("body", "invalid request body"))
		return
	}
	income, err := DTOToIncome(incomeDTO)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	createdIncome, err := handler.incomeService.Create(r.Context(), income)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(IncomeToDTO(createdIncome)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *IncomeHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	incomeId := mux.Vars(r)["id"]

	var incomeDTO IncomeDTO
	if err := json.NewDecoder(r.Body).Decode(&incomeDTO); err != nil {
		rest.WriteError(w, rest.NewValidationError("body", "invalid request body"))
		return
	}
	if incomeDTO.Id != "" && incomeDTO.Id != incomeId {
		rest.WriteError(w, rest.NewValidationError("id", "income id in body does not match URL"))
		return
	}
	incomeDTO.Id = incomeId

	income, err := DTOToIncome(incomeDTO)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	if _, err := handler.incomeService.Update(r.Context(), income); err != nil {
		rest.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(incomeDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *IncomeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	incomeId := mux.Vars(r)["id"]

	if _, err := handler.incomeService.Delete(r.Context(), incomeId); err != nil {
		rest.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func IncomeToDTO(income Income) IncomeDTO {
	return IncomeDTO{
		Id:       income.Id,
		Date:     utils.FormatDate(income.Date),
		Source:   income.Source,
		Expected: income.Expected,
		Received: income.Received,
	}
}

func DTOToIncome(dto IncomeDTO) (Income, error) {
	date, err := utils.ParseDate(dto.Date)
	if err != nil {
		return Income{}, rest.NewValidationError("date", "date must be formatted as YYYY-MM-DD")
	}
	return Income{
		Id:       dto.Id,
		Date:     date,
		Source:   dto.Source,
		Expected: dto.Expected,
		Received: dto.Received,
	}, nil
}
