package budgetitem

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/paydivvy/paydivvy/internal/money"
	"github.com/paydivvy/paydivvy/internal/rest"
)

type BudgetItemDTO struct {
	Id         string      `json:"id,omitempty"`
	CategoryId string      `json:"categoryId"`
	Name       string      `json:"name"`
	Expected   money.Cents `json:"expected"`
	Received   money.Cents `json:"received"`
}

type BudgetItemHandler struct {
	budgetItemService BudgetItemService
}

func NewBudgetItemHandler(budgetItemService BudgetItemService) *BudgetItemHandler {
	return &BudgetItemHandler{budgetItemService}
}

func (handler *BudgetItemHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	items, err := handler.budgetItemService.GetAll(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	itemsDTO := make([]BudgetItemDTO, 0, len(items))
	for _, item := range items {
		itemsDTO = append(itemsDTO, BudgetItemToDTO(item))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(itemsDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *BudgetItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var itemDTO BudgetItemDTO
	if err := json.NewDecoder(r.Body).Decode(&itemDTO); err != nil {
		rest.WriteError(w, rest.NewValidationError("body", "invalid request body"))
		return
	}

	createdItem, err := handler.budgetItemService.Create(r.Context(), DTOToBudgetItem(itemDTO))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(BudgetItemToDTO(createdItem)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *BudgetItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	itemId := mux.Vars(r)["id"]

	var itemDTO BudgetItemDTO
	if err := json.NewDecoder(r.Body).Decode(&itemDTO); err != nil {
		rest.WriteError(w, rest.NewValidationError("body", "invalid request body"))
		return
	}
	if itemDTO.Id != "" && itemDTO.Id != itemId {
		rest.WriteError(w, rest.NewValidationError("id", "budget item id in body does not match URL"))
		return
	}
	itemDTO.Id = itemId

	if _, err := handler.budgetItemService.Update(r.Context(), DTOToBudgetItem(itemDTO)); err != nil {
		rest.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(itemDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *BudgetItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	itemId := mux.Vars(r)["id"]

	if _, err := handler.budgetItemService.Delete(r.Context(), itemId); err != nil {
		rest.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func BudgetItemToDTO(item BudgetItem) BudgetItemDTO {
	return BudgetItemDTO{
		Id:         item.Id,
		CategoryId: item.CategoryId,
		Name:       item.Name,
		Expected:   item.Expected,
		Received:   item.Received,
	}
}

func DTOToBudgetItem(dto BudgetItemDTO) BudgetItem {
	return BudgetItem{
		Id:         dto.Id,
		CategoryId: dto.CategoryId,
		Name:       dto.Name,
		Expected:   dto.Expected,
		Received:   dto.Received,
	}
}
