package category

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/paydivvy/paydivvy/internal/rest"
)

type CategoryDTO struct {
	Id    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type CategoryHandler struct {
	categoryService CategoryService
}

func NewCategoryHandler(categoryService CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService}
}

func (handler *CategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	categories, err := handler.categoryService.GetAll(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	categoriesDTO := make([]CategoryDTO, 0, len(categories))
	for _, category := range categories {
		categoriesDTO = append(categoriesDTO, CategoryToDTO(category))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(categoriesDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var categoryDTO CategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&categoryDTO); err != nil {
		rest.WriteError(w, rest.NewValidationError("body", "invalid request body"))
		return
	}

	createdCategory, err := handler.categoryService.Create(r.Context(), DTOToCategory(categoryDTO))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(CategoryToDTO(createdCategory)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	categoryId := mux.Vars(r)["id"]

	var categoryDTO CategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&categoryDTO); err != nil {
		rest.WriteError(w, rest.NewValidationError("body", "invalid request body"))
		return
	}
	if categoryDTO.Id != "" && categoryDTO.Id != categoryId {
		rest.WriteError(w, rest.NewValidationError("id", "category id in body does not match URL"))
		return
	}
	categoryDTO.Id = categoryId

	if _, err := handler.categoryService.Update(r.Context(), DTOToCategory(categoryDTO)); err != nil {
		rest.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(categoryDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func CategoryToDTO(category Category) CategoryDTO {
	return CategoryDTO{
		Id:    category.Id,
		Name:  category.Name,
		Color: category.Color,
	}
}

func DTOToCategory(dto CategoryDTO) Category {
	return Category{
		Id:    dto.Id,
		Name:  dto.Name,
		Color: dto.Color,
	}
}
