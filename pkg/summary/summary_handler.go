package summary

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/paydivvy/paydivvy/internal/money"
	"github.com/paydivvy/paydivvy/internal/rest"
	"github.com/paydivvy/paydivvy/pkg/category"
)

type SummaryDTO struct {
	TotalExpectedIncome money.Cents `json:"totalExpectedIncome"`
	TotalReceivedIncome money.Cents `json:"totalReceivedIncome"`
	TotalExpenseAmount  money.Cents `json:"totalExpenseAmount"`
	RemainingBudget     money.Cents `json:"remainingBudget"`
}

type CategorySliceDTO struct {
	Category   category.CategoryDTO `json:"category"`
	Total      money.Cents          `json:"total"`
	Percentage float64              `json:"percentage"`
	StartAngle float64              `json:"startAngle"`
	EndAngle   float64              `json:"endAngle"`
}

type PaycheckSummaryDTO struct {
	IncomeId  string      `json:"incomeId"`
	Source    string      `json:"source"`
	Expected  money.Cents `json:"expected"`
	Received  money.Cents `json:"received"`
	Allocated money.Cents `json:"allocated"`
	Remaining money.Cents `json:"remaining"`
}

type SummaryHandler struct {
	summaryService     SummaryService
	csvSummaryRenderer SummaryRenderer
}

func NewSummaryHandler(summaryService SummaryService, csvSummaryRenderer SummaryRenderer) *SummaryHandler {
	return &SummaryHandler{summaryService, csvSummaryRenderer}
}

func (handler *SummaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	summary, err := handler.summaryService.GetSummary(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SummaryToDTO(summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *SummaryHandler) GetCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	slices, err := handler.summaryService.GetCategoryBreakdown(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	slicesDTO := make([]CategorySliceDTO, 0, len(slices))
	for _, slice := range slices {
		slicesDTO = append(slicesDTO, CategorySliceDTO{
			Category:   category.CategoryToDTO(slice.Category),
			Total:      slice.Total,
			Percentage: slice.Percentage,
			StartAngle: slice.StartAngle,
			EndAngle:   slice.EndAngle,
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(slicesDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *SummaryHandler) GetPaycheckSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	incomeId := mux.Vars(r)["incomeId"]

	paycheck, err := handler.summaryService.GetPaycheckSummary(r.Context(), incomeId)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(PaycheckSummaryToDTO(paycheck)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *SummaryHandler) GetPaycheckSummaries(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	paychecks, err := handler.summaryService.GetPaycheckSummaries(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	paychecksDTO := make([]PaycheckSummaryDTO, 0, len(paychecks))
	for _, paycheck := range paychecks {
		paychecksDTO = append(paychecksDTO, PaycheckSummaryToDTO(paycheck))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(paychecksDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *SummaryHandler) DownloadCsv(w http.ResponseWriter, r *http.Request) {
	summary, err := handler.summaryService.GetSummary(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	slices, err := handler.summaryService.GetCategoryBreakdown(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	csvReport, err := handler.csvSummaryRenderer.RenderSummary(summary, slices)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="summary.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csvReport)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func SummaryToDTO(summary Summary) SummaryDTO {
	return SummaryDTO{
		TotalExpectedIncome: summary.TotalExpectedIncome,
		TotalReceivedIncome: summary.TotalReceivedIncome,
		TotalExpenseAmount:  summary.TotalExpenseAmount,
		RemainingBudget:     summary.RemainingBudget,
	}
}

func PaycheckSummaryToDTO(paycheck PaycheckSummary) PaycheckSummaryDTO {
	return PaycheckSummaryDTO{
		IncomeId:  paycheck.IncomeId,
		Source:    paycheck.Source,
		Expected:  paycheck.Expected,
		Received:  paycheck.Received,
		Allocated: paycheck.Allocated,
		Remaining: paycheck.Remaining,
	}
}
