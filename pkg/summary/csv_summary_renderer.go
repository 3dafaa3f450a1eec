package summary

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type SummaryRenderer interface {
	RenderSummary(summary Summary, slices []CategorySlice) (string, error)
}

type CsvSummaryRendererImpl struct {
}

func NewCsvSummaryRenderer() *CsvSummaryRendererImpl {
	return &CsvSummaryRendererImpl{}
}

// RenderSummary produces a spreadsheet-friendly report: one row per category
// with its total and share of spending, followed by the ledger totals.
func (t *CsvSummaryRendererImpl) RenderSummary(summary Summary, slices []CategorySlice) (string, error) {
	data := make([][]string, 0, len(slices)+6)
	data = append(data, []string{"Category", "Total", "Share"})
	for _, slice := range slices {
		data = append(data, []string{
			slice.Category.Name,
			slice.Total.String(),
			strconv.FormatFloat(slice.Percentage, 'f', 1, 64) + "%",
		})
	}
	data = append(data,
		[]string{"Total expenses", summary.TotalExpenseAmount.String(), ""},
		[]string{"Expected income", summary.TotalExpectedIncome.String(), ""},
		[]string{"Received income", summary.TotalReceivedIncome.String(), ""},
		[]string{"Remaining", summary.RemainingBudget.String(), ""},
	)

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
