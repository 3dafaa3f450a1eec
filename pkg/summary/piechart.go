package summary

import (
	"github.com/paydivvy/paydivvy/pkg/category"
	"github.com/paydivvy/paydivvy/pkg/expense"
)

const fullTurn = 360.0

// BuildCategorySlices allocates each category a contiguous angular slice of
// a full circle proportional to its share of total spending. Slices follow
// the category list order, start at 0 degrees and are laid out consecutively
// with no gaps or overlaps. Categories with a zero total are skipped. When
// nothing is spent, no slices are produced and the caller renders an empty
// circle.
func BuildCategorySlices(categories []category.Category, expenses []expense.Expense) []CategorySlice {
	total := TotalExpenseAmount(expenses)
	if total == 0 {
		return []CategorySlice{}
	}

	slices := make([]CategorySlice, 0, len(categories))
	angle := 0.0
	for _, cat := range categories {
		categoryTotal := PerCategoryTotal(expenses, cat.Id)
		if categoryTotal == 0 {
			continue
		}
		fraction := float64(categoryTotal) / float64(total)
		slices = append(slices, CategorySlice{
			Category:   cat,
			Total:      categoryTotal,
			Percentage: fraction * 100,
			StartAngle: angle,
			EndAngle:   angle + fraction*fullTurn,
		})
		angle += fraction * fullTurn
	}
	return slices
}
