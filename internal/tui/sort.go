package tui

import (
	"sort"

	"github.com/colonyops/canteen/internal/client"
	"github.com/colonyops/canteen/internal/review"
)

// SortForCook orders foods the way a cook wants to triage them: items with no
// ratings first, then worst-rated upward. Ties break on rating count, then on
// name for a stable display.
func SortForCook(foods []client.Food, ctrl *review.Controller) {
	sort.SliceStable(foods, func(i, j int) bool {
		a := ctrl.Merged(foods[i].ID)
		b := ctrl.Merged(foods[j].ID)

		aEmpty := a.RatingCount == 0
		bEmpty := b.RatingCount == 0
		if aEmpty != bEmpty {
			return aEmpty
		}
		if a.AvgRating != b.AvgRating {
			return a.AvgRating < b.AvgRating
		}
		if a.RatingCount != b.RatingCount {
			return a.RatingCount < b.RatingCount
		}
		return foods[i].FoodName < foods[j].FoodName
	})
}
