package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/canteen/internal/client"
	"github.com/colonyops/canteen/internal/review"
)

func TestSortForCook(t *testing.T) {
	ctrl := review.NewController()
	ctrl.ApplySummaries(map[string]review.Summary{
		"good":    {FoodID: "good", AvgRating: 4.5, RatingCount: 20},
		"bad":     {FoodID: "bad", AvgRating: 1.5, RatingCount: 3},
		"average": {FoodID: "average", AvgRating: 3.0, RatingCount: 10},
	}, nil)

	foods := []client.Food{
		{ID: "good", FoodName: "Lasagna"},
		{ID: "unrated", FoodName: "Mystery Soup"},
		{ID: "bad", FoodName: "Cold Fries"},
		{ID: "average", FoodName: "Pasta"},
	}

	SortForCook(foods, ctrl)

	got := make([]string, 0, len(foods))
	for _, f := range foods {
		got = append(got, f.ID)
	}
	// Unrated items surface first, then worst-rated upward.
	assert.Equal(t, []string{"unrated", "bad", "average", "good"}, got)
}

func TestSortForCook_TiesBreakOnCountThenName(t *testing.T) {
	ctrl := review.NewController()
	ctrl.ApplySummaries(map[string]review.Summary{
		"a": {FoodID: "a", AvgRating: 3.0, RatingCount: 10},
		"b": {FoodID: "b", AvgRating: 3.0, RatingCount: 2},
		"c": {FoodID: "c", AvgRating: 3.0, RatingCount: 10},
	}, nil)

	foods := []client.Food{
		{ID: "c", FoodName: "Zucchini"},
		{ID: "a", FoodName: "Apple Pie"},
		{ID: "b", FoodName: "Burek"},
	}

	SortForCook(foods, ctrl)

	assert.Equal(t, "b", foods[0].ID)
	assert.Equal(t, "a", foods[1].ID)
	assert.Equal(t, "c", foods[2].ID)
}
