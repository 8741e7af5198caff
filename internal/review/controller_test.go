package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_BeginRating_OptimisticApply(t *testing.T) {
	c := NewController()

	prev, err := c.BeginRating("a", 4)
	require.NoError(t, err)
	assert.Equal(t, 0, prev)

	// UI reflects the new value before any response arrives
	assert.Equal(t, 4, c.MyRating("a"))
	assert.True(t, c.CanReview("a"))
	assert.Equal(t, RatingPending, c.RatingPhase("a"))
}

func TestController_BeginRating_OutOfRange(t *testing.T) {
	c := NewController()

	for _, r := range []int{0, -1, 6} {
		_, err := c.BeginRating("a", r)
		assert.Error(t, err)
	}
	assert.Equal(t, RatingIdle, c.RatingPhase("a"))
	assert.Equal(t, 0, c.MyRating("a"))
}

func TestController_CommitRating_ServerAggregatesAreAuthoritative(t *testing.T) {
	// Item starts with no ratings, user rates it 4, server confirms.
	c := NewController()
	c.ApplySummaries(
		map[string]Summary{"x": {FoodID: "x"}},
		map[string]Summary{"x": {FoodID: "x", CanReview: true}},
	)

	_, err := c.BeginRating("x", 4)
	require.NoError(t, err)

	c.CommitRating("x", Summary{
		FoodID:       "x",
		AvgRating:    4,
		RatingCount:  1,
		CommentCount: 0,
		CanReview:    true,
		MyRating:     4,
	})

	got := c.Merged("x")
	assert.Equal(t, 4.0, got.AvgRating)
	assert.Equal(t, int64(1), got.RatingCount)
	assert.Equal(t, int64(0), got.CommentCount)
	assert.Equal(t, 4, got.MyRating)
	assert.Equal(t, RatingCommitted, c.RatingPhase("x"))

	// four filled stars, fifth empty
	for i := 0; i < 4; i++ {
		assert.Equal(t, 100, FillPercent(got.AvgRating, i))
	}
	assert.Equal(t, 0, FillPercent(got.AvgRating, 4))
}

func TestController_CommitRating_FallsBackToOptimisticMyRating(t *testing.T) {
	c := NewController()

	_, err := c.BeginRating("x", 3)
	require.NoError(t, err)

	// response without the caller-scoped field
	c.CommitRating("x", Summary{FoodID: "x", AvgRating: 3.2, RatingCount: 5})

	assert.Equal(t, 3, c.MyRating("x"))
	assert.Equal(t, 3.2, c.Merged("x").AvgRating)
}

func TestController_RollbackRating_RestoresPreviousValue(t *testing.T) {
	tests := []struct {
		name string
		prev int
	}{
		{name: "previously unrated", prev: 0},
		{name: "previously rated", prev: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			if tt.prev != 0 {
				c.ApplySummaries(nil, map[string]Summary{
					"y": {FoodID: "y", CanReview: true, MyRating: tt.prev},
				})
			}

			prev, err := c.BeginRating("y", 5)
			require.NoError(t, err)
			assert.Equal(t, tt.prev, prev)
			assert.Equal(t, 5, c.MyRating("y"))

			c.RollbackRating("y")

			assert.Equal(t, tt.prev, c.MyRating("y"))
			assert.Equal(t, RatingRolledBack, c.RatingPhase("y"))
		})
	}
}

func TestController_Merged_KeepsMapsSeparate(t *testing.T) {
	c := NewController()
	c.ApplySummaries(
		map[string]Summary{"a": {FoodID: "a", AvgRating: 4.2, RatingCount: 10, CommentCount: 3}},
		map[string]Summary{"a": {FoodID: "a", AvgRating: 4.2, RatingCount: 10, CommentCount: 3, CanReview: true, MyRating: 5}},
	)

	m := c.Merged("a")
	assert.Equal(t, 4.2, m.AvgRating)
	assert.Equal(t, int64(10), m.RatingCount)
	assert.True(t, m.CanReview)
	assert.Equal(t, 5, m.MyRating)

	// aggregate map stays free of caller-scoped fields
	agg, ok := c.Aggregate("a")
	require.True(t, ok)
	assert.False(t, agg.CanReview)
	assert.Equal(t, 0, agg.MyRating)
}

func TestController_UpdateSummary_TouchesOnlyOneItem(t *testing.T) {
	c := NewController()
	c.ApplySummaries(
		map[string]Summary{
			"a": {FoodID: "a", AvgRating: 4.0, RatingCount: 5, CommentCount: 1},
			"b": {FoodID: "b", AvgRating: 3.0, RatingCount: 2},
		},
		map[string]Summary{"a": {FoodID: "a", CanReview: true, MyRating: 4}},
	)

	c.UpdateSummary(Summary{FoodID: "a", AvgRating: 4.0, RatingCount: 5, CommentCount: 2, CanReview: true, MyRating: 4})

	assert.Equal(t, int64(2), c.Merged("a").CommentCount)
	assert.Equal(t, 4, c.Merged("a").MyRating)

	// the other item's state is untouched
	assert.Equal(t, 3.0, c.Merged("b").AvgRating)
	assert.Equal(t, int64(2), c.Merged("b").RatingCount)
}

func TestController_Merged_UnknownItemIsZero(t *testing.T) {
	c := NewController()

	m := c.Merged("missing")
	assert.Equal(t, ZeroSummary("missing"), m)
}

func TestController_Merged_FallsBackToPersonalAggregates(t *testing.T) {
	// Per-item reload landed but the batch map has no entry yet.
	c := NewController()
	c.ApplySummaries(nil, map[string]Summary{
		"b": {FoodID: "b", AvgRating: 2.5, RatingCount: 2, CanReview: true, MyRating: 3},
	})

	m := c.Merged("b")
	assert.Equal(t, 2.5, m.AvgRating)
	assert.Equal(t, int64(2), m.RatingCount)
	assert.Equal(t, 3, m.MyRating)
}

func TestController_DisplayRating_HoverOverridesStored(t *testing.T) {
	c := NewController()
	c.ApplySummaries(nil, map[string]Summary{"a": {FoodID: "a", MyRating: 2}})

	assert.Equal(t, 2, c.DisplayRating("a"))

	c.SetHover("a", 5)
	assert.Equal(t, 5, c.DisplayRating("a"))

	c.ClearHover("a")
	assert.Equal(t, 2, c.DisplayRating("a"))
}

func TestController_SetHover_IgnoresOutOfRange(t *testing.T) {
	c := NewController()

	c.SetHover("a", 0)
	c.SetHover("a", 6)
	assert.Equal(t, 0, c.Hover("a"))

	c.SetHover("a", 3)
	assert.Equal(t, 3, c.Hover("a"))
}

func TestController_Remove(t *testing.T) {
	c := NewController()
	c.ApplySummaries(
		map[string]Summary{"a": {FoodID: "a", AvgRating: 1}},
		map[string]Summary{"a": {FoodID: "a", MyRating: 1}},
	)
	c.SetHover("a", 2)

	c.Remove("a")

	assert.Equal(t, ZeroSummary("a"), c.Merged("a"))
	assert.Equal(t, 0, c.Hover("a"))
	assert.Equal(t, RatingIdle, c.RatingPhase("a"))
}
