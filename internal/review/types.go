// Package review implements the client-side review and rating state for the
// food gateway: summary types, the optimistic rating view-model, and the
// batch summary loader.
package review

import "time"

// Summary describes the review state of one food item as seen by one viewer.
// The aggregate fields (AvgRating, RatingCount, CommentCount) are shared
// across all users; CanReview and MyRating are scoped to the caller and only
// populated on authenticated per-item requests.
type Summary struct {
	FoodID       string  `json:"foodId"`
	AvgRating    float64 `json:"avgRating"`
	RatingCount  int64   `json:"ratingCount"`
	CommentCount int64   `json:"commentCount"`
	CanReview    bool    `json:"canReview"`
	MyRating     int     `json:"myRating"`
}

// ZeroSummary returns the default summary used when a per-item request fails
// or returns no matching id.
func ZeroSummary(foodID string) Summary {
	return Summary{FoodID: foodID}
}

// Comment is a single free-text review comment on a food item.
type Comment struct {
	ID        string    `json:"id,omitempty"`
	FoodID    string    `json:"foodId,omitempty"`
	UserID    string    `json:"userId,omitempty"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
