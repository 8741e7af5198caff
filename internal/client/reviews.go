package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/colonyops/canteen/internal/review"
)

// The review endpoints carry the bearer token: the gateway enriches
// responses with caller-scoped fields (canReview, myRating) only when it can
// identify the caller.

// FoodSummary fetches the caller-scoped review summary for one item.
func (c *Client) FoodSummary(ctx context.Context, foodID string) (review.Summary, error) {
	var out review.Summary
	path := "/food/food/" + url.PathEscape(foodID) + "/reviews/summary"
	if err := c.do(ctx, http.MethodGet, path, reqOpts{out: &out, authed: true}); err != nil {
		return review.Summary{}, err
	}
	return out, nil
}

type batchSummaryRequest struct {
	FoodIDs []string `json:"foodIds"`
}

// BatchSummaries fetches aggregate-only summaries for the given item set in
// one call. The response never carries caller-scoped fields.
func (c *Client) BatchSummaries(ctx context.Context, foodIDs []string) (map[string]review.Summary, error) {
	out := map[string]review.Summary{}
	body := batchSummaryRequest{FoodIDs: foodIDs}
	if err := c.do(ctx, http.MethodPost, "/food/foods/reviews/summaries", reqOpts{body: body, out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

type setRatingRequest struct {
	Rating int `json:"rating"`
}

// SetRating submits the caller's rating for an item and returns the
// authoritative post-write summary.
func (c *Client) SetRating(ctx context.Context, foodID string, rating int) (review.Summary, error) {
	var out review.Summary
	path := "/food/food/" + url.PathEscape(foodID) + "/reviews/rating"
	if err := c.do(ctx, http.MethodPost, path, reqOpts{body: setRatingRequest{Rating: rating}, out: &out, authed: true}); err != nil {
		return review.Summary{}, err
	}
	return out, nil
}

// ListComments fetches the comment list for one item.
func (c *Client) ListComments(ctx context.Context, foodID string) ([]review.Comment, error) {
	var out []review.Comment
	path := "/food/food/" + url.PathEscape(foodID) + "/reviews/comments"
	if err := c.do(ctx, http.MethodGet, path, reqOpts{out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

type addCommentRequest struct {
	Text string `json:"text"`
}

// AddComment submits a comment for one item. The gateway enforces the
// eligibility precondition; the response body is an acknowledgement only.
func (c *Client) AddComment(ctx context.Context, foodID, text string) error {
	path := "/food/food/" + url.PathEscape(foodID) + "/reviews/comments"
	return c.do(ctx, http.MethodPost, path, reqOpts{body: addCommentRequest{Text: text}, authed: true})
}
