package review

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/canteen/pkg/kv"
)

// ErrEmptyComment is returned by SubmitComment when the text is empty or
// whitespace-only. No network call is made in that case.
var ErrEmptyComment = errors.New("comment text is empty")

// API is the slice of the gateway client the loader needs.
type API interface {
	// FoodSummary fetches the caller-scoped summary for one item.
	FoodSummary(ctx context.Context, foodID string) (Summary, error)
	// BatchSummaries fetches aggregate-only summaries for a set of items.
	BatchSummaries(ctx context.Context, foodIDs []string) (map[string]Summary, error)
	// ListComments fetches the comment list for one item.
	ListComments(ctx context.Context, foodID string) ([]Comment, error)
	// AddComment submits a new comment for one item.
	AddComment(ctx context.Context, foodID, text string) error
}

// Loader fetches review data from the gateway and shapes it for the
// Controller. Read failures always degrade to defaults rather than failing
// the caller.
type Loader struct {
	api API
}

// NewLoader creates a loader backed by the given gateway API.
func NewLoader(api API) *Loader {
	return &Loader{api: api}
}

// LoadSummaries retrieves summaries for the given visible item set.
//
// Aggregate-only summaries come from a single batched call; on failure the
// aggregate map is empty. Caller-scoped summaries are fetched with one
// request per id, run concurrently, and each id degrades independently to
// ZeroSummary when its request fails or returns a different id. The caller
// map always holds exactly one entry per requested id, and the method
// returns only after every sub-request has settled.
func (l *Loader) LoadSummaries(ctx context.Context, foodIDs []string) (aggregates, personal map[string]Summary) {
	aggregates = map[string]Summary{}
	personal = map[string]Summary{}
	if len(foodIDs) == 0 {
		return aggregates, personal
	}

	batch, err := l.api.BatchSummaries(ctx, foodIDs)
	if err != nil {
		log.Warn().Err(err).Int("count", len(foodIDs)).Msg("batch summaries failed, degrading to empty aggregates")
	} else {
		for id, s := range batch {
			s.FoodID = id
			aggregates[id] = s
		}
	}

	results := kv.New[string, Summary]()
	var wg sync.WaitGroup
	for _, id := range foodIDs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			s, err := l.api.FoodSummary(ctx, id)
			if err != nil || s.FoodID != id {
				if err != nil {
					log.Debug().Err(err).Str("food_id", id).Msg("per-item summary failed, using zero summary")
				}
				results.Set(id, ZeroSummary(id))
				return
			}
			results.Set(id, s)
		}(id)
	}
	wg.Wait()

	return aggregates, results.Items()
}

// CommentUpdate carries the post-submit reloads of a successful comment.
// The two reloads are independent calls, not a transaction: either may fail
// after the comment itself was accepted, in which case its OK flag is false
// and the caller keeps its previous data for that part.
type CommentUpdate struct {
	Comments   []Comment
	CommentsOK bool
	Summary    Summary
	SummaryOK  bool
}

// SubmitComment posts a comment and reloads the comment list and summary for
// the item. Empty or whitespace-only text is rejected locally with
// ErrEmptyComment before any network call. A rejected post returns the
// transport or status error unchanged so the caller can surface the
// eligibility notice.
func (l *Loader) SubmitComment(ctx context.Context, foodID, text string) (CommentUpdate, error) {
	if strings.TrimSpace(text) == "" {
		return CommentUpdate{}, ErrEmptyComment
	}

	if err := l.api.AddComment(ctx, foodID, text); err != nil {
		return CommentUpdate{}, err
	}

	var upd CommentUpdate
	if comments, err := l.api.ListComments(ctx, foodID); err != nil {
		log.Warn().Err(err).Str("food_id", foodID).Msg("comment list reload failed after submit")
	} else {
		upd.Comments = comments
		upd.CommentsOK = true
	}

	if summary, err := l.api.FoodSummary(ctx, foodID); err != nil {
		log.Warn().Err(err).Str("food_id", foodID).Msg("summary reload failed after submit")
	} else {
		upd.Summary = summary
		upd.SummaryOK = true
	}

	return upd, nil
}
