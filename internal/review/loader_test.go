package review

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	summaries      map[string]Summary
	summaryErrs    map[string]error
	batch          map[string]Summary
	batchErr       error
	comments       []Comment
	commentsErr    error
	addCommentErr  error
	summaryCalls   atomic.Int64
	batchCalls     atomic.Int64
	addCalls       atomic.Int64
	listCalls      atomic.Int64
}

func (f *fakeAPI) FoodSummary(_ context.Context, foodID string) (Summary, error) {
	f.summaryCalls.Add(1)
	if err := f.summaryErrs[foodID]; err != nil {
		return Summary{}, err
	}
	return f.summaries[foodID], nil
}

func (f *fakeAPI) BatchSummaries(_ context.Context, _ []string) (map[string]Summary, error) {
	f.batchCalls.Add(1)
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	return f.batch, nil
}

func (f *fakeAPI) ListComments(_ context.Context, _ string) ([]Comment, error) {
	f.listCalls.Add(1)
	return f.comments, f.commentsErr
}

func (f *fakeAPI) AddComment(_ context.Context, _, _ string) error {
	f.addCalls.Add(1)
	return f.addCommentErr
}

func TestLoader_LoadSummaries(t *testing.T) {
	api := &fakeAPI{
		batch: map[string]Summary{
			"a": {AvgRating: 4.5, RatingCount: 2, CommentCount: 1},
			"b": {AvgRating: 1.0, RatingCount: 1},
		},
		summaries: map[string]Summary{
			"a": {FoodID: "a", AvgRating: 4.5, RatingCount: 2, CommentCount: 1, CanReview: true, MyRating: 5},
		},
		summaryErrs: map[string]error{
			"b": errors.New("boom"),
		},
	}

	l := NewLoader(api)
	agg, personal := l.LoadSummaries(context.Background(), []string{"a", "b"})

	// aggregate map mirrors the batch response, ids filled in
	require.Len(t, agg, 2)
	assert.Equal(t, "a", agg["a"].FoodID)
	assert.Equal(t, 4.5, agg["a"].AvgRating)

	// exactly one caller-scoped entry per requested id, failed id defaulted
	require.Len(t, personal, 2)
	assert.Equal(t, 5, personal["a"].MyRating)
	assert.True(t, personal["a"].CanReview)
	assert.Equal(t, ZeroSummary("b"), personal["b"])
}

func TestLoader_LoadSummaries_BatchFailureDegradesToEmpty(t *testing.T) {
	api := &fakeAPI{
		batchErr: errors.New("gateway down"),
		summaries: map[string]Summary{
			"a": {FoodID: "a", MyRating: 3, CanReview: true},
		},
	}

	l := NewLoader(api)
	agg, personal := l.LoadSummaries(context.Background(), []string{"a"})

	assert.Empty(t, agg)
	require.Len(t, personal, 1)
	assert.Equal(t, 3, personal["a"].MyRating)
}

func TestLoader_LoadSummaries_MismatchedIDDefaults(t *testing.T) {
	// A response for a different id counts as "no matching id".
	api := &fakeAPI{
		summaries: map[string]Summary{
			"a": {FoodID: "other"},
		},
	}

	l := NewLoader(api)
	_, personal := l.LoadSummaries(context.Background(), []string{"a"})

	assert.Equal(t, ZeroSummary("a"), personal["a"])
}

func TestLoader_LoadSummaries_EmptyIDSet(t *testing.T) {
	api := &fakeAPI{}

	l := NewLoader(api)
	agg, personal := l.LoadSummaries(context.Background(), nil)

	assert.Empty(t, agg)
	assert.Empty(t, personal)
	assert.Equal(t, int64(0), api.batchCalls.Load())
	assert.Equal(t, int64(0), api.summaryCalls.Load())
}

func TestLoader_LoadSummaries_OnePerItemRequest(t *testing.T) {
	api := &fakeAPI{
		summaries: map[string]Summary{
			"a": {FoodID: "a"}, "b": {FoodID: "b"}, "c": {FoodID: "c"},
		},
	}

	l := NewLoader(api)
	_, personal := l.LoadSummaries(context.Background(), []string{"a", "b", "c"})

	assert.Len(t, personal, 3)
	assert.Equal(t, int64(1), api.batchCalls.Load())
	assert.Equal(t, int64(3), api.summaryCalls.Load())
}

func TestLoader_SubmitComment_WhitespaceMakesNoCalls(t *testing.T) {
	api := &fakeAPI{}
	l := NewLoader(api)

	for _, text := range []string{"", "   ", "\n\t "} {
		_, err := l.SubmitComment(context.Background(), "a", text)
		assert.ErrorIs(t, err, ErrEmptyComment)
	}

	assert.Equal(t, int64(0), api.addCalls.Load())
	assert.Equal(t, int64(0), api.listCalls.Load())
	assert.Equal(t, int64(0), api.summaryCalls.Load())
}

func TestLoader_SubmitComment_Success(t *testing.T) {
	api := &fakeAPI{
		comments: []Comment{{Author: "Mika", Text: "super"}},
		summaries: map[string]Summary{
			"a": {FoodID: "a", CommentCount: 1, CanReview: true},
		},
	}

	l := NewLoader(api)
	upd, err := l.SubmitComment(context.Background(), "a", "super")

	require.NoError(t, err)
	assert.True(t, upd.CommentsOK)
	assert.True(t, upd.SummaryOK)
	assert.Len(t, upd.Comments, 1)
	assert.Equal(t, int64(1), upd.Summary.CommentCount)
}

func TestLoader_SubmitComment_RejectedReturnsError(t *testing.T) {
	api := &fakeAPI{addCommentErr: errors.New("403")}

	l := NewLoader(api)
	_, err := l.SubmitComment(context.Background(), "a", "hello")

	require.Error(t, err)
	// no reloads after a rejected post
	assert.Equal(t, int64(0), api.listCalls.Load())
	assert.Equal(t, int64(0), api.summaryCalls.Load())
}

func TestLoader_SubmitComment_SummaryReloadFailureIsNotFatal(t *testing.T) {
	// the comment list still reflects the new comment when the summary
	// reload fails; this inconsistency window is accepted
	api := &fakeAPI{
		comments:    []Comment{{Author: "Mika", Text: "super"}},
		summaryErrs: map[string]error{"a": errors.New("boom")},
	}

	l := NewLoader(api)
	upd, err := l.SubmitComment(context.Background(), "a", "super")

	require.NoError(t, err)
	assert.True(t, upd.CommentsOK)
	assert.False(t, upd.SummaryOK)
	assert.Len(t, upd.Comments, 1)
}
