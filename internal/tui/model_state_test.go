package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/canteen/internal/client"
	"github.com/colonyops/canteen/internal/core/session"
	"github.com/colonyops/canteen/internal/review"
)

func testModel(sess session.Session) Model {
	return New(Deps{Session: sess}, Opts{})
}

func loggedIn() session.Session {
	return session.Session{UserID: "u1", Role: session.RoleStudent, Token: "t"}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func TestModel_FoodsLoaded_AppliesSummaries(t *testing.T) {
	m := testModel(loggedIn())

	m = update(t, m, foodsLoadedMsg{
		foods: []client.Food{{ID: "f1", FoodName: "Pasta"}},
		aggregates: map[string]review.Summary{
			"f1": {FoodID: "f1", AvgRating: 4.0, RatingCount: 2},
		},
		personal: map[string]review.Summary{
			"f1": {FoodID: "f1", CanReview: true, MyRating: 3},
		},
	})

	assert.False(t, m.loading)
	got := m.Controller().Merged("f1")
	assert.InDelta(t, 4.0, got.AvgRating, 0.001)
	assert.Equal(t, 3, got.MyRating)
	assert.True(t, got.CanReview)
}

func TestModel_FoodsLoaded_CookGetsTriageOrder(t *testing.T) {
	sess := loggedIn()
	sess.Role = session.RoleCook
	m := testModel(sess)

	m = update(t, m, foodsLoadedMsg{
		foods: []client.Food{
			{ID: "top", FoodName: "Lasagna"},
			{ID: "flop", FoodName: "Cold Fries"},
		},
		aggregates: map[string]review.Summary{
			"top":  {FoodID: "top", AvgRating: 4.8, RatingCount: 9},
			"flop": {FoodID: "flop", AvgRating: 1.2, RatingCount: 4},
		},
	})

	assert.Equal(t, "flop", m.foods[0].ID)
}

func TestModel_RatingResult_ErrorRollsBack(t *testing.T) {
	m := testModel(loggedIn())
	m = update(t, m, foodsLoadedMsg{
		foods: []client.Food{{ID: "f1", FoodName: "Pasta"}},
		personal: map[string]review.Summary{
			"f1": {FoodID: "f1", CanReview: true, MyRating: 2},
		},
	})
	m.selected = "f1"

	_, err := m.Controller().BeginRating("f1", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, m.Controller().MyRating("f1"))

	m = update(t, m, ratingResultMsg{foodID: "f1", err: errors.New("boom")})

	assert.Equal(t, 2, m.Controller().MyRating("f1"))
	assert.Equal(t, review.RatingRolledBack, m.Controller().RatingPhase("f1"))
	assert.True(t, m.toasts.HasToasts())
}

func TestModel_RatingResult_CommitUsesServerAggregates(t *testing.T) {
	m := testModel(loggedIn())
	m.selected = "f1"
	m.Controller().ApplySummaries(nil, map[string]review.Summary{
		"f1": {FoodID: "f1", CanReview: true},
	})

	_, err := m.Controller().BeginRating("f1", 4)
	require.NoError(t, err)

	m = update(t, m, ratingResultMsg{
		foodID:  "f1",
		summary: review.Summary{FoodID: "f1", AvgRating: 4.0, RatingCount: 1, MyRating: 4},
	})

	got := m.Controller().Merged("f1")
	assert.InDelta(t, 4.0, got.AvgRating, 0.001)
	assert.Equal(t, int64(1), got.RatingCount)
	assert.Equal(t, review.RatingCommitted, m.Controller().RatingPhase("f1"))
}

func TestModel_CommentSubmitted_UpdatesCommentsAndSummary(t *testing.T) {
	m := testModel(loggedIn())
	m.selected = "f1"

	m = update(t, m, commentSubmittedMsg{
		foodID: "f1",
		update: review.CommentUpdate{
			Comments:   []review.Comment{{Author: "u1", Text: "great"}},
			CommentsOK: true,
			Summary:    review.Summary{FoodID: "f1", CommentCount: 1},
			SummaryOK:  true,
		},
	})

	require.Len(t, m.Comments(), 1)
	assert.Equal(t, "great", m.Comments()[0].Text)
	assert.Equal(t, int64(1), m.Controller().Merged("f1").CommentCount)
}

func TestModel_CommentsLoaded_IgnoresStaleItem(t *testing.T) {
	m := testModel(loggedIn())
	m.selected = "f2"

	m = update(t, m, commentsLoadedMsg{
		foodID:   "f1",
		comments: []review.Comment{{Text: "old"}},
	})

	assert.Empty(t, m.Comments())
}

func TestModel_HoverKeys_MoveWithinBounds(t *testing.T) {
	m := testModel(loggedIn())
	m.active = ViewDetail
	m.selected = "f1"

	right := tea.KeyMsg{Type: tea.KeyRight}
	for range 7 {
		m = update(t, m, right)
	}
	assert.Equal(t, 5, m.Controller().Hover("f1"))

	left := tea.KeyMsg{Type: tea.KeyLeft}
	for range 7 {
		m = update(t, m, left)
	}
	assert.Equal(t, 1, m.Controller().Hover("f1"))
}

func TestModel_BackFromDetail_ClearsHover(t *testing.T) {
	m := testModel(loggedIn())
	m.active = ViewDetail
	m.selected = "f1"
	m.Controller().SetHover("f1", 3)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, ViewFoods, m.ActiveView())
	assert.Equal(t, 0, m.Controller().Hover("f1"))
}

func TestModel_RateKey_RequiresLogin(t *testing.T) {
	m := testModel(session.Session{})
	m.active = ViewDetail
	m.selected = "f1"

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}})

	assert.Equal(t, review.RatingIdle, m.Controller().RatingPhase("f1"))
	assert.True(t, m.toasts.HasToasts())
}

func TestModel_RateKey_AppliesOptimistically(t *testing.T) {
	m := testModel(loggedIn())
	m.active = ViewDetail
	m.selected = "f1"

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}})
	m = next.(Model)

	assert.Equal(t, review.RatingPending, m.Controller().RatingPhase("f1"))
	assert.Equal(t, 4, m.Controller().MyRating("f1"))
	assert.NotNil(t, cmd)
}

func TestModel_RatingResult_EligibilityShowsNotice(t *testing.T) {
	m := testModel(loggedIn())
	m.selected = "f1"

	_, err := m.Controller().BeginRating("f1", 5)
	require.NoError(t, err)

	m = update(t, m, ratingResultMsg{
		foodID: "f1",
		err:    &client.StatusError{StatusCode: 403},
	})

	assert.NotEmpty(t, m.notice)
	assert.Equal(t, review.RatingRolledBack, m.Controller().RatingPhase("f1"))

	// Any key dismisses the notice without other side effects.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.Empty(t, m.notice)
}

func TestModel_OrdersTab_CyclesScope(t *testing.T) {
	m := testModel(loggedIn())
	m.active = ViewOrders

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ScopeMine, m.orderScope)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ScopeAccepted, m.orderScope)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ScopeAll, m.orderScope)
}

func TestModel_OrdersLoaded_IgnoresStaleScope(t *testing.T) {
	m := testModel(loggedIn())
	m.orderScope = ScopeMine

	m = update(t, m, ordersLoadedMsg{
		scope:  ScopeAll,
		orders: []client.Order{{ID: "o1"}},
	})

	assert.Empty(t, m.orders)
}

func TestModel_QuitKey(t *testing.T) {
	m := testModel(loggedIn())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(Model)

	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
}
