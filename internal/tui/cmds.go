package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/canteen/internal/client"
	"github.com/colonyops/canteen/internal/review"
)

type foodsLoadedMsg struct {
	foods      []client.Food
	aggregates map[string]review.Summary
	personal   map[string]review.Summary
	err        error
}

type ordersLoadedMsg struct {
	scope  OrderScope
	orders []client.Order
	err    error
}

type ratingResultMsg struct {
	foodID  string
	summary review.Summary
	err     error
}

type commentsLoadedMsg struct {
	foodID   string
	comments []review.Comment
	err      error
}

type commentSubmittedMsg struct {
	foodID string
	update review.CommentUpdate
	err    error
}

type orderActionMsg struct {
	verb string
	err  error
}

func (m Model) loadFoods() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		foods, err := m.deps.Client.Foods(ctx)
		if err != nil {
			return foodsLoadedMsg{err: err}
		}

		ids := make([]string, 0, len(foods))
		for _, f := range foods {
			if f.ID != "" {
				ids = append(ids, f.ID)
			}
		}

		aggregates, personal := m.deps.Reviews.LoadSummaries(ctx, ids)
		return foodsLoadedMsg{foods: foods, aggregates: aggregates, personal: personal}
	}
}

func (m Model) loadOrders(scope OrderScope) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		var orders []client.Order
		var err error
		switch scope {
		case ScopeMine:
			orders, err = m.deps.Client.MyOrders(ctx, m.deps.Session.UserID)
		case ScopeAccepted:
			orders, err = m.deps.Client.AcceptedOrders(ctx)
		default:
			orders, err = m.deps.Client.Orders(ctx)
		}
		return ordersLoadedMsg{scope: scope, orders: orders, err: err}
	}
}

func (m Model) submitRating(foodID string, rating int) tea.Cmd {
	return func() tea.Msg {
		summary, err := m.deps.Client.SetRating(context.Background(), foodID, rating)
		return ratingResultMsg{foodID: foodID, summary: summary, err: err}
	}
}

func (m Model) loadComments(foodID string) tea.Cmd {
	return func() tea.Msg {
		comments, err := m.deps.Client.ListComments(context.Background(), foodID)
		return commentsLoadedMsg{foodID: foodID, comments: comments, err: err}
	}
}

func (m Model) submitComment(foodID, text string) tea.Cmd {
	return func() tea.Msg {
		update, err := m.deps.Reviews.SubmitComment(context.Background(), foodID, text)
		return commentSubmittedMsg{foodID: foodID, update: update, err: err}
	}
}

func (m Model) placeOrder(foodID string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.deps.Client.CreateOrder(context.Background(), foodID, m.deps.Session.UserID)
		return orderActionMsg{verb: "placed", err: err}
	}
}

func (m Model) acceptOrder(orderID string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.deps.Client.AcceptOrder(context.Background(), orderID)
		return orderActionMsg{verb: "accepted", err: err}
	}
}

func (m Model) cancelOrder(orderID string) tea.Cmd {
	return func() tea.Msg {
		err := m.deps.Client.CancelOrder(context.Background(), orderID)
		return orderActionMsg{verb: "cancelled", err: err}
	}
}
