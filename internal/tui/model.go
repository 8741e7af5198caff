package tui

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/canteen/internal/client"
	"github.com/colonyops/canteen/internal/core/session"
	"github.com/colonyops/canteen/internal/core/styles"
	"github.com/colonyops/canteen/internal/review"
)

// Deps carries the services the TUI operates on.
type Deps struct {
	Client  *client.Client
	Reviews *review.Loader
	Session session.Session
	Version string
}

// Opts configures TUI behavior at startup.
type Opts struct {
	Warnings []string
}

// Model is the main Bubble Tea model.
type Model struct {
	deps Deps

	ctrl     *review.Controller
	foods    []client.Food
	orders   []client.Order
	comments []review.Comment

	active      ViewType
	prior       ViewType
	cursor      int
	orderCursor int
	orderScope  OrderScope
	selected    string

	// notice is a blocking modal message; any key dismisses it.
	notice string

	commentInput textinput.Model
	composing    bool

	spinner spinner.Model
	loading bool

	toasts    *ToastController
	toastView *ToastView

	helpCache string

	width  int
	height int

	quitting bool
}

// New creates the TUI model.
func New(deps Deps, opts Opts) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.MutedStyle

	ti := textinput.New()
	ti.Placeholder = "write a comment"
	ti.CharLimit = 500

	toasts := NewToastController()
	for _, w := range opts.Warnings {
		toasts.Push(Notification{Level: LevelWarning, Message: w})
	}

	return Model{
		deps:         deps,
		ctrl:         review.NewController(),
		active:       ViewFoods,
		commentInput: ti,
		spinner:      sp,
		loading:      true,
		toasts:       toasts,
		toastView:    NewToastView(toasts),
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.loadFoods()}
	if m.toasts.HasToasts() {
		m.toasts.SetTicking(true)
		cmds = append(cmds, scheduleToastTick())
	}
	return tea.Batch(cmds...)
}

// notify pushes a toast and ensures the tick timer is running.
func (m *Model) notify(level ToastLevel, msg string) tea.Cmd {
	m.toasts.Push(Notification{Level: level, Message: msg})
	if !m.toasts.Ticking() {
		m.toasts.SetTicking(true)
		return scheduleToastTick()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.helpCache = ""
		return m, nil

	case toastTickMsg:
		m.toasts.Tick(toastTickInterval)
		if m.toasts.HasToasts() {
			return m, scheduleToastTick()
		}
		m.toasts.SetTicking(false)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case foodsLoadedMsg:
		return m.handleFoodsLoaded(msg)

	case ordersLoadedMsg:
		return m.handleOrdersLoaded(msg)

	case ratingResultMsg:
		return m.handleRatingResult(msg)

	case commentsLoadedMsg:
		return m.handleCommentsLoaded(msg)

	case commentSubmittedMsg:
		return m.handleCommentSubmitted(msg)

	case orderActionMsg:
		if msg.err != nil {
			return m, m.notify(LevelError, fmt.Sprintf("order not %s: %v", msg.verb, msg.err))
		}
		cmd := m.notify(LevelInfo, "order "+msg.verb)
		return m, tea.Batch(cmd, m.loadOrders(m.orderScope))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.notice != "" {
		m.notice = ""
		return m, nil
	}
	if m.composing {
		return m.handleComposeKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		if m.active == ViewHelp {
			m.active = m.prior
		} else {
			m.prior = m.active
			m.active = ViewHelp
			if m.helpCache == "" {
				m.helpCache = renderHelp(m.width)
			}
		}
		return m, nil
	}

	switch m.active {
	case ViewFoods:
		return m.handleFoodsKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewOrders:
		return m.handleOrdersKey(msg)
	case ViewHelp:
		if key.Matches(msg, keys.Back) {
			m.active = m.prior
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.composing = false
		m.commentInput.Blur()
		m.commentInput.SetValue("")
		return m, nil
	case key.Matches(msg, keys.Select):
		text := m.commentInput.Value()
		m.composing = false
		m.commentInput.Blur()
		m.commentInput.SetValue("")
		return m, m.submitComment(m.selected, text)
	}

	var cmd tea.Cmd
	m.commentInput, cmd = m.commentInput.Update(msg)
	return m, cmd
}

func (m Model) handleFoodsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.foods)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Select):
		if len(m.foods) == 0 {
			return m, nil
		}
		m.selected = m.foods[m.cursor].ID
		m.active = ViewDetail
		m.comments = nil
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadComments(m.selected))
	case key.Matches(msg, keys.Order):
		if len(m.foods) == 0 {
			return m, nil
		}
		if !m.deps.Session.LoggedIn() {
			return m, m.notify(LevelWarning, "log in to place orders")
		}
		return m, m.placeOrder(m.foods[m.cursor].ID)
	case key.Matches(msg, keys.Orders):
		m.active = ViewOrders
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadOrders(m.orderScope))
	case key.Matches(msg, keys.Refresh):
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadFoods())
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.ctrl.ClearHover(m.selected)
		m.active = ViewFoods
		return m, nil
	case key.Matches(msg, keys.Left):
		if h := m.ctrl.Hover(m.selected); h > 1 {
			m.ctrl.SetHover(m.selected, h-1)
		} else {
			m.ctrl.SetHover(m.selected, 1)
		}
		return m, nil
	case key.Matches(msg, keys.Right):
		if h := m.ctrl.Hover(m.selected); h < 5 {
			m.ctrl.SetHover(m.selected, h+1)
		}
		return m, nil
	case key.Matches(msg, keys.Select):
		if h := m.ctrl.Hover(m.selected); h > 0 {
			return m.beginRating(h)
		}
		return m, nil
	case key.Matches(msg, keys.Comment):
		if !m.deps.Session.LoggedIn() {
			return m, m.notify(LevelWarning, "log in to comment")
		}
		m.composing = true
		return m, m.commentInput.Focus()
	}

	switch msg.String() {
	case "1", "2", "3", "4", "5":
		return m.beginRating(int(msg.String()[0] - '0'))
	}
	return m, nil
}

// beginRating applies the optimistic rating and fires the network call.
func (m Model) beginRating(rating int) (tea.Model, tea.Cmd) {
	if !m.deps.Session.LoggedIn() {
		return m, m.notify(LevelWarning, "log in to rate")
	}
	if _, err := m.ctrl.BeginRating(m.selected, rating); err != nil {
		return m, m.notify(LevelError, err.Error())
	}
	m.ctrl.ClearHover(m.selected)
	return m, m.submitRating(m.selected, rating)
}

func (m Model) handleOrdersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.active = ViewFoods
		return m, nil
	case key.Matches(msg, keys.Up):
		if m.orderCursor > 0 {
			m.orderCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.orderCursor < len(m.orders)-1 {
			m.orderCursor++
		}
	case key.Matches(msg, keys.Refresh):
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadOrders(m.orderScope))
	case key.Matches(msg, keys.Tab):
		m.orderScope = (m.orderScope + 1) % 3
		m.orderCursor = 0
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadOrders(m.orderScope))
	case key.Matches(msg, keys.Accept):
		if len(m.orders) == 0 {
			return m, nil
		}
		return m, m.acceptOrder(m.orders[m.orderCursor].ID)
	case key.Matches(msg, keys.Cancel):
		if len(m.orders) == 0 {
			return m, nil
		}
		return m, m.cancelOrder(m.orders[m.orderCursor].ID)
	}
	return m, nil
}

func (m Model) handleFoodsLoaded(msg foodsLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		return m, m.notify(LevelError, fmt.Sprintf("load foods: %v", msg.err))
	}

	m.foods = msg.foods
	m.ctrl.ApplySummaries(msg.aggregates, msg.personal)
	if m.deps.Session.Role == session.RoleCook {
		SortForCook(m.foods, m.ctrl)
	}
	if m.cursor >= len(m.foods) {
		m.cursor = max(len(m.foods)-1, 0)
	}
	return m, nil
}

func (m Model) handleOrdersLoaded(msg ordersLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.scope != m.orderScope {
		return m, nil
	}
	if msg.err != nil {
		return m, m.notify(LevelError, fmt.Sprintf("load orders: %v", msg.err))
	}
	m.orders = msg.orders
	if m.orderCursor >= len(m.orders) {
		m.orderCursor = max(len(m.orders)-1, 0)
	}
	return m, nil
}

func (m Model) handleRatingResult(msg ratingResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.ctrl.RollbackRating(msg.foodID)
		if client.IsStatus(msg.err, http.StatusForbidden) || client.IsStatus(msg.err, http.StatusUnauthorized) {
			m.notice = "Only users with a prior order for this item may review it."
			return m, nil
		}
		return m, m.notify(LevelError, fmt.Sprintf("rating failed: %v", msg.err))
	}

	m.ctrl.CommitRating(msg.foodID, msg.summary)
	return m, m.notify(LevelInfo, "rating saved")
}

func (m Model) handleCommentsLoaded(msg commentsLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.foodID != m.selected {
		return m, nil
	}
	if msg.err != nil {
		return m, m.notify(LevelError, fmt.Sprintf("load comments: %v", msg.err))
	}
	m.comments = msg.comments
	return m, nil
}

func (m Model) handleCommentSubmitted(msg commentSubmittedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, review.ErrEmptyComment) {
			return m, m.notify(LevelWarning, "comment text is required")
		}
		if client.IsStatus(msg.err, http.StatusForbidden) || client.IsStatus(msg.err, http.StatusUnauthorized) {
			m.notice = "Only users with a prior order for this item may review it."
			return m, nil
		}
		return m, m.notify(LevelError, fmt.Sprintf("comment failed: %v", msg.err))
	}

	if msg.foodID == m.selected && msg.update.CommentsOK {
		m.comments = msg.update.Comments
	}
	if msg.update.SummaryOK {
		m.ctrl.UpdateSummary(msg.update.Summary)
	}
	return m, m.notify(LevelInfo, "comment added")
}

// Comments returns the comments shown in the detail view.
func (m Model) Comments() []review.Comment { return m.comments }

// ActiveView returns the currently displayed view.
func (m Model) ActiveView() ViewType { return m.active }

// Controller exposes the review state for tests and the exit path.
func (m Model) Controller() *review.Controller { return m.ctrl }
