package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/canteen/internal/client"
	"github.com/colonyops/canteen/internal/core/styles"
	"github.com/colonyops/canteen/internal/review"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.active {
	case ViewFoods:
		body = m.viewFoods()
	case ViewDetail:
		body = m.viewDetail()
	case ViewOrders:
		body = m.viewOrders()
	case ViewHelp:
		body = m.viewHelp()
	}

	out := m.viewHeader() + "\n" + body + "\n" + m.viewFooter()

	if m.notice != "" {
		modal := styles.ModalStyle.Render(
			styles.ModalTitleStyle.Render("Notice") + "\n\n" +
				m.notice + "\n\n" +
				styles.ModalHelpStyle.Render("press any key to dismiss"),
		)
		out = lipgloss.Place(max(m.width, lipgloss.Width(modal)), lipgloss.Height(out),
			lipgloss.Center, lipgloss.Center, modal)
	}

	return m.toastView.Attach(out, m.width)
}

func (m Model) viewHeader() string {
	title := styles.TitleStyle.Render("canteen")
	who := "not logged in"
	if m.deps.Session.LoggedIn() {
		who = fmt.Sprintf("%s (%s)", m.deps.Session.UserID, m.deps.Session.Role)
	}

	tabs := []string{
		m.tab("foods", m.active == ViewFoods || m.active == ViewDetail),
		m.tab("orders", m.active == ViewOrders),
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		title, "  ",
		strings.Join(tabs, " "), "  ",
		styles.MutedStyle.Render(who),
	)
}

func (m Model) tab(label string, active bool) string {
	if active {
		return styles.TabActiveStyle.Render(label)
	}
	return styles.TabInactiveStyle.Render(label)
}

func (m Model) viewFooter() string {
	var help string
	switch {
	case m.composing:
		help = "enter submit · esc discard"
	case m.active == ViewFoods:
		help = "enter open · p order · o orders · r refresh · ? help · q quit"
	case m.active == ViewDetail:
		help = "←/→ hover · enter/1-5 rate · c comment · esc back"
	case m.active == ViewOrders:
		help = "tab scope · a accept · x cancel · r refresh · esc back"
	default:
		help = "esc back"
	}
	return styles.MutedStyle.Render(help)
}

func (m Model) viewFoods() string {
	if m.loading && len(m.foods) == 0 {
		return m.spinner.View() + " loading foods"
	}
	if len(m.foods) == 0 {
		return styles.MutedStyle.Render("no foods on the menu")
	}

	var b strings.Builder
	for i, f := range m.foods {
		s := m.ctrl.Merged(f.ID)
		line := fmt.Sprintf("%s %-8s %-7s %s %.1f (%d)",
			pad(f.FoodName, 24), f.Type1, f.Type2, renderAvgStars(s), s.AvgRating, s.RatingCount)
		if i == m.cursor {
			line = styles.SelectedRowStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewDetail() string {
	food := m.selectedFood()
	s := m.ctrl.Merged(m.selected)

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(food.FoodName) + "\n")
	b.WriteString(styles.MutedStyle.Render(food.Type1+" · "+food.Type2) + "\n\n")

	b.WriteString(fmt.Sprintf("%s %.1f from %d rating(s)\n", renderAvgStars(s), s.AvgRating, s.RatingCount))

	if m.deps.Session.LoggedIn() {
		b.WriteString("your rating: " + renderMyStars(m.ctrl, m.selected))
		if m.ctrl.RatingPhase(m.selected) == review.RatingPending {
			b.WriteString(" " + m.spinner.View())
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + styles.TitleStyle.Render(fmt.Sprintf("comments (%d)", s.CommentCount)) + "\n")
	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " loading comments\n")
	case len(m.comments) == 0:
		b.WriteString(styles.MutedStyle.Render("no comments yet") + "\n")
	default:
		for _, cm := range m.comments {
			author := cm.Author
			if author == "" {
				author = "anonymous"
			}
			b.WriteString(styles.SuccessStyle.Render(author) + " " + cm.Text + "\n")
		}
	}

	if m.composing {
		b.WriteString("\n" + m.commentInput.View() + "\n")
	}

	return b.String()
}

func (m Model) viewOrders() string {
	scopes := []string{
		m.tab("all", m.orderScope == ScopeAll),
		m.tab("mine", m.orderScope == ScopeMine),
		m.tab("accepted", m.orderScope == ScopeAccepted),
	}
	header := strings.Join(scopes, " ") + "\n"

	if m.loading && len(m.orders) == 0 {
		return header + m.spinner.View() + " loading orders"
	}
	if len(m.orders) == 0 {
		return header + styles.MutedStyle.Render("no "+m.orderScope.String()+" orders")
	}

	var b strings.Builder
	b.WriteString(header)
	for i, o := range m.orders {
		name := o.Food.FoodName
		if name == "" {
			name = o.Food.ID
		}
		line := fmt.Sprintf("%s %-12s %s", pad(name, 24), o.StatusO, o.StatusO2)
		if i == m.orderCursor {
			line = styles.SelectedRowStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

const helpMarkdown = `# canteen

Browse the menu, rate dishes, and manage orders.

## Foods

| key | action |
| --- | ------ |
| enter | open item detail |
| p | place an order for the item |
| o | switch to orders |
| r | reload the menu |

## Item detail

| key | action |
| --- | ------ |
| left/right | move the hover star |
| enter | rate at the hovered star |
| 1-5 | rate directly |
| c | write a comment |

Ratings and comments require a prior order for the item.

## Orders

| key | action |
| --- | ------ |
| a | accept the selected order |
| x | cancel the selected order |
`

func (m Model) viewHelp() string {
	if m.helpCache != "" {
		return m.helpCache
	}
	return renderHelp(m.width)
}

// renderHelp renders the help markdown for the given terminal width.
func renderHelp(width int) string {
	if width <= 0 || width > 100 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}

func (m Model) selectedFood() client.Food {
	for _, f := range m.foods {
		if f.ID == m.selected {
			return f
		}
	}
	return client.Food{ID: m.selected}
}

// pad truncates s to the given display width on rune boundaries and pads it
// with spaces to exactly that width.
func pad(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	if gap := width - lipgloss.Width(s); gap > 0 {
		s += strings.Repeat(" ", gap)
	}
	return s
}
