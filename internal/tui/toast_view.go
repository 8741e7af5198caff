package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/canteen/internal/core/styles"
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastView renders toast notifications stacked vertically, oldest at top.
type ToastView struct {
	controller *ToastController
}

func NewToastView(controller *ToastController) *ToastView {
	return &ToastView{controller: controller}
}

func (v *ToastView) View() string {
	toasts := v.controller.Toasts()
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, renderToast(t))
	}

	return strings.Join(rendered, "\n")
}

func renderToast(t toast) string {
	var icon string
	var style lipgloss.Style

	switch t.notification.Level {
	case LevelError:
		icon = IconNotifyError
		style = styles.ToastErrorStyle
	case LevelWarning:
		icon = IconNotifyWarning
		style = styles.ToastWarningStyle
	default:
		icon = IconNotifyInfo
		style = styles.ToastInfoStyle
	}

	content := icon + " " + t.notification.Message
	return style.Width(toastWidth).Render(content)
}

// Attach appends the toast stack under the background, right-aligned.
func (v *ToastView) Attach(background string, width int) string {
	content := v.View()
	if content == "" {
		return background
	}
	return background + "\n" + lipgloss.PlaceHorizontal(max(width, toastWidth), lipgloss.Right, content)
}
