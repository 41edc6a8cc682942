package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/taskr/internal/core/notify"
	"github.com/colonyops/taskr/internal/core/styles"
)

const (
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 40
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastView renders the emitter's active notification as an overlay.
type ToastView struct {
	emitter *notify.Emitter
}

func NewToastView(emitter *notify.Emitter) *ToastView {
	return &ToastView{emitter: emitter}
}

// View renders the active notification, or "" when none is showing.
func (v *ToastView) View() string {
	active, ok := v.emitter.Current()
	if !ok {
		return ""
	}
	return renderToast(active)
}

func renderToast(a notify.Active) string {
	n := a.Notification
	accent := styles.NotificationColor(n.Kind)

	title := styles.ToastTitleStyle.Foreground(accent).
		Render(styles.NotificationIcon(n.Kind) + " " + n.Kind.Title())
	body := lipgloss.NewStyle().Foreground(styles.ColorForeground).Render(n.Message)

	style := styles.ToastStyle.BorderForeground(accent).Width(toastWidth)
	out := style.Render(lipgloss.JoinVertical(lipgloss.Left, title, body))

	if a.Phase == notify.PhaseFading {
		out = styles.ToastFadedStyle.Render(out)
	}
	return out
}

// Overlay composites the toast over background in the upper-right corner.
func (v *ToastView) Overlay(background string, width int) string {
	toastContent := v.View()
	if toastContent == "" {
		return background
	}

	bgLayer := lipgloss.NewLayer(background)
	toastLayer := lipgloss.NewLayer(toastContent)

	rightX := max(width-lipgloss.Width(toastContent)-1, 0)
	toastLayer.X(rightX).Y(1).Z(2)

	return lipgloss.NewCompositor(bgLayer, toastLayer).Render()
}
