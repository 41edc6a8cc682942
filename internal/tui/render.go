package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/taskr/internal/core/styles"
	"github.com/colonyops/taskr/internal/core/task"
)

// View renders the model.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	if m.quitting {
		return ""
	}

	w, h := m.width, m.height
	if w == 0 {
		w = defaultWidth
	}
	if h == 0 {
		h = defaultHeight
	}

	content := m.renderMain(min(w, maxListWidth))
	if m.modal != nil {
		content = m.modal.Overlay(content, w, h)
	}
	return m.toasts.Overlay(content, w)
}

func (m Model) renderMain(width int) string {
	sections := []string{
		m.renderHeader(),
		m.renderInput(width),
		m.renderTabs(),
		m.renderList(width),
		m.renderFooter(width),
		renderHelp(m.keys.ShortHelp()),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		styles.TitleStyle.Render("taskr"),
		styles.SubtitleStyle.Render("Organize your tasks efficiently"),
		"",
	)
}

func (m Model) renderInput(width int) string {
	box := styles.InputStyle
	if m.focus == focusInput {
		box = styles.InputFocusedStyle
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		box.Width(width).Render(m.input.View()),
		renderCounter(m.input.Value()),
		"",
	)
}

func renderCounter(text string) string {
	n := len([]rune(text))
	style := styles.CounterStyle
	if n >= task.MaxTextLength {
		style = styles.CounterLimitStyle
	}
	return style.Render(fmt.Sprintf("%d/%d characters", n, task.MaxTextLength))
}

func (m Model) renderTabs() string {
	current := m.store.Filter()
	tabs := make([]string, 0, len(task.Filters))
	for i, f := range task.Filters {
		label := fmt.Sprintf("%d %s", i+1, f.Label())
		if f == current {
			tabs = append(tabs, styles.ViewSelectedStyle.Render(label))
		} else {
			tabs = append(tabs, styles.ViewNormalStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n"
}

func (m Model) renderList(width int) string {
	view := m.store.FilteredView()
	if len(view) == 0 {
		return m.renderEmpty(width)
	}

	editID, editing := m.store.Editing()

	var b strings.Builder
	for i, t := range view {
		if editing && t.ID == editID && m.focus == focusEdit {
			b.WriteString(m.renderEditRow(t))
		} else {
			b.WriteString(m.renderRow(t, i == m.cursor && m.focus == focusList, width))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRow(t task.Task, selected bool, width int) string {
	cursor := "  "
	if selected {
		cursor = styles.TaskSelectedStyle.Render(styles.IconCursor) + " "
	}

	box := styles.CheckboxStyle.Render(styles.CheckboxOpen)
	text := styles.TaskStyle
	if t.Completed {
		box = styles.CheckboxDoneStyle.Render(styles.CheckboxDone)
		text = styles.TaskCompletedStyle
	}
	if selected && !t.Completed {
		text = styles.TaskSelectedStyle
	}

	textWidth := max(width-lipgloss.Width(cursor)-lipgloss.Width(box)-1, 10)
	return lipgloss.JoinHorizontal(lipgloss.Top, cursor, box, " ", text.Width(textWidth).Render(t.Text))
}

func (m Model) renderEditRow(t task.Task) string {
	return styles.EditAreaStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.editor.View(),
		renderCounter(m.editor.Value()),
		styles.HelpStyle.Render("enter save  esc cancel"),
	))
}

func (m Model) renderEmpty(width int) string {
	hint := "Add a new task to get started"
	if f := m.store.Filter(); f != task.FilterAll {
		hint = fmt.Sprintf("No %s tasks available", f)
	}

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		center.Render(styles.EmptyTitleStyle.Render("No tasks found")),
		center.Render(styles.EmptyHintStyle.Render(hint)),
		"",
	)
}

func (m Model) renderFooter(width int) string {
	c := m.store.Counts()
	line := fmt.Sprintf("%d total tasks %s %d completed %s %d active",
		c.Total, styles.IconDot, c.Completed, styles.IconDot, c.Active)
	return styles.FooterStyle.Width(width).Align(lipgloss.Center).Render(line)
}
