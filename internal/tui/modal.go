package tui

import (
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/taskr/internal/core/styles"
	"github.com/colonyops/taskr/internal/core/task"
)

const modalWidth = 50

// DeleteModal asks the user to confirm removal of a task.
type DeleteModal struct {
	target          task.PendingDelete
	confirmSelected bool // true = Delete button selected, false = Cancel
}

// NewDeleteModal creates a modal for the pending delete snapshot. Cancel is
// selected initially.
func NewDeleteModal(target task.PendingDelete) DeleteModal {
	return DeleteModal{target: target}
}

// ToggleSelection switches the selected button.
func (m *DeleteModal) ToggleSelection() {
	m.confirmSelected = !m.confirmSelected
}

// ConfirmSelected returns true if the Delete button is selected.
func (m DeleteModal) ConfirmSelected() bool {
	return m.confirmSelected
}

// View renders the modal box.
func (m DeleteModal) View() string {
	var deleteBtn, cancelBtn string
	if m.confirmSelected {
		cancelBtn = styles.ModalButtonStyle.Render("Cancel")
		deleteBtn = styles.ModalButtonSelectedStyle.Render("Delete")
	} else {
		cancelBtn = styles.ModalButtonSelectedStyle.Render("Cancel")
		deleteBtn = styles.ModalButtonStyle.Render("Delete")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, cancelBtn, "  ", deleteBtn)
	buttonRow := lipgloss.NewStyle().MarginTop(1).Render(buttons)

	body := lipgloss.NewStyle().Width(modalWidth - 6).Render(
		"Are you sure you want to delete " + styles.ModalQuoteStyle.Render("\""+m.target.Text+"\"") + "?",
	)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render("Delete Task"),
		"",
		body,
		styles.SubtitleStyle.Render("This action cannot be undone."),
		buttonRow,
		styles.ModalHelpStyle.Render("←/→ select  enter confirm  y delete  esc cancel"),
	)

	return styles.ModalStyle.Width(modalWidth).Render(content)
}

// Overlay composites the modal centered over background.
func (m DeleteModal) Overlay(background string, width, height int) string {
	modal := m.View()

	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal)
	x := max((width-lipgloss.Width(modal))/2, 0)
	y := max((height-lipgloss.Height(modal))/2, 0)
	modalLayer.X(x).Y(y).Z(1)

	return lipgloss.NewCompositor(bgLayer, modalLayer).Render()
}
