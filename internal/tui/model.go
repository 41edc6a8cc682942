// Package tui implements the interactive task list view.
package tui

import (
	"context"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/taskr/internal/core/notify"
	"github.com/colonyops/taskr/internal/core/styles"
	"github.com/colonyops/taskr/internal/core/task"
)

// Key constants for event handling.
const (
	keyEnter = "enter"
	keyEsc   = "esc"
	keyCtrlC = "ctrl+c"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	maxListWidth  = 72
)

type focusArea int

const (
	focusList focusArea = iota
	focusInput
	focusEdit
)

// Options configures the TUI behavior.
type Options struct {
	Context context.Context
	// EmitterOptions tune notification expiry (timings, clock).
	EmitterOptions []notify.EmitterOption
}

// Model is the main Bubble Tea model for the TUI. All store mutations happen
// inside Update, which is the only goroutine touching the store.
type Model struct {
	ctx     context.Context
	store   *task.Store
	emitter *notify.Emitter
	toasts  *ToastView
	keys    KeyMap

	input  textinput.Model
	editor textarea.Model
	focus  focusArea
	cursor int
	modal  *DeleteModal

	width    int
	height   int
	ticking  bool
	quitting bool
}

// New creates a new TUI model bound to store. Notifications published on bus
// are shown as toasts; subscribe before loading the store so the load result
// is displayed.
func New(store *task.Store, bus *notify.Bus, opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	emitter := notify.NewEmitter(opts.EmitterOptions...)
	bus.Subscribe(emitter.Show)

	input := textinput.New()
	input.Placeholder = "Add a new task..."
	input.Prompt = "+ "
	input.CharLimit = task.MaxTextLength
	input.SetWidth(maxListWidth - 6)
	inputStyles := textinput.DefaultStyles(true)
	inputStyles.Cursor.Color = styles.ColorPrimary
	inputStyles.Focused.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	inputStyles.Blurred.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	input.SetStyles(inputStyles)

	editor := textarea.New()
	editor.CharLimit = task.MaxTextLength
	editor.ShowLineNumbers = false
	editor.SetHeight(3)
	editor.SetWidth(maxListWidth - 8)

	return Model{
		ctx:     ctx,
		store:   store,
		emitter: emitter,
		toasts:  NewToastView(emitter),
		keys:    DefaultKeyMap(),
		input:   input,
		editor:  editor,
		focus:   focusList,
	}
}

// Init starts the toast timer if a notification (such as the load result)
// is already showing.
func (m Model) Init() tea.Cmd {
	if m.emitter.Visible() {
		return scheduleToastTick()
	}
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil
	case toastTickMsg:
		return m.handleToastTick()
	case tea.KeyPressMsg:
		next, cmd := m.handleKey(msg)
		return next.ensureToastTick(cmd)
	}

	return m.updateFocused(msg)
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	w := min(msg.Width, maxListWidth)
	m.input.SetWidth(max(w-6, 10))
	m.editor.SetWidth(max(w-8, 10))
	return m
}

func (m Model) handleToastTick() (tea.Model, tea.Cmd) {
	if m.emitter.Tick() {
		m.ticking = true
		return m, scheduleToastTick()
	}
	m.ticking = false
	return m, nil
}

// ensureToastTick starts the tick chain when a key press produced a
// notification and no chain is running.
func (m Model) ensureToastTick(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if m.emitter.Visible() && !m.ticking {
		m.ticking = true
		return m, tea.Batch(cmd, scheduleToastTick())
	}
	return m, cmd
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusInput:
		m.input, cmd = m.input.Update(msg)
	case focusEdit:
		m.editor, cmd = m.editor.Update(msg)
	}
	return m, cmd
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyPressMsg) (Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == keyCtrlC {
		return m.quit()
	}

	if m.modal != nil {
		return m.handleModalKey(keyStr)
	}

	switch m.focus {
	case focusInput:
		return m.handleInputKey(msg, keyStr)
	case focusEdit:
		return m.handleEditKey(msg, keyStr)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleInputKey(msg tea.KeyPressMsg, keyStr string) (Model, tea.Cmd) {
	switch keyStr {
	case keyEnter:
		added, err := m.store.AddTask(m.ctx, m.input.Value())
		if err == nil {
			m.input.SetValue(m.store.Input())
			m.selectTask(added.ID)
		}
		return m, nil
	case keyEsc:
		m.focus = focusList
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.store.SetInput(m.input.Value())
	return m, cmd
}

func (m Model) handleEditKey(msg tea.KeyPressMsg, keyStr string) (Model, tea.Cmd) {
	switch keyStr {
	case keyEnter:
		id, ok := m.store.Editing()
		if !ok {
			return m.leaveEdit(), nil
		}
		if _, err := m.store.SaveEdit(m.ctx, id, m.editor.Value()); err == nil {
			return m.leaveEdit(), nil
		}
		return m, nil
	case keyEsc:
		m.store.CancelEdit(m.ctx)
		return m.leaveEdit(), nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.store.SetEditDraft(m.editor.Value())
	return m, cmd
}

func (m Model) leaveEdit() Model {
	m.focus = focusList
	m.editor.Blur()
	m.editor.Reset()
	m.clampCursor()
	return m
}

func (m Model) handleListKey(msg tea.KeyPressMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Add):
		m.focus = focusInput
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.store.FilteredView())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			_, _ = m.store.ToggleTask(m.ctx, t.ID)
			m.clampCursor()
		}
	case key.Matches(msg, m.keys.Edit):
		return m.startEdit()
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok && m.store.RequestDelete(m.ctx, t.ID) == nil {
			if pending, ok := m.store.PendingDelete(); ok {
				modal := NewDeleteModal(pending)
				m.modal = &modal
			}
		}
	case key.Matches(msg, m.keys.FilterAll):
		m.setFilter(task.FilterAll)
	case key.Matches(msg, m.keys.FilterActive):
		m.setFilter(task.FilterActive)
	case key.Matches(msg, m.keys.FilterDone):
		m.setFilter(task.FilterCompleted)
	case key.Matches(msg, m.keys.NextFilter):
		m.setFilter(m.store.Filter().Next())
	case key.Matches(msg, m.keys.Dismiss):
		m.emitter.Dismiss()
	}
	return m, nil
}

func (m Model) startEdit() (Model, tea.Cmd) {
	t, ok := m.selected()
	if !ok {
		return m, nil
	}
	if err := m.store.StartEdit(m.ctx, t.ID); err != nil {
		return m, nil
	}

	m.focus = focusEdit
	m.editor.Reset()
	m.editor.SetValue(m.store.EditDraft())
	return m, m.editor.Focus()
}

func (m Model) handleModalKey(keyStr string) (Model, tea.Cmd) {
	switch keyStr {
	case "left", "right", "h", "l", "tab":
		m.modal.ToggleSelection()
	case keyEnter:
		if m.modal.ConfirmSelected() {
			return m.confirmDelete(), nil
		}
		return m.cancelDelete(), nil
	case "y":
		return m.confirmDelete(), nil
	case "n", keyEsc:
		return m.cancelDelete(), nil
	}
	return m, nil
}

func (m Model) confirmDelete() Model {
	_ = m.store.ConfirmDelete(m.ctx)
	m.modal = nil
	if _, editing := m.store.Editing(); !editing && m.focus == focusEdit {
		m = m.leaveEdit()
	}
	m.clampCursor()
	return m
}

func (m Model) cancelDelete() Model {
	m.store.CancelDelete(m.ctx)
	m.modal = nil
	return m
}

func (m *Model) setFilter(f task.Filter) {
	if m.store.SetFilter(m.ctx, f) == nil {
		m.cursor = 0
	}
}

func (m Model) selected() (task.Task, bool) {
	view := m.store.FilteredView()
	if m.cursor < 0 || m.cursor >= len(view) {
		return task.Task{}, false
	}
	return view[m.cursor], true
}

// selectTask moves the cursor to id if it is visible under the current filter.
func (m *Model) selectTask(id int64) {
	for i, t := range m.store.FilteredView() {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.store.FilteredView())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
