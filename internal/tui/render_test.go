package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/taskr/pkg/tuitest"
)

func TestView_EmptyState(t *testing.T) {
	h := newHarness(t)

	out := h.view()

	assert.Contains(t, out, "taskr")
	assert.Contains(t, out, "No tasks found")
	assert.Contains(t, out, "Add a new task to get started")
	assert.Contains(t, out, "0/200 characters")
	assert.Contains(t, out, "0 total tasks • 0 completed • 0 active")
}

func TestView_TasksAndFooter(t *testing.T) {
	h := newHarness(t, "Buy milk", "Walk dog")
	h.send(tuitest.KeySpace())

	out := h.view()

	assert.Contains(t, out, "[✓] Buy milk")
	assert.Contains(t, out, "[ ] Walk dog")
	assert.Contains(t, out, "2 total tasks • 1 completed • 1 active")
	assert.Contains(t, out, "Success")
	assert.Contains(t, out, "Task marked as completed!")
}

func TestView_Tabs(t *testing.T) {
	h := newHarness(t)

	out := h.view()

	assert.Contains(t, out, "1 All")
	assert.Contains(t, out, "2 Active")
	assert.Contains(t, out, "3 Completed")
}

func TestView_InputCounter(t *testing.T) {
	h := newHarness(t)

	h.send(tuitest.KeyPress('a'))
	h.send(tuitest.Type("hello")...)

	assert.Contains(t, h.view(), "5/200 characters")
}

func TestView_Quitting(t *testing.T) {
	h := newHarness(t)
	h.send(tuitest.KeyPress('q'))

	assert.Empty(t, h.model.render())
}

func TestView_EditRow(t *testing.T) {
	h := newHarness(t, "Buy milk")
	h.send(tuitest.KeyPress('e'))

	out := h.view()
	assert.Contains(t, out, "enter save  esc cancel")
	assert.Contains(t, out, "8/200 characters")
}
