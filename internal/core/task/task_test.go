package task

import (
	"testing"

	"github.com/colonyops/taskr/internal/core/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	for _, in := range []string{"all", " Active ", "COMPLETED"} {
		f, err := ParseFilter(in)
		require.NoError(t, err, in)
		assert.True(t, f.IsValid())
	}

	_, err := ParseFilter("done")
	require.ErrorIs(t, err, ErrInvalidFilter)
}

func TestFilter_NextAndLabel(t *testing.T) {
	assert.Equal(t, FilterActive, FilterAll.Next())
	assert.Equal(t, FilterCompleted, FilterActive.Next())
	assert.Equal(t, FilterAll, FilterCompleted.Next())
	assert.Equal(t, FilterAll, Filter("x").Next())
	assert.Equal(t, "Completed", FilterCompleted.Label())
}

func TestCountTasks(t *testing.T) {
	got := CountTasks([]Task{{ID: 1}, {ID: 2, Completed: true}, {ID: 3}})
	assert.Equal(t, Counts{Total: 3, Completed: 1, Active: 2}, got)
	assert.Equal(t, Counts{}, CountTasks(nil))
}

func TestMessage(t *testing.T) {
	kind, msg := Message(OutcomeFilterChanged, FilterAll)
	assert.Equal(t, notify.KindInfo, kind)
	assert.Equal(t, "Showing all tasks", msg)

	kind, msg = Message(OutcomeTooLong)
	assert.Equal(t, notify.KindWarning, kind)
	assert.Equal(t, "Task is too long! Max 200 characters.", msg)

	for o := OutcomeLoaded; o <= OutcomeFilterChanged; o++ {
		_, msg := Message(o)
		assert.NotEmpty(t, msg, "outcome %d has no message", o)
	}
}
