package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/taskr/internal/core/notify"
	"github.com/colonyops/taskr/pkg/tuitest"
)

func TestToastView_Empty(t *testing.T) {
	v := NewToastView(notify.NewEmitter())

	assert.Empty(t, v.View())
	assert.Equal(t, "background", v.Overlay("background", 80))
}

func TestToastView_RendersKind(t *testing.T) {
	tests := []struct {
		kind  notify.Kind
		icon  string
		title string
	}{
		{notify.KindSuccess, "✓", "Success"},
		{notify.KindError, "✕", "Error"},
		{notify.KindWarning, "⚠", "Warning"},
		{notify.KindInfo, "ℹ", "Info"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			e := notify.NewEmitter()
			e.Show(notify.Notification{Kind: tt.kind, Message: "hello there"})

			out := tuitest.StripANSI(NewToastView(e).View())

			assert.Contains(t, out, tt.icon+" "+tt.title)
			assert.Contains(t, out, "hello there")
		})
	}
}

func TestToastView_OverlayTopRight(t *testing.T) {
	now := time.Now()
	e := notify.NewEmitter(notify.WithClock(func() time.Time { return now }))
	e.Show(notify.Notification{Kind: notify.KindInfo, Message: "Edit cancelled"})

	bg := strings.Repeat(strings.Repeat(".", 100)+"\n", 10)
	out := tuitest.StripANSI(NewToastView(e).Overlay(bg, 100))
	lines := strings.Split(out, "\n")

	assert.Equal(t, strings.Repeat(".", 100), lines[0], "first row untouched")
	assert.True(t, strings.HasPrefix(lines[1], "....."), "toast sits on the right")
	assert.Contains(t, out, "Edit cancelled")
}
