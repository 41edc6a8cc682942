package styles

import "github.com/colonyops/taskr/internal/core/notify"

var (
	IconCheck   = "✓"
	IconCross   = "✕"
	IconWarning = "⚠"
	IconInfo    = "ℹ"
	IconCursor  = "›"
	IconDot     = "•"
)

// Checkbox glyphs for the task list.
var (
	CheckboxOpen = "[ ]"
	CheckboxDone = "[" + IconCheck + "]"
)

// NotificationIcon returns the glyph shown beside a notification of kind k.
func NotificationIcon(k notify.Kind) string {
	switch k {
	case notify.KindSuccess:
		return IconCheck
	case notify.KindError:
		return IconCross
	case notify.KindWarning:
		return IconWarning
	default:
		return IconInfo
	}
}
