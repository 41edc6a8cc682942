// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/colonyops/taskr/internal/core/notify"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for the active palette.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style

	// Header and input.
	TitleStyle        lipgloss.Style
	SubtitleStyle     lipgloss.Style
	InputStyle        lipgloss.Style
	InputFocusedStyle lipgloss.Style
	CounterStyle      lipgloss.Style
	CounterLimitStyle lipgloss.Style

	// Filter tabs.
	ViewSelectedStyle lipgloss.Style
	ViewNormalStyle   lipgloss.Style

	// Task list.
	TaskStyle          lipgloss.Style
	TaskCompletedStyle lipgloss.Style
	TaskSelectedStyle  lipgloss.Style
	CheckboxStyle      lipgloss.Style
	CheckboxDoneStyle  lipgloss.Style
	EditAreaStyle      lipgloss.Style
	EmptyTitleStyle    lipgloss.Style
	EmptyHintStyle     lipgloss.Style
	FooterStyle        lipgloss.Style
	HelpStyle          lipgloss.Style

	// Modal.
	ModalStyle               lipgloss.Style
	ModalTitleStyle          lipgloss.Style
	ModalHelpStyle           lipgloss.Style
	ModalButtonStyle         lipgloss.Style
	ModalButtonSelectedStyle lipgloss.Style
	ModalQuoteStyle          lipgloss.Style

	// Toasts.
	ToastStyle      lipgloss.Style
	ToastTitleStyle lipgloss.Style
	ToastFadedStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	TitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	SubtitleStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	InputStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 1)
	InputFocusedStyle = InputStyle.
		BorderForeground(ColorPrimary)
	CounterStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	CounterLimitStyle = lipgloss.NewStyle().
		Foreground(ColorWarning)

	ViewSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Bold(true).
		Padding(0, 1)
	ViewNormalStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)

	TaskStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	TaskCompletedStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Strikethrough(true)
	TaskSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	CheckboxStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	CheckboxDoneStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)
	EditAreaStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)
	EmptyTitleStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	EmptyHintStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(ColorSurface)
	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorError).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)
	ModalButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorSurface).
		Foreground(ColorMuted)
	ModalButtonSelectedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorError).
		Foreground(ColorBackground).
		Bold(true)
	ModalQuoteStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)

	ToastStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastTitleStyle = lipgloss.NewStyle().
		Bold(true)
	ToastFadedStyle = lipgloss.NewStyle().
		Faint(true)
}

// NotificationColor returns the accent color for a notification kind.
func NotificationColor(k notify.Kind) color.Color {
	switch k {
	case notify.KindSuccess:
		return ColorSuccess
	case notify.KindError:
		return ColorError
	case notify.KindWarning:
		return ColorWarning
	default:
		return ColorSecondary
	}
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
