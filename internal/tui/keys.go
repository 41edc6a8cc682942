package tui

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/colonyops/taskr/internal/core/styles"
)

// KeyMap holds the list view key bindings.
type KeyMap struct {
	Add          key.Binding
	Up           key.Binding
	Down         key.Binding
	Toggle       key.Binding
	Edit         key.Binding
	Delete       key.Binding
	FilterAll    key.Binding
	FilterActive key.Binding
	FilterDone   key.Binding
	NextFilter   key.Binding
	Dismiss      key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the built-in bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add:          key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a", "add")),
		Up:           key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Toggle:       key.NewBinding(key.WithKeys("space", "x"), key.WithHelp("space", "toggle")),
		Edit:         key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		FilterAll:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		FilterActive: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		FilterDone:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		NextFilter:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "filter")),
		Dismiss:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.NextFilter, k.Quit}
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return styles.HelpStyle.Render(strings.Join(parts, "  "+styles.IconDot+"  "))
}
