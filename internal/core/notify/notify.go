// Package notify defines user-facing notifications and the components that
// deliver and expire them.
package notify

import "time"

// Kind represents the severity of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// IsValid reports whether k is one of the known kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindSuccess, KindError, KindWarning, KindInfo:
		return true
	}
	return false
}

// Title returns the capitalized kind name used as a notification heading.
func (k Kind) Title() string {
	switch k {
	case KindSuccess:
		return "Success"
	case KindError:
		return "Error"
	case KindWarning:
		return "Warning"
	default:
		return "Info"
	}
}

// Notification is a single transient message surfaced to the user.
type Notification struct {
	ID        uint64
	Kind      Kind
	Message   string
	CreatedAt time.Time
}

// Publisher accepts notifications for delivery.
type Publisher interface {
	Publish(n Notification)
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(Notification)

// Publish calls f(n).
func (f PublisherFunc) Publish(n Notification) { f(n) }
