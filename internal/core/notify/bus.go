package notify

import (
	"fmt"
	"sync"
	"time"
)

// Subscriber is a callback invoked when a notification is published.
type Subscriber func(Notification)

// Bus is a synchronous in-process notification bus. It stamps each
// notification with an ID and creation time and dispatches it to subscribers
// inline, in registration order. The Bus is safe for use from the Bubble Tea
// Update loop (single-threaded).
type Bus struct {
	mu          sync.Mutex
	subscribers []Subscriber
	lastID      uint64
	now         func() time.Time
}

// NewBus creates an empty notification bus.
func NewBus() *Bus {
	return &Bus{now: time.Now}
}

// Subscribe registers a callback that will be invoked on every Publish.
func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Publish dispatches a notification to all subscribers.
func (b *Bus) Publish(n Notification) {
	b.mu.Lock()
	b.lastID++
	n.ID = b.lastID
	if n.CreatedAt.IsZero() {
		n.CreatedAt = b.now()
	}
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
}

// Successf publishes a success notification.
func (b *Bus) Successf(format string, args ...any) {
	b.Publish(Notification{Kind: KindSuccess, Message: fmt.Sprintf(format, args...)})
}

// Errorf publishes an error notification.
func (b *Bus) Errorf(format string, args ...any) {
	b.Publish(Notification{Kind: KindError, Message: fmt.Sprintf(format, args...)})
}

// Warnf publishes a warning notification.
func (b *Bus) Warnf(format string, args ...any) {
	b.Publish(Notification{Kind: KindWarning, Message: fmt.Sprintf(format, args...)})
}

// Infof publishes an info notification.
func (b *Bus) Infof(format string, args ...any) {
	b.Publish(Notification{Kind: KindInfo, Message: fmt.Sprintf(format, args...)})
}
