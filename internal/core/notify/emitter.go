package notify

import "time"

const (
	// DefaultFadeAfter is how long a notification is displayed before it
	// starts fading.
	DefaultFadeAfter = 2700 * time.Millisecond
	// DefaultClearAfter is how long a notification lives in total.
	DefaultClearAfter = 3000 * time.Millisecond
)

// Phase is the display state of the active notification.
type Phase int

const (
	PhaseHidden Phase = iota
	PhaseShown
	PhaseFading
)

func (p Phase) String() string {
	switch p {
	case PhaseShown:
		return "shown"
	case PhaseFading:
		return "fading"
	default:
		return "hidden"
	}
}

// Active is the notification currently held by an Emitter.
type Active struct {
	Notification Notification
	Phase        Phase
	ShownAt      time.Time
}

// EmitterOption configures an Emitter.
type EmitterOption func(*Emitter)

// WithTimings overrides the fade and clear delays.
func WithTimings(fadeAfter, clearAfter time.Duration) EmitterOption {
	return func(e *Emitter) {
		e.fadeAfter = fadeAfter
		e.clearAfter = clearAfter
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) EmitterOption {
	return func(e *Emitter) {
		e.now = now
	}
}

// Emitter holds at most one notification and expires it over time.
//
// Showing a notification replaces the current one immediately. The phase is
// derived from the elapsed time since the active instance was shown, so a
// replaced notification can never fade or clear its successor.
type Emitter struct {
	current    *Active
	fadeAfter  time.Duration
	clearAfter time.Duration
	now        func() time.Time
}

// NewEmitter creates an emitter with the default timings.
func NewEmitter(opts ...EmitterOption) *Emitter {
	e := &Emitter{
		fadeAfter:  DefaultFadeAfter,
		clearAfter: DefaultClearAfter,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Show makes n the active notification, discarding any previous one.
func (e *Emitter) Show(n Notification) {
	e.current = &Active{
		Notification: n,
		Phase:        PhaseShown,
		ShownAt:      e.now(),
	}
}

// Tick advances the active notification's phase and clears it once its
// lifetime has elapsed. It returns true while a notification remains active.
func (e *Emitter) Tick() bool {
	if e.current == nil {
		return false
	}

	elapsed := e.now().Sub(e.current.ShownAt)
	switch {
	case elapsed >= e.clearAfter:
		e.current = nil
		return false
	case elapsed >= e.fadeAfter:
		e.current.Phase = PhaseFading
	}
	return true
}

// Current returns the active notification, if any.
func (e *Emitter) Current() (Active, bool) {
	if e.current == nil {
		return Active{}, false
	}
	return *e.current, true
}

// Dismiss clears the active notification immediately.
func (e *Emitter) Dismiss() {
	e.current = nil
}

// Visible reports whether a notification is currently held.
func (e *Emitter) Visible() bool {
	return e.current != nil
}
