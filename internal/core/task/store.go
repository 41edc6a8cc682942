package task

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/colonyops/taskr/internal/core/kv"
	"github.com/colonyops/taskr/internal/core/logging"
	"github.com/colonyops/taskr/internal/core/notify"
	"github.com/rs/zerolog"
)

// Slot is the durable location the task list is mirrored to. Read returns
// kv.ErrNotFound when nothing has been stored yet.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to generate task ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger replaces the store's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// Store owns the task list and the transient state of the view driving it.
//
// Every mutation validates, applies the change, publishes exactly one
// notification and then mirrors the full list to the slot. A failed write is
// published and recorded but never undoes the change. Store is not safe for
// concurrent use; it belongs to the single loop handling user input.
type Store struct {
	slot Slot
	pub  notify.Publisher
	log  zerolog.Logger
	now  func() time.Time

	tasks  []Task
	filter Filter
	input  string

	editing   bool
	editID    int64
	editDraft string

	pending *PendingDelete

	loaded     bool
	persistErr error
}

// New creates a Store that persists to slot and reports through pub.
func New(slot Slot, pub notify.Publisher, opts ...Option) *Store {
	if pub == nil {
		pub = notify.PublisherFunc(func(notify.Notification) {})
	}

	s := &Store{
		slot:   slot,
		pub:    pub,
		log:    logging.Component("task-store"),
		now:    time.Now,
		filter: FilterAll,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the saved list once at startup. Nothing stored leaves the list
// empty without a notification; a readable list replaces it; anything else
// is discarded with an error notification and returned as a
// *PersistenceError. The resulting list is always written back.
func (s *Store) Load(ctx context.Context) error {
	ctx = logging.WithOperation(ctx, "load")
	if s.loaded {
		return ErrAlreadyLoaded
	}
	s.loaded = true

	data, err := s.slot.Read(ctx)
	if errors.Is(err, kv.ErrNotFound) || (err == nil && len(data) == 0) {
		s.log.Debug().Ctx(ctx).Msg("no saved tasks")
		s.tasks = nil
		s.persist(ctx)
		return nil
	}

	var tasks []Task
	if err == nil {
		tasks, err = DecodeTasks(data)
	}
	if err != nil {
		s.log.Warn().Ctx(ctx).Err(err).Msg("discarding saved tasks")
		s.tasks = nil
		s.publish(OutcomeLoadFailed)
		s.persist(ctx)
		return &PersistenceError{Op: "load", Err: err}
	}

	s.tasks = tasks
	s.log.Debug().Ctx(ctx).Int("count", len(tasks)).Msg("tasks loaded")
	s.publish(OutcomeLoaded)
	s.persist(ctx)
	return nil
}

// AddTask appends a new active task with the trimmed text and clears the
// input draft.
func (s *Store) AddTask(ctx context.Context, raw string) (Task, error) {
	ctx = logging.WithOperation(ctx, "add")

	text, err := s.validate(raw, 0, false)
	if err != nil {
		return Task{}, s.reject(ctx, err)
	}

	t := Task{ID: s.nextID(), Text: text}
	s.tasks = append(slices.Clip(s.tasks), t)
	s.input = ""

	s.publish(OutcomeAdded)
	s.persist(logging.WithTaskID(ctx, t.ID))
	return t, nil
}

// ToggleTask flips the completed flag of the task with id.
func (s *Store) ToggleTask(ctx context.Context, id int64) (Task, error) {
	ctx = logging.WithTaskID(logging.WithOperation(ctx, "toggle"), id)

	idx := s.index(id)
	if idx < 0 {
		s.publish(OutcomeNotFound)
		return Task{}, ErrNotFound
	}

	s.tasks = slices.Clone(s.tasks)
	s.tasks[idx].Completed = !s.tasks[idx].Completed
	t := s.tasks[idx]

	if t.Completed {
		s.publish(OutcomeCompleted)
	} else {
		s.publish(OutcomeActivated)
	}
	s.persist(ctx)
	return t, nil
}

// StartEdit makes id the edit target and seeds the draft with its text.
func (s *Store) StartEdit(ctx context.Context, id int64) error {
	idx := s.index(id)
	if idx < 0 {
		s.publish(OutcomeInvalidTask)
		return ErrInvalidTask
	}

	s.editing = true
	s.editID = id
	s.editDraft = s.tasks[idx].Text
	return nil
}

// SaveEdit replaces the text of task id with the trimmed raw text. The
// duplicate check ignores the task being edited.
func (s *Store) SaveEdit(ctx context.Context, id int64, raw string) (Task, error) {
	ctx = logging.WithTaskID(logging.WithOperation(ctx, "edit"), id)

	text, err := s.validate(raw, id, true)
	if err != nil {
		return Task{}, s.reject(ctx, err)
	}

	idx := s.index(id)
	if idx < 0 {
		s.publish(OutcomeNotFound)
		return Task{}, ErrNotFound
	}

	s.tasks = slices.Clone(s.tasks)
	s.tasks[idx].Text = text
	t := s.tasks[idx]
	s.clearEdit()

	s.publish(OutcomeUpdated)
	s.persist(ctx)
	return t, nil
}

// CancelEdit leaves edit mode.
func (s *Store) CancelEdit(ctx context.Context) {
	s.clearEdit()
	s.publish(OutcomeEditCancelled)
}

// RequestDelete records a snapshot of task id awaiting confirmation.
func (s *Store) RequestDelete(ctx context.Context, id int64) error {
	idx := s.index(id)
	if idx < 0 {
		s.publish(OutcomeNotFound)
		return ErrNotFound
	}

	s.pending = &PendingDelete{ID: id, Text: s.tasks[idx].Text}
	return nil
}

// ConfirmDelete removes the task awaiting confirmation. Without a pending
// request it does nothing.
func (s *Store) ConfirmDelete(ctx context.Context) error {
	if s.pending == nil {
		return nil
	}

	id := s.pending.ID
	ctx = logging.WithTaskID(logging.WithOperation(ctx, "delete"), id)

	s.tasks = slices.DeleteFunc(slices.Clone(s.tasks), func(t Task) bool { return t.ID == id })
	if s.editing && s.editID == id {
		s.clearEdit()
	}
	s.pending = nil

	s.publish(OutcomeDeleted)
	s.persist(ctx)
	return nil
}

// CancelDelete drops the pending delete request silently.
func (s *Store) CancelDelete(ctx context.Context) {
	s.pending = nil
}

// SetFilter changes which tasks FilteredView returns.
func (s *Store) SetFilter(ctx context.Context, f Filter) error {
	if !f.IsValid() {
		return ErrInvalidFilter
	}

	s.filter = f
	s.publish(OutcomeFilterChanged, f)
	return nil
}

// FilteredView returns the tasks matching the current filter in list order.
func (s *Store) FilteredView() []Task {
	if !s.filter.IsValid() || s.filter == FilterAll {
		return s.Tasks()
	}

	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if s.filter.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Tasks returns a copy of the full list.
func (s *Store) Tasks() []Task {
	return slices.Clone(s.tasks)
}

// Get returns the task with id.
func (s *Store) Get(id int64) (Task, bool) {
	idx := s.index(id)
	if idx < 0 {
		return Task{}, false
	}
	return s.tasks[idx], true
}

// Filter returns the current filter.
func (s *Store) Filter() Filter { return s.filter }

// Input returns the add-task draft.
func (s *Store) Input() string { return s.input }

// SetInput replaces the add-task draft.
func (s *Store) SetInput(text string) { s.input = text }

// Editing returns the id of the task being edited, if any.
func (s *Store) Editing() (int64, bool) { return s.editID, s.editing }

// EditDraft returns the edit draft text.
func (s *Store) EditDraft() string { return s.editDraft }

// SetEditDraft replaces the edit draft text.
func (s *Store) SetEditDraft(text string) { s.editDraft = text }

// PendingDelete returns the snapshot awaiting delete confirmation, if any.
func (s *Store) PendingDelete() (PendingDelete, bool) {
	if s.pending == nil {
		return PendingDelete{}, false
	}
	return *s.pending, true
}

// Counts tallies the full list.
func (s *Store) Counts() Counts { return CountTasks(s.tasks) }

// PersistErr returns the most recent write failure, or nil if the last
// write succeeded.
func (s *Store) PersistErr() error { return s.persistErr }

func (s *Store) validate(raw string, exclude int64, hasExclude bool) (string, error) {
	text := strings.TrimSpace(raw)

	switch {
	case text == "":
		return "", &ValidationError{Reason: ReasonEmpty}
	case utf8.RuneCountInString(text) > MaxTextLength:
		return "", &ValidationError{Reason: ReasonTooLong}
	}

	for _, t := range s.tasks {
		if hasExclude && t.ID == exclude {
			continue
		}
		if strings.EqualFold(t.Text, text) {
			return "", &ValidationError{Reason: ReasonDuplicate}
		}
	}

	return text, nil
}

func (s *Store) reject(ctx context.Context, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		s.log.Debug().Ctx(ctx).Str("reason", string(verr.Reason)).Msg("task text rejected")
		s.publish(reasonOutcome(verr.Reason))
	}
	return err
}

func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	for _, t := range s.tasks {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}

func (s *Store) index(id int64) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
}

func (s *Store) clearEdit() {
	s.editing = false
	s.editID = 0
	s.editDraft = ""
}

func (s *Store) publish(o Outcome, args ...any) {
	kind, msg := Message(o, args...)
	s.pub.Publish(notify.Notification{Kind: kind, Message: msg})
}

func (s *Store) persist(ctx context.Context) {
	data, err := EncodeTasks(s.tasks)
	if err == nil {
		err = s.slot.Write(ctx, data)
	}
	if err != nil {
		s.persistErr = &PersistenceError{Op: "save", Err: err}
		s.log.Error().Ctx(ctx).Err(err).Msg("failed to save tasks")
		s.publish(OutcomeSaveFailed)
		return
	}
	s.persistErr = nil
}
