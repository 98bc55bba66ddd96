// Package store owns the ordered task list. Every mutation updates the
// in-memory sequence first, reports eligibility changes to the reminder
// hook, then persists the whole list. The in-memory list is the source
// of truth for the running process: a failed save is surfaced to the
// caller but never rolls memory back, and the next successful save
// carries all accumulated changes.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/softdo/internal/model"
	"github.com/sandeepkv93/softdo/internal/storage"
)

var (
	ErrTaskNotFound = errors.New("store: task not found")
	ErrInvalidIndex = errors.New("store: index out of range")
)

// ReminderHook receives changes that affect reminder eligibility, so
// stale stage history never suppresses reminders for a new deadline.
type ReminderHook interface {
	// Invalidate drops any recorded reminder stage for the task.
	Invalidate(taskID string)
	// InvalidateAll drops all recorded stages.
	InvalidateAll()
	// Wake nudges the scheduler to re-evaluate without waiting a tick.
	Wake()
}

type noopHook struct{}

func (noopHook) Invalidate(string) {}
func (noopHook) InvalidateAll()    {}
func (noopHook) Wake()             {}

type Store struct {
	mu    sync.Mutex
	tasks []model.Task
	repo  storage.Repository
	hook  ReminderHook
	now   func() time.Time
}

type Option func(*Store)

// WithClock overrides the creation-timestamp clock.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(repo storage.Repository, opts ...Option) *Store {
	s := &Store{
		repo: repo,
		hook: noopHook{},
		now:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetReminderHook wires the scheduler in after construction; the store
// and scheduler reference each other, so the hook cannot be a
// constructor argument on both sides.
func (s *Store) SetReminderHook(hook ReminderHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if hook == nil {
		hook = noopHook{}
	}
	s.hook = hook
}

// Load replaces the in-memory list with the persisted one.
func (s *Store) Load(ctx context.Context) error {
	records, err := s.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	tasks := make([]model.Task, 0, len(records))
	for _, rec := range records {
		tasks = append(tasks, model.Task{
			ID:        rec.ID,
			Text:      rec.Text,
			Completed: rec.Completed,
			DueTime:   rec.DueTime,
			CreatedAt: rec.CreatedAt,
			Details:   rec.Details,
		})
	}
	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	return nil
}

// Create appends a new incomplete task and always succeeds in memory.
func (s *Store) Create(text string, due *time.Time) (model.Task, error) {
	task := model.Task{
		ID:        uuid.NewString(),
		Text:      text,
		Completed: false,
		DueTime:   due,
		CreatedAt: s.now(),
	}
	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	records := s.recordsLocked()
	hook := s.hook
	s.mu.Unlock()

	hook.Wake()
	return task, s.persist(records)
}

// Toggle flips the completed flag. A task toggled to completed stops
// being reminder-eligible, so its stage history is dropped.
func (s *Store) Toggle(id string) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	s.tasks[idx].Completed = !s.tasks[idx].Completed
	completed := s.tasks[idx].Completed
	records := s.recordsLocked()
	hook := s.hook
	s.mu.Unlock()

	if completed {
		hook.Invalidate(id)
	}
	hook.Wake()
	return s.persist(records)
}

func (s *Store) Rename(id, text string) error {
	return s.updateField(id, func(t *model.Task) { t.Text = text })
}

func (s *Store) SetDetails(id, details string) error {
	return s.updateField(id, func(t *model.Task) { t.Details = details })
}

// updateField applies a pure field edit with no scheduling side effects.
func (s *Store) updateField(id string, apply func(*model.Task)) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	apply(&s.tasks[idx])
	records := s.recordsLocked()
	s.mu.Unlock()
	return s.persist(records)
}

// SetDueTime replaces or clears the due timestamp. Any change resets
// stage tracking: history recorded against the old deadline must not
// suppress reminders for the new one.
func (s *Store) SetDueTime(id string, due *time.Time) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	s.tasks[idx].DueTime = due
	records := s.recordsLocked()
	hook := s.hook
	s.mu.Unlock()

	hook.Invalidate(id)
	hook.Wake()
	return s.persist(records)
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	records := s.recordsLocked()
	hook := s.hook
	s.mu.Unlock()

	hook.Invalidate(id)
	hook.Wake()
	return s.persist(records)
}

// Reorder moves one element to a new position, stable with respect to
// all others. Out-of-range indices reject without mutating.
func (s *Store) Reorder(from, to int) error {
	s.mu.Lock()
	if from < 0 || from >= len(s.tasks) || to < 0 || to >= len(s.tasks) {
		s.mu.Unlock()
		return fmt.Errorf("%w: from=%d to=%d len=%d", ErrInvalidIndex, from, to, len(s.tasks))
	}
	moved := s.tasks[from]
	s.tasks = append(s.tasks[:from], s.tasks[from+1:]...)
	s.tasks = append(s.tasks[:to], append([]model.Task{moved}, s.tasks[to:]...)...)
	records := s.recordsLocked()
	s.mu.Unlock()
	return s.persist(records)
}

func (s *Store) ClearAll() error {
	s.mu.Lock()
	s.tasks = nil
	records := s.recordsLocked()
	hook := s.hook
	s.mu.Unlock()

	hook.InvalidateAll()
	hook.Wake()
	return s.persist(records)
}

// Tasks returns a copy of the ordered list.
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return s.tasks[idx], nil
}

// DueEligible returns the tasks the scheduler should evaluate: the
// incomplete ones with a due time set, at call time. The scheduler
// re-queries on every tick, so edits and deletions are reflected on the
// very next evaluation.
func (s *Store) DueEligible() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, 0)
	for _, t := range s.tasks {
		if t.DueEligible() {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func (s *Store) indexLocked(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) recordsLocked() []storage.TaskRecord {
	out := make([]storage.TaskRecord, 0, len(s.tasks))
	for i, t := range s.tasks {
		out = append(out, storage.TaskRecord{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			DueTime:   t.DueTime,
			CreatedAt: t.CreatedAt,
			Details:   t.Details,
			Position:  i,
		})
	}
	return out
}

func (s *Store) persist(records []storage.TaskRecord) error {
	if s.repo == nil {
		return nil
	}
	if err := s.repo.ReplaceAll(context.Background(), records); err != nil {
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}
