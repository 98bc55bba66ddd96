// Package scheduler polls the task list and fires staged due-time
// reminders: 24 hours, 1 hour, 30 minutes, 5 minutes before due, and at
// the due instant. Each stage window is one minute wide and each
// (task, stage) pair notifies at most once.
package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sandeepkv93/softdo/internal/model"
)

const (
	// DefaultPollInterval is coarse but well inside the one-minute
	// stage windows, so a live process cannot skip a stage.
	DefaultPollInterval = 10 * time.Second

	notificationTitle = "SoftDo Reminder"
)

// TaskSource yields the due-eligible tasks at call time. The scheduler
// re-queries on every tick rather than caching, so mutations between
// ticks are reflected immediately.
type TaskSource interface {
	DueEligible() []model.Task
}

// Notifier is the external notification sink. Failures are non-fatal.
type Notifier interface {
	Notify(title, body string) error
}

type Scheduler struct {
	source   TaskSource
	notifier Notifier
	tracker  *Tracker
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
}

type Option func(*Scheduler)

// WithPollInterval overrides the tick interval. Values are clamped to
// (0s, 60s]: an interval wider than a stage window would silently skip
// stages, which is exactly the failure mode the windows are sized
// against.
func WithPollInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d <= 0 {
			return
		}
		if d > time.Minute {
			d = time.Minute
		}
		s.interval = d
	}
}

// WithClock overrides the tick clock.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

func New(source TaskSource, notifier Notifier, opts ...Option) *Scheduler {
	s := &Scheduler{
		source:   source,
		notifier: notifier,
		tracker:  NewTracker(),
		interval: DefaultPollInterval,
		now:      func() time.Time { return time.Now().UTC() },
		wakeup:   make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	go s.loop()
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.stopCh)
	s.mu.Unlock()
	<-s.doneCh
}

// Wake triggers an immediate re-evaluation. Non-blocking if one is
// already pending.
func (s *Scheduler) Wake() {
	select {
	case s.wakeup <- struct{}{}:
	default:
	}
}

// Invalidate drops the recorded stage for a task. Called by the store
// when a task is completed, deleted, or has its due time changed or
// cleared.
func (s *Scheduler) Invalidate(taskID string) {
	s.tracker.Clear(taskID)
}

func (s *Scheduler) InvalidateAll() {
	s.tracker.ClearAll()
}

func (s *Scheduler) loop() {
	defer close(s.doneCh)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Tick(s.now())
		case <-s.wakeup:
			s.Tick(s.now())
		case <-s.stopCh:
			return
		}
	}
}

// Tick evaluates every due-eligible task once against now. Ticks run
// synchronously on the loop goroutine and never overlap. A failure on
// one task never stops evaluation of the rest.
func (s *Scheduler) Tick(now time.Time) {
	for _, task := range s.source.DueEligible() {
		s.evaluate(task, now)
	}
}

func (s *Scheduler) evaluate(task model.Task, now time.Time) {
	if !task.DueEligible() {
		return
	}
	stage, ok := model.StageAt(task.DueTime.Sub(now))
	if !ok {
		return
	}
	if last, seen := s.tracker.Get(task.ID); seen && last == stage {
		return
	}
	body := fmt.Sprintf("Task %q %s", task.Text, stage.Message())
	if err := s.notifier.Notify(notificationTitle, body); err != nil {
		// The attempt counts as delivered: a flaky sink must not
		// turn into repeat notifications for the same stage.
		log.Printf("scheduler: notify %s stage %s: %v", task.ID, stage, err)
	}
	s.tracker.Set(task.ID, stage)
}
