package scheduler

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sandeepkv93/softdo/internal/model"
)

// The store mutates and invalidates from the TUI goroutine while the
// scheduler ticks on its own. This hammers both paths at once.
func TestConcurrentWakeAndInvalidate(t *testing.T) {
	now := baseTime()
	source := &sliceSource{}
	tasks := make([]model.Task, 0, 50)
	for i := 0; i < 50; i++ {
		// All far outside every window: the stress is on the
		// locking, not on notification counting.
		tasks = append(tasks, taskDueAt(fmt.Sprintf("task-%d", i), "Stress", now.Add(48*time.Hour)))
	}
	source.SetTasks(tasks)
	notifier := &recordingNotifier{}
	sched := New(source, notifier, WithPollInterval(time.Millisecond), WithClock(func() time.Time { return now }))
	sched.Start()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				sched.Wake()
				sched.Invalidate(fmt.Sprintf("task-%d", (worker*500+i)%50))
				if i%100 == 0 {
					sched.InvalidateAll()
				}
			}
		}(w)
	}
	wg.Wait()
	sched.Stop()

	if len(notifier.Calls()) != 0 {
		t.Fatalf("far-future tasks must not notify, got %d calls", len(notifier.Calls()))
	}
}

func TestManyTasksSingleTickFiresEachOnce(t *testing.T) {
	now := baseTime()
	source := &sliceSource{}
	tasks := make([]model.Task, 0, 200)
	for i := 0; i < 200; i++ {
		tasks = append(tasks, taskDueAt(fmt.Sprintf("task-%d", i), "Bulk", now.Add(3590*time.Second)))
	}
	source.SetTasks(tasks)
	notifier := &recordingNotifier{}
	sched := New(source, notifier)

	sched.Tick(now)
	sched.Tick(now.Add(10 * time.Second))

	if len(notifier.Calls()) != 200 {
		t.Fatalf("expected one notification per task, got %d", len(notifier.Calls()))
	}
}
