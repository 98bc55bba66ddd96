package scheduler

import (
	"sync"

	"github.com/sandeepkv93/softdo/internal/model"
)

// Tracker records the most urgent stage already notified per task, so a
// tick landing in an already-notified window fires nothing. Entries are
// dropped when a task is completed, deleted, or has its due time edited;
// after that the next qualifying tick may fire again.
type Tracker struct {
	mu     sync.Mutex
	stages map[string]model.Stage
}

func NewTracker() *Tracker {
	return &Tracker{stages: make(map[string]model.Stage)}
}

func (t *Tracker) Get(taskID string) (model.Stage, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	stage, ok := t.stages[taskID]
	return stage, ok
}

func (t *Tracker) Set(taskID string, stage model.Stage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stages[taskID] = stage
}

func (t *Tracker) Clear(taskID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.stages, taskID)
}

func (t *Tracker) ClearAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stages = make(map[string]model.Stage)
}

func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.stages)
}
