package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/softdo/internal/storage"
)

type fakeRepo struct {
	saved     [][]storage.TaskRecord
	failSaves bool
	loaded    []storage.TaskRecord
}

func (f *fakeRepo) ReplaceAll(_ context.Context, tasks []storage.TaskRecord) error {
	if f.failSaves {
		return errors.New("disk unavailable")
	}
	snapshot := make([]storage.TaskRecord, len(tasks))
	copy(snapshot, tasks)
	f.saved = append(f.saved, snapshot)
	return nil
}

func (f *fakeRepo) LoadAll(context.Context) ([]storage.TaskRecord, error) {
	return f.loaded, nil
}

func (f *fakeRepo) Close() error { return nil }

type fakeHook struct {
	invalidated    []string
	invalidatedAll int
	wakes          int
}

func (f *fakeHook) Invalidate(id string) { f.invalidated = append(f.invalidated, id) }
func (f *fakeHook) InvalidateAll()       { f.invalidatedAll++ }
func (f *fakeHook) Wake()                { f.wakes++ }

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC) }
}

func newTestStore(t *testing.T) (*Store, *fakeRepo, *fakeHook) {
	t.Helper()
	repo := &fakeRepo{}
	hook := &fakeHook{}
	s := New(repo, WithClock(fixedClock()))
	s.SetReminderHook(hook)
	return s, repo, hook
}

func TestCreateAppendsAndPersists(t *testing.T) {
	s, repo, _ := newTestStore(t)

	due := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	first, err := s.Create("Pay rent", &due)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := s.Create("Water plants", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("expected unique task ids")
	}
	if first.Completed || second.Completed {
		t.Fatal("new tasks must start incomplete")
	}
	if first.CreatedAt.IsZero() {
		t.Fatal("created_at not set")
	}

	tasks := s.Tasks()
	if len(tasks) != 2 || tasks[0].ID != first.ID || tasks[1].ID != second.ID {
		t.Fatalf("unexpected order: %#v", tasks)
	}
	if len(repo.saved) != 2 {
		t.Fatalf("expected a save per mutation, got %d", len(repo.saved))
	}
	last := repo.saved[len(repo.saved)-1]
	if len(last) != 2 || last[0].Position != 0 || last[1].Position != 1 {
		t.Fatalf("unexpected persisted list: %#v", last)
	}
}

func TestToggleCompletedInvalidatesTracking(t *testing.T) {
	s, _, hook := newTestStore(t)
	due := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	task, _ := s.Create("Submit report", &due)

	if err := s.Toggle(task.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if len(hook.invalidated) != 1 || hook.invalidated[0] != task.ID {
		t.Fatalf("expected invalidation for %s, got %#v", task.ID, hook.invalidated)
	}
	if len(s.DueEligible()) != 0 {
		t.Fatal("completed task must not be due-eligible")
	}

	// Toggling back to incomplete does not invalidate again.
	if err := s.Toggle(task.ID); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if len(hook.invalidated) != 1 {
		t.Fatalf("unexpected extra invalidation: %#v", hook.invalidated)
	}
	if len(s.DueEligible()) != 1 {
		t.Fatal("reopened task with due time must be eligible again")
	}
}

func TestRenameAndDetailsHaveNoSchedulingSideEffects(t *testing.T) {
	s, _, hook := newTestStore(t)
	task, _ := s.Create("Draft email", nil)
	wakesBefore := hook.wakes

	if err := s.Rename(task.ID, "Draft launch email"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if err := s.SetDetails(task.ID, "mention the beta signup"); err != nil {
		t.Fatalf("set details: %v", err)
	}

	if len(hook.invalidated) != 0 || hook.wakes != wakesBefore {
		t.Fatalf("field edits must not touch the scheduler: %#v wakes=%d", hook.invalidated, hook.wakes)
	}
	got, err := s.Get(task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Text != "Draft launch email" || got.Details != "mention the beta signup" {
		t.Fatalf("edits not applied: %#v", got)
	}
}

func TestSetDueTimeInvalidatesOnChangeAndClear(t *testing.T) {
	s, _, hook := newTestStore(t)
	due := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	task, _ := s.Create("Book flights", &due)

	later := due.Add(2 * time.Hour)
	if err := s.SetDueTime(task.ID, &later); err != nil {
		t.Fatalf("set due: %v", err)
	}
	if err := s.SetDueTime(task.ID, nil); err != nil {
		t.Fatalf("clear due: %v", err)
	}
	if len(hook.invalidated) != 2 {
		t.Fatalf("expected invalidation per due edit, got %#v", hook.invalidated)
	}
	if len(s.DueEligible()) != 0 {
		t.Fatal("task with cleared due time must not be eligible")
	}
}

func TestDeleteRemovesAndInvalidates(t *testing.T) {
	s, repo, hook := newTestStore(t)
	due := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	task, _ := s.Create("Cancel subscription", &due)

	if err := s.Delete(task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s.Len() != 0 {
		t.Fatal("task not removed")
	}
	if len(hook.invalidated) != 1 || hook.invalidated[0] != task.ID {
		t.Fatalf("expected invalidation on delete, got %#v", hook.invalidated)
	}
	last := repo.saved[len(repo.saved)-1]
	if len(last) != 0 {
		t.Fatalf("expected empty persisted list, got %#v", last)
	}

	if err := s.Delete(task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestReorderIsAStablePermutation(t *testing.T) {
	s, _, _ := newTestStore(t)
	var ids []string
	for _, text := range []string{"a", "b", "c", "d"} {
		task, _ := s.Create(text, nil)
		ids = append(ids, task.ID)
	}

	if err := s.Reorder(0, 2); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	got := s.Tasks()
	want := []string{ids[1], ids[2], ids[0], ids[3]}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("after reorder(0,2): index %d got %s want %s", i, got[i].ID, want[i])
		}
	}

	// The inverse move restores the original order.
	if err := s.Reorder(2, 0); err != nil {
		t.Fatalf("inverse reorder: %v", err)
	}
	got = s.Tasks()
	for i := range ids {
		if got[i].ID != ids[i] {
			t.Fatalf("inverse did not restore order: index %d got %s want %s", i, got[i].ID, ids[i])
		}
	}
}

func TestReorderRejectsInvalidIndices(t *testing.T) {
	s, repo, _ := newTestStore(t)
	s.Create("only", nil)
	savesBefore := len(repo.saved)

	for _, pair := range [][2]int{{-1, 0}, {0, 1}, {5, 0}, {0, -2}} {
		err := s.Reorder(pair[0], pair[1])
		if !errors.Is(err, ErrInvalidIndex) {
			t.Fatalf("reorder(%d,%d): expected ErrInvalidIndex, got %v", pair[0], pair[1], err)
		}
	}
	if len(repo.saved) != savesBefore {
		t.Fatal("rejected reorder must not persist")
	}
	if s.Len() != 1 {
		t.Fatal("rejected reorder must not mutate")
	}
}

func TestClearAllInvalidatesEverything(t *testing.T) {
	s, repo, hook := newTestStore(t)
	due := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	s.Create("one", &due)
	s.Create("two", nil)

	if err := s.ClearAll(); err != nil {
		t.Fatalf("clear all: %v", err)
	}
	if s.Len() != 0 {
		t.Fatal("list not emptied")
	}
	if hook.invalidatedAll != 1 {
		t.Fatalf("expected InvalidateAll once, got %d", hook.invalidatedAll)
	}
	last := repo.saved[len(repo.saved)-1]
	if len(last) != 0 {
		t.Fatalf("expected empty persisted list, got %#v", last)
	}
}

func TestPersistenceFailureSurfacesWithoutRollback(t *testing.T) {
	repo := &fakeRepo{failSaves: true}
	s := New(repo, WithClock(fixedClock()))

	task, err := s.Create("Unsaved task", nil)
	if err == nil {
		t.Fatal("expected persistence error")
	}
	// Memory keeps the mutation; the next successful save carries it.
	got, getErr := s.Get(task.ID)
	if getErr != nil || got.Text != "Unsaved task" {
		t.Fatalf("in-memory state rolled back: %#v %v", got, getErr)
	}

	repo.failSaves = false
	if _, err := s.Create("Second task", nil); err != nil {
		t.Fatalf("create after recovery: %v", err)
	}
	last := repo.saved[len(repo.saved)-1]
	if len(last) != 2 {
		t.Fatalf("recovered save must include prior changes, got %#v", last)
	}
}

func TestLoadRestoresPersistedOrder(t *testing.T) {
	created := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	due := created.Add(24 * time.Hour)
	repo := &fakeRepo{loaded: []storage.TaskRecord{
		{ID: "t1", Text: "first", CreatedAt: created, Position: 0},
		{ID: "t2", Text: "second", DueTime: &due, CreatedAt: created, Position: 1},
	}}
	s := New(repo)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	tasks := s.Tasks()
	if len(tasks) != 2 || tasks[0].ID != "t1" || tasks[1].ID != "t2" {
		t.Fatalf("unexpected loaded order: %#v", tasks)
	}
	eligible := s.DueEligible()
	if len(eligible) != 1 || eligible[0].ID != "t2" {
		t.Fatalf("unexpected eligible projection: %#v", eligible)
	}
	if s.PendingCount() != 2 {
		t.Fatalf("unexpected pending count: %d", s.PendingCount())
	}
}
