package model

import (
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	due := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Text:      "File expense report",
		DueTime:   &due,
		CreatedAt: time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC),
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateMissingFields(t *testing.T) {
	cases := []struct {
		name string
		in   Task
	}{
		{"missing id", Task{Text: "x", CreatedAt: time.Now()}},
		{"missing text", Task{ID: "task-1", CreatedAt: time.Now()}},
		{"missing created_at", Task{ID: "task-1", Text: "x"}},
	}
	for _, tc := range cases {
		if err := tc.in.Validate(); err == nil {
			t.Fatalf("%s: expected error, got nil", tc.name)
		}
	}
}

func TestTaskDueEligible(t *testing.T) {
	due := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		in   Task
		want bool
	}{
		{"no due time", Task{ID: "a"}, false},
		{"completed with due time", Task{ID: "b", Completed: true, DueTime: &due}, false},
		{"incomplete with due time", Task{ID: "c", DueTime: &due}, true},
	}
	for _, tc := range cases {
		if got := tc.in.DueEligible(); got != tc.want {
			t.Fatalf("%s: DueEligible() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
