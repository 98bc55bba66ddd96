package model

import (
	"errors"
	"strings"
	"time"
)

type Task struct {
	ID        string
	Text      string
	Completed bool
	DueTime   *time.Time
	CreatedAt time.Time
	Details   string
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Text) == "" {
		return errors.New("model: task text is required")
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	return nil
}

// DueEligible reports whether the task can produce reminders at all:
// incomplete and carrying a due time.
func (t Task) DueEligible() bool {
	return !t.Completed && t.DueTime != nil
}
