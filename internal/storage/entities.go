package storage

import "time"

// TaskRecord is one row of the persisted task list. Position is the
// ordinal within the ordered sequence; the whole sequence is rewritten
// on every mutation, so positions are always dense starting at zero.
type TaskRecord struct {
	ID        string
	Text      string
	Completed bool
	DueTime   *time.Time
	CreatedAt time.Time
	Details   string
	Position  int
}
