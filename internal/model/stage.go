package model

import "time"

type Stage string

const (
	Stage24h Stage = "24h"
	Stage1h  Stage = "1h"
	Stage30m Stage = "30m"
	Stage5m  Stage = "5m"
	StageDue Stage = "due"
)

func (s Stage) IsValid() bool {
	switch s {
	case Stage24h, Stage1h, Stage30m, Stage5m, StageDue:
		return true
	default:
		return false
	}
}

// urgency orders the stages from farthest (lowest) to due-now (highest).
func (s Stage) urgency() int {
	switch s {
	case Stage24h:
		return 1
	case Stage1h:
		return 2
	case Stage30m:
		return 3
	case Stage5m:
		return 4
	case StageDue:
		return 5
	default:
		return 0
	}
}

func (s Stage) MoreUrgentThan(other Stage) bool {
	return s.urgency() > other.urgency()
}

// Message returns the body fragment appended to the task text in a
// reminder notification.
func (s Stage) Message() string {
	switch s {
	case StageDue:
		return "is due now!"
	case Stage5m:
		return "is due in 5 minutes."
	case Stage30m:
		return "is due in 30 minutes."
	case Stage1h:
		return "is due in 1 hour."
	case Stage24h:
		return "is due in 24 hours."
	default:
		return "is due."
	}
}

// stageWindow is a half-open interval (lower, upper] over seconds until
// due. Each window is exactly one minute wide so a 10-second poll is all
// but guaranteed to land inside it at least once; a poll interval wider
// than a minute can skip a stage entirely.
type stageWindow struct {
	stage Stage
	lower time.Duration
	upper time.Duration
}

// Windows are checked most-urgent first. A negative seconds-until-due
// older than one minute falls outside every window and the task simply
// runs overdue with no further reminders.
var stageWindows = []stageWindow{
	{StageDue, -60 * time.Second, 0},
	{Stage5m, 240 * time.Second, 300 * time.Second},
	{Stage30m, 1740 * time.Second, 1800 * time.Second},
	{Stage1h, 3540 * time.Second, 3600 * time.Second},
	{Stage24h, 86340 * time.Second, 86400 * time.Second},
}

// StageAt resolves the reminder stage for a given time-until-due, or
// false when the instant falls inside no window.
func StageAt(until time.Duration) (Stage, bool) {
	for _, w := range stageWindows {
		if until > w.lower && until <= w.upper {
			return w.stage, true
		}
	}
	return "", false
}
