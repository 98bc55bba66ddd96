package update

import (
	"fmt"
	"strings"
	"time"
)

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func formatDuration(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	min := totalSec / 60
	sec := totalSec % 60
	return fmt.Sprintf("%02d:%02d", min, sec)
}

func formatDue(t time.Time) string {
	return t.Local().Format("Jan 2 15:04")
}

// parseDueInput understands the due-time forms the palette and editor
// accept: "clear" (remove), "+<duration>" relative to now, "15:04"
// today, or a full "2006-01-02 15:04" timestamp.
func parseDueInput(raw string, now time.Time) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "clear") {
		return nil, nil
	}
	if strings.HasPrefix(raw, "+") {
		d, err := time.ParseDuration(raw[1:])
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q", raw)
		}
		t := now.Add(d)
		return &t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", raw, now.Location()); err == nil {
		return &t, nil
	}
	if clock, err := time.ParseInLocation("15:04", raw, now.Location()); err == nil {
		t := time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, now.Location())
		return &t, nil
	}
	return nil, fmt.Errorf("invalid due time %q (want \"2006-01-02 15:04\", \"15:04\", \"+30m\" or \"clear\")", raw)
}
