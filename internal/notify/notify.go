// Package notify displays system notifications. Platform support may be
// absent entirely, in which case sending is a silent no-op.
package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

type Notifier interface {
	Notify(title, body string) error
}

// NoopNotifier swallows every notification.
type NoopNotifier struct{}

func (NoopNotifier) Notify(string, string) error { return nil }

// ExecNotifier shells out to the platform notifier. Unsupported
// platforms report success without doing anything.
type ExecNotifier struct{}

func (ExecNotifier) Notify(title, body string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", title, body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(body), escapeAppleScript(title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

// New returns the desktop notifier, or a no-op when disabled.
func New(enabled bool) Notifier {
	if !enabled {
		return NoopNotifier{}
	}
	return ExecNotifier{}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
