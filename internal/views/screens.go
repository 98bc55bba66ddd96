package views

import (
	"fmt"
	"strings"
)

type TaskItemData struct {
	Index     int
	Text      string
	Completed bool
	DueLabel  string
	HasNotes  bool
}

type TaskListPanelData struct {
	QuickAddView string
	CaptureMode  bool
	EditView     string
	EditLabel    string
	ListView     string
	Items        []TaskItemData
	Cursor       int
	PendingCount int
}

type TaskMetadataData struct {
	SelectedText     string
	CreatedLabel     string
	DueLabel         string
	NotesEditorView  string
	MarkdownMetaView string
	EditingNotes     bool
}

type FocusPanelData struct {
	TaskTitle          string
	Phase              string
	Timer              string
	ProgressView       string
	CompletedPomodoros int
	Running            bool
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

type UpdateBannerData struct {
	LatestVersion string
	ReleaseURL    string
}

func RenderTaskListPanel(data TaskListPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("tasks (%d pending):\n", data.PendingCount))
	if data.CaptureMode {
		b.WriteString(data.QuickAddView + "\n")
	}
	if data.EditLabel != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", data.EditLabel, data.EditView))
	}
	b.WriteString("actions: [a]dd [space]done [e]rename [d]ue [n]otes [x]delete [J/K]move\n")
	if data.ListView != "" {
		b.WriteString(data.ListView + "\n")
	}
	if len(data.Items) == 0 {
		b.WriteString("(no tasks yet)")
		return strings.TrimSpace(b.String())
	}
	for i, item := range data.Items {
		marker := "  "
		if i == data.Cursor {
			marker = "> "
		}
		box := "[ ]"
		text := item.Text
		if item.Completed {
			box = "[x]"
			text = doneStyle.Render(text)
		}
		line := fmt.Sprintf("%s%2d %s %s", marker, item.Index, box, text)
		if item.DueLabel != "" {
			line += " " + dueStyle.Render("@"+item.DueLabel)
		}
		if item.HasNotes {
			line += " *"
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskMetadataPane(data TaskMetadataData) string {
	if data.SelectedText == "" {
		return "details:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("details: " + data.SelectedText + "\n")
	if data.CreatedLabel != "" {
		b.WriteString("created: " + data.CreatedLabel + "\n")
	}
	if data.DueLabel != "" {
		b.WriteString("due: " + data.DueLabel + "\n")
	}
	if data.EditingNotes {
		b.WriteString(data.NotesEditorView)
		return strings.TrimSpace(b.String())
	}
	if data.MarkdownMetaView != "" {
		b.WriteString(data.MarkdownMetaView)
	} else {
		b.WriteString("(no notes)")
	}
	return strings.TrimSpace(b.String())
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	b.WriteString("focus:\n")
	b.WriteString("actions: [space]start/pause [r]eset [n]ext phase\n")
	if data.TaskTitle != "" {
		b.WriteString("task: " + data.TaskTitle + "\n")
	}
	b.WriteString(fmt.Sprintf("phase: %s\n", data.Phase))
	b.WriteString(fmt.Sprintf("timer: %s\n", data.Timer))
	b.WriteString(data.ProgressView + "\n")
	b.WriteString(fmt.Sprintf("pomodoros completed: %d", data.CompletedPomodoros))
	if !data.Running {
		b.WriteString("\n(paused)")
	}
	return strings.TrimSpace(b.String())
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("help (" + data.CurrentView + "):\n")
	for _, binding := range data.Bindings {
		b.WriteString(binding + "\n")
	}
	b.WriteString(data.HelpView)
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return "command> " + input + "\ncommands: add, done, due, details, move, delete, clear all"
}

func RenderNotification(level, body string) string {
	prefix := "info"
	if level == "error" {
		prefix = "error"
	}
	return fmt.Sprintf("[%s] %s", prefix, body)
}

func RenderUpdateBanner(data UpdateBannerData) string {
	if data.LatestVersion == "" {
		return ""
	}
	return fmt.Sprintf("update available: %s (%s)", data.LatestVersion, data.ReleaseURL)
}
