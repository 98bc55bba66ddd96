package update

import (
	"strings"
	"time"

	"github.com/sandeepkv93/softdo/internal/views"
)

func (m Model) renderTasksView() string {
	tasks := m.Store.Tasks()
	items := make([]views.TaskItemData, 0, len(tasks))
	for i, t := range tasks {
		due := ""
		if t.DueTime != nil {
			due = formatDue(*t.DueTime)
		}
		items = append(items, views.TaskItemData{
			Index:     i + 1,
			Text:      t.Text,
			Completed: t.Completed,
			DueLabel:  due,
			HasNotes:  t.Details != "",
		})
	}
	editLabel := ""
	switch m.editTarget {
	case EditRename:
		editLabel = "rename:"
	case EditDue:
		editLabel = "due:"
	}
	return views.RenderTaskListPanel(views.TaskListPanelData{
		QuickAddView: m.quickAddInput.View(),
		CaptureMode:  m.captureMode,
		EditView:     m.editInput.View(),
		EditLabel:    editLabel,
		ListView:     m.taskList.View(),
		Items:        items,
		Cursor:       m.Cursor,
		PendingCount: m.Store.PendingCount(),
	})
}

func (m Model) renderMetadataPane() string {
	task, ok := m.selectedTask()
	if !ok {
		return views.RenderTaskMetadataPane(views.TaskMetadataData{})
	}
	due := ""
	if task.DueTime != nil {
		due = formatDue(*task.DueTime)
	}
	return views.RenderTaskMetadataPane(views.TaskMetadataData{
		SelectedText:     task.Text,
		CreatedLabel:     task.CreatedAt.Local().Format("2006-01-02 15:04"),
		DueLabel:         due,
		NotesEditorView:  m.notesArea.View(),
		MarkdownMetaView: m.metaViewport.View(),
		EditingNotes:     m.editTarget == EditNotes,
	})
}

func (m Model) renderFocusView() string {
	return views.RenderFocusPanel(views.FocusPanelData{
		TaskTitle:          m.Focus.TaskTitle,
		Phase:              string(m.Focus.Phase),
		Timer:              formatDuration(m.Focus.RemainingSec),
		ProgressView:       m.focusProgress.View(),
		CompletedPomodoros: m.Focus.CompletedPomodoros,
		Running:            m.Focus.Running,
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
}

// RenderDetails renders markdown details with a glamour style matching
// the configured color mode.
func RenderDetails(md string, darkMode bool) string {
	style := "light"
	if darkMode {
		style = "dark"
	}
	return views.RenderMarkdown(md, style)
}
