package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/softdo/internal/model"
)

func (m Model) isTextEntryActive() bool {
	return m.captureMode || m.editTarget != EditNone
}

func (m Model) handleTasksKey(msg tea.KeyMsg) Model {
	if m.captureMode {
		return m.handleCaptureKey(msg)
	}
	if m.editTarget == EditNotes {
		return m.handleNotesKey(msg)
	}
	if m.editTarget != EditNone {
		return m.handleEditKey(msg)
	}

	switch msg.String() {
	case "a", "enter":
		m.captureMode = true
		m.quickAddInput.Focus()
		m.quickAddInput.SetValue("")
		m.Status = StatusBar{Text: "capture mode", IsError: false}
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < m.Store.Len()-1 {
			m.Cursor++
		}
	case " ":
		m.toggleAtCursor()
	case "K":
		m.moveAtCursor(-1)
	case "J":
		m.moveAtCursor(1)
	case "e":
		m.beginEdit(EditRename)
	case "d":
		m.beginEdit(EditDue)
	case "n":
		m.beginNotesEdit()
	case "x":
		m.deleteAtCursor()
	}
	return m
}

func (m Model) handleCaptureKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.captureMode = false
		m.quickAddInput.Blur()
		m.Status = StatusBar{Text: "list mode", IsError: false}
		return m
	case "enter":
		text := strings.TrimSpace(m.quickAddInput.Value())
		if text == "" {
			return m
		}
		task, err := m.Store.Create(text, nil)
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.quickAddInput.SetValue("")
		m.Cursor = m.Store.Len() - 1
		m.SelectedTaskID = task.ID
		m.Status = StatusBar{Text: fmt.Sprintf("task added: %s", task.Text), IsError: false}
		return m
	}
	var cmd tea.Cmd
	m.quickAddInput, cmd = m.quickAddInput.Update(msg)
	_ = cmd
	return m
}

func (m Model) handleEditKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.editTarget = EditNone
		m.editInput.Blur()
		m.Status = StatusBar{Text: "edit cancelled", IsError: false}
		return m
	case "enter":
		m.applyEdit(strings.TrimSpace(m.editInput.Value()))
		return m
	}
	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	_ = cmd
	return m
}

func (m Model) handleNotesKey(msg tea.KeyMsg) Model {
	if msg.String() == "esc" {
		task, ok := m.selectedTask()
		if !ok {
			m.editTarget = EditNone
			m.notesArea.Blur()
			return m
		}
		if err := m.Store.SetDetails(task.ID, m.notesArea.Value()); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		} else {
			m.Status = StatusBar{Text: "details saved", IsError: false}
		}
		m.editTarget = EditNone
		m.notesArea.Blur()
		return m
	}
	var cmd tea.Cmd
	m.notesArea, cmd = m.notesArea.Update(msg)
	_ = cmd
	return m
}

func (m *Model) beginEdit(target EditTarget) {
	task, ok := m.selectedTask()
	if !ok {
		return
	}
	m.editTarget = target
	m.editInput.Focus()
	switch target {
	case EditRename:
		m.editInput.SetValue(task.Text)
		m.Status = StatusBar{Text: "rename task", IsError: false}
	case EditDue:
		if task.DueTime != nil {
			m.editInput.SetValue(task.DueTime.Local().Format("2006-01-02 15:04"))
		} else {
			m.editInput.SetValue("")
		}
		m.Status = StatusBar{Text: "set due time (\"clear\" removes it)", IsError: false}
	}
}

func (m *Model) beginNotesEdit() {
	task, ok := m.selectedTask()
	if !ok {
		return
	}
	m.editTarget = EditNotes
	m.notesArea.SetValue(task.Details)
	m.notesArea.Focus()
	m.Status = StatusBar{Text: "editing details, esc saves", IsError: false}
}

func (m *Model) applyEdit(value string) {
	task, ok := m.selectedTask()
	if !ok {
		m.editTarget = EditNone
		m.editInput.Blur()
		return
	}
	var err error
	switch m.editTarget {
	case EditRename:
		if value == "" {
			m.Status = StatusBar{Text: "task text cannot be empty", IsError: true}
			return
		}
		err = m.Store.Rename(task.ID, value)
		if err == nil {
			m.Status = StatusBar{Text: "task renamed", IsError: false}
		}
	case EditDue:
		var due *time.Time
		due, err = parseDueInput(value, time.Now())
		if err == nil {
			err = m.Store.SetDueTime(task.ID, due)
		}
		if err == nil {
			if due == nil {
				m.Status = StatusBar{Text: "due time cleared", IsError: false}
			} else {
				m.Status = StatusBar{Text: "due " + formatDue(*due), IsError: false}
			}
		}
	}
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.editTarget = EditNone
	m.editInput.Blur()
}

func (m *Model) toggleAtCursor() {
	task, ok := m.selectedTask()
	if !ok {
		return
	}
	if err := m.Store.Toggle(task.ID); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	if task.Completed {
		m.Status = StatusBar{Text: "task reopened", IsError: false}
	} else {
		m.Status = StatusBar{Text: "task completed", IsError: false}
	}
}

func (m *Model) moveAtCursor(delta int) {
	to := m.Cursor + delta
	if to < 0 || to >= m.Store.Len() {
		return
	}
	if err := m.Store.Reorder(m.Cursor, to); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Cursor = to
	m.Status = StatusBar{Text: "task moved", IsError: false}
}

func (m *Model) deleteAtCursor() {
	task, ok := m.selectedTask()
	if !ok {
		return
	}
	if err := m.Store.Delete(task.ID); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", task.Text), IsError: false}
}

func (m Model) selectedTask() (model.Task, bool) {
	tasks := m.Store.Tasks()
	if len(tasks) == 0 || m.Cursor < 0 || m.Cursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[m.Cursor], true
}
