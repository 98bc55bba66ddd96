package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/softdo/internal/commands"
	"github.com/sandeepkv93/softdo/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task, err := m.Store.Create(a.Text, nil)
			if err != nil {
				return commands.Result{}, err
			}
			m.Cursor = m.Store.Len() - 1
			return commands.Result{Message: fmt.Sprintf("added task: %s", task.Text)}, nil
		},
		Done: func(a commands.DoneArgs) (commands.Result, error) {
			task, err := m.taskAtIndex(a.Index)
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.Store.Toggle(task.ID); err != nil {
				return commands.Result{}, err
			}
			if task.Completed {
				return commands.Result{Message: fmt.Sprintf("reopened: %s", task.Text)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("completed: %s", task.Text)}, nil
		},
		Due: func(a commands.DueArgs) (commands.Result, error) {
			task, err := m.taskAtIndex(a.Index)
			if err != nil {
				return commands.Result{}, err
			}
			due, err := parseDueInput(a.When, time.Now())
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			if err := m.Store.SetDueTime(task.ID, due); err != nil {
				return commands.Result{}, err
			}
			if due == nil {
				return commands.Result{Message: fmt.Sprintf("due time cleared: %s", task.Text)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("%s due %s", task.Text, formatDue(*due))}, nil
		},
		Details: func(a commands.DetailsArgs) (commands.Result, error) {
			task, err := m.taskAtIndex(a.Index)
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.Store.SetDetails(task.ID, a.Text); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("details set: %s", task.Text)}, nil
		},
		Move: func(a commands.MoveArgs) (commands.Result, error) {
			if err := m.Store.Reorder(a.From-1, a.To-1); err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			m.Cursor = a.To - 1
			return commands.Result{Message: fmt.Sprintf("moved task %d to %d", a.From, a.To)}, nil
		},
		Delete: func(a commands.DeleteArgs) (commands.Result, error) {
			task, err := m.taskAtIndex(a.Index)
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.Store.Delete(task.ID); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("deleted: %s", task.Text)}, nil
		},
		Clear: func() (commands.Result, error) {
			n := m.Store.Len()
			if err := m.Store.ClearAll(); err != nil {
				return commands.Result{}, err
			}
			m.Cursor = 0
			return commands.Result{Message: fmt.Sprintf("cleared %d task(s)", n)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
		m.notify("Command", res.Message, "info")
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m
}

// taskAtIndex resolves a 1-based palette index against the task list.
func (m Model) taskAtIndex(idx int) (model.Task, error) {
	tasks := m.Store.Tasks()
	if idx < 1 || idx > len(tasks) {
		return model.Task{}, &commands.CommandError{
			Code:    commands.ErrCodeInvalidArgument,
			Message: fmt.Sprintf("no task at index %d", idx),
		}
	}
	return tasks[idx-1], nil
}
