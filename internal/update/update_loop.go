package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/softdo/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Upgrade.Checking {
		return m.checkSpinner.Tick
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer m.syncBubbleData()

	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			next := m.handlePaletteKey(typed)
			return next, nil
		}

		keyStr := typed.String()
		if m.CurrentView == ViewTasks && m.isTextEntryActive() && keyStr != "ctrl+c" {
			return m.handleTasksKey(typed), nil
		}

		switch keyStr {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Tasks:
			m.CurrentView = ViewTasks
			return m, nil
		case m.Keys.Focus:
			m.CurrentView = ViewFocus
			m.bootstrapFocusTask()
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		if m.CurrentView == ViewTasks {
			return m.handleTasksKey(typed), nil
		}
		if m.CurrentView == ViewFocus {
			next, cmd := m.handleFocusKey(typed)
			return next, cmd
		}
	case spinner.TickMsg:
		if m.Upgrade.Checking {
			var cmd tea.Cmd
			m.checkSpinner, cmd = m.checkSpinner.Update(typed)
			return m, cmd
		}
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case FocusTickMsg:
		return m.onFocusTick()
	case ReminderMsg:
		m.notify(typed.Title, typed.Body, "info")
		m.Status = StatusBar{Text: typed.Body, IsError: false}
		return m, nil
	case UpdateAvailableMsg:
		m.Upgrade = UpdateState{
			Available:     typed.Info.HasUpdate,
			LatestVersion: typed.Info.LatestVersion,
			ReleaseURL:    typed.Info.ReleaseURL,
		}
		if typed.Info.HasUpdate {
			m.notify("Update", fmt.Sprintf("version %s is available", typed.Info.LatestVersion), "info")
		}
		return m, nil
	case UpdateCheckDoneMsg:
		m.Upgrade.Checking = false
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	m.syncBubbleData()
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewTasks:
		leftPane = m.renderTasksView()
		rightPane = m.renderMetadataPane() + m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewFocus:
		leftPane = m.renderFocusView()
		rightPane = m.renderHelpIfVisible()
	}
	notificationView := m.renderNotificationsView()
	if m.Upgrade.Available {
		banner := views.RenderUpdateBanner(views.UpdateBannerData{
			LatestVersion: m.Upgrade.LatestVersion,
			ReleaseURL:    m.Upgrade.ReleaseURL,
		})
		notificationView = strings.TrimSpace(strings.Join([]string{notificationView, banner}, "\n"))
	}
	if m.Upgrade.Checking {
		spin := m.checkSpinner.View()
		notificationView = strings.TrimSpace(strings.Join([]string{notificationView, "update-check: " + spin + " running"}, "\n"))
	}

	selected := m.SelectedTaskID
	if t, ok := m.selectedTask(); ok {
		selected = t.ID
	}
	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("softdo | view: %s | selected: %s", m.CurrentView, selected),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: notificationView,
		Footer:       fmt.Sprintf("keys: %s tasks | %s focus | / cmd | %s help | %s quit", m.Keys.Tasks, m.Keys.Focus, m.Keys.Help, m.Keys.Quit),
	})
}
