package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/softdo/internal/store"
	"github.com/sandeepkv93/softdo/internal/version"
)

type View string

const (
	ViewTasks View = "Tasks"
	ViewFocus View = "Focus"
)

type EditTarget string

const (
	EditNone   EditTarget = ""
	EditRename EditTarget = "rename"
	EditDue    EditTarget = "due"
	EditNotes  EditTarget = "notes"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks string
	Focus string
	Help  string
	Quit  string
}

type FocusPhase string

const (
	FocusPhaseWork  FocusPhase = "work"
	FocusPhaseBreak FocusPhase = "break"
)

type FocusState struct {
	TaskID             string
	TaskTitle          string
	WorkDurationSec    int
	BreakDurationSec   int
	RemainingSec       int
	Running            bool
	Phase              FocusPhase
	CompletedPomodoros int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type UpdateState struct {
	Available     bool
	LatestVersion string
	ReleaseURL    string
	Checking      bool
}

type Model struct {
	CurrentView    View
	Store          *store.Store
	Cursor         int
	SelectedTaskID string
	Focus          FocusState
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	Upgrade        UpdateState
	captureMode    bool
	editTarget     EditTarget
	darkMode       bool
	// Bubble components used for rich TUI controls
	taskList      list.Model
	quickAddInput textinput.Model
	editInput     textinput.Model
	commandInput  textinput.Model
	notesArea     textarea.Model
	focusProgress progress.Model
	checkSpinner  spinner.Model
	helpModel     help.Model
	metaViewport  viewport.Model
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type FocusTickMsg struct{}

// ReminderMsg mirrors a desktop reminder into the in-app notification
// feed so a reminder is visible even when desktop notifications are off.
type ReminderMsg struct {
	Title string
	Body  string
}

type UpdateAvailableMsg struct {
	Info version.Info
}

type UpdateCheckDoneMsg struct{}

func NewModel(s *store.Store, cfg RuntimeConfig) Model {
	m := Model{
		CurrentView: ViewTasks,
		Store:       s,
		Focus: FocusState{
			WorkDurationSec:  cfg.FocusWorkMinutes * 60,
			BreakDurationSec: cfg.FocusBreakMinutes * 60,
			Phase:            FocusPhaseWork,
		},
		Keys: GlobalKeyMap{
			Tasks: "1",
			Focus: "2",
			Help:  "?",
			Quit:  "q",
		},
		darkMode: cfg.DarkMode,
	}
	if m.Focus.WorkDurationSec <= 0 {
		m.Focus.WorkDurationSec = 25 * 60
	}
	if m.Focus.BreakDurationSec <= 0 {
		m.Focus.BreakDurationSec = 5 * 60
	}
	m.Focus.RemainingSec = m.Focus.WorkDurationSec
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.taskList.Title = "Tasks (list)"
	m.taskList.SetShowHelp(false)
	m.taskList.SetFilteringEnabled(false)

	m.quickAddInput = textinput.New()
	m.quickAddInput.Prompt = "add> "
	m.quickAddInput.CharLimit = 256
	m.quickAddInput.Width = 42

	m.editInput = textinput.New()
	m.editInput.Prompt = "> "
	m.editInput.CharLimit = 256
	m.editInput.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.notesArea = textarea.New()
	m.notesArea.SetWidth(54)
	m.notesArea.SetHeight(8)
	m.notesArea.ShowLineNumbers = false
	m.notesArea.Placeholder = "Task details (markdown)"

	m.focusProgress = progress.New(progress.WithDefaultGradient())

	m.checkSpinner = spinner.New()
	m.checkSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.metaViewport = viewport.New(54, 12)
}

func (m *Model) syncBubbleData() {
	tasks := m.Store.Tasks()
	m.clampCursor(len(tasks))

	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		desc := ""
		if t.DueTime != nil {
			desc = "due " + formatDue(*t.DueTime)
		}
		if t.Completed {
			desc = "done"
		}
		items = append(items, listItem{title: t.Text, description: desc})
	}
	m.taskList.SetItems(items)
	if len(items) > 0 {
		m.taskList.Select(m.Cursor)
		m.SelectedTaskID = tasks[m.Cursor].ID
	} else {
		m.SelectedTaskID = ""
	}

	if m.Palette.Active {
		m.commandInput.Focus()
	}

	if t, ok := m.selectedTask(); ok && m.editTarget != EditNotes {
		md := t.Details
		if md == "" {
			md = "_No details_"
		}
		m.notesArea.SetValue(t.Details)
		m.metaViewport.SetContent(RenderDetails(md, m.darkMode))
	}

	total := m.currentFocusTotal()
	pct := 0.0
	if total > 0 {
		pct = float64(total-m.Focus.RemainingSec) / float64(total)
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	_ = m.focusProgress.SetPercent(pct)
}

func (m *Model) clampCursor(n int) {
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if n == 0 {
		m.Cursor = 0
		return
	}
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
}
