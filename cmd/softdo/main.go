package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/softdo/internal/config"
	"github.com/sandeepkv93/softdo/internal/notify"
	"github.com/sandeepkv93/softdo/internal/scheduler"
	"github.com/sandeepkv93/softdo/internal/storage"
	"github.com/sandeepkv93/softdo/internal/store"
	"github.com/sandeepkv93/softdo/internal/update"
	"github.com/sandeepkv93/softdo/internal/version"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath(), "path to config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("softdo " + version.Current)
		return
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "softdo failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if dir := filepath.Dir(cfg.Storage.DBPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := storage.MigrateUp(db); err != nil {
		_ = db.Close()
		return fmt.Errorf("apply migrations: %w", err)
	}
	repo, err := storage.NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return err
	}
	defer repo.Close()

	st := store.New(repo)
	if err := st.Load(context.Background()); err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	reminders := &reminderFan{desktop: notify.New(cfg.Notifications.Enabled)}
	sched := scheduler.New(st, reminders, scheduler.WithPollInterval(cfg.PollInterval()))
	st.SetReminderHook(sched)

	model := update.NewModel(st, update.RuntimeConfigFrom(cfg))
	if cfg.Update.Enabled {
		model.Upgrade.Checking = true
	}
	program := tea.NewProgram(model)
	reminders.setProgram(program)

	sched.Start()
	defer sched.Stop()

	if cfg.Update.Enabled {
		go checkForUpdates(program, cfg.Update.Repo)
	}

	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

// reminderFan delivers each reminder to the desktop notifier and
// mirrors it into the running TUI.
type reminderFan struct {
	desktop notify.Notifier

	mu      sync.Mutex
	program *tea.Program
}

func (f *reminderFan) setProgram(p *tea.Program) {
	f.mu.Lock()
	f.program = p
	f.mu.Unlock()
}

func (f *reminderFan) Notify(title, body string) error {
	f.mu.Lock()
	p := f.program
	f.mu.Unlock()
	if p != nil {
		p.Send(update.ReminderMsg{Title: title, Body: body})
	}
	return f.desktop.Notify(title, body)
}

func checkForUpdates(program *tea.Program, repo string) {
	defer program.Send(update.UpdateCheckDoneMsg{})
	info, err := version.NewChecker(repo).Check()
	if err != nil {
		return
	}
	program.Send(update.UpdateAvailableMsg{Info: info})
}
