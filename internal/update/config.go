package update

import "github.com/sandeepkv93/softdo/internal/config"

type RuntimeConfig struct {
	FocusWorkMinutes  int
	FocusBreakMinutes int
	DarkMode          bool
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		FocusWorkMinutes:  25,
		FocusBreakMinutes: 5,
		DarkMode:          false,
	}
}

func RuntimeConfigFrom(cfg *config.Config) RuntimeConfig {
	out := DefaultRuntimeConfig()
	if cfg == nil {
		return out
	}
	if cfg.Focus.WorkMinutes > 0 {
		out.FocusWorkMinutes = cfg.Focus.WorkMinutes
	}
	if cfg.Focus.BreakMinutes > 0 {
		out.FocusBreakMinutes = cfg.Focus.BreakMinutes
	}
	out.DarkMode = cfg.UI.DarkMode
	return out
}
