package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"storage": map[string]interface{}{
			"db_path": "~/.config/softdo/softdo.db",
		},
		"scheduler": map[string]interface{}{
			"poll_interval_seconds": 10,
		},
		"notifications": map[string]interface{}{
			"enabled": true,
		},
		"focus": map[string]interface{}{
			"work_minutes":  25,
			"break_minutes": 5,
		},
		"update": map[string]interface{}{
			"enabled": true,
			"repo":    "xxomega2077xx/softdo",
		},
		"ui": map[string]interface{}{
			"dark_mode": false,
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}
