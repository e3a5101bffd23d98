package preferences

import (
	"time"

	"timetracker/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	UpdateInterval  time.Duration
	ShowInStatusBar bool
	StatusBarFormat string
	TaskListFormat  string
	ShowListOnStart bool

	IdleStopEnabled bool
	IdleStopAfter   time.Duration
	LaunchAtLogin   bool
}

// DefaultSettings returns default settings for the tracker.
func DefaultSettings() Settings {
	return Settings{
		UpdateInterval:  time.Second,
		ShowInStatusBar: true,
		StatusBarFormat: "HH:mm:ss",
		TaskListFormat:  "HH:mm:ss",
		ShowListOnStart: true,
		IdleStopEnabled: false,
		IdleStopAfter:   10 * time.Minute,
		LaunchAtLogin:   false,
	}
}

// RefreshConfig converts settings to the refresher configuration.
func (settings Settings) RefreshConfig() model.RefreshConfig {
	return model.RefreshConfig{
		TickInterval:      settings.UpdateInterval,
		IdleStopEnabled:   settings.IdleStopEnabled,
		IdleStopAfter:     settings.IdleStopAfter,
		IdleCheckInterval: 5 * time.Second,
	}
}
