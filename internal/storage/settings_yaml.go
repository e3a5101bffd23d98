package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"timetracker/internal/platform"
	"timetracker/internal/ui/format"
	"timetracker/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	UpdateIntervalSeconds int    `yaml:"update_interval_seconds"`
	ShowInStatusBar       *bool  `yaml:"show_in_status_bar"`
	StatusBarFormat       string `yaml:"status_bar_format"`
	TaskListFormat        string `yaml:"task_list_format"`
	ShowListOnStart       *bool  `yaml:"show_list_on_start"`
	IdleStopEnabled       bool   `yaml:"idle_stop_enabled"`
	IdleStopMinutes       int    `yaml:"idle_stop_minutes"`
	LaunchAtLogin         bool   `yaml:"launch_at_login"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// LoadSettingsFile reads user preferences from the YAML file at configPath.
func LoadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// SaveSettingsFile writes user preferences to the YAML file at configPath.
func SaveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	showInStatusBar := settings.ShowInStatusBar
	showListOnStart := settings.ShowListOnStart
	fileData := yamlSettings{
		UpdateIntervalSeconds: int(settings.UpdateInterval / time.Second),
		ShowInStatusBar:       &showInStatusBar,
		StatusBarFormat:       settings.StatusBarFormat,
		TaskListFormat:        settings.TaskListFormat,
		ShowListOnStart:       &showListOnStart,
		IdleStopEnabled:       settings.IdleStopEnabled,
		IdleStopMinutes:       int(settings.IdleStopAfter / time.Minute),
		LaunchAtLogin:         settings.LaunchAtLogin,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func resolveConfigPath(appName string) (string, error) {
	appDir, err := resolveAppDir(appName)
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, settingsFileName), nil
}

func resolveAppDir(appName string) (string, error) {
	configDir, err := platform.NewService().GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.UpdateIntervalSeconds > 0 {
		settings.UpdateInterval = time.Duration(fileData.UpdateIntervalSeconds) * time.Second
	}
	if fileData.IdleStopMinutes > 0 {
		settings.IdleStopAfter = time.Duration(fileData.IdleStopMinutes) * time.Minute
	}

	if layout := strings.TrimSpace(fileData.StatusBarFormat); format.Valid(layout) {
		settings.StatusBarFormat = layout
	}
	if layout := strings.TrimSpace(fileData.TaskListFormat); format.Valid(layout) {
		settings.TaskListFormat = layout
	}

	if fileData.ShowInStatusBar != nil {
		settings.ShowInStatusBar = *fileData.ShowInStatusBar
	}
	if fileData.ShowListOnStart != nil {
		settings.ShowListOnStart = *fileData.ShowListOnStart
	}
	settings.IdleStopEnabled = fileData.IdleStopEnabled
	settings.LaunchAtLogin = fileData.LaunchAtLogin
}
