//go:build linux || darwin

package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// loginItem is a file that makes the desktop session start the tracker.
type loginItem struct {
	path    string
	content string
}

func (service *platformService) EnableAutostart(appName, execPath string) error {
	if execPath == "" {
		return fmt.Errorf("enable autostart: exec path is empty")
	}
	item, err := service.loginItem(appName, execPath)
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(item.path), 0o755); err != nil {
		return fmt.Errorf("enable autostart: create %s: %w", filepath.Dir(item.path), err)
	}
	if err := os.WriteFile(item.path, []byte(item.content), 0o644); err != nil {
		return fmt.Errorf("enable autostart: write login item: %w", err)
	}
	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	item, err := service.loginItem(appName, "")
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	if err := os.Remove(item.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable autostart: remove login item: %w", err)
	}
	return nil
}
