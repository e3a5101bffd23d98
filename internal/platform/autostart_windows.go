package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const runKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func (service *platformService) EnableAutostart(appName, execPath string) error {
	slug, err := itemSlug(appName)
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	if execPath == "" {
		return fmt.Errorf("enable autostart: exec path is empty")
	}
	command := `"` + strings.Trim(execPath, `"`) + `"`
	if err := reg("add", runKey, "/v", slug, "/t", "REG_SZ", "/d", command, "/f"); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	slug, err := itemSlug(appName)
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	if err := reg("delete", runKey, "/v", slug, "/f"); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	return nil
}

func reg(args ...string) error {
	output, err := exec.Command("reg", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("reg %s: %w: %s", args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}
