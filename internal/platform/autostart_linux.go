package platform

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (service *platformService) loginItem(appName, execPath string) (loginItem, error) {
	slug, err := itemSlug(appName)
	if err != nil {
		return loginItem{}, err
	}
	configDir, err := service.GetConfigDir()
	if err != nil {
		return loginItem{}, err
	}
	return loginItem{
		path:    filepath.Join(configDir, "autostart", slug+".desktop"),
		content: desktopEntry(appName, execPath),
	}, nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

func desktopEntry(appName, execPath string) string {
	if strings.ContainsAny(execPath, " \t") {
		execPath = `"` + strings.Trim(execPath, `"`) + `"`
	}
	return fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Comment=Track time spent on tasks
Exec=%s
Icon=appointment-soon
Categories=Utility;
X-GNOME-Autostart-enabled=true
Terminal=false
`, appName, execPath)
}
