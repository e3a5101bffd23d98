package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const launchAgentPrefix = "dev.timetracker."

func (service *platformService) loginItem(appName, execPath string) (loginItem, error) {
	slug, err := itemSlug(appName)
	if err != nil {
		return loginItem{}, err
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return loginItem{}, fmt.Errorf("get home dir: %w", err)
	}
	label := launchAgentPrefix + slug
	return loginItem{
		path:    filepath.Join(homeDir, "Library", "LaunchAgents", label+".plist"),
		content: launchAgent(label, execPath),
	}, nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}

var plistEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func launchAgent(label, execPath string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
		<string>%s</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
	<key>ProcessType</key>
	<string>Interactive</string>
</dict>
</plist>
`, plistEscaper.Replace(label), plistEscaper.Replace(execPath))
}
