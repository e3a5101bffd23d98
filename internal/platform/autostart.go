package platform

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Service locates per-user directories and manages the login item that
// starts the tracker with the desktop session.
type Service interface {
	GetConfigDir() (string, error)
	EnableAutostart(appName, execPath string) error
	DisableAutostart(appName string) error
}

type platformService struct{}

// NewService returns the implementation for the running system.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the per-user configuration directory, falling back to
// the conventional location under the home directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, configErr := os.UserConfigDir()
	if configErr == nil && configDir != "" {
		return configDir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", errors.Join(configErr, err))
	}
	return fallbackConfigDir(homeDir), nil
}

// SyncAutostart registers or removes the running executable as a login item.
func SyncAutostart(service Service, appName string, enabled bool) error {
	if !enabled {
		return service.DisableAutostart(appName)
	}
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("sync autostart: resolve executable: %w", err)
	}
	return service.EnableAutostart(appName, execPath)
}

// itemSlug turns an application name into a file and label friendly id.
func itemSlug(appName string) (string, error) {
	slug := strings.Join(strings.Fields(strings.ToLower(appName)), "-")
	if slug == "" {
		return "", fmt.Errorf("app name is empty")
	}
	return slug, nil
}
