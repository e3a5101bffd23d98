//go:build windows

package storage

import (
	"fmt"
	"os"
)

// withFileLock runs fn on the opened file. Windows builds rely on the
// single-instance guard instead of an advisory lock.
func withFileLock(path string, flag int, fn func(*os.File) error) error {
	file, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return fmt.Errorf("open data file: %w", err)
	}
	defer file.Close()

	return fn(file)
}
