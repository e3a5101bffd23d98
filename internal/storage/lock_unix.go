//go:build !windows

package storage

import (
	"fmt"
	"os"
	"syscall"
)

// withFileLock runs fn with an exclusive advisory lock held on path.
func withFileLock(path string, flag int, fn func(*os.File) error) error {
	file, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return fmt.Errorf("open data file: %w", err)
	}
	defer file.Close()

	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("lock data file: %w", err)
	}
	defer syscall.Flock(int(file.Fd()), syscall.LOCK_UN)

	return fn(file)
}
