package platform

import (
	"fmt"
	"os/exec"
	"time"

	"timetracker/internal/core/refresh"
)

type ioregProbe struct{}

func newIdleChecker() refresh.IdleChecker {
	if _, err := exec.LookPath("ioreg"); err != nil {
		return unsupportedIdle{}
	}
	return ioregProbe{}
}

func (ioregProbe) IdleDuration() (time.Duration, error) {
	output, err := exec.Command("ioreg", "-c", "IOHIDSystem", "-d", "4").Output()
	if err != nil {
		return 0, fmt.Errorf("ioreg: %w", err)
	}
	return parseHIDIdleTime(output)
}
