package platform

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"timetracker/internal/core/refresh"
)

// xprintidleProbe asks the X server for the time since the last input.
type xprintidleProbe struct {
	path string
}

func newIdleChecker() refresh.IdleChecker {
	path, err := exec.LookPath("xprintidle")
	if err != nil {
		return unsupportedIdle{}
	}
	return xprintidleProbe{path: path}
}

func (probe xprintidleProbe) IdleDuration() (time.Duration, error) {
	// xprintidle only sees XWayland clients under Wayland.
	if strings.EqualFold(os.Getenv("XDG_SESSION_TYPE"), "wayland") && os.Getenv("DISPLAY") == "" {
		return 0, refresh.ErrIdleUnsupported
	}
	output, err := exec.Command(probe.path).Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	return parseIdleMillis(output)
}
