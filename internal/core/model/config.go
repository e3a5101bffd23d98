package model

import "time"

// RefreshConfig contains runtime settings for the status refresher.
type RefreshConfig struct {
	TickInterval time.Duration

	IdleStopEnabled   bool
	IdleStopAfter     time.Duration
	IdleCheckInterval time.Duration
}
