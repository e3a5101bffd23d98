package refresh

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"timetracker/internal/core/model"
	"timetracker/internal/core/tracker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIdleChecker struct {
	idle  time.Duration
	err   error
	calls atomic.Int32
}

func (checker *stubIdleChecker) IdleDuration() (time.Duration, error) {
	checker.calls.Add(1)
	return checker.idle, checker.err
}

func fastConfig() model.RefreshConfig {
	return model.RefreshConfig{
		TickInterval:      5 * time.Millisecond,
		IdleCheckInterval: time.Millisecond,
		IdleStopAfter:     time.Minute,
	}
}

func waitFor(t *testing.T, events <-chan Event, eventType EventType) Event {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case event, ok := <-events:
			require.True(t, ok, "events closed while waiting for %s", eventType)
			if event.Type == eventType {
				return event
			}
		case <-timeout:
			require.FailNow(t, fmt.Sprintf("timed out waiting for %s", eventType))
		}
	}
}

func TestRefresher_StateChangesFollowStore(t *testing.T) {
	store := tracker.New(model.EmptySnapshot(), tracker.Config{})
	refresher := New(store, fastConfig())
	events := refresher.Subscribe(64)
	refresher.Start()
	defer refresher.Stop()

	store.Start("a", "")
	started := waitFor(t, events, EventStateChange)
	assert.Equal(t, "a", started.TaskName)
	assert.True(t, started.Active())

	store.StopActive()
	stopped := waitFor(t, events, EventStateChange)
	assert.False(t, stopped.Active())
}

func TestRefresher_EmitsProgressForActiveTask(t *testing.T) {
	store := tracker.New(model.EmptySnapshot(), tracker.Config{})
	refresher := New(store, fastConfig())
	events := refresher.Subscribe(64)
	refresher.Start()
	defer refresher.Stop()

	store.Start("a", "")
	first := waitFor(t, events, EventProgress)
	second := waitFor(t, events, EventProgress)

	assert.Equal(t, "a", first.TaskName)
	assert.GreaterOrEqual(t, second.Elapsed, first.Elapsed)
}

func TestRefresher_SwitchRestartsTickForNewTask(t *testing.T) {
	store := tracker.New(model.EmptySnapshot(), tracker.Config{})
	refresher := New(store, fastConfig())
	events := refresher.Subscribe(64)
	refresher.Start()
	defer refresher.Stop()

	store.Start("a", "")
	waitFor(t, events, EventProgress)
	store.Start("b", "")

	change := waitFor(t, events, EventStateChange)
	require.Equal(t, "b", change.TaskName)

	progress := waitFor(t, events, EventProgress)
	assert.Equal(t, "b", progress.TaskName)
}

func TestRefresher_NoProgressWhileIdle(t *testing.T) {
	store := tracker.New(model.EmptySnapshot(), tracker.Config{})
	refresher := New(store, fastConfig())
	events := refresher.Subscribe(64)
	refresher.Start()
	defer refresher.Stop()

	time.Sleep(30 * time.Millisecond)

	assert.Empty(t, events)
}

func TestRefresher_ReportsAlreadyRunningTaskOnStart(t *testing.T) {
	store := tracker.New(model.EmptySnapshot(), tracker.Config{})
	store.Start("a", "")
	refresher := New(store, fastConfig())
	events := refresher.Subscribe(64)

	refresher.Start()
	defer refresher.Stop()

	event := waitFor(t, events, EventStateChange)
	assert.Equal(t, "a", event.TaskName)
}

func TestRefresher_IdleStopsActiveTask(t *testing.T) {
	store := tracker.New(model.EmptySnapshot(), tracker.Config{})
	config := fastConfig()
	config.IdleStopEnabled = true
	refresher := New(store, config)
	refresher.SetIdleChecker(&stubIdleChecker{idle: 2 * time.Minute})
	events := refresher.Subscribe(64)
	refresher.Start()
	defer refresher.Stop()

	store.Start("a", "")

	event := waitFor(t, events, EventIdleStop)
	assert.Equal(t, "a", event.TaskName)
	assert.Eventually(t, func() bool { return !store.HasActive() }, time.Second, 5*time.Millisecond)
}

func TestRefresher_IdleBelowThresholdKeepsRunning(t *testing.T) {
	store := tracker.New(model.EmptySnapshot(), tracker.Config{})
	config := fastConfig()
	config.IdleStopEnabled = true
	checker := &stubIdleChecker{idle: time.Second}
	refresher := New(store, config)
	refresher.SetIdleChecker(checker)
	refresher.Start()
	defer refresher.Stop()

	store.Start("a", "")

	assert.Eventually(t, func() bool { return checker.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	assert.True(t, store.HasActive())
}

func TestRefresher_UnsupportedIdleDisablesCheck(t *testing.T) {
	store := tracker.New(model.EmptySnapshot(), tracker.Config{})
	config := fastConfig()
	config.IdleStopEnabled = true
	checker := &stubIdleChecker{err: fmt.Errorf("probe: %w", ErrIdleUnsupported)}
	refresher := New(store, config)
	refresher.SetIdleChecker(checker)
	events := refresher.Subscribe(64)
	refresher.Start()
	defer refresher.Stop()

	store.Start("a", "")

	event := waitFor(t, events, EventIdleError)
	assert.Contains(t, event.Message, "unsupported")
	waitFor(t, events, EventProgress)
	waitFor(t, events, EventProgress)
	assert.Equal(t, int32(1), checker.calls.Load())
	assert.True(t, store.HasActive())
}

func TestRefresher_StopClosesObservers(t *testing.T) {
	store := tracker.New(model.EmptySnapshot(), tracker.Config{})
	refresher := New(store, fastConfig())
	events := refresher.Subscribe(1)
	refresher.Start()

	refresher.Stop()
	refresher.Stop()

	for range events {
	}
	store.Start("a", "")
	assert.True(t, store.HasActive())
}

func TestWithDefaults(t *testing.T) {
	config := withDefaults(model.RefreshConfig{})

	assert.Equal(t, time.Second, config.TickInterval)
	assert.Equal(t, 5*time.Second, config.IdleCheckInterval)
	assert.Equal(t, 10*time.Minute, config.IdleStopAfter)
}
