package refresh

import (
	"errors"
	"sync"
	"time"

	"timetracker/internal/core/model"
	"timetracker/internal/core/tracker"
)

// ErrIdleUnsupported indicates idle detection is not available on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

// IdleChecker reports the duration of user inactivity.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

// Refresher publishes the elapsed time of the active task on a fixed tick.
// The tick only runs while a task is active and is restarted whenever the
// active task changes, so an event never refers to a stale task.
type Refresher struct {
	mu            sync.Mutex
	store         *tracker.Store
	config        model.RefreshConfig
	idleChecker   IdleChecker
	lastIdleCheck time.Time
	events        []chan Event
	unsubscribe   func()
	tickStop      chan struct{}
	taskName      string
	running       bool
}

// New creates a Refresher observing the provided store.
func New(store *tracker.Store, config model.RefreshConfig) *Refresher {
	return &Refresher{
		store:  store,
		config: withDefaults(config),
	}
}

// SetIdleChecker injects an idle checker.
func (refresher *Refresher) SetIdleChecker(checker IdleChecker) {
	refresher.mu.Lock()
	defer refresher.mu.Unlock()
	refresher.idleChecker = checker
}

// Subscribe registers a new observer channel.
func (refresher *Refresher) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	refresher.mu.Lock()
	refresher.events = append(refresher.events, ch)
	refresher.mu.Unlock()
	return ch
}

// Start begins following the store.
func (refresher *Refresher) Start() {
	refresher.mu.Lock()
	if refresher.running {
		refresher.mu.Unlock()
		return
	}
	refresher.running = true
	refresher.taskName = ""
	refresher.mu.Unlock()

	unsubscribe := refresher.store.Subscribe(refresher.handleSnapshot)
	refresher.mu.Lock()
	refresher.unsubscribe = unsubscribe
	refresher.mu.Unlock()

	refresher.handleSnapshot(refresher.store.Snapshot())
}

// Stop cancels any pending tick, detaches from the store and closes
// observers.
func (refresher *Refresher) Stop() {
	refresher.mu.Lock()
	if !refresher.running {
		refresher.mu.Unlock()
		return
	}
	refresher.running = false
	refresher.cancelTickLocked()
	unsubscribe := refresher.unsubscribe
	refresher.unsubscribe = nil
	events := refresher.events
	refresher.events = nil
	refresher.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	for _, ch := range events {
		close(ch)
	}
}

// UpdateConfig applies new settings, restarting the tick if one is pending.
func (refresher *Refresher) UpdateConfig(config model.RefreshConfig) {
	refresher.mu.Lock()
	defer refresher.mu.Unlock()

	refresher.config = withDefaults(config)
	refresher.lastIdleCheck = time.Time{}
	if refresher.running && refresher.taskName != "" {
		refresher.cancelTickLocked()
		refresher.startTickLocked()
	}
}

func (refresher *Refresher) handleSnapshot(snapshot model.Snapshot) {
	refresher.mu.Lock()
	defer refresher.mu.Unlock()
	if !refresher.running {
		return
	}

	task, active := snapshot.ActiveTask()
	if active && task.Name == refresher.taskName && refresher.tickStop != nil {
		return
	}
	if !active && refresher.taskName == "" {
		return
	}

	refresher.cancelTickLocked()
	refresher.taskName = ""
	event := Event{Type: EventStateChange, At: refresher.store.Now()}
	if active {
		refresher.taskName = task.Name
		refresher.lastIdleCheck = time.Time{}
		refresher.startTickLocked()
		event.TaskName = task.Name
		event.Elapsed = model.Elapsed(task, event.At)
	}
	refresher.emitLocked(event)
}

func (refresher *Refresher) startTickLocked() {
	stop := make(chan struct{})
	refresher.tickStop = stop
	go refresher.run(stop, refresher.config.TickInterval)
}

func (refresher *Refresher) cancelTickLocked() {
	if refresher.tickStop != nil {
		close(refresher.tickStop)
		refresher.tickStop = nil
	}
}

func (refresher *Refresher) run(stop chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case tickTime := <-ticker.C:
			refresher.tick(stop, tickTime)
		}
	}
}

func (refresher *Refresher) tick(stop chan struct{}, tickTime time.Time) {
	refresher.mu.Lock()
	select {
	case <-stop:
		refresher.mu.Unlock()
		return
	default:
	}

	if refresher.idleExceededLocked(tickTime) {
		name := refresher.taskName
		refresher.emitLocked(Event{
			Type:     EventIdleStop,
			TaskName: name,
			Message:  "stopped after inactivity",
			At:       tickTime,
		})
		refresher.mu.Unlock()
		// The store notifies handleSnapshot, which cancels this tick.
		refresher.store.StopActive()
		return
	}

	task, ok := refresher.store.Active()
	if ok && task.Name == refresher.taskName {
		refresher.emitLocked(Event{
			Type:     EventProgress,
			TaskName: task.Name,
			Elapsed:  refresher.store.Elapsed(task),
			At:       tickTime,
		})
	}
	refresher.mu.Unlock()
}

func (refresher *Refresher) idleExceededLocked(now time.Time) bool {
	if !refresher.config.IdleStopEnabled || refresher.idleChecker == nil {
		return false
	}
	if !refresher.lastIdleCheck.IsZero() && now.Sub(refresher.lastIdleCheck) < refresher.config.IdleCheckInterval {
		return false
	}
	refresher.lastIdleCheck = now

	idleDuration, err := refresher.idleChecker.IdleDuration()
	if err != nil {
		if errors.Is(err, ErrIdleUnsupported) {
			refresher.config.IdleStopEnabled = false
		}
		refresher.emitLocked(Event{
			Type:     EventIdleError,
			TaskName: refresher.taskName,
			Message:  err.Error(),
			At:       now,
		})
		return false
	}
	return idleDuration >= refresher.config.IdleStopAfter
}

func (refresher *Refresher) emitLocked(event Event) {
	for _, ch := range refresher.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func withDefaults(config model.RefreshConfig) model.RefreshConfig {
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}
	if config.IdleCheckInterval <= 0 {
		config.IdleCheckInterval = 5 * time.Second
	}
	if config.IdleStopAfter <= 0 {
		config.IdleStopAfter = 10 * time.Minute
	}
	return config
}
