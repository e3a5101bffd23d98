package refresh

import "time"

// EventType defines the type of Refresher event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventIdleStop    EventType = "idle_stop"
	EventIdleError   EventType = "idle_error"
)

// Event represents a status update for observers. An empty TaskName means
// no task is being tracked.
type Event struct {
	Type     EventType
	TaskName string
	Elapsed  time.Duration
	Message  string
	At       time.Time
}

// Active reports whether the event refers to a running task.
func (event Event) Active() bool {
	return event.TaskName != ""
}
