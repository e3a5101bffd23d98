package model

import "time"

// NoActiveTask is the active index of a snapshot without a running task.
const NoActiveTask = -1

// Interval is a single tracked span of work. A zero End means the interval
// is still running.
type Interval struct {
	Start       time.Time
	End         time.Time
	Description string
}

// Open reports whether the interval is still running.
func (interval Interval) Open() bool {
	return interval.End.IsZero()
}

// Task is a named sequence of intervals plus the descriptions most recently
// used with it.
type Task struct {
	Name      string
	Intervals []Interval
	History   []string
}

// OpenInterval returns the trailing running interval, if any.
func (task Task) OpenInterval() (Interval, bool) {
	if len(task.Intervals) == 0 {
		return Interval{}, false
	}
	last := task.Intervals[len(task.Intervals)-1]
	return last, last.Open()
}

// Clone returns a deep copy of the task.
func (task Task) Clone() Task {
	clone := Task{Name: task.Name}
	if task.Intervals != nil {
		clone.Intervals = append([]Interval(nil), task.Intervals...)
	}
	clone.History = append([]string{}, task.History...)
	return clone
}

// Snapshot is the full tracker state as delivered to observers and
// persisted to disk. Tasks are ordered most recently started first.
type Snapshot struct {
	Tasks  []Task
	Active int
}

// EmptySnapshot returns a snapshot with no tasks and nothing running.
func EmptySnapshot() Snapshot {
	return Snapshot{Tasks: []Task{}, Active: NoActiveTask}
}

// ActiveTask returns the running task of the snapshot.
func (snapshot Snapshot) ActiveTask() (Task, bool) {
	if snapshot.Active < 0 || snapshot.Active >= len(snapshot.Tasks) {
		return Task{}, false
	}
	return snapshot.Tasks[snapshot.Active], true
}

// Clone returns a deep copy of the snapshot.
func (snapshot Snapshot) Clone() Snapshot {
	clone := Snapshot{Tasks: make([]Task, len(snapshot.Tasks)), Active: snapshot.Active}
	for i, task := range snapshot.Tasks {
		clone.Tasks[i] = task.Clone()
	}
	return clone
}
