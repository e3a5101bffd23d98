package model

import "strings"

// Normalize repairs a snapshot loaded from an untrusted source so that every
// invariant of the tracker holds:
//
//   - task names are non-blank and unique (first occurrence wins)
//   - history is present, deduplicated and capped
//   - only the last interval of a task may be running, and ends never
//     precede starts
//   - Active is NoActiveTask or points at the only task with a running
//     interval
//
// A running interval on a task that cannot be active is closed at its own
// start, so no time is invented for it.
func Normalize(snapshot Snapshot) Snapshot {
	activeName := ""
	if snapshot.Active >= 0 && snapshot.Active < len(snapshot.Tasks) {
		activeName = strings.TrimSpace(snapshot.Tasks[snapshot.Active].Name)
	}

	seen := make(map[string]bool, len(snapshot.Tasks))
	tasks := make([]Task, 0, len(snapshot.Tasks))
	for _, raw := range snapshot.Tasks {
		name := strings.TrimSpace(raw.Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		tasks = append(tasks, normalizeTask(name, raw))
	}

	active := NoActiveTask
	var running []int
	for i, task := range tasks {
		if _, open := task.OpenInterval(); open {
			running = append(running, i)
			if task.Name == activeName {
				active = i
			}
		}
	}
	if active == NoActiveTask && len(running) == 1 {
		active = running[0]
	}
	for _, i := range running {
		if i == active {
			continue
		}
		last := &tasks[i].Intervals[len(tasks[i].Intervals)-1]
		last.End = last.Start
	}

	return Snapshot{Tasks: tasks, Active: active}
}

func normalizeTask(name string, raw Task) Task {
	task := Task{Name: name, History: []string{}}
	for i := len(raw.History) - 1; i >= 0; i-- {
		task.History = PushHistory(task.History, raw.History[i])
	}

	for _, interval := range raw.Intervals {
		// An interval without a start cannot be measured.
		if interval.Start.IsZero() {
			continue
		}
		task.Intervals = append(task.Intervals, interval)
	}
	for i := range task.Intervals {
		interval := &task.Intervals[i]
		if interval.Open() && i < len(task.Intervals)-1 {
			interval.End = task.Intervals[i+1].Start
		}
		if !interval.Open() && interval.End.Before(interval.Start) {
			interval.End = interval.Start
		}
	}
	return task
}
