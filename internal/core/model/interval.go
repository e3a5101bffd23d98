package model

import "time"

// CloseOpenInterval ends the task's trailing running interval at now.
// An end before the interval start is clamped to the start.
func CloseOpenInterval(task *Task, now time.Time) {
	last := len(task.Intervals) - 1
	if last < 0 || !task.Intervals[last].Open() {
		return
	}
	if now.Before(task.Intervals[last].Start) {
		now = task.Intervals[last].Start
	}
	task.Intervals[last].End = now
}

// AppendOpenInterval starts a new running interval at now.
func AppendOpenInterval(task *Task, now time.Time, description string) {
	task.Intervals = append(task.Intervals, Interval{
		Start:       now,
		Description: description,
	})
}

// Elapsed sums all intervals of the task; a running interval counts up to now.
func Elapsed(task Task, now time.Time) time.Duration {
	var total time.Duration
	for _, interval := range task.Intervals {
		end := interval.End
		if interval.Open() {
			end = now
		}
		if span := end.Sub(interval.Start); span > 0 {
			total += span
		}
	}
	return total
}

// LastDescription returns the description of the most recent interval.
func LastDescription(task Task) string {
	if len(task.Intervals) == 0 {
		return ""
	}
	return task.Intervals[len(task.Intervals)-1].Description
}
