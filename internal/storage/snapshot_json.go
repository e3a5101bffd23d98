package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"timetracker/internal/core/model"
)

const dataFileName = "data.json"

const (
	activeTaskKey = "activeTask"
	tasksKey      = "tasks"
)

type jsonTask struct {
	Name      string         `json:"name"`
	Intervals []jsonInterval `json:"intervals"`
	History   []string       `json:"history"`
}

type jsonInterval struct {
	Start       *int64 `json:"start"`
	End         *int64 `json:"end"`
	Description string `json:"description,omitempty"`
}

// DataPath returns the default location of the tracker data file.
func DataPath(appName string) (string, error) {
	appDir, err := resolveAppDir(appName)
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, dataFileName), nil
}

// LoadSnapshot reads the tracker state from path.
// A missing or empty file yields an empty snapshot.
func LoadSnapshot(path string) (model.Snapshot, error) {
	var snapshot model.Snapshot
	err := withFileLock(path, os.O_RDONLY, func(file *os.File) error {
		data, err := readAll(file)
		if err != nil {
			return err
		}
		snapshot, err = DecodeSnapshot(data)
		return err
	})
	if errors.Is(err, os.ErrNotExist) {
		return model.EmptySnapshot(), nil
	}
	if err != nil {
		return model.EmptySnapshot(), err
	}
	return snapshot, nil
}

// SaveSnapshot writes the tracker state to path, keeping any other
// top-level fields already stored in the file.
func SaveSnapshot(path string, snapshot model.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	return withFileLock(path, os.O_RDWR|os.O_CREATE, func(file *os.File) error {
		existing, err := readAll(file)
		if err != nil {
			return err
		}
		serialized, err := EncodeSnapshot(existing, snapshot)
		if err != nil {
			return err
		}
		if err := file.Truncate(0); err != nil {
			return fmt.Errorf("truncate data file: %w", err)
		}
		if _, err := file.Seek(0, 0); err != nil {
			return fmt.Errorf("seek data file: %w", err)
		}
		if _, err := file.Write(serialized); err != nil {
			return fmt.Errorf("write data file: %w", err)
		}
		return nil
	})
}

// DecodeSnapshot parses a persisted document. Missing or wrongly typed
// fields fall back to defaults and the result is normalized; only a document
// that is not a JSON object is an error.
func DecodeSnapshot(data []byte) (model.Snapshot, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return model.EmptySnapshot(), nil
	}

	var document map[string]json.RawMessage
	if err := json.Unmarshal(data, &document); err != nil {
		return model.EmptySnapshot(), fmt.Errorf("parse data json: %w", err)
	}

	snapshot := model.EmptySnapshot()
	if raw, ok := document[activeTaskKey]; ok {
		active := model.NoActiveTask
		if err := json.Unmarshal(raw, &active); err == nil {
			snapshot.Active = active
		}
	}

	var rawTasks []json.RawMessage
	if raw, ok := document[tasksKey]; ok {
		if err := json.Unmarshal(raw, &rawTasks); err != nil {
			rawTasks = nil
		}
	}
	for _, rawTask := range rawTasks {
		// A task without a usable name stays as an unnamed slot so activeTask
		// still lines up; Normalize drops it.
		snapshot.Tasks = append(snapshot.Tasks, decodeTask(rawTask))
	}

	return model.Normalize(snapshot), nil
}

// EncodeSnapshot merges the snapshot into an existing document.
func EncodeSnapshot(existing []byte, snapshot model.Snapshot) ([]byte, error) {
	document := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(existing)) > 0 {
		if err := json.Unmarshal(existing, &document); err != nil {
			document = map[string]json.RawMessage{}
		}
	}

	tasks := make([]jsonTask, 0, len(snapshot.Tasks))
	for _, task := range snapshot.Tasks {
		tasks = append(tasks, toJSONTask(task))
	}
	encodedTasks, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	encodedActive, err := json.Marshal(snapshot.Active)
	if err != nil {
		return nil, fmt.Errorf("marshal active task: %w", err)
	}
	document[tasksKey] = encodedTasks
	document[activeTaskKey] = encodedActive

	serialized, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal data json: %w", err)
	}
	return serialized, nil
}

// decodeTask reads the fields of one task independently, so a wrongly
// typed field falls back to its default without losing the rest.
func decodeTask(raw json.RawMessage) model.Task {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return model.Task{}
	}

	var task model.Task
	if err := json.Unmarshal(fields["name"], &task.Name); err != nil {
		return model.Task{}
	}

	var history []json.RawMessage
	if err := json.Unmarshal(fields["history"], &history); err == nil {
		for _, rawEntry := range history {
			var entry string
			if err := json.Unmarshal(rawEntry, &entry); err == nil {
				task.History = append(task.History, entry)
			}
		}
	}

	var intervals []json.RawMessage
	if err := json.Unmarshal(fields["intervals"], &intervals); err == nil {
		for _, rawInterval := range intervals {
			if interval, ok := decodeInterval(rawInterval); ok {
				task.Intervals = append(task.Intervals, interval)
			}
		}
	}
	return task
}

// decodeInterval accepts the object form and the legacy [start, end] tuple.
// An interval without a numeric start is dropped; a bad end leaves it
// running and a bad description is ignored.
func decodeInterval(raw json.RawMessage) (model.Interval, bool) {
	var start, end json.RawMessage
	var description string

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var tuple []json.RawMessage
		if err := json.Unmarshal(trimmed, &tuple); err != nil {
			return model.Interval{}, false
		}
		if len(tuple) > 0 {
			start = tuple[0]
		}
		if len(tuple) > 1 {
			end = tuple[1]
		}
	} else {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return model.Interval{}, false
		}
		start, end = fields["start"], fields["end"]
		if err := json.Unmarshal(fields["description"], &description); err != nil {
			description = ""
		}
	}

	startMillis, ok := decodeMillis(start)
	if !ok {
		return model.Interval{}, false
	}
	interval := model.Interval{Start: time.UnixMilli(startMillis), Description: description}
	if endMillis, ok := decodeMillis(end); ok {
		interval.End = time.UnixMilli(endMillis)
	}
	return interval, true
}

func decodeMillis(raw json.RawMessage) (int64, bool) {
	var millis *int64
	if err := json.Unmarshal(raw, &millis); err != nil || millis == nil {
		return 0, false
	}
	return *millis, true
}

func toJSONTask(task model.Task) jsonTask {
	encoded := jsonTask{
		Name:      task.Name,
		Intervals: make([]jsonInterval, 0, len(task.Intervals)),
		History:   append([]string{}, task.History...),
	}
	for _, interval := range task.Intervals {
		start := interval.Start.UnixMilli()
		converted := jsonInterval{Start: &start, Description: interval.Description}
		if !interval.Open() {
			end := interval.End.UnixMilli()
			converted.End = &end
		}
		encoded.Intervals = append(encoded.Intervals, converted)
	}
	return encoded
}

func readAll(file *os.File) ([]byte, error) {
	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat data file: %w", err)
	}
	if info.Size() == 0 {
		return nil, nil
	}
	data := make([]byte, info.Size())
	if _, err := file.ReadAt(data, 0); err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	return data, nil
}
