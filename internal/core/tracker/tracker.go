package tracker

import (
	"strings"
	"sync"
	"time"

	"timetracker/internal/core/model"
)

// Listener receives the committed state after every mutation.
type Listener func(model.Snapshot)

// Config contains runtime options for the Store.
type Config struct {
	// Now overrides the wall clock, mainly for tests.
	Now func() time.Time
}

// TaskPatch holds optional fields merged into an existing task by Update.
type TaskPatch struct {
	Name    *string
	History []string
}

// Store is the single source of truth for tracked tasks. At most one task is
// active, and the active task always ends with a running interval.
//
// Operations are serialized: each one commits and notifies every listener
// before the next one starts. Listeners may read from the store but must not
// call its mutating methods.
type Store struct {
	opMu      sync.Mutex
	mu        sync.RWMutex
	tasks     []model.Task
	active    string
	now       func() time.Time
	listeners map[int]Listener
	nextID    int
}

// New creates a Store seeded with the provided snapshot. The snapshot is
// normalized first, so a store never starts from an inconsistent state.
func New(snapshot model.Snapshot, options Config) *Store {
	if options.Now == nil {
		options.Now = time.Now
	}

	store := &Store{
		now:       options.Now,
		listeners: make(map[int]Listener),
	}
	seeded := model.Normalize(snapshot)
	store.tasks = seeded.Tasks
	if task, ok := seeded.ActiveTask(); ok {
		store.active = task.Name
	}
	return store
}

// Subscribe registers a listener and returns a function removing it.
func (store *Store) Subscribe(listener Listener) func() {
	store.mu.Lock()
	id := store.nextID
	store.nextID++
	store.listeners[id] = listener
	store.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			store.mu.Lock()
			delete(store.listeners, id)
			store.mu.Unlock()
		})
	}
}

// Start begins tracking the named task, stopping whichever task was active.
// Blank names are ignored, and starting the already active task does nothing.
// An empty description carries over the description of the task's previous
// interval.
func (store *Store) Start(name, description string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	description = strings.TrimSpace(description)

	store.mutate(func(now time.Time) bool {
		if store.active == name {
			return false
		}
		store.closeActiveLocked(now)

		index := store.indexLocked(name)
		var task model.Task
		if index == -1 {
			task = model.Task{Name: name, History: []string{}}
		} else {
			task = store.tasks[index]
			store.tasks = append(store.tasks[:index], store.tasks[index+1:]...)
		}

		if description != "" {
			task.History = model.PushHistory(task.History, description)
		} else {
			description = model.LastDescription(task)
		}
		model.AppendOpenInterval(&task, now, description)

		store.tasks = append([]model.Task{task}, store.tasks...)
		store.active = name
		return true
	})
}

// StopActive ends the running task and returns its name.
func (store *Store) StopActive() (string, bool) {
	var stopped string
	store.mutate(func(now time.Time) bool {
		if store.active == "" {
			return false
		}
		stopped = store.active
		store.closeActiveLocked(now)
		return true
	})
	return stopped, stopped != ""
}

// Reset clears the recorded intervals of the named task, keeping its history.
// Resetting the active task stops it.
func (store *Store) Reset(name string) {
	name = strings.TrimSpace(name)
	store.mutate(func(time.Time) bool {
		index := store.indexLocked(name)
		if index == -1 {
			return false
		}
		store.tasks[index].Intervals = nil
		if store.active == name {
			store.active = ""
		}
		return true
	})
}

// Delete removes the named task. Deleting the active task stops tracking.
func (store *Store) Delete(name string) {
	name = strings.TrimSpace(name)
	store.mutate(func(time.Time) bool {
		index := store.indexLocked(name)
		if index == -1 {
			return false
		}
		store.tasks = append(store.tasks[:index], store.tasks[index+1:]...)
		if store.active == name {
			store.active = ""
		}
		return true
	})
}

// Update merges the patch into the task named oldName. A rename to a blank
// name or to the name of another task is ignored.
func (store *Store) Update(oldName string, patch TaskPatch) {
	oldName = strings.TrimSpace(oldName)
	store.mutate(func(time.Time) bool {
		index := store.indexLocked(oldName)
		if index == -1 {
			return false
		}

		task := store.tasks[index]
		changed := false
		if patch.Name != nil {
			newName := strings.TrimSpace(*patch.Name)
			if newName == "" {
				return false
			}
			if newName != oldName {
				if store.indexLocked(newName) != -1 {
					return false
				}
				task.Name = newName
				if store.active == oldName {
					store.active = newName
				}
				changed = true
			}
		}
		if patch.History != nil {
			history := []string{}
			for i := len(patch.History) - 1; i >= 0; i-- {
				history = model.PushHistory(history, patch.History[i])
			}
			task.History = history
			changed = true
		}
		store.tasks[index] = task
		return changed
	})
}

// DescribeActive replaces the description of the running interval.
func (store *Store) DescribeActive(description string) {
	description = strings.TrimSpace(description)
	store.mutate(func(time.Time) bool {
		if store.active == "" {
			return false
		}
		task := &store.tasks[store.indexLocked(store.active)]
		task.Intervals[len(task.Intervals)-1].Description = description
		task.History = model.PushHistory(task.History, description)
		return true
	})
}

// Active returns a copy of the running task.
func (store *Store) Active() (model.Task, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	if store.active == "" {
		return model.Task{}, false
	}
	return store.tasks[store.indexLocked(store.active)].Clone(), true
}

// HasActive reports whether a task is running.
func (store *Store) HasActive() bool {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.active != ""
}

// Task returns a copy of the named task.
func (store *Store) Task(name string) (model.Task, bool) {
	name = strings.TrimSpace(name)
	store.mu.RLock()
	defer store.mu.RUnlock()

	index := store.indexLocked(name)
	if index == -1 {
		return model.Task{}, false
	}
	return store.tasks[index].Clone(), true
}

// Tasks returns copies of all tasks, most recently started first.
func (store *Store) Tasks() []model.Task {
	return store.Snapshot().Tasks
}

// Snapshot returns a deep copy of the current state.
func (store *Store) Snapshot() model.Snapshot {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.snapshotLocked()
}

// Elapsed sums the task's intervals against a single reading of the clock.
func (store *Store) Elapsed(task model.Task) time.Duration {
	return model.Elapsed(task, store.now())
}

// Now returns the store clock reading.
func (store *Store) Now() time.Time {
	return store.now()
}

// mutate applies change under the write lock and, when it reports a change,
// notifies listeners before releasing the operation lock.
func (store *Store) mutate(change func(now time.Time) bool) {
	store.opMu.Lock()
	defer store.opMu.Unlock()

	store.mu.Lock()
	if !change(store.now()) {
		store.mu.Unlock()
		return
	}
	snapshot := store.snapshotLocked()
	listeners := make([]Listener, 0, len(store.listeners))
	for id := 0; id < store.nextID; id++ {
		if listener, ok := store.listeners[id]; ok {
			listeners = append(listeners, listener)
		}
	}
	store.mu.Unlock()

	for _, listener := range listeners {
		listener(snapshot.Clone())
	}
}

func (store *Store) closeActiveLocked(now time.Time) {
	if store.active == "" {
		return
	}
	if index := store.indexLocked(store.active); index != -1 {
		model.CloseOpenInterval(&store.tasks[index], now)
	}
	store.active = ""
}

func (store *Store) indexLocked(name string) int {
	for i, task := range store.tasks {
		if task.Name == name {
			return i
		}
	}
	return -1
}

func (store *Store) snapshotLocked() model.Snapshot {
	snapshot := model.Snapshot{
		Tasks:  make([]model.Task, len(store.tasks)),
		Active: model.NoActiveTask,
	}
	for i, task := range store.tasks {
		snapshot.Tasks[i] = task.Clone()
		if store.active != "" && task.Name == store.active {
			snapshot.Active = i
		}
	}
	return snapshot
}
