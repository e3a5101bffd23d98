package storage

import (
	"log"
	"sync"

	"timetracker/internal/core/model"
)

// Writer persists snapshots in the background. Only the most recent pending
// snapshot is written, so a burst of mutations costs a single save.
type Writer struct {
	path     string
	mu       sync.Mutex
	pending  *model.Snapshot
	wake     chan struct{}
	done     chan struct{}
	finished chan struct{}
	closed   bool
	onError  func(error)
}

// NewWriter starts a writer for the data file at path.
func NewWriter(path string) *Writer {
	writer := &Writer{
		path:     path,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
		onError: func(err error) {
			log.Printf("save snapshot: %v", err)
		},
	}
	go writer.run()
	return writer
}

// Observe queues a snapshot for saving. It never blocks on I/O and is meant
// to be registered as a store listener.
func (writer *Writer) Observe(snapshot model.Snapshot) {
	writer.mu.Lock()
	if writer.closed {
		writer.mu.Unlock()
		return
	}
	writer.pending = &snapshot
	writer.mu.Unlock()

	select {
	case writer.wake <- struct{}{}:
	default:
	}
}

// Close writes any pending snapshot and stops the writer.
func (writer *Writer) Close() {
	writer.mu.Lock()
	if writer.closed {
		writer.mu.Unlock()
		<-writer.finished
		return
	}
	writer.closed = true
	writer.mu.Unlock()

	close(writer.done)
	<-writer.finished
}

func (writer *Writer) run() {
	defer close(writer.finished)

	for {
		select {
		case <-writer.wake:
			writer.flush()
		case <-writer.done:
			writer.flush()
			return
		}
	}
}

func (writer *Writer) flush() {
	writer.mu.Lock()
	pending := writer.pending
	writer.pending = nil
	writer.mu.Unlock()

	if pending == nil {
		return
	}
	if err := SaveSnapshot(writer.path, *pending); err != nil {
		writer.onError(err)
	}
}
