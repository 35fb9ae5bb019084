package history

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"homescope/server/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// RecordQueue is an in-memory queue of comparison records awaiting
// persistence.
type RecordQueue struct {
	items    chan *models.ComparisonRecord
	done     chan struct{}
	closed   bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []func(*models.ComparisonRecord) error
}

// NewRecordQueue creates a new queue with the specified buffer size
func NewRecordQueue(bufferSize int, logger *logrus.Logger) *RecordQueue {
	return &RecordQueue{
		items:    make(chan *models.ComparisonRecord, bufferSize),
		done:     make(chan struct{}),
		logger:   logger,
		handlers: make([]func(*models.ComparisonRecord) error, 0),
	}
}

// Push adds a record to the queue without blocking; a full queue returns
// ErrQueueFull so the caller can drop the record.
func (q *RecordQueue) Push(record *models.ComparisonRecord) error {
	// Hold the read lock across the send: Close takes the write lock
	// before closing the channel, so the send cannot race it.
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.items <- record:
		q.logger.WithField("comparison_id", record.ID).Debug("Pushed record to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler function that will be called for each record
func (q *RecordQueue) Subscribe(handler func(*models.ComparisonRecord) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start begins processing items in the queue
func (q *RecordQueue) Start() {
	go q.process()
}

func (q *RecordQueue) process() {
	for {
		select {
		case <-q.done:
			return
		case record := <-q.items:
			if record == nil {
				return
			}
			q.dispatch(record)
		}
	}
}

func (q *RecordQueue) dispatch(record *models.ComparisonRecord) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(record); err != nil {
			q.logger.WithError(err).Error("Handler failed to process record")
		}
	}
}

// Close stops the queue and prevents new items from being added
func (q *RecordQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	q.closed = true
	close(q.done)
	close(q.items)
	return nil
}

// Len returns the current number of queued records
func (q *RecordQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed
func (q *RecordQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
