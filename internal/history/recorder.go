package history

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"homescope/server/config"
	"homescope/server/internal/database"
	"homescope/server/internal/models"
)

// Recorder persists comparison records in the background. Recording is
// best effort: a full queue drops the record with a warning rather than
// delaying a response.
type Recorder struct {
	db     *database.Database
	logger *logrus.Logger
	config *config.Config
	queue  *RecordQueue
}

func NewRecorder(db *database.Database, cfg *config.Config, logger *logrus.Logger) *Recorder {
	return &Recorder{
		db:     db,
		logger: logger,
		config: cfg,
		queue:  NewRecordQueue(cfg.History.QueueSize, logger),
	}
}

// Start begins draining the queue into the database.
func (r *Recorder) Start() {
	r.queue.Subscribe(r.persist)
	r.queue.Start()
}

// Stop closes the queue; queued records not yet drained are dropped.
func (r *Recorder) Stop() {
	if err := r.queue.Close(); err != nil {
		r.logger.WithError(err).Error("Failed to close history queue")
	}
}

// Record enqueues one comparison for persistence.
func (r *Recorder) Record(record *models.ComparisonRecord) {
	if err := r.queue.Push(record); err != nil {
		r.logger.WithError(err).WithField("comparison_id", record.ID).Warn("Dropping comparison record")
	}
}

// Recent returns the latest persisted records.
func (r *Recorder) Recent(limit int) ([]models.ComparisonRecord, error) {
	return r.db.RecentComparisons(limit)
}

// persist writes a single record with retry logic.
func (r *Recorder) persist(record *models.ComparisonRecord) error {
	var err error
	for attempt := 0; attempt <= r.config.History.MaxRetries; attempt++ {
		if attempt > 0 {
			r.logger.Infof("Retrying record write, attempt %d of %d", attempt, r.config.History.MaxRetries)
			time.Sleep(time.Duration(r.config.History.RetryDelay) * time.Second)
		}

		err = r.db.SaveComparison(record)
		if err == nil {
			r.logger.WithField("comparison_id", record.ID).Debug("Persisted comparison record")
			return nil
		}

		r.logger.Errorf("Record write failed: %v", err)
	}

	return fmt.Errorf("failed to persist record after %d attempts: %w", r.config.History.MaxRetries, err)
}
