package importing

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const maxFailureMessage = 1000

// Creator is the persistence collaborator for one entity. Prepare-style work
// that must observe the row itself (sequence allocation) belongs inside
// Create so it runs immediately before the write.
type Creator[T any] interface {
	Create(ctx context.Context, row ParsedRow[T]) error
}

type CreatorFunc[T any] func(ctx context.Context, row ParsedRow[T]) error

func (f CreatorFunc[T]) Create(ctx context.Context, row ParsedRow[T]) error {
	return f(ctx, row)
}

type RowFailure struct {
	RowIndex int    `json:"row_index"`
	Message  string `json:"message"`
}

// BatchResult accounts for one batch run. SuccessCount+len(Failures) always
// equals Attempts.
type BatchResult struct {
	SuccessCount int          `json:"success_count"`
	Failures     []RowFailure `json:"failures"`
	Attempts     int          `json:"attempts"`
	Cancelled    bool         `json:"cancelled"`
}

type Progress struct {
	RowIndex  int
	Attempted int
	Total     int
	Succeeded int
	Failed    int
}

// Metrics receives pipeline observations.
type Metrics interface {
	ObserveParse(entity string, valid, invalid int)
	ObserveRow(entity string, success bool)
	ObserveBatch(entity string, elapsed time.Duration, cancelled bool)
}

type nopMetrics struct{}

func (nopMetrics) ObserveParse(string, int, int) {}

func (nopMetrics) ObserveRow(string, bool) {}

func (nopMetrics) ObserveBatch(string, time.Duration, bool) {}

// BatchImporter creates valid rows one at a time in file order. A failed row
// is recorded and the batch moves on; nothing is retried.
type BatchImporter[T any] struct {
	entity  string
	creator Creator[T]
	logger  logrus.FieldLogger
	metrics Metrics
}

func NewBatchImporter[T any](entity string, creator Creator[T], logger logrus.FieldLogger, metrics Metrics) *BatchImporter[T] {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &BatchImporter[T]{entity: entity, creator: creator, logger: logger, metrics: metrics}
}

// Run attempts every valid row. Cancellation is checked between rows; a
// cancelled run returns the partial result together with ctx.Err().
func (b *BatchImporter[T]) Run(ctx context.Context, rows []ParsedRow[T], onProgress func(Progress)) (BatchResult, error) {
	started := time.Now()
	result := BatchResult{Failures: make([]RowFailure, 0)}

	valid := make([]ParsedRow[T], 0, len(rows))
	for _, row := range rows {
		if row.IsValid() {
			valid = append(valid, row)
		}
	}

	log := b.logger.WithField("entity", b.entity)
	for _, row := range valid {
		if err := ctx.Err(); err != nil {
			result.Cancelled = true
			log.WithField("attempts", result.Attempts).Warn("import cancelled")
			b.metrics.ObserveBatch(b.entity, time.Since(started), true)
			return result, err
		}

		result.Attempts++
		if err := b.creator.Create(ctx, row); err != nil {
			perr := &PersistenceError{RowIndex: row.RowIndex, Err: err}
			result.Failures = append(result.Failures, RowFailure{
				RowIndex: row.RowIndex,
				Message:  truncateReason(err.Error()),
			})
			log.WithError(perr).WithField("row", row.RowIndex).Warn("row import failed")
			b.metrics.ObserveRow(b.entity, false)
		} else {
			result.SuccessCount++
			b.metrics.ObserveRow(b.entity, true)
		}

		if onProgress != nil {
			onProgress(Progress{
				RowIndex:  row.RowIndex,
				Attempted: result.Attempts,
				Total:     len(valid),
				Succeeded: result.SuccessCount,
				Failed:    len(result.Failures),
			})
		}
	}

	log.WithFields(logrus.Fields{
		"succeeded": result.SuccessCount,
		"failed":    len(result.Failures),
		"elapsed":   time.Since(started).String(),
	}).Info("import batch finished")
	b.metrics.ObserveBatch(b.entity, time.Since(started), false)

	return result, nil
}

func truncateReason(reason string) string {
	reason = strings.TrimSpace(reason)
	if len(reason) <= maxFailureMessage {
		return reason
	}
	return reason[:maxFailureMessage]
}
