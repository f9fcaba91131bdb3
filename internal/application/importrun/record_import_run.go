package importrun

import (
	"context"
	"fmt"

	"github.com/bizdash/import-service/internal/application/importing"
	domain "github.com/bizdash/import-service/internal/domain/importrun"
)

// Recorder stores the outcome of every confirmed import session.
type Recorder struct {
	repo domain.Repository
}

func NewRecorder(repo domain.Repository) *Recorder {
	return &Recorder{repo: repo}
}

func (r *Recorder) RecordRun(ctx context.Context, in importing.RunInput) (string, error) {
	report := in.Report
	status := domain.StatusCompleted
	if report.Cancelled {
		status = domain.StatusCancelled
	}

	failures := make([]domain.Failure, 0, len(report.Failures))
	for _, failure := range report.Failures {
		failures = append(failures, domain.Failure{RowIndex: failure.RowIndex, Message: failure.Message})
	}

	id, err := r.repo.Create(ctx, domain.Run{
		SessionID:  report.SessionID,
		Entity:     report.Entity,
		FileName:   report.FileName,
		Status:     status,
		TotalRows:  report.Total,
		ValidRows:  report.Valid,
		Invalid:    report.Invalid,
		Attempts:   report.Attempts,
		Succeeded:  report.Succeeded,
		Failed:     report.Failed,
		Failures:   failures,
		StartedAt:  in.StartedAt,
		FinishedAt: in.FinishedAt,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRecordImportRun, err)
	}
	return id, nil
}
