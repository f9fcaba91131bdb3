package importrun

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/bizdash/import-service/internal/domain/importrun"
)

type GetImportRunInput struct {
	ID string
}

type ImportRunFailureOutput struct {
	RowIndex int    `json:"row_index"`
	Message  string `json:"message"`
}

type GetImportRunOutput struct {
	ID         string                   `json:"id"`
	SessionID  string                   `json:"session_id"`
	Entity     string                   `json:"entity"`
	FileName   string                   `json:"file_name"`
	Status     string                   `json:"status"`
	TotalRows  int                      `json:"total_rows"`
	ValidRows  int                      `json:"valid_rows"`
	Invalid    int                      `json:"invalid_rows"`
	Attempts   int                      `json:"attempts"`
	Succeeded  int                      `json:"succeeded"`
	Failed     int                      `json:"failed"`
	Failures   []ImportRunFailureOutput `json:"failures"`
	StartedAt  time.Time                `json:"started_at"`
	FinishedAt time.Time                `json:"finished_at"`
}

type GetImportRun interface {
	Execute(ctx context.Context, in GetImportRunInput) (GetImportRunOutput, error)
}

type getImportRun struct {
	repo domain.Repository
}

func NewGetImportRun(repo domain.Repository) GetImportRun {
	return &getImportRun{repo: repo}
}

func (uc *getImportRun) Execute(ctx context.Context, in GetImportRunInput) (GetImportRunOutput, error) {
	id, err := uuid.Parse(in.ID)
	if err != nil {
		return GetImportRunOutput{}, ErrInvalidRunID
	}

	run, err := uc.repo.GetByID(ctx, id.String())
	if err != nil {
		if errors.Is(err, domain.ErrRunNotFound) {
			return GetImportRunOutput{}, ErrRunNotFound
		}
		return GetImportRunOutput{}, fmt.Errorf("%w: %v", ErrGetImportRun, err)
	}

	failures := make([]ImportRunFailureOutput, 0, len(run.Failures))
	for _, failure := range run.Failures {
		failures = append(failures, ImportRunFailureOutput{
			RowIndex: failure.RowIndex,
			Message:  failure.Message,
		})
	}

	return GetImportRunOutput{
		ID:         run.ID,
		SessionID:  run.SessionID,
		Entity:     run.Entity,
		FileName:   run.FileName,
		Status:     string(run.Status),
		TotalRows:  run.TotalRows,
		ValidRows:  run.ValidRows,
		Invalid:    run.Invalid,
		Attempts:   run.Attempts,
		Succeeded:  run.Succeeded,
		Failed:     run.Failed,
		Failures:   failures,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
	}, nil
}
