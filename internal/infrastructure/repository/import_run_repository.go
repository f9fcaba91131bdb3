package repository

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bizdash/import-service/internal/domain/importrun"
	"github.com/bizdash/import-service/internal/infrastructure/db/models"
)

type ImportRunRepository struct {
	db *gorm.DB
}

func NewImportRunRepository(db *gorm.DB) *ImportRunRepository {
	return &ImportRunRepository{db: db}
}

// Create stores the run and its failures in one transaction.
func (r *ImportRunRepository) Create(ctx context.Context, run importrun.Run) (string, error) {
	row := models.ImportRun{
		ID:          uuid.NewString(),
		SessionID:   run.SessionID,
		Entity:      run.Entity,
		FileName:    run.FileName,
		Status:      string(run.Status),
		TotalRows:   run.TotalRows,
		ValidRows:   run.ValidRows,
		InvalidRows: run.Invalid,
		Attempts:    run.Attempts,
		Succeeded:   run.Succeeded,
		Failed:      run.Failed,
		StartedAt:   run.StartedAt,
		FinishedAt:  run.FinishedAt,
	}
	for _, failure := range run.Failures {
		row.Failures = append(row.Failures, models.ImportRunFailure{
			RowIndex: failure.RowIndex,
			Message:  failure.Message,
		})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if err != nil {
		return "", errors.Wrap(err, "create import run")
	}
	return row.ID, nil
}

func (r *ImportRunRepository) GetByID(ctx context.Context, id string) (*importrun.Run, error) {
	var row models.ImportRun

	err := r.db.WithContext(ctx).
		Preload("Failures", func(db *gorm.DB) *gorm.DB { return db.Order("row_index") }).
		First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, importrun.ErrRunNotFound
		}
		return nil, errors.Wrap(err, "get import run by id")
	}

	failures := make([]importrun.Failure, 0, len(row.Failures))
	for _, failure := range row.Failures {
		failures = append(failures, importrun.Failure{RowIndex: failure.RowIndex, Message: failure.Message})
	}

	return &importrun.Run{
		ID:         row.ID,
		SessionID:  row.SessionID,
		Entity:     row.Entity,
		FileName:   row.FileName,
		Status:     importrun.Status(row.Status),
		TotalRows:  row.TotalRows,
		ValidRows:  row.ValidRows,
		Invalid:    row.InvalidRows,
		Attempts:   row.Attempts,
		Succeeded:  row.Succeeded,
		Failed:     row.Failed,
		Failures:   failures,
		StartedAt:  row.StartedAt,
		FinishedAt: row.FinishedAt,
	}, nil
}
