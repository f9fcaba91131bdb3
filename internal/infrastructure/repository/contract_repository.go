package repository

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"

	"github.com/bizdash/import-service/internal/domain/contract"
	"github.com/bizdash/import-service/internal/infrastructure/db/models"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) Create(ctx context.Context, c contract.Contract) (contract.Contract, error) {
	row := models.Contract{
		ID:            uuid.NewString(),
		Code:          c.Code,
		Title:         c.Title,
		Type:          string(c.Type),
		PartnerID:     c.PartnerID,
		UnitID:        c.UnitID,
		SalespersonID: nullableText(c.SalespersonID),
		Value:         c.Value,
		EstimatedCost: c.EstimatedCost,
		SignedDate:    c.SignedDate,
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		Status:        string(c.Status),
		Category:      string(c.Category),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return contract.Contract{}, errors.Wrap(err, "insert contract")
	}
	c.ID = row.ID
	return c, nil
}

// SequenceRepository allocates contract numbers with a single upsert so two
// importers never receive the same number.
type SequenceRepository struct {
	pool *pgxpool.Pool
}

func NewSequenceRepository(pool *pgxpool.Pool) *SequenceRepository {
	return &SequenceRepository{pool: pool}
}

func (r *SequenceRepository) NextSequence(ctx context.Context, unitID string, year int) (int, error) {
	var next int
	err := r.pool.QueryRow(ctx, `
INSERT INTO contract_sequences (unit_id, year, last_value)
VALUES ($1, $2, 1)
ON CONFLICT (unit_id, year)
DO UPDATE SET last_value = contract_sequences.last_value + 1
RETURNING last_value
`, unitID, year).Scan(&next)
	if err != nil {
		return 0, errors.Wrapf(err, "next contract sequence for unit %s/%d", unitID, year)
	}
	return next, nil
}

func nullableText(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
