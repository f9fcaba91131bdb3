package contract

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizdash/import-service/internal/application/importing"
	domain "github.com/bizdash/import-service/internal/domain/contract"
)

// Creator persists one valid contract row. The contract number is allocated
// right before the insert so numbers follow file order.
type Creator struct {
	repo      domain.Repository
	sequences domain.SequenceAllocator
	now       func() time.Time
}

func NewCreator(repo domain.Repository, sequences domain.SequenceAllocator) *Creator {
	return &Creator{repo: repo, sequences: sequences, now: time.Now}
}

func (c *Creator) Create(ctx context.Context, row importing.ParsedRow[Row]) error {
	unit, ok := row.Refs[RefUnit]
	if !ok {
		return fmt.Errorf("%w: row %d", domain.ErrMissingUnit, row.RowIndex)
	}
	partner, ok := row.Refs[RefCustomer]
	if !ok {
		return fmt.Errorf("%w: row %d", domain.ErrMissingPartner, row.RowIndex)
	}

	year := CodeYear(row.Data, c.now())
	seq, err := c.sequences.NextSequence(ctx, unit.ID, year)
	if err != nil {
		return fmt.Errorf("allocate contract number: %w", err)
	}

	entity, err := domain.New(domain.Contract{
		Code:          domain.FormatCode(unit.Code, year, seq),
		Title:         row.Data.Title,
		Type:          domain.Type(row.Data.Type),
		PartnerID:     partner.ID,
		UnitID:        unit.ID,
		SalespersonID: row.RefID(RefSalesperson),
		Value:         decimal.NewFromFloat(row.Data.Value),
		EstimatedCost: decimal.NewFromFloat(row.Data.EstimatedCost),
		SignedDate:    optionalDate(row.Data.SignedDate),
		StartDate:     optionalDate(row.Data.StartDate),
		EndDate:       optionalDate(row.Data.EndDate),
		Status:        domain.Status(row.Data.Status),
		Category:      domain.Category(row.Data.Category),
	})
	if err != nil {
		return err
	}

	if _, err := c.repo.Create(ctx, entity); err != nil {
		return fmt.Errorf("create contract %s: %w", entity.Code, err)
	}
	return nil
}

// CodeYear picks the year a contract is numbered under: the signed date, then
// the start date, then the current year.
func CodeYear(row Row, now time.Time) int {
	for _, value := range []string{row.SignedDate, row.StartDate} {
		if t, err := importing.ParseDate(value); err == nil {
			return t.Year()
		}
	}
	return now.Year()
}

func optionalDate(value string) *time.Time {
	t, err := importing.ParseDate(value)
	if err != nil {
		return nil
	}
	return &t
}
