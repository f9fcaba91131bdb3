package partner

import (
	"context"
	"fmt"

	"github.com/bizdash/import-service/internal/application/importing"
	domain "github.com/bizdash/import-service/internal/domain/partner"
)

type Creator struct {
	repo domain.Repository
}

func NewCreator(repo domain.Repository) *Creator {
	return &Creator{repo: repo}
}

func (c *Creator) Create(ctx context.Context, row importing.ParsedRow[Row]) error {
	entity, err := domain.New(domain.Partner{
		Name:          row.Data.Name,
		ShortName:     row.Data.ShortName,
		TaxCode:       row.Data.TaxCode,
		Industry:      domain.Industry(row.Data.Industry),
		Type:          domain.Type(row.Data.Type),
		Address:       row.Data.Address,
		Phone:         row.Data.Phone,
		Email:         row.Data.Email,
		ContactPerson: row.Data.ContactPerson,
	})
	if err != nil {
		return err
	}
	if _, err := c.repo.Create(ctx, entity); err != nil {
		return fmt.Errorf("create partner %q: %w", entity.Name, err)
	}
	return nil
}
