package repository

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bizdash/import-service/internal/domain/partner"
	"github.com/bizdash/import-service/internal/infrastructure/db/models"
)

type PartnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) *PartnerRepository {
	return &PartnerRepository{db: db}
}

func (r *PartnerRepository) Create(ctx context.Context, p partner.Partner) (partner.Partner, error) {
	row := models.Partner{
		ID:            uuid.NewString(),
		Name:          p.Name,
		ShortName:     p.ShortName,
		TaxCode:       p.TaxCode,
		Industry:      string(p.Industry),
		Type:          string(p.Type),
		Address:       p.Address,
		Phone:         p.Phone,
		Email:         p.Email,
		ContactPerson: p.ContactPerson,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return partner.Partner{}, errors.Wrap(err, "insert partner")
	}
	p.ID = row.ID
	return p, nil
}

func (r *PartnerRepository) ListAll(ctx context.Context) ([]partner.Partner, error) {
	var rows []models.Partner
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list partners")
	}

	partners := make([]partner.Partner, 0, len(rows))
	for _, row := range rows {
		partners = append(partners, partner.Partner{
			ID:            row.ID,
			Name:          row.Name,
			ShortName:     row.ShortName,
			TaxCode:       row.TaxCode,
			Industry:      partner.Industry(row.Industry),
			Type:          partner.Type(row.Type),
			Address:       row.Address,
			Phone:         row.Phone,
			Email:         row.Email,
			ContactPerson: row.ContactPerson,
		})
	}
	return partners, nil
}
