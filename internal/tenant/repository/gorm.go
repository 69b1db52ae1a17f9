package repository

import (
	"context"
	"errors"

	"github.com/mackml1997/reserves-rarities/internal/tenant/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormRepository struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) UpsertRegistration(ctx context.Context, reg *domain.Registration) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"first_name", "last_name", "email",
		}),
	}).Create(reg).Error
}

func (r *gormRepository) ListRegistrations(ctx context.Context) ([]domain.Registration, error) {
	var regs []domain.Registration
	if err := r.db.WithContext(ctx).
		Order("installed_at ASC").
		Find(&regs).Error; err != nil {
		return nil, err
	}
	return regs, nil
}

func (r *gormRepository) ResolveTenant(ctx context.Context, transactionRef string) (string, error) {
	var mapping domain.Mapping
	err := r.db.WithContext(ctx).
		Where("transaction_ref = ?", transactionRef).
		First(&mapping).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrTenantNotMapped
		}
		return "", err
	}
	return mapping.TenantID, nil
}

func (r *gormRepository) AppendMapping(ctx context.Context, mapping *domain.Mapping) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "transaction_ref"}},
		DoNothing: true,
	}).Create(mapping).Error
}
