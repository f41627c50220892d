package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Leganyst/booking-core/internal/model"
)

type BundleRepository interface {
	// GetByID возвращает комплекс вместе с составом услуг.
	GetByID(ctx context.Context, id string) (*model.Bundle, error)
	Create(ctx context.Context, bundle *model.Bundle) error
	Update(ctx context.Context, bundle *model.Bundle) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, onlyActive bool, limit, offset int) ([]model.Bundle, int64, error)
	// ListByServiceID — комплексы, в состав которых входит услуга.
	ListByServiceID(ctx context.Context, serviceID string) ([]model.Bundle, error)
}

type GormBundleRepository struct {
	db *gorm.DB
}

func NewGormBundleRepository(db *gorm.DB) *GormBundleRepository {
	return &GormBundleRepository{db: db}
}

func (r *GormBundleRepository) GetByID(ctx context.Context, id string) (*model.Bundle, error) {
	var b model.Bundle
	err := r.db.WithContext(ctx).
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("services.name ASC")
		}).
		First(&b, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormBundleRepository) Create(ctx context.Context, bundle *model.Bundle) error {
	return r.db.WithContext(ctx).Create(bundle).Error
}

func (r *GormBundleRepository) Update(ctx context.Context, bundle *model.Bundle) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(bundle).Error; err != nil {
			return err
		}
		// Состав комплекса заменяется целиком.
		return tx.Model(bundle).Association("Services").Replace(bundle.Services)
	})
}

func (r *GormBundleRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.BundleService{}, "bundle_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Bundle{}, "id = ?", id).Error
	})
}

func (r *GormBundleRepository) List(ctx context.Context, onlyActive bool, limit, offset int) ([]model.Bundle, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Bundle{})
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var bundles []model.Bundle
	err := q.Preload("Services", func(db *gorm.DB) *gorm.DB {
		return db.Order("services.name ASC")
	}).Order("name ASC").Find(&bundles).Error
	if err != nil {
		return nil, 0, err
	}
	return bundles, total, nil
}

func (r *GormBundleRepository) ListByServiceID(ctx context.Context, serviceID string) ([]model.Bundle, error) {
	var bundles []model.Bundle
	err := r.db.WithContext(ctx).
		Preload("Services").
		Joins("JOIN bundle_services ON bundle_services.bundle_id = bundles.id").
		Where("bundle_services.service_id = ?", serviceID).
		Order("bundles.name ASC").
		Find(&bundles).Error
	if err != nil {
		return nil, err
	}
	return bundles, nil
}
