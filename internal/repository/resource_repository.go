package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Leganyst/booking-core/internal/model"
)

type ResourceRepository interface {
	GetByID(ctx context.Context, id string) (*model.Resource, error)
	Create(ctx context.Context, resource *model.Resource) error
	Update(ctx context.Context, resource *model.Resource) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]model.Resource, int64, error)
	ListByType(ctx context.Context, rtype model.ResourceType) ([]model.Resource, error)
	// ListByIDs — ресурсы в порядке имени.
	ListByIDs(ctx context.Context, ids []string) ([]model.Resource, error)
	// DetachService удаляет услугу у всех ресурсов (при удалении из каталога).
	DetachService(ctx context.Context, serviceID string) error
}

type GormResourceRepository struct {
	db *gorm.DB
}

func NewGormResourceRepository(db *gorm.DB) *GormResourceRepository {
	return &GormResourceRepository{db: db}
}

func (r *GormResourceRepository) GetByID(ctx context.Context, id string) (*model.Resource, error) {
	var res model.Resource
	err := r.db.WithContext(ctx).
		Preload("Services").
		First(&res, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *GormResourceRepository) Create(ctx context.Context, resource *model.Resource) error {
	return r.db.WithContext(ctx).Create(resource).Error
}

func (r *GormResourceRepository) Update(ctx context.Context, resource *model.Resource) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(resource).Error; err != nil {
			return err
		}
		return tx.Model(resource).Association("Services").Replace(resource.Services)
	})
}

func (r *GormResourceRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.ResourceService{}, "resource_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Resource{}, "id = ?", id).Error
	})
}

func (r *GormResourceRepository) List(ctx context.Context, limit, offset int) ([]model.Resource, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Resource{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var resources []model.Resource
	if err := q.Preload("Services").Order("name ASC").Find(&resources).Error; err != nil {
		return nil, 0, err
	}
	return resources, total, nil
}

func (r *GormResourceRepository) ListByType(ctx context.Context, rtype model.ResourceType) ([]model.Resource, error) {
	var resources []model.Resource
	err := r.db.WithContext(ctx).
		Preload("Services").
		Where("type = ?", rtype).
		Order("name ASC").
		Find(&resources).Error
	if err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *GormResourceRepository) ListByIDs(ctx context.Context, ids []string) ([]model.Resource, error) {
	if len(ids) == 0 {
		return []model.Resource{}, nil
	}
	var resources []model.Resource
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("name ASC").
		Find(&resources).Error
	if err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *GormResourceRepository) DetachService(ctx context.Context, serviceID string) error {
	return r.db.WithContext(ctx).
		Delete(&model.ResourceService{}, "service_id = ?", serviceID).Error
}
