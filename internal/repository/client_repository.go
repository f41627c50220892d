package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Leganyst/booking-core/internal/model"
)

type ClientRepository interface {
	GetByID(ctx context.Context, id string) (*model.Client, error)
	// GetByPhoneDigits ищет клиента по нормализованному номеру (только цифры).
	GetByPhoneDigits(ctx context.Context, digits string) (*model.Client, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Client, error)
	Create(ctx context.Context, client *model.Client) error
	Update(ctx context.Context, client *model.Client) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]model.Client, int64, error)
	// BumpStats монотонно увеличивает счётчики визитов и потраченного.
	BumpStats(ctx context.Context, id string, spent int64, visitAt time.Time) error
}

type GormClientRepository struct {
	db *gorm.DB
}

func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

func (r *GormClientRepository) GetByID(ctx context.Context, id string) (*model.Client, error) {
	var c model.Client
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormClientRepository) GetByPhoneDigits(ctx context.Context, digits string) (*model.Client, error) {
	if digits == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var c model.Client
	if err := r.db.WithContext(ctx).First(&c, "phone_digits = ?", digits).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormClientRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Client, error) {
	if telegramID <= 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var c model.Client
	if err := r.db.WithContext(ctx).First(&c, "telegram_id = ?", telegramID).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormClientRepository) Create(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *GormClientRepository) Update(ctx context.Context, client *model.Client) error {
	client.PhoneDigits = model.NormalizePhone(client.Phone)
	return r.db.WithContext(ctx).Save(client).Error
}

func (r *GormClientRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Client{}, "id = ?", id).Error
}

func (r *GormClientRepository) List(ctx context.Context, limit, offset int) ([]model.Client, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Client{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var clients []model.Client
	if err := q.Order("name ASC").Limit(limit).Offset(offset).Find(&clients).Error; err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

func (r *GormClientRepository) BumpStats(ctx context.Context, id string, spent int64, visitAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Client{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"total_visits": gorm.Expr("total_visits + 1"),
			"total_spent":  gorm.Expr("total_spent + ?", spent),
			"last_visit":   visitAt,
		}).Error
}
