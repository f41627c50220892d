package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Leganyst/booking-core/internal/model"
)

// ErrSlotConflict — интервал пересекается с активной записью того же ресурса.
var ErrSlotConflict = errors.New("time range conflicts with an existing booking")

type BookingRepository interface {
	// CreateConflictFree создаёт запись, если её интервал не пересекается
	// с активными записями ресурса. Проверка и вставка выполняются в одной
	// транзакции; при конфликте возвращаются пересекающиеся записи.
	CreateConflictFree(ctx context.Context, booking *model.Booking) ([]model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	// UpdateStatus переводит запись в новый статус (например, при отмене).
	UpdateStatus(ctx context.Context, id string, status model.BookingStatus, cancelledAt *time.Time) error
	// Reschedule переносит запись на новый интервал и, возможно, ресурс,
	// с той же транзакционной проверкой конфликтов.
	Reschedule(ctx context.Context, id string, resourceID string, startsAt, endsAt time.Time) ([]model.Booking, error)
	Delete(ctx context.Context, id string) error
	// ListByResourceAndRange — записи ресурса, пересекающие интервал.
	// includeCancelled управляет попаданием отменённых в выборку.
	ListByResourceAndRange(ctx context.Context, resourceID string, from, to time.Time, includeCancelled bool) ([]model.Booking, error)
	// ListByRange — записи набора ресурсов за интервал (для сетки дня).
	// Пустой набор означает «без фильтра по ресурсам».
	ListByRange(ctx context.Context, resourceIDs []string, from, to time.Time) ([]model.Booking, error)
	// ListByClient — записи клиента, новые сверху, с пагинацией.
	ListByClient(ctx context.Context, clientID string, limit, offset int) ([]model.Booking, int64, error)
	// MarkOverdue помечает подтверждённые записи, чьё время окончания прошло.
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func overlapQuery(tx *gorm.DB, resourceID string, startsAt, endsAt time.Time) *gorm.DB {
	// Полуоткрытые интервалы: [a,b) и [c,d) пересекаются при a < d && c < b.
	return tx.Model(&model.Booking{}).
		Where("resource_id = ?", resourceID).
		Where("status <> ?", model.BookingStatusCancelled).
		Where("starts_at < ? AND ends_at > ?", endsAt, startsAt)
}

func (r *GormBookingRepository) CreateConflictFree(ctx context.Context, booking *model.Booking) ([]model.Booking, error) {
	var conflicts []model.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := overlapQuery(tx, booking.ResourceID.String(), booking.StartsAt, booking.EndsAt)
		if err := q.Find(&conflicts).Error; err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return ErrSlotConflict
		}
		return tx.Create(booking).Error
	})
	if errors.Is(err, ErrSlotConflict) {
		return conflicts, err
	}
	if err != nil {
		return nil, err
	}
	return nil, nil
}

func (r *GormBookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	var b model.Booking
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Resource").
		First(&b, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *GormBookingRepository) UpdateStatus(
	ctx context.Context,
	id string,
	status model.BookingStatus,
	cancelledAt *time.Time,
) error {
	update := map[string]any{
		"status": status,
	}
	if cancelledAt != nil {
		update["cancelled_at"] = *cancelledAt
	}
	return r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("id = ?", id).
		Updates(update).
		Error
}

func (r *GormBookingRepository) Reschedule(
	ctx context.Context,
	id string,
	resourceID string,
	startsAt, endsAt time.Time,
) ([]model.Booking, error) {
	var conflicts []model.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := overlapQuery(tx, resourceID, startsAt, endsAt).
			Where("id <> ?", id)
		if err := q.Find(&conflicts).Error; err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return ErrSlotConflict
		}
		return tx.Model(&model.Booking{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"resource_id": resourceID,
				"starts_at":   startsAt,
				"ends_at":     endsAt,
			}).Error
	})
	if errors.Is(err, ErrSlotConflict) {
		return conflicts, err
	}
	if err != nil {
		return nil, err
	}
	return nil, nil
}

func (r *GormBookingRepository) Delete(ctx context.Context, id string) error {
	// Удаление несуществующей записи — no-op, как и фильтрация в исходнике.
	return r.db.WithContext(ctx).Delete(&model.Booking{}, "id = ?", id).Error
}

func (r *GormBookingRepository) ListByResourceAndRange(
	ctx context.Context,
	resourceID string,
	from, to time.Time,
	includeCancelled bool,
) ([]model.Booking, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("resource_id = ?", resourceID).
		Where("starts_at < ? AND ends_at > ?", to, from)

	if !includeCancelled {
		q = q.Where("status <> ?", model.BookingStatusCancelled)
	}

	var bookings []model.Booking
	if err := q.Order("starts_at ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormBookingRepository) ListByRange(
	ctx context.Context,
	resourceIDs []string,
	from, to time.Time,
) ([]model.Booking, error) {
	q := r.db.WithContext(ctx).
		Preload("Client").
		Where("starts_at < ? AND ends_at > ?", to, from)
	if len(resourceIDs) > 0 {
		q = q.Where("resource_id IN ?", resourceIDs)
	}

	var bookings []model.Booking
	if err := q.Order("starts_at ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormBookingRepository) ListByClient(
	ctx context.Context,
	clientID string,
	limit, offset int,
) ([]model.Booking, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("client_id = ?", clientID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var bookings []model.Booking
	if err := q.Order("starts_at DESC").Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *GormBookingRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Booking{}).
		Where("status = ?", model.BookingStatusConfirmed).
		Where("ends_at < ?", now).
		Update("status", model.BookingStatusOverdue)
	return res.RowsAffected, res.Error
}

func (r *GormBookingRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Booking{}).Count(&total).Error
	return total, err
}
