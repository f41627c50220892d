package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Статус записи.
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusBlocked   BookingStatus = "blocked"
	BookingStatusOverdue   BookingStatus = "overdue"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ValidBookingStatus проверяет, известен ли статус.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusPending, BookingStatusBlocked,
		BookingStatusOverdue, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// Occupies сообщает, занимает ли запись с таким статусом слоты в сетке.
// Отменённые записи слоты не блокируют.
func (s BookingStatus) Occupies() bool {
	return s != BookingStatusCancelled
}

// bookings — записи в календаре.
// Цена, название и длительность услуги снимаются снапшотом на момент
// создания: последующее редактирование услуги запись не меняет.
type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ResourceID uuid.UUID `gorm:"type:uuid;not null;index" json:"resourceId"`

	// Нет у технических блокировок (перерыв и т.п.).
	ClientID  *uuid.UUID `gorm:"type:uuid;index" json:"clientId,omitempty"`
	ServiceID *uuid.UUID `gorm:"type:uuid;index" json:"serviceId,omitempty"`

	// Снапшот услуги.
	ServiceName string `gorm:"type:varchar(255);not null" json:"serviceName"`
	Price       int64  `gorm:"not null" json:"price"`
	DurationMin int64  `gorm:"not null" json:"durationMin"`

	// Абсолютные метки времени в UTC, интервал полуоткрытый [StartsAt, EndsAt).
	StartsAt time.Time `gorm:"type:timestamp;not null;index" json:"startsAt"`
	EndsAt   time.Time `gorm:"type:timestamp;not null" json:"endsAt"`

	Status BookingStatus `gorm:"type:varchar(32);not null;index" json:"status"`

	Comment string `gorm:"type:text" json:"comment,omitempty"`

	CancelledAt *time.Time `gorm:"type:timestamp" json:"cancelledAt,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`

	Resource *Resource `gorm:"foreignKey:ResourceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Client   *Client   `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"client,omitempty"`
	Service  *Service  `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
