package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Тип события аудита.
type EventType string

const (
	EventTypeBookingCreated     EventType = "booking_created"
	EventTypeBookingCancelled   EventType = "booking_cancelled"
	EventTypeBookingRescheduled EventType = "booking_rescheduled"
	EventTypeBookingCompleted   EventType = "booking_completed"
	EventTypeBookingDeleted     EventType = "booking_deleted"
	EventTypeClientCreated      EventType = "client_created"
)

// events — события аудита
type Event struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	EventType EventType `gorm:"type:varchar(64);not null;index" json:"eventType"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`

	ClientID  *uuid.UUID `gorm:"type:uuid;index" json:"clientId,omitempty"`
	BookingID *uuid.UUID `gorm:"type:uuid;index" json:"bookingId,omitempty"`

	Details string `gorm:"type:text" json:"details,omitempty"`

	// Навигационные поля
	Client  *Client  `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Booking *Booking `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
