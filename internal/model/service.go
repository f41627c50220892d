package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// services — каталог услуг.
type Service struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	// Длительность в минутах.
	DurationMin int64 `gorm:"not null" json:"durationMin"`

	// Цена в целых рублях.
	Price int64 `gorm:"not null" json:"price"`

	Category string `gorm:"type:varchar(128);index" json:"category"`

	IsActive bool `gorm:"not null;default:true;index" json:"isActive"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`

	// Навигация many2many
	Resources []Resource `gorm:"many2many:resource_services;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
