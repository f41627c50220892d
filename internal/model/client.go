package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Предпочитаемый канал связи с клиентом.
type ContactChannel string

const (
	ContactPhone    ContactChannel = "phone"
	ContactEmail    ContactChannel = "email"
	ContactTelegram ContactChannel = "telegram"
	ContactWhatsApp ContactChannel = "whatsapp"
)

// clients — база клиентов.
type Client struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name string `gorm:"type:varchar(255);not null" json:"name"`

	// Телефон в том виде, как его ввели.
	Phone string `gorm:"type:varchar(32)" json:"phone"`
	// Только цифры — по этому полю идёт дедупликация.
	PhoneDigits string `gorm:"type:varchar(32);index" json:"-"`

	Email            string `gorm:"type:varchar(255)" json:"email,omitempty"`
	TelegramID       int64  `gorm:"index" json:"telegramId,omitempty"`
	TelegramUsername string `gorm:"type:varchar(64)" json:"telegramUsername,omitempty"`

	PreferredContact ContactChannel `gorm:"type:varchar(16);not null;default:'phone'" json:"preferredContact"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`

	LastVisit   *time.Time `gorm:"type:timestamp" json:"lastVisit,omitempty"`
	TotalVisits int64      `gorm:"not null;default:0" json:"totalVisits"`
	TotalSpent  int64      `gorm:"not null;default:0" json:"totalSpent"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.PhoneDigits == "" {
		c.PhoneDigits = NormalizePhone(c.Phone)
	}
	return nil
}

// NormalizePhone оставляет от номера только цифры:
// "+7 (999) 123-45-67" и "79991234567" считаются одним номером.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
