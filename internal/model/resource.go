package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Тип бронируемого ресурса.
type ResourceType string

const (
	ResourceTypeSpecialist ResourceType = "specialist"
	ResourceTypeRoom       ResourceType = "room"
	ResourceTypeEquipment  ResourceType = "equipment"
)

// Статус ресурса.
type ResourceStatus string

const (
	ResourceStatusActive   ResourceStatus = "active"
	ResourceStatusInactive ResourceStatus = "inactive"
	ResourceStatusBusy     ResourceStatus = "busy"
	ResourceStatusVacation ResourceStatus = "vacation"
)

// resources — специалисты, кабинеты и оборудование.
type Resource struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name string       `gorm:"type:varchar(255);not null" json:"name"`
	Type ResourceType `gorm:"type:varchar(32);not null;index" json:"type"`

	// Доступность по дням недели: {"monday": true, ...}.
	Availability datatypes.JSON `gorm:"column:availability" json:"-"`

	// Навыки специалиста, свободный список строк.
	Skills datatypes.JSON `gorm:"column:skills" json:"-"`

	// Вместимость кабинета/оборудования. Для специалистов не используется.
	Capacity int64 `gorm:"not null;default:0" json:"capacity"`

	Status ResourceStatus `gorm:"type:varchar(32);not null;default:'active';index" json:"status"`

	Phone string `gorm:"type:varchar(32)" json:"phone,omitempty"`
	Email string `gorm:"type:varchar(255)" json:"email,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`

	Services []Service `gorm:"many2many:resource_services;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"services,omitempty"`
	Bookings []Booking `gorm:"foreignKey:ResourceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// AvailabilityMap десериализует доступность по дням недели.
// Пустая колонка означает «доступен всегда».
func (r *Resource) AvailabilityMap() (map[string]bool, error) {
	if len(r.Availability) == 0 {
		return nil, nil
	}
	var m map[string]bool
	if err := json.Unmarshal(r.Availability, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *Resource) SetAvailabilityMap(m map[string]bool) error {
	if m == nil {
		r.Availability = nil
		return nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	r.Availability = datatypes.JSON(raw)
	return nil
}

// AvailableOn сообщает, работает ли ресурс в указанный день недели.
func (r *Resource) AvailableOn(day time.Weekday) bool {
	m, err := r.AvailabilityMap()
	if err != nil || m == nil {
		return true
	}
	return m[weekdayKey(day)]
}

func weekdayKey(day time.Weekday) string {
	switch day {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	default:
		return "sunday"
	}
}

// SkillList десериализует навыки.
func (r *Resource) SkillList() ([]string, error) {
	if len(r.Skills) == 0 {
		return nil, nil
	}
	var skills []string
	if err := json.Unmarshal(r.Skills, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

func (r *Resource) SetSkillList(skills []string) error {
	if skills == nil {
		r.Skills = nil
		return nil
	}
	raw, err := json.Marshal(skills)
	if err != nil {
		return err
	}
	r.Skills = datatypes.JSON(raw)
	return nil
}

// resource_services — какие услуги выполняет ресурс.
type ResourceService struct {
	ResourceID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServiceID  uuid.UUID `gorm:"type:uuid;primaryKey"`

	CreatedAt time.Time `gorm:"not null"`

	Resource *Resource `gorm:"foreignKey:ResourceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Service  *Service  `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
