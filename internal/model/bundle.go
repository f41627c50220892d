package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Режим расчёта цены комплекса.
type BundlePriceMode string

const (
	BundlePriceSum      BundlePriceMode = "sum"
	BundlePriceDiscount BundlePriceMode = "discount"
	BundlePriceFixed    BundlePriceMode = "fixed"
)

// Режим расчёта длительности комплекса.
type BundleDurationMode string

const (
	BundleDurationSum    BundleDurationMode = "sum"
	BundleDurationCustom BundleDurationMode = "custom"
)

// Как комплекс занимает ресурсы при выполнении.
type BundleConcurrency string

const (
	BundleConcurrencySerial   BundleConcurrency = "serial"
	BundleConcurrencyParallel BundleConcurrency = "parallel"
)

// Правила подбора ресурсов под комплекс. Хранятся как JSON в колонке
// resource_rules (см. Schedule.Rules в исходной платформе).
type ResourceRules struct {
	SameHuman    bool              `json:"sameHuman"`
	RoomTypeID   string            `json:"roomTypeId,omitempty"`
	EquipmentIDs []string          `json:"equipmentIds,omitempty"`
	Concurrency  BundleConcurrency `json:"concurrency"`
}

// bundles — комплексы из 2–5 услуг с производной ценой и длительностью.
type Bundle struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name string `gorm:"type:varchar(255);not null" json:"name"`

	PriceMode BundlePriceMode `gorm:"type:varchar(16);not null;default:'sum'" json:"priceMode"`

	// Актуально только для режима discount.
	DiscountPct int64 `gorm:"not null;default:0" json:"priceDiscountPct"`
	// Актуально только для режима fixed.
	PriceFixed int64 `gorm:"not null;default:0" json:"priceFixed"`

	DurationMode BundleDurationMode `gorm:"type:varchar(16);not null;default:'sum'" json:"durationMode"`
	// Актуально только для режима custom.
	DurationCustomMin int64 `gorm:"not null;default:0" json:"durationCustomMin"`

	Rules datatypes.JSON `gorm:"column:resource_rules" json:"-"`

	IsActive bool `gorm:"not null;default:true;index" json:"isActive"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`

	Services []Service `gorm:"many2many:bundle_services;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"services,omitempty"`
}

func (b *Bundle) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// ResourceRules десериализует правила подбора ресурсов.
// Пустая колонка трактуется как serial без ограничений.
func (b *Bundle) ResourceRules() (ResourceRules, error) {
	rules := ResourceRules{Concurrency: BundleConcurrencySerial}
	if len(b.Rules) == 0 {
		return rules, nil
	}
	if err := json.Unmarshal(b.Rules, &rules); err != nil {
		return ResourceRules{}, err
	}
	if rules.Concurrency == "" {
		rules.Concurrency = BundleConcurrencySerial
	}
	return rules, nil
}

// SetResourceRules сериализует правила в JSON-колонку.
func (b *Bundle) SetResourceRules(rules ResourceRules) error {
	raw, err := json.Marshal(rules)
	if err != nil {
		return err
	}
	b.Rules = datatypes.JSON(raw)
	return nil
}

// ServiceIDs возвращает идентификаторы услуг комплекса в порядке каталога.
func (b *Bundle) ServiceIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(b.Services))
	for _, s := range b.Services {
		ids = append(ids, s.ID)
	}
	return ids
}

// bundle_services — join-таблица комплексов и услуг.
type BundleService struct {
	BundleID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServiceID uuid.UUID `gorm:"type:uuid;primaryKey"`

	CreatedAt time.Time `gorm:"not null"`

	Bundle  *Bundle  `gorm:"foreignKey:BundleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Service *Service `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
