package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию всех сущностей ядра бронирования.
// Кастомные join-модели обязательно регистрируются до миграции, иначе
// GORM пишет в join-таблицы только пары ID и роняет NOT NULL на created_at.
func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Bundle{}, "Services", &BundleService{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&Resource{}, "Services", &ResourceService{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&Service{},
		&Bundle{},
		&BundleService{},
		&Resource{},
		&ResourceService{},
		&Client{},
		&Booking{},
		&Event{},
	)
}
