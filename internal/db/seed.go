package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Leganyst/booking-core/internal/calendar"
	"github.com/Leganyst/booking-core/internal/model"
)

// SeedDemo наполняет пустую БД демонстрационными данными салона:
// услуги, комплекс, специалисты, кабинет, клиенты и регулярные
// обеденные перерывы на неделю вперёд. Повторный запуск — no-op.
func SeedDemo(ctx context.Context, gdb *gorm.DB, loc *time.Location) error {
	var n int64
	if err := gdb.WithContext(ctx).Model(&model.Service{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	haircut := &model.Service{Name: "Стрижка", DurationMin: 60, Price: 1500, Category: "Волосы", IsActive: true}
	styling := &model.Service{Name: "Укладка", DurationMin: 30, Price: 800, Category: "Волосы", IsActive: true}
	manicure := &model.Service{Name: "Маникюр", DurationMin: 90, Price: 2500, Category: "Ногти", IsActive: true}

	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range []*model.Service{haircut, styling, manicure} {
			if err := tx.Create(s).Error; err != nil {
				return fmt.Errorf("seed service %q: %w", s.Name, err)
			}
		}

		// Комплекс «Стрижка + укладка» со скидкой 15%.
		bundle := &model.Bundle{
			Name:        "Стрижка + укладка",
			PriceMode:   model.BundlePriceDiscount,
			DiscountPct: 15,
			Services:    []model.Service{*haircut, *styling},
			IsActive:    true,
		}
		if err := tx.Create(bundle).Error; err != nil {
			return fmt.Errorf("seed bundle: %w", err)
		}

		weekdays := map[string]bool{
			"monday": true, "tuesday": true, "wednesday": true,
			"thursday": true, "friday": true,
		}

		anna := &model.Resource{
			Name:     "Анна Иванова",
			Type:     model.ResourceTypeSpecialist,
			Status:   model.ResourceStatusActive,
			Services: []model.Service{*haircut, *styling},
		}
		elena := &model.Resource{
			Name:     "Елена Сидорова",
			Type:     model.ResourceTypeSpecialist,
			Status:   model.ResourceStatusActive,
			Services: []model.Service{*manicure},
		}
		room := &model.Resource{
			Name:     "Кабинет 3",
			Type:     model.ResourceTypeRoom,
			Status:   model.ResourceStatusActive,
			Capacity: 1,
		}
		for _, r := range []*model.Resource{anna, elena, room} {
			if err := r.SetAvailabilityMap(weekdays); err != nil {
				return err
			}
			if err := tx.Create(r).Error; err != nil {
				return fmt.Errorf("seed resource %q: %w", r.Name, err)
			}
		}

		clients := []*model.Client{
			{Name: "Анна Петрова", Phone: "+7 (900) 123-45-67", TelegramID: 100001, PreferredContact: model.ContactTelegram},
			{Name: "Мария Петрова", Phone: "+7 (900) 765-43-21", PreferredContact: model.ContactPhone},
			{Name: "Михаил Иванов", Phone: "+7 (900) 111-22-33", PreferredContact: model.ContactWhatsApp},
		}
		for _, c := range clients {
			if err := tx.Create(c).Error; err != nil {
				return fmt.Errorf("seed client %q: %w", c.Name, err)
			}
		}

		return seedLunchBreaks(tx, []*model.Resource{anna, elena}, loc)
	})
}

// seedLunchBreaks разворачивает будничный обеденный перерыв 13:00–14:00
// в блокировки на неделю вперёд.
func seedLunchBreaks(tx *gorm.DB, specialists []*model.Resource, loc *time.Location) error {
	now := time.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	rule := calendar.RecurringRule{
		Freq:     calendar.FreqWeekly,
		Interval: 1,
		Weekdays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
		StartTime: today.Add(13 * time.Hour),
		Duration:  time.Hour,
	}
	window := calendar.TimeRange{Start: today, End: today.AddDate(0, 0, 7)}

	breaks, err := calendar.ExpandRecurringRule(rule, window)
	if err != nil {
		return err
	}

	for _, r := range specialists {
		for _, br := range breaks {
			b := &model.Booking{
				ResourceID:  r.ID,
				Status:      model.BookingStatusBlocked,
				ServiceName: "Обеденный перерыв",
				DurationMin: 60,
				StartsAt:    br.Start.UTC(),
				EndsAt:      br.End.UTC(),
			}
			if err := tx.Create(b).Error; err != nil {
				return fmt.Errorf("seed lunch break: %w", err)
			}
		}
	}
	return nil
}
