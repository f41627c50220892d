package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Leganyst/booking-core/internal/calendar"
	"github.com/Leganyst/booking-core/internal/model"
	"github.com/Leganyst/booking-core/internal/repository"
)

// ByteCache — кэш сериализованных ответов. Пустая реализация допустима.
type ByteCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
}

func gridCacheKey(date string) string { return "grid:" + date }
func hotCacheKey(date string) string  { return "hot:" + date }

const gridCacheTTL = 30 * time.Second

// CalendarService — сетка дня, свободные слоты и «горящие» слоты.
type CalendarService struct {
	bookings  repository.BookingRepository
	resources repository.ResourceRepository
	services  repository.ServiceRepository

	day   WorkingDay
	cache ByteCache
}

func NewCalendarService(
	bookings repository.BookingRepository,
	resources repository.ResourceRepository,
	services repository.ServiceRepository,
	day WorkingDay,
) *CalendarService {
	return &CalendarService{
		bookings:  bookings,
		resources: resources,
		services:  services,
		day:       day,
	}
}

func (s *CalendarService) WithCache(c ByteCache) *CalendarService {
	s.cache = c
	return s
}

// DayGrid собирает сетку дня. resourceIDs пуст — все ресурсы;
// полная сетка кэшируется, выборочная — нет.
func (s *CalendarService) DayGrid(ctx context.Context, date string, resourceIDs []string) (*calendar.DayGrid, error) {
	if _, err := parseDay(date); err != nil {
		return nil, err
	}

	full := len(resourceIDs) == 0
	if full && s.cache != nil {
		if raw, ok := s.cache.Get(ctx, gridCacheKey(date)); ok {
			var grid calendar.DayGrid
			if err := json.Unmarshal(raw, &grid); err == nil {
				return &grid, nil
			}
		}
	}

	var (
		resources []model.Resource
		err       error
	)
	if full {
		resources, _, err = s.resources.List(ctx, 0, 0)
	} else {
		resources, err = s.resources.ListByIDs(ctx, resourceIDs)
	}
	if err != nil {
		return nil, err
	}

	grid, err := s.buildGrid(ctx, date, resources)
	if err != nil {
		return nil, err
	}

	if full && s.cache != nil {
		if raw, err := json.Marshal(grid); err == nil {
			s.cache.Set(ctx, gridCacheKey(date), raw, gridCacheTTL)
		}
	}
	return grid, nil
}

func (s *CalendarService) buildGrid(ctx context.Context, date string, resources []model.Resource) (*calendar.DayGrid, error) {
	day, err := parseDay(date)
	if err != nil {
		return nil, err
	}
	loc := s.day.loc()
	from, to := dayBounds(day, loc)

	ids := make([]string, 0, len(resources))
	specs := make([]calendar.ColumnSpec, 0, len(resources))
	for _, r := range resources {
		ids = append(ids, r.ID.String())
		specs = append(specs, calendar.ColumnSpec{
			ID:        r.ID.String(),
			Name:      r.Name,
			Available: r.Status == model.ResourceStatusActive && r.AvailableOn(day.Weekday()),
		})
	}

	// В сетку идут и отменённые: они не занимают слоты,
	// но показываются для перебронирования.
	bookings, err := s.bookings.ListByRange(ctx, ids, from, to)
	if err != nil {
		return nil, err
	}

	gridBookings := make([]calendar.GridBooking, 0, len(bookings))
	for _, b := range bookings {
		gb := calendar.GridBooking{
			ID:        b.ID.String(),
			Resource:  b.ResourceID.String(),
			Start:     calendar.ClockOf(b.StartsAt, loc),
			End:       calendar.ClockOf(b.EndsAt, loc),
			Service:   b.ServiceName,
			Status:    string(b.Status),
			Cancelled: !b.Status.Occupies(),
		}
		if b.Client != nil {
			gb.Client = b.Client.Name
		}
		gridBookings = append(gridBookings, gb)
	}

	slots := calendar.SlotLabels(s.day.OpenHour, s.day.CloseHour, s.day.StepMin)
	grid := calendar.BuildDayGrid(date, slots, specs, gridBookings)
	return &grid, nil
}

// FreeSlots — метки, с которых услуга помещается в свободное окно ресурса.
func (s *CalendarService) FreeSlots(ctx context.Context, resourceID, date, serviceID string) ([]string, error) {
	svc, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, ErrUnknownService
	}
	res, err := s.resources.GetByID(ctx, resourceID)
	if err != nil {
		return nil, ErrUnknownResource
	}
	day, err := parseDay(date)
	if err != nil {
		return nil, err
	}
	if res.Status != model.ResourceStatusActive || !res.AvailableOn(day.Weekday()) {
		return []string{}, nil
	}

	return s.freeStarts(ctx, resourceID, day, svc.DurationMin)
}

func (s *CalendarService) freeStarts(ctx context.Context, resourceID string, day time.Time, durationMin int64) ([]string, error) {
	loc := s.day.loc()
	from, to := dayBounds(day, loc)

	active, err := s.bookings.ListByResourceAndRange(ctx, resourceID, from, to, false)
	if err != nil {
		return nil, err
	}

	slots := calendar.SlotLabels(s.day.OpenHour, s.day.CloseHour, s.day.StepMin)
	occupied := make(map[string]bool)
	for _, b := range active {
		startClock := calendar.ClockOf(b.StartsAt, loc)
		endClock := calendar.ClockOf(b.EndsAt, loc)
		for _, slot := range slots {
			if slot >= startClock && slot < endClock {
				occupied[slot] = true
			}
		}
	}

	free := calendar.FreeStarts(slots, func(label string) bool {
		return !occupied[label]
	}, durationMin, s.day.StepMin, s.day.CloseHour*60)
	if free == nil {
		free = []string{}
	}
	return free, nil
}

// HotSlot — ближайшее свободное окно специалиста на день.
type HotSlot struct {
	ResourceID   string `json:"resourceId"`
	ResourceName string `json:"resourceName"`
	Start        string `json:"start"`
}

// HotSlots — ближайшие свободные слоты по активным специалистам
// (главный экран клиентского приложения).
func (s *CalendarService) HotSlots(ctx context.Context, date string, limit int) ([]HotSlot, error) {
	if limit <= 0 {
		limit = 5
	}

	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, hotCacheKey(date)); ok {
			var hot []HotSlot
			if err := json.Unmarshal(raw, &hot); err == nil {
				if len(hot) > limit {
					hot = hot[:limit]
				}
				return hot, nil
			}
		}
	}

	day, err := parseDay(date)
	if err != nil {
		return nil, err
	}

	specialists, err := s.resources.ListByType(ctx, model.ResourceTypeSpecialist)
	if err != nil {
		return nil, err
	}

	var hot []HotSlot
	for _, r := range specialists {
		if r.Status != model.ResourceStatusActive || !r.AvailableOn(day.Weekday()) {
			continue
		}
		free, err := s.freeStarts(ctx, r.ID.String(), day, int64(s.day.StepMin))
		if err != nil {
			return nil, err
		}
		if len(free) == 0 {
			continue
		}
		hot = append(hot, HotSlot{
			ResourceID:   r.ID.String(),
			ResourceName: r.Name,
			Start:        free[0],
		})
	}

	// Самые ранние — первыми.
	for i := 1; i < len(hot); i++ {
		for j := i; j > 0 && hot[j].Start < hot[j-1].Start; j-- {
			hot[j], hot[j-1] = hot[j-1], hot[j]
		}
	}

	if s.cache != nil {
		if raw, err := json.Marshal(hot); err == nil {
			s.cache.Set(ctx, hotCacheKey(date), raw, gridCacheTTL)
		}
	}

	if len(hot) > limit {
		hot = hot[:limit]
	}
	return hot, nil
}
