package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Leganyst/booking-core/internal/calendar"
	"github.com/Leganyst/booking-core/internal/model"
	"github.com/Leganyst/booking-core/internal/repository"
)

// Broadcaster оповещает подключённые календари об изменениях дня.
type Broadcaster interface {
	CalendarChanged(date string)
}

// Notifier шлёт уведомления клиенту о его записи.
type Notifier interface {
	BookingCreated(ctx context.Context, b *model.Booking, c *model.Client)
	BookingCancelled(ctx context.Context, b *model.Booking, c *model.Client)
}

// WorkingDay — параметры рабочего дня календарной сетки.
type WorkingDay struct {
	OpenHour  int
	CloseHour int
	StepMin   int
	Loc       *time.Location
}

func (w WorkingDay) loc() *time.Location {
	if w.Loc == nil {
		return time.UTC
	}
	return w.Loc
}

// BookingService — создание и жизненный цикл записей.
// Статусы меняются только явными действиями пользователя; единственное
// исключение — опциональный фоновый обход просроченных (см. sweeper).
type BookingService struct {
	bookings  repository.BookingRepository
	services  repository.ServiceRepository
	resources repository.ResourceRepository
	clients   repository.ClientRepository
	events    repository.EventRepository

	day WorkingDay

	// Опциональные побочные эффекты; nil — выключено.
	broadcaster Broadcaster
	notifier    Notifier
	cache       ByteCache
}

func NewBookingService(
	bookings repository.BookingRepository,
	services repository.ServiceRepository,
	resources repository.ResourceRepository,
	clients repository.ClientRepository,
	events repository.EventRepository,
	day WorkingDay,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		services:  services,
		resources: resources,
		clients:   clients,
		events:    events,
		day:       day,
	}
}

// WithBroadcaster включает оповещение календарей.
func (s *BookingService) WithBroadcaster(b Broadcaster) *BookingService {
	s.broadcaster = b
	return s
}

// WithNotifier включает уведомления клиентов.
func (s *BookingService) WithNotifier(n Notifier) *BookingService {
	s.notifier = n
	return s
}

// WithCache включает инвалидацию кэша сетки.
func (s *BookingService) WithCache(c ByteCache) *BookingService {
	s.cache = c
	return s
}

type CreateBookingInput struct {
	ResourceID uuid.UUID  `json:"resourceId"`
	ClientID   *uuid.UUID `json:"clientId"`
	ServiceID  *uuid.UUID `json:"serviceId"`

	Date  string `json:"date"`  // YYYY-MM-DD
	Start string `json:"start"` // HH:MM

	// По умолчанию confirmed. blocked — техническая блокировка
	// без клиента и услуги (перерыв), требует DurationMin.
	Status  model.BookingStatus `json:"status"`
	Comment string              `json:"comment"`

	// Переопределения из апсейла мастера записи: 0/nil — снапшот услуги.
	DurationMin int64  `json:"durationMin"`
	Price       *int64 `json:"price"`
}

// Alternative — ближайший свободный вариант при конфликте.
type Alternative struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Create создаёт запись. Конфликт определяется детерминированно:
// пересечение полуоткрытых интервалов с активными записями ресурса,
// проверка и вставка — в одной транзакции. При конфликте возвращаются
// до трёх ближайших свободных альтернатив.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*model.Booking, []Alternative, error) {
	status := in.Status
	if status == "" {
		status = model.BookingStatusConfirmed
	}
	if !model.ValidBookingStatus(status) || status == model.BookingStatusCancelled {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStatus, in.Status)
	}

	res, err := s.resources.GetByID(ctx, in.ResourceID.String())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownResource, in.ResourceID)
	}

	day, err := parseDay(in.Date)
	if err != nil {
		return nil, nil, err
	}
	if !res.AvailableOn(day.Weekday()) {
		return nil, nil, ErrResourceUnavailable
	}

	b := &model.Booking{
		ResourceID: res.ID,
		ClientID:   in.ClientID,
		ServiceID:  in.ServiceID,
		Status:     status,
		Comment:    in.Comment,
	}

	if status == model.BookingStatusBlocked {
		// Перерыв: услуга и клиент не обязательны.
		b.ServiceName = in.Comment
		b.DurationMin = in.DurationMin
		if b.DurationMin <= 0 {
			return nil, nil, ErrBadDuration
		}
	} else {
		if in.ServiceID == nil {
			return nil, nil, ErrServiceRequired
		}
		svc, err := s.services.GetByID(ctx, in.ServiceID.String())
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnknownService, in.ServiceID)
		}
		// Снапшот услуги на момент создания.
		b.ServiceName = svc.Name
		b.Price = svc.Price
		b.DurationMin = svc.DurationMin

		if in.DurationMin > 0 {
			b.DurationMin = in.DurationMin
		}
		if in.Price != nil {
			b.Price = *in.Price
		}
	}

	startsAt, endsAt, err := s.resolveRange(day, in.Start, b.DurationMin)
	if err != nil {
		return nil, nil, err
	}
	b.StartsAt = startsAt
	b.EndsAt = endsAt

	conflicts, err := s.bookings.CreateConflictFree(ctx, b)
	if errors.Is(err, repository.ErrSlotConflict) {
		alts, altErr := s.alternatives(ctx, res.ID.String(), day, in.Start, b.DurationMin)
		if altErr != nil {
			alts = nil
		}
		return nil, alts, fmt.Errorf("%w: %d overlapping", repository.ErrSlotConflict, len(conflicts))
	}
	if err != nil {
		return nil, nil, fmt.Errorf("create booking: %w", err)
	}

	if b.ClientID != nil && status == model.BookingStatusConfirmed {
		if err := s.clients.BumpStats(ctx, b.ClientID.String(), b.Price, b.StartsAt); err != nil {
			return nil, nil, fmt.Errorf("bump client stats: %w", err)
		}
	}

	s.audit(ctx, model.EventTypeBookingCreated, b, b.ServiceName)
	s.changed(ctx, in.Date)

	if s.notifier != nil && b.ClientID != nil {
		if c, err := s.clients.GetByID(ctx, b.ClientID.String()); err == nil {
			s.notifier.BookingCreated(ctx, b, c)
		}
	}

	return b, nil, nil
}

// Cancel отменяет запись. Повторная отмена — no-op.
func (s *BookingService) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == model.BookingStatusCancelled {
		return b, nil
	}

	now := time.Now().UTC()
	if err := s.bookings.UpdateStatus(ctx, id, model.BookingStatusCancelled, &now); err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	b.Status = model.BookingStatusCancelled
	b.CancelledAt = &now

	s.audit(ctx, model.EventTypeBookingCancelled, b, "")
	s.changed(ctx, b.StartsAt.In(s.day.loc()).Format("2006-01-02"))

	if s.notifier != nil && b.ClientID != nil {
		if c, err := s.clients.GetByID(ctx, b.ClientID.String()); err == nil {
			s.notifier.BookingCancelled(ctx, b, c)
		}
	}

	return b, nil
}

// Complete помечает запись выполненной. Только явным действием.
func (s *BookingService) Complete(ctx context.Context, id string) (*model.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch b.Status {
	case model.BookingStatusCompleted:
		return b, ErrAlreadyCompleted
	case model.BookingStatusCancelled:
		return b, ErrCancelledBooking
	}

	if err := s.bookings.UpdateStatus(ctx, id, model.BookingStatusCompleted, nil); err != nil {
		return nil, fmt.Errorf("complete booking: %w", err)
	}
	b.Status = model.BookingStatusCompleted

	s.audit(ctx, model.EventTypeBookingCompleted, b, "")
	s.changed(ctx, b.StartsAt.In(s.day.loc()).Format("2006-01-02"))
	return b, nil
}

// Reschedule переносит запись на другое время и, возможно, ресурс.
func (s *BookingService) Reschedule(ctx context.Context, id string, resourceID *uuid.UUID, date, start string) (*model.Booking, []Alternative, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if b.Status == model.BookingStatusCancelled {
		return nil, nil, ErrCancelledBooking
	}

	target := b.ResourceID
	if resourceID != nil {
		target = *resourceID
	}
	res, err := s.resources.GetByID(ctx, target.String())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownResource, target)
	}

	day, err := parseDay(date)
	if err != nil {
		return nil, nil, err
	}
	if !res.AvailableOn(day.Weekday()) {
		return nil, nil, ErrResourceUnavailable
	}

	startsAt, endsAt, err := s.resolveRange(day, start, b.DurationMin)
	if err != nil {
		return nil, nil, err
	}

	oldDate := b.StartsAt.In(s.day.loc()).Format("2006-01-02")

	conflicts, err := s.bookings.Reschedule(ctx, id, res.ID.String(), startsAt, endsAt)
	if errors.Is(err, repository.ErrSlotConflict) {
		alts, altErr := s.alternatives(ctx, res.ID.String(), day, start, b.DurationMin)
		if altErr != nil {
			alts = nil
		}
		return nil, alts, fmt.Errorf("%w: %d overlapping", repository.ErrSlotConflict, len(conflicts))
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reschedule booking: %w", err)
	}

	b.ResourceID = res.ID
	b.StartsAt = startsAt
	b.EndsAt = endsAt

	s.audit(ctx, model.EventTypeBookingRescheduled, b, date+" "+start)
	s.changed(ctx, oldDate)
	if newDate := startsAt.In(s.day.loc()).Format("2006-01-02"); newDate != oldDate {
		s.changed(ctx, newDate)
	}
	return b, nil, nil
}

// Delete жёстко удаляет запись (путь админской сетки). Идемпотентно.
func (s *BookingService) Delete(ctx context.Context, id string) error {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		// Удаление уже отсутствующей записи — no-op.
		return nil
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	_ = s.events.Create(ctx, &model.Event{
		EventType: model.EventTypeBookingDeleted,
		ClientID:  b.ClientID,
		Details:   id,
	})
	s.changed(ctx, b.StartsAt.In(s.day.loc()).Format("2006-01-02"))
	return nil
}

func (s *BookingService) Get(ctx context.Context, id string) (*model.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]model.Booking, int64, error) {
	return s.bookings.ListByClient(ctx, clientID, limit, offset)
}

// RecentEvents — хвост журнала аудита, новые сверху.
func (s *BookingService) RecentEvents(ctx context.Context, limit int) ([]model.Event, error) {
	return s.events.ListRecent(ctx, limit)
}

// EventsByBooking — история одной записи в хронологическом порядке.
func (s *BookingService) EventsByBooking(ctx context.Context, bookingID string) ([]model.Event, error) {
	return s.events.ListByBooking(ctx, bookingID)
}

// ListByDay — записи дня по набору ресурсов (пустой набор — все).
func (s *BookingService) ListByDay(ctx context.Context, date string, resourceIDs []string) ([]model.Booking, error) {
	day, err := parseDay(date)
	if err != nil {
		return nil, err
	}
	from, to := dayBounds(day, s.day.loc())
	return s.bookings.ListByRange(ctx, resourceIDs, from, to)
}

// resolveRange превращает день + "HH:MM" + длительность в абсолютный
// интервал, запрещая выход за рабочий день и переход через полночь.
// Старт обязан попадать в шаг сетки: запись с невыровненным началом
// занимала бы слоты, но не имела бы стартовой ячейки в сетке дня.
func (s *BookingService) resolveRange(day time.Time, start string, durationMin int64) (time.Time, time.Time, error) {
	endClock, err := calendar.AddClock(start, durationMin)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	startMin, err := calendar.ParseClock(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if s.day.StepMin > 0 && startMin%s.day.StepMin != 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", ErrUnalignedStart, start)
	}
	endMin, _ := calendar.ParseClock(endClock)
	if startMin < s.day.OpenHour*60 || endMin > s.day.CloseHour*60 {
		return time.Time{}, time.Time{}, ErrOutsideWorkingHours
	}

	startsAt, err := calendar.At(day, start, s.day.loc())
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return startsAt.UTC(), startsAt.Add(time.Duration(durationMin) * time.Minute).UTC(), nil
}

// alternatives подбирает до трёх свободных стартов, ближайших к желаемому.
func (s *BookingService) alternatives(ctx context.Context, resourceID string, day time.Time, want string, durationMin int64) ([]Alternative, error) {
	from, to := dayBounds(day, s.day.loc())
	active, err := s.bookings.ListByResourceAndRange(ctx, resourceID, from, to, false)
	if err != nil {
		return nil, err
	}

	slots := calendar.SlotLabels(s.day.OpenHour, s.day.CloseHour, s.day.StepMin)
	occupied := make(map[string]bool)
	for _, b := range active {
		startClock := calendar.ClockOf(b.StartsAt, s.day.loc())
		endClock := calendar.ClockOf(b.EndsAt, s.day.loc())
		for _, slot := range slots {
			if slot >= startClock && slot < endClock {
				occupied[slot] = true
			}
		}
	}

	free := calendar.FreeStarts(slots, func(label string) bool {
		return !occupied[label]
	}, durationMin, s.day.StepMin, s.day.CloseHour*60)

	wantMin, err := calendar.ParseClock(want)
	if err != nil {
		wantMin = s.day.OpenHour * 60
	}

	// Сортировка по близости к желаемому времени, простым выбором:
	// вариантов в пределах дня немного.
	var alts []Alternative
	used := make(map[string]bool)
	for len(alts) < 3 {
		best := ""
		bestDist := 1 << 30
		for _, f := range free {
			if used[f] {
				continue
			}
			m, _ := calendar.ParseClock(f)
			dist := m - wantMin
			if dist < 0 {
				dist = -dist
			}
			if dist < bestDist {
				best, bestDist = f, dist
			}
		}
		if best == "" {
			break
		}
		used[best] = true
		end, err := calendar.AddClock(best, durationMin)
		if err != nil {
			continue
		}
		alts = append(alts, Alternative{Start: best, End: end})
	}
	return alts, nil
}

func (s *BookingService) audit(ctx context.Context, et model.EventType, b *model.Booking, details string) {
	// Аудит не должен ронять основную операцию.
	_ = s.events.Create(ctx, &model.Event{
		EventType: et,
		ClientID:  b.ClientID,
		BookingID: &b.ID,
		Details:   details,
	})
}

func (s *BookingService) changed(ctx context.Context, date string) {
	if s.cache != nil {
		s.cache.Delete(ctx, gridCacheKey(date), hotCacheKey(date))
	}
	if s.broadcaster != nil {
		s.broadcaster.CalendarChanged(date)
	}
}

func parseDay(date string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, date)
	}
	return day, nil
}

func dayBounds(day time.Time, loc *time.Location) (time.Time, time.Time) {
	year, month, d := day.Date()
	start := time.Date(year, month, d, 0, 0, 0, 0, loc)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}
