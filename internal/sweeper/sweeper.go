// Package sweeper — фоновый перевод просроченных записей в overdue.
package sweeper

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Leganyst/booking-core/internal/repository"
)

// Sweeper периодически помечает подтверждённые записи,
// у которых время окончания уже прошло.
type Sweeper struct {
	cron     *cron.Cron
	bookings repository.BookingRepository
}

// New регистрирует задачу по cron-выражению. Пустое выражение — сервис не стартует.
func New(spec string, bookings repository.BookingRepository) (*Sweeper, error) {
	s := &Sweeper{
		cron:     cron.New(),
		bookings: bookings,
	}
	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sweeper) Start() { s.cron.Start() }

func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.bookings.MarkOverdue(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("sweeper: mark overdue: %v", err)
		return
	}
	if n > 0 {
		log.Printf("sweeper: помечено просроченных записей: %d", n)
	}
}
