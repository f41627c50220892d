// Package notify — уведомления клиентам в Telegram о записях.
package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/Leganyst/booking-core/internal/model"
)

// TelegramNotifier шлёт сообщения клиентам через бота.
type TelegramNotifier struct {
	bot *tele.Bot
	loc *time.Location
}

// New создаёт нотификатор с длинным поллингом, выключенным на отправку.
func New(token string, loc *time.Location) (*TelegramNotifier, error) {
	bot, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &TelegramNotifier{bot: bot, loc: loc}, nil
}

func (n *TelegramNotifier) BookingCreated(ctx context.Context, b *model.Booking, c *model.Client) {
	if c == nil || c.TelegramID <= 0 {
		return
	}
	text := fmt.Sprintf(
		"Вы записаны: %s\n%s, %s–%s\nСтоимость: %d ₽",
		b.ServiceName,
		b.StartsAt.In(n.loc).Format("02.01.2006"),
		b.StartsAt.In(n.loc).Format("15:04"),
		b.EndsAt.In(n.loc).Format("15:04"),
		b.Price,
	)
	n.send(c.TelegramID, text)
}

func (n *TelegramNotifier) BookingCancelled(ctx context.Context, b *model.Booking, c *model.Client) {
	if c == nil || c.TelegramID <= 0 {
		return
	}
	text := fmt.Sprintf(
		"Запись отменена: %s, %s %s",
		b.ServiceName,
		b.StartsAt.In(n.loc).Format("02.01.2006"),
		b.StartsAt.In(n.loc).Format("15:04"),
	)
	n.send(c.TelegramID, text)
}

func (n *TelegramNotifier) send(telegramID int64, text string) {
	// Уведомление не должно блокировать и ронять основную операцию.
	go func() {
		if _, err := n.bot.Send(&tele.User{ID: telegramID}, text); err != nil {
			log.Printf("notify: send to %d: %v", telegramID, err)
		}
	}()
}
