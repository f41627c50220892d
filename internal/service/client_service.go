package service

import (
	"context"
	"fmt"

	"github.com/Leganyst/booking-core/internal/model"
	"github.com/Leganyst/booking-core/internal/repository"
)

// ClientService — база клиентов. Идентичность клиента — только по ID;
// при создании выполняется дедупликация по нормализованному номеру телефона.
type ClientService struct {
	clients repository.ClientRepository
	events  repository.EventRepository
}

func NewClientService(clients repository.ClientRepository, events repository.EventRepository) *ClientService {
	return &ClientService{clients: clients, events: events}
}

type ClientInput struct {
	Name             string               `json:"name"`
	Phone            string               `json:"phone"`
	Email            string               `json:"email"`
	TelegramID       int64                `json:"telegramId"`
	TelegramUsername string               `json:"telegramUsername"`
	PreferredContact model.ContactChannel `json:"preferredContact"`
	Notes            string               `json:"notes"`
}

func (in *ClientInput) validate() error {
	if in.Name == "" {
		return ErrNameRequired
	}
	switch in.PreferredContact {
	case "":
		in.PreferredContact = model.ContactPhone
	case model.ContactPhone, model.ContactEmail, model.ContactTelegram, model.ContactWhatsApp:
	default:
		return fmt.Errorf("unknown contact channel %q", in.PreferredContact)
	}
	return nil
}

// Create создаёт клиента. Если номер телефона (с точностью до форматирования)
// уже есть в базе, возвращается существующий клиент и created=false —
// одинаковые имена при разных телефонах остаются разными людьми.
func (s *ClientService) Create(ctx context.Context, in ClientInput) (*model.Client, bool, error) {
	if err := in.validate(); err != nil {
		return nil, false, err
	}

	digits := model.NormalizePhone(in.Phone)
	if digits != "" {
		if existing, err := s.clients.GetByPhoneDigits(ctx, digits); err == nil {
			return existing, false, nil
		}
	}

	c := &model.Client{
		Name:             in.Name,
		Phone:            in.Phone,
		PhoneDigits:      digits,
		Email:            in.Email,
		TelegramID:       in.TelegramID,
		TelegramUsername: in.TelegramUsername,
		PreferredContact: in.PreferredContact,
		Notes:            in.Notes,
	}
	if err := s.clients.Create(ctx, c); err != nil {
		return nil, false, fmt.Errorf("create client: %w", err)
	}

	_ = s.events.Create(ctx, &model.Event{
		EventType: model.EventTypeClientCreated,
		ClientID:  &c.ID,
		Details:   c.Name,
	})

	return c, true, nil
}

func (s *ClientService) Update(ctx context.Context, id string, in ClientInput) (*model.Client, error) {
	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClient, id)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	c.Name = in.Name
	c.Phone = in.Phone
	c.PhoneDigits = model.NormalizePhone(in.Phone)
	c.Email = in.Email
	c.TelegramID = in.TelegramID
	c.TelegramUsername = in.TelegramUsername
	c.PreferredContact = in.PreferredContact
	c.Notes = in.Notes

	if err := s.clients.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return c, nil
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	return s.clients.Delete(ctx, id)
}

func (s *ClientService) Get(ctx context.Context, id string) (*model.Client, error) {
	return s.clients.GetByID(ctx, id)
}

func (s *ClientService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Client, error) {
	return s.clients.GetByTelegramID(ctx, telegramID)
}

func (s *ClientService) List(ctx context.Context, limit, offset int) ([]model.Client, int64, error) {
	return s.clients.List(ctx, limit, offset)
}
