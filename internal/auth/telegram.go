package auth

import (
	"context"
	"errors"
)

// Ошибки валидации Telegram-пользователя.
var (
	ErrInvalidTelegramID = errors.New("invalid telegram id")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserInactive      = errors.New("user is inactive")
)

// Статус пользователя в системе.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusBlocked  UserStatus = "blocked"
)

// Роль пользователя в системе.
type UserRole string

const (
	UserRoleClient UserRole = "client"
	UserRoleAdmin  UserRole = "admin"
)

// Доменная модель пользователя.
type User struct {
	TelegramID int64
	Role       UserRole
	Status     UserStatus
}

// Источник данных о пользователях.
// В реале это может быть обёртка над БД или конфигом, в тестах — мок.
type UserStore interface {
	FindByTelegramID(ctx context.Context, telegramID int64) (*User, error)
}

// ValidateTelegramUser:
//   - проверяет корректность идентификатора;
//   - вытаскивает пользователя из хранилища;
//   - проверяет статус (активен / нет);
//   - возвращает нормализованный результат или ошибку.
func ValidateTelegramUser(
	ctx context.Context,
	store UserStore,
	telegramID int64,
) (*User, error) {
	if telegramID <= 0 {
		return nil, ErrInvalidTelegramID
	}

	u, err := store.FindByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	if u.Status == UserStatusInactive || u.Status == UserStatusBlocked {
		return nil, ErrUserInactive
	}

	return u, nil
}

// StaticStore — хранилище пользователей поверх списка админских Telegram ID
// из конфига. Все остальные считаются активными клиентами.
type StaticStore struct {
	admins map[int64]struct{}
}

func NewStaticStore(adminIDs []int64) *StaticStore {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &StaticStore{admins: admins}
}

func (s *StaticStore) FindByTelegramID(ctx context.Context, telegramID int64) (*User, error) {
	role := UserRoleClient
	if _, ok := s.admins[telegramID]; ok {
		role = UserRoleAdmin
	}
	return &User{
		TelegramID: telegramID,
		Role:       role,
		Status:     UserStatusActive,
	}, nil
}
