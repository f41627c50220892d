package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubStore struct {
	user *User
	err  error
}

func (s *stubStore) FindByTelegramID(ctx context.Context, telegramID int64) (*User, error) {
	return s.user, s.err
}

func TestValidateTelegramUser_OK(t *testing.T) {
	store := &stubStore{user: &User{TelegramID: 42, Role: UserRoleClient, Status: UserStatusActive}}

	u, err := ValidateTelegramUser(context.Background(), store, 42)
	if err != nil {
		t.Fatalf("expected valid user, got %v", err)
	}
	if u.TelegramID != 42 {
		t.Fatalf("expected telegram id 42, got %d", u.TelegramID)
	}
}

func TestValidateTelegramUser_InvalidID(t *testing.T) {
	store := &stubStore{}
	for _, id := range []int64{0, -5} {
		if _, err := ValidateTelegramUser(context.Background(), store, id); !errors.Is(err, ErrInvalidTelegramID) {
			t.Fatalf("expected ErrInvalidTelegramID for %d, got %v", id, err)
		}
	}
}

func TestValidateTelegramUser_NotFoundAndInactive(t *testing.T) {
	if _, err := ValidateTelegramUser(context.Background(), &stubStore{}, 42); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	blocked := &stubStore{user: &User{TelegramID: 42, Status: UserStatusBlocked}}
	if _, err := ValidateTelegramUser(context.Background(), blocked, 42); !errors.Is(err, ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
}

func TestStaticStore_Roles(t *testing.T) {
	store := NewStaticStore([]int64{100, 200})

	admin, err := store.FindByTelegramID(context.Background(), 100)
	if err != nil {
		t.Fatalf("find admin: %v", err)
	}
	if admin.Role != UserRoleAdmin {
		t.Fatalf("expected admin role, got %s", admin.Role)
	}

	client, err := store.FindByTelegramID(context.Background(), 5)
	if err != nil {
		t.Fatalf("find client: %v", err)
	}
	if client.Role != UserRoleClient || client.Status != UserStatusActive {
		t.Fatalf("expected active client, got %+v", client)
	}
}

func TestJWT_RoundTrip(t *testing.T) {
	u := &User{TelegramID: 42, Role: UserRoleAdmin, Status: UserStatusActive}

	token, err := IssueToken("secret", u, time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.TelegramID != 42 || claims.Role != UserRoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestJWT_RejectsWrongSecretAndExpired(t *testing.T) {
	u := &User{TelegramID: 42, Role: UserRoleClient}

	token, err := IssueToken("secret", u, time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := ParseToken("other", token); !errors.Is(err, ErrBadToken) {
		t.Fatalf("expected ErrBadToken for wrong secret, got %v", err)
	}

	expired, err := IssueToken("secret", u, -time.Minute)
	if err != nil {
		t.Fatalf("issue expired token: %v", err)
	}
	if _, err := ParseToken("secret", expired); !errors.Is(err, ErrBadToken) {
		t.Fatalf("expected ErrBadToken for expired token, got %v", err)
	}
}
