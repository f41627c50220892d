package service

import (
	"context"
	"testing"
)

func TestClientService_DedupByPhoneDigits(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, created, err := env.clients.Create(ctx, ClientInput{
		Name:  "Мария Петрова",
		Phone: "+7 (900) 765-43-21",
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	if !created {
		t.Fatalf("expected a new client")
	}

	// Номер без кода страны — другой набор цифр, другой клиент.
	_, created, err = env.clients.Create(ctx, ClientInput{
		Name:  "М. Петрова",
		Phone: "900-765-43-21",
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	if !created {
		t.Fatalf("different digits must create a new client")
	}

	dup, created, err := env.clients.Create(ctx, ClientInput{
		Name:  "Мария",
		Phone: "7-900-765-43-21",
	})
	if err != nil {
		t.Fatalf("create duplicate: %v", err)
	}
	if created {
		t.Fatalf("expected dedup by phone digits")
	}
	if dup.ID != first.ID {
		t.Fatalf("expected existing client %s, got %s", first.ID, dup.ID)
	}
	if dup.Name != "Мария Петрова" {
		t.Fatalf("dedup must keep the original client record, got %q", dup.Name)
	}
}

func TestClientService_GetByTelegramID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c, _, err := env.clients.Create(ctx, ClientInput{
		Name:       "Михаил Иванов",
		Phone:      "+7 (900) 111-22-33",
		TelegramID: 424242,
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	got, err := env.clients.GetByTelegramID(ctx, 424242)
	if err != nil {
		t.Fatalf("get by telegram id: %v", err)
	}
	if got.ID != c.ID {
		t.Fatalf("expected %s, got %s", c.ID, got.ID)
	}
}
