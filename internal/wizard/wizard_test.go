package wizard

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func startSession(t *testing.T, st *Store) *Session {
	t.Helper()
	s := st.Start(42, uuid.New(), "Стрижка", 1500, 60)
	return &s
}

func TestSession_HappyPath(t *testing.T) {
	st := NewStore(0)
	s := startSession(t, st)

	if s.Screen != ScreenServiceDetails {
		t.Fatalf("expected service-details, got %s", s.Screen)
	}

	if err := s.ToTimeSelection(); err != nil {
		t.Fatalf("to time selection: %v", err)
	}
	if err := s.ChooseSlot(uuid.New(), "2025-06-02", "14:30"); err != nil {
		t.Fatalf("choose slot: %v", err)
	}
	if s.Screen != ScreenConfirmation {
		t.Fatalf("expected confirmation, got %s", s.Screen)
	}
	if err := s.ReadyToConfirm(); err != nil {
		t.Fatalf("ready to confirm: %v", err)
	}

	s.MarkSuccess()
	if s.Screen != ScreenSuccess {
		t.Fatalf("expected success, got %s", s.Screen)
	}
}

func TestSession_BackWalksHistoryStack(t *testing.T) {
	st := NewStore(0)
	s := startSession(t, st)

	if err := s.Back(); !errors.Is(err, ErrAtRoot) {
		t.Fatalf("expected ErrAtRoot on the first screen, got %v", err)
	}

	_ = s.ToTimeSelection()
	_ = s.ChooseSlot(uuid.New(), "2025-06-02", "14:30")

	if err := s.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if s.Screen != ScreenTimeSelection {
		t.Fatalf("expected time-selection after back, got %s", s.Screen)
	}
	if err := s.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if s.Screen != ScreenServiceDetails {
		t.Fatalf("expected service-details after two backs, got %s", s.Screen)
	}
	if err := s.Back(); !errors.Is(err, ErrAtRoot) {
		t.Fatalf("expected ErrAtRoot at the bottom of the stack, got %v", err)
	}
}

func TestSession_ScreenGuards(t *testing.T) {
	st := NewStore(0)
	s := startSession(t, st)

	// Слот нельзя выбрать с карточки услуги.
	if err := s.ChooseSlot(uuid.New(), "2025-06-02", "14:30"); !errors.Is(err, ErrWrongScreen) {
		t.Fatalf("expected ErrWrongScreen, got %v", err)
	}

	_ = s.ToTimeSelection()
	if err := s.ChooseSlot(uuid.Nil, "", ""); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete for empty slot, got %v", err)
	}
	if err := s.ReadyToConfirm(); !errors.Is(err, ErrWrongScreen) {
		t.Fatalf("expected ErrWrongScreen before confirmation, got %v", err)
	}
}

func TestSession_ExtensionAppliesOnce(t *testing.T) {
	st := NewStore(0)
	s := startSession(t, st)
	_ = s.ToTimeSelection()
	_ = s.ChooseSlot(uuid.New(), "2025-06-02", "14:30")

	if err := s.ApplyExtension(300); err != nil {
		t.Fatalf("apply extension: %v", err)
	}
	if s.DurationMin != 75 || s.Price != 1800 {
		t.Fatalf("expected 75 min / 1800, got %d / %d", s.DurationMin, s.Price)
	}

	// Повторное применение игнорируется.
	if err := s.ApplyExtension(300); err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if s.DurationMin != 75 || s.Price != 1800 {
		t.Fatalf("extension must apply once, got %d / %d", s.DurationMin, s.Price)
	}
}

func TestSession_AddOnAppliesPerService(t *testing.T) {
	st := NewStore(0)
	s := startSession(t, st)
	_ = s.ToTimeSelection()
	_ = s.ChooseSlot(uuid.New(), "2025-06-02", "14:30")

	styling := uuid.New()
	if err := s.ApplyAddOn(styling, 800, 30); err != nil {
		t.Fatalf("apply add-on: %v", err)
	}
	if s.Price != 2300 || s.DurationMin != 90 {
		t.Fatalf("expected 2300 / 90, got %d / %d", s.Price, s.DurationMin)
	}

	// Та же услуга второй раз не добавляется.
	if err := s.ApplyAddOn(styling, 800, 30); err != nil {
		t.Fatalf("repeat add-on: %v", err)
	}
	if s.Price != 2300 || len(s.AddOnIDs) != 1 {
		t.Fatalf("add-on must apply once per service, got %d / %v", s.Price, s.AddOnIDs)
	}

	// Другая услуга — добавляется.
	if err := s.ApplyAddOn(uuid.New(), 500, 15); err != nil {
		t.Fatalf("second add-on: %v", err)
	}
	if s.Price != 2800 || s.DurationMin != 105 {
		t.Fatalf("expected 2800 / 105, got %d / %d", s.Price, s.DurationMin)
	}
}

func TestStore_UpdateSerializesMutations(t *testing.T) {
	st := NewStore(0)
	st.Start(42, uuid.New(), "Стрижка", 1500, 60)

	if _, err := st.Update(7, func(s *Session) error { return nil }); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for unknown user, got %v", err)
	}

	if _, err := st.Update(42, func(s *Session) error {
		if err := s.ToTimeSelection(); err != nil {
			return err
		}
		return s.ChooseSlot(uuid.New(), "2025-06-02", "14:30")
	}); err != nil {
		t.Fatalf("choose slot: %v", err)
	}

	// Параллельные запросы одного пользователя меняют сессию
	// только под мьютексом хранилища.
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := st.Update(42, func(s *Session) error {
				return s.ApplyAddOn(uuid.New(), 100, 5)
			}); err != nil {
				t.Errorf("apply add-on: %v", err)
			}
		}()
	}
	wg.Wait()

	s, err := st.Get(42)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if s.Price != 2500 || s.DurationMin != 110 || len(s.AddOnIDs) != 10 {
		t.Fatalf("expected 2500 / 110 / 10 add-ons, got %d / %d / %d",
			s.Price, s.DurationMin, len(s.AddOnIDs))
	}
}

func TestStore_TTLAndEnd(t *testing.T) {
	st := NewStore(50 * time.Millisecond)
	startSession(t, st)

	if _, err := st.Get(42); err != nil {
		t.Fatalf("get live session: %v", err)
	}

	time.Sleep(80 * time.Millisecond)
	if _, err := st.Get(42); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected expired session, got %v", err)
	}

	startSession(t, st)
	st.End(42)
	if _, err := st.Get(42); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ended session, got %v", err)
	}

	if _, err := st.Get(7); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected no session for unknown user, got %v", err)
	}
}
