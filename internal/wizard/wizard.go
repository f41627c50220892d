// Package wizard — линейный сценарий клиентской записи:
// услуга → время → подтверждение → успех. Экран — типизированное
// перечисление, «назад» работает по явному стеку истории, а не по
// захардкоженному знанию предыдущего экрана.
package wizard

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoSession   = errors.New("wizard session not found")
	ErrWrongScreen = errors.New("action is not allowed on this screen")
	ErrAtRoot      = errors.New("already at the first screen")
	ErrIncomplete  = errors.New("slot is not selected")
)

// Screen — экран сценария.
type Screen int

const (
	ScreenServiceDetails Screen = iota
	ScreenTimeSelection
	ScreenConfirmation
	ScreenSuccess
)

func (s Screen) String() string {
	switch s {
	case ScreenServiceDetails:
		return "service-details"
	case ScreenTimeSelection:
		return "time-selection"
	case ScreenConfirmation:
		return "confirmation"
	case ScreenSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Session — состояние сценария одного пользователя.
type Session struct {
	TelegramID int64

	Screen  Screen
	history []Screen

	ServiceID   uuid.UUID
	ServiceName string

	ResourceID uuid.UUID
	Date       string // YYYY-MM-DD
	Start      string // HH:MM

	Price       int64
	DurationMin int64

	// Апсейл: продление на 15 минут применяется один раз.
	Extended bool
	// Апсейл: дополнительные услуги, добавленные к основной.
	AddOnIDs []uuid.UUID

	UpdatedAt time.Time
}

func (s *Session) advance(next Screen) {
	s.history = append(s.history, s.Screen)
	s.Screen = next
	s.UpdatedAt = time.Now()
}

// Back возвращает на предыдущий экран по стеку истории.
func (s *Session) Back() error {
	if len(s.history) == 0 {
		return ErrAtRoot
	}
	s.Screen = s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.UpdatedAt = time.Now()
	return nil
}

// ToTimeSelection — с карточки услуги к выбору времени.
func (s *Session) ToTimeSelection() error {
	if s.Screen != ScreenServiceDetails {
		return ErrWrongScreen
	}
	s.advance(ScreenTimeSelection)
	return nil
}

// ChooseSlot фиксирует ресурс и время, переводя на подтверждение.
func (s *Session) ChooseSlot(resourceID uuid.UUID, date, start string) error {
	if s.Screen != ScreenTimeSelection {
		return ErrWrongScreen
	}
	if resourceID == uuid.Nil || date == "" || start == "" {
		return ErrIncomplete
	}
	s.ResourceID = resourceID
	s.Date = date
	s.Start = start
	s.advance(ScreenConfirmation)
	return nil
}

// ExtensionMinutes — длительность апсейл-продления.
const ExtensionMinutes = 15

// ApplyExtension применяет продление со скидочной ценой priceDelta.
// Цена и длительность меняются до записи в хранилище — повторное
// применение игнорируется.
func (s *Session) ApplyExtension(priceDelta int64) error {
	if s.Screen != ScreenConfirmation {
		return ErrWrongScreen
	}
	if s.Extended {
		return nil
	}
	s.Extended = true
	s.DurationMin += ExtensionMinutes
	s.Price += priceDelta
	s.UpdatedAt = time.Now()
	return nil
}

// ApplyAddOn добавляет к основной услуге дополнительную.
// Повторное добавление той же услуги игнорируется.
func (s *Session) ApplyAddOn(serviceID uuid.UUID, price, durationMin int64) error {
	if s.Screen != ScreenConfirmation {
		return ErrWrongScreen
	}
	for _, id := range s.AddOnIDs {
		if id == serviceID {
			return nil
		}
	}
	s.AddOnIDs = append(s.AddOnIDs, serviceID)
	s.Price += price
	s.DurationMin += durationMin
	s.UpdatedAt = time.Now()
	return nil
}

// ReadyToConfirm проверяет, что сценарий готов к созданию записи.
func (s *Session) ReadyToConfirm() error {
	if s.Screen != ScreenConfirmation {
		return ErrWrongScreen
	}
	if s.ResourceID == uuid.Nil || s.Date == "" || s.Start == "" {
		return ErrIncomplete
	}
	return nil
}

// MarkSuccess переводит сценарий на финальный экран.
func (s *Session) MarkSuccess() {
	s.advance(ScreenSuccess)
}

// Store — сессии сценария по Telegram ID пользователя, с TTL.
// Жизнь сессии соответствует жизни вкладки мини-аппа.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[int64]*Session
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Store{
		ttl:      ttl,
		sessions: make(map[int64]*Session),
	}
}

// Start начинает новый сценарий, затирая предыдущий незавершённый.
func (st *Store) Start(telegramID int64, serviceID uuid.UUID, serviceName string, price, durationMin int64) Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := &Session{
		TelegramID:  telegramID,
		Screen:      ScreenServiceDetails,
		ServiceID:   serviceID,
		ServiceName: serviceName,
		Price:       price,
		DurationMin: durationMin,
		UpdatedAt:   time.Now(),
	}
	st.sessions[telegramID] = s
	return *s
}

// live возвращает не протухшую сессию. Вызывается под st.mu.
func (st *Store) live(telegramID int64) (*Session, error) {
	s, ok := st.sessions[telegramID]
	if !ok {
		return nil, ErrNoSession
	}
	if time.Since(s.UpdatedAt) > st.ttl {
		delete(st.sessions, telegramID)
		return nil, ErrNoSession
	}
	return s, nil
}

// Get возвращает снимок живой сессии пользователя.
func (st *Store) Get(telegramID int64) (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, err := st.live(telegramID)
	if err != nil {
		return Session{}, err
	}
	return *s, nil
}

// Update изменяет сессию строго под мьютексом хранилища: параллельные
// запросы одного пользователя не гоняются за экран и цену. Возвращается
// снимок сессии после применения fn.
func (st *Store) Update(telegramID int64, fn func(*Session) error) (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, err := st.live(telegramID)
	if err != nil {
		return Session{}, err
	}
	if err := fn(s); err != nil {
		return Session{}, err
	}
	return *s, nil
}

// End завершает сессию.
func (st *Store) End(telegramID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, telegramID)
}
