package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/Leganyst/booking-core/internal/model"
	"github.com/Leganyst/booking-core/internal/repository"
	"github.com/Leganyst/booking-core/internal/service"
	"github.com/Leganyst/booking-core/internal/wizard"
)

// wizardView — состояние сценария, отдаваемое мини-аппу.
type wizardView struct {
	Screen      string      `json:"screen"`
	ServiceID   uuid.UUID   `json:"serviceId"`
	ServiceName string      `json:"serviceName"`
	ResourceID  string      `json:"resourceId,omitempty"`
	Date        string      `json:"date,omitempty"`
	Start       string      `json:"start,omitempty"`
	Price       int64       `json:"price"`
	DurationMin int64       `json:"durationMin"`
	Extended    bool        `json:"extended"`
	AddOnIDs    []uuid.UUID `json:"addOnServiceIds,omitempty"`
}

func viewOf(s wizard.Session) wizardView {
	v := wizardView{
		Screen:      s.Screen.String(),
		ServiceID:   s.ServiceID,
		ServiceName: s.ServiceName,
		Date:        s.Date,
		Start:       s.Start,
		Price:       s.Price,
		DurationMin: s.DurationMin,
		Extended:    s.Extended,
		AddOnIDs:    s.AddOnIDs,
	}
	if s.ResourceID != uuid.Nil {
		v.ResourceID = s.ResourceID.String()
	}
	return v
}

type wizardStartRequest struct {
	ServiceID string `json:"serviceId"`
}

// wizardStart открывает сценарий с карточки выбранной услуги.
func (a *API) wizardStart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req wizardStartRequest
	if !decodeBody(w, r, &req) {
		return
	}
	svc, err := a.catalog.GetService(r.Context(), req.ServiceID)
	if err != nil {
		fail(w, err)
		return
	}

	claims := claimsFrom(r)
	sess := a.wizard.Start(claims.TelegramID, svc.ID, svc.Name, svc.Price, svc.DurationMin)
	writeJSON(w, http.StatusOK, viewOf(sess))
}

type wizardSelectRequest struct {
	ResourceID uuid.UUID `json:"resourceId"`
	Date       string    `json:"date"`
	Start      string    `json:"start"`
}

// wizardSelect фиксирует выбранный слот. С карточки услуги сценарий
// сперва переводится на экран выбора времени, сохраняя стек истории.
func (a *API) wizardSelect(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req wizardSelectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	sess, err := a.wizard.Update(claimsFrom(r).TelegramID, func(s *wizard.Session) error {
		if s.Screen == wizard.ScreenServiceDetails {
			if err := s.ToTimeSelection(); err != nil {
				return err
			}
		}
		if req.ResourceID == uuid.Nil && req.Date == "" && req.Start == "" {
			// Только переход на экран выбора времени.
			return nil
		}
		return s.ChooseSlot(req.ResourceID, req.Date, req.Start)
	})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(sess))
}

type wizardExtendRequest struct {
	PriceDelta int64 `json:"priceDelta"`
}

// wizardExtend — апсейл «+15 минут» на экране подтверждения.
func (a *API) wizardExtend(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req wizardExtendRequest
	if !decodeBody(w, r, &req) {
		return
	}
	sess, err := a.wizard.Update(claimsFrom(r).TelegramID, func(s *wizard.Session) error {
		return s.ApplyExtension(req.PriceDelta)
	})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(sess))
}

type wizardAddOnRequest struct {
	ServiceID string `json:"serviceId"`
}

// wizardAddOn добавляет к записи дополнительную услугу по её карточке.
func (a *API) wizardAddOn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req wizardAddOnRequest
	if !decodeBody(w, r, &req) {
		return
	}
	svc, err := a.catalog.GetService(r.Context(), req.ServiceID)
	if err != nil {
		fail(w, err)
		return
	}
	sess, err := a.wizard.Update(claimsFrom(r).TelegramID, func(s *wizard.Session) error {
		return s.ApplyAddOn(svc.ID, svc.Price, svc.DurationMin)
	})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(sess))
}

func (a *API) wizardBack(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess, err := a.wizard.Update(claimsFrom(r).TelegramID, func(s *wizard.Session) error {
		return s.Back()
	})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(sess))
}

type wizardConfirmRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type wizardConfirmResponse struct {
	Booking *model.Booking `json:"booking"`
	State   wizardView     `json:"state"`
}

// wizardConfirm создаёт запись из сценария. Клиент ищется по Telegram ID,
// при отсутствии — регистрируется по имени и телефону из запроса.
func (a *API) wizardConfirm(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req wizardConfirmRequest
	if !decodeBody(w, r, &req) {
		return
	}
	claims := claimsFrom(r)
	sess, err := a.wizard.Update(claims.TelegramID, func(s *wizard.Session) error {
		return s.ReadyToConfirm()
	})
	if err != nil {
		fail(w, err)
		return
	}

	client, err := a.clients.GetByTelegramID(r.Context(), claims.TelegramID)
	if err != nil {
		if req.Name == "" {
			fail(w, service.ErrClientRequired)
			return
		}
		client, _, err = a.clients.Create(r.Context(), service.ClientInput{
			Name:             req.Name,
			Phone:            req.Phone,
			TelegramID:       claims.TelegramID,
			PreferredContact: model.ContactTelegram,
		})
		if err != nil {
			fail(w, err)
			return
		}
	}

	serviceID := sess.ServiceID
	price := sess.Price
	b, alts, err := a.bookings.Create(r.Context(), service.CreateBookingInput{
		ResourceID:  sess.ResourceID,
		ClientID:    &client.ID,
		ServiceID:   &serviceID,
		Date:        sess.Date,
		Start:       sess.Start,
		DurationMin: sess.DurationMin,
		Price:       &price,
	})
	if errors.Is(err, repository.ErrSlotConflict) {
		// Слот заняли, пока клиент подтверждал: остаёмся на экране
		// подтверждения и предлагаем альтернативы.
		writeJSON(w, http.StatusConflict, conflictBody{Error: err.Error(), Alternatives: alts})
		return
	}
	if err != nil {
		fail(w, err)
		return
	}

	sess, err = a.wizard.Update(claims.TelegramID, func(s *wizard.Session) error {
		s.MarkSuccess()
		return nil
	})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, wizardConfirmResponse{Booking: b, State: viewOf(sess)})
}

func (a *API) wizardState(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess, err := a.wizard.Get(claimsFrom(r).TelegramID)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(sess))
}
