package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/Leganyst/booking-core/internal/model"
	"github.com/Leganyst/booking-core/internal/repository"
	"github.com/Leganyst/booking-core/internal/service"
)

// conflictBody — ответ 409 с ближайшими свободными альтернативами.
type conflictBody struct {
	Error        string                `json:"error"`
	Alternatives []service.Alternative `json:"alternatives,omitempty"`
}

// listBookings отдаёт записи дня (?date=, опционально ?resources=a,b)
// либо записи клиента (?client=) с пагинацией.
func (a *API) listBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()

	if clientID := q.Get("client"); clientID != "" {
		limit, offset := listParams(r)
		items, total, err := a.bookings.ListByClient(r.Context(), clientID, limit, offset)
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, listBody[model.Booking]{Items: items, Total: total, Limit: limit, Offset: offset})
		return
	}

	date := q.Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "date or client query parameter is required")
		return
	}
	items, err := a.bookings.ListByDay(r.Context(), date, splitCSV(q.Get("resources")))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listBody[model.Booking]{Items: items, Total: int64(len(items)), Limit: len(items)})
}

func (a *API) getBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	b, err := a.bookings.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (a *API) createBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in service.CreateBookingInput
	if !decodeBody(w, r, &in) {
		return
	}
	b, alts, err := a.bookings.Create(r.Context(), in)
	if errors.Is(err, repository.ErrSlotConflict) {
		writeJSON(w, http.StatusConflict, conflictBody{Error: err.Error(), Alternatives: alts})
		return
	}
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (a *API) cancelBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	b, err := a.bookings.Cancel(r.Context(), ps.ByName("id"))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (a *API) completeBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	b, err := a.bookings.Complete(r.Context(), ps.ByName("id"))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

type rescheduleRequest struct {
	ResourceID *uuid.UUID `json:"resourceId"`
	Date       string     `json:"date"`
	Start      string     `json:"start"`
}

func (a *API) rescheduleBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req rescheduleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	b, alts, err := a.bookings.Reschedule(r.Context(), ps.ByName("id"), req.ResourceID, req.Date, req.Start)
	if errors.Is(err, repository.ErrSlotConflict) {
		writeJSON(w, http.StatusConflict, conflictBody{Error: err.Error(), Alternatives: alts})
		return
	}
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// listEvents — журнал аудита: хвост целиком или история одной записи.
func (a *API) listEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()

	if bookingID := q.Get("booking"); bookingID != "" {
		events, err := a.bookings.EventsByBooking(r.Context(), bookingID)
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, listBody[model.Event]{Items: events, Total: int64(len(events)), Limit: len(events)})
		return
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	events, err := a.bookings.RecentEvents(r.Context(), limit)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listBody[model.Event]{Items: events, Total: int64(len(events)), Limit: len(events)})
}

func (a *API) deleteBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := a.bookings.Delete(r.Context(), ps.ByName("id")); err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
