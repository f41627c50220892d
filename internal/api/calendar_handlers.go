package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/Leganyst/booking-core/internal/calendar"
)

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// calendarGrid — сетка дня: колонки ресурсов на 30-минутных слотах.
func (a *API) calendarGrid(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	date := q.Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "date query parameter is required")
		return
	}
	grid, err := a.calendar.DayGrid(r.Context(), date, splitCSV(q.Get("resources")))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, grid)
}

// calendarFree — свободные стартовые слоты под услугу, постранично.
func (a *API) calendarFree(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	resourceID, date, serviceID := q.Get("resource"), q.Get("date"), q.Get("service")
	if resourceID == "" || date == "" || serviceID == "" {
		writeError(w, http.StatusBadRequest, "resource, date and service query parameters are required")
		return
	}

	slots, err := a.calendar.FreeSlots(r.Context(), resourceID, date, serviceID)
	if err != nil {
		fail(w, err)
		return
	}

	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	writeJSON(w, http.StatusOK, calendar.Paginate(slots, page, pageSize))
}

// calendarHot — ближайшие свободные слоты активных специалистов.
func (a *API) calendarHot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	date := q.Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "date query parameter is required")
		return
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	hot, err := a.calendar.HotSlots(r.Context(), date, limit)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hot)
}
