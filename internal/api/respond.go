package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/Leganyst/booking-core/internal/auth"
	"github.com/Leganyst/booking-core/internal/calendar"
	"github.com/Leganyst/booking-core/internal/pricing"
	"github.com/Leganyst/booking-core/internal/repository"
	"github.com/Leganyst/booking-core/internal/service"
	"github.com/Leganyst/booking-core/internal/wizard"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("api: encode response: %v", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// fail маппит ошибки бизнес-логики в HTTP-коды.
func fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, service.ErrUnknownService),
		errors.Is(err, service.ErrUnknownResource),
		errors.Is(err, service.ErrUnknownClient),
		errors.Is(err, wizard.ErrNoSession):
		writeError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, repository.ErrSlotConflict),
		errors.Is(err, wizard.ErrWrongScreen),
		errors.Is(err, wizard.ErrAtRoot),
		errors.Is(err, service.ErrAlreadyCompleted),
		errors.Is(err, service.ErrCancelledBooking),
		errors.Is(err, service.ErrServiceInBundle):
		writeError(w, http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrBadDuration),
		errors.Is(err, service.ErrBadPrice),
		errors.Is(err, service.ErrBadDate),
		errors.Is(err, service.ErrUnknownStatus),
		errors.Is(err, service.ErrOutsideWorkingHours),
		errors.Is(err, service.ErrResourceUnavailable),
		errors.Is(err, service.ErrClientRequired),
		errors.Is(err, service.ErrServiceRequired),
		errors.Is(err, service.ErrUnalignedStart),
		errors.Is(err, pricing.ErrBundleServiceCount),
		errors.Is(err, calendar.ErrCrossesMidnight),
		errors.Is(err, wizard.ErrIncomplete):
		writeError(w, http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, auth.ErrInvalidTelegramID),
		errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, auth.ErrUserInactive),
		errors.Is(err, auth.ErrBadToken):
		writeError(w, http.StatusUnauthorized, err.Error())

	default:
		log.Printf("api: internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "bad request body: "+err.Error())
		return false
	}
	return true
}
