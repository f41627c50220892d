package api

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/Leganyst/booking-core/internal/auth"
)

type authRequest struct {
	TelegramID int64 `json:"telegramId"`
}

type authResponse struct {
	Token string        `json:"token"`
	Role  auth.UserRole `json:"role"`
}

// authTelegram валидирует пользователя Telegram и выдаёт JWT.
func (a *API) authTelegram(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req authRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := auth.ValidateTelegramUser(r.Context(), a.users, req.TelegramID)
	if err != nil {
		fail(w, err)
		return
	}

	token, err := auth.IssueToken(a.jwtSecret, u, a.jwtTTL)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: token, Role: u.Role})
}
