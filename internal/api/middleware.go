package api

import (
	"bufio"
	"context"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/Leganyst/booking-core/internal/auth"
)

type ctxKey int

const claimsKey ctxKey = iota

func claimsFrom(r *http.Request) *auth.Claims {
	c, _ := r.Context().Value(claimsKey).(*auth.Claims)
	return c
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack пробрасывает Hijacker внутреннего writer'а:
// без него websocket-upgrade за логирующей обёрткой невозможен.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	return h.Hijack()
}

// WithLogging пишет строку на каждый запрос: метод, путь, код, длительность.
func WithLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r)
		log.Printf("%s %s -> %d (%s)", r.Method, r.URL.Path, sw.status, time.Since(start))
	})
}

// authed требует валидный Bearer-токен и кладёт claims в контекст.
func (a *API) authed(h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" || raw == r.Header.Get("Authorization") {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		claims, err := auth.ParseToken(a.jwtSecret, raw)
		if err != nil {
			fail(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey, claims)
		h(w, r.WithContext(ctx), ps)
	}
}

// admin поверх authed требует административную роль.
func (a *API) admin(h httprouter.Handle) httprouter.Handle {
	return a.authed(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if c := claimsFrom(r); c == nil || c.Role != auth.UserRoleAdmin {
			writeError(w, http.StatusForbidden, "admin role required")
			return
		}
		h(w, r, ps)
	})
}
