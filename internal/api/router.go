// Package api — HTTP/JSON-интерфейс платформы записи.
package api

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/Leganyst/booking-core/internal/auth"
	"github.com/Leganyst/booking-core/internal/service"
	"github.com/Leganyst/booking-core/internal/wizard"
	"github.com/Leganyst/booking-core/internal/ws"
)

// API держит все зависимости HTTP-слоя.
type API struct {
	catalog   *service.CatalogService
	resources *service.ResourceService
	clients   *service.ClientService
	bookings  *service.BookingService
	calendar  *service.CalendarService

	wizard *wizard.Store
	users  auth.UserStore
	hub    *ws.Hub

	jwtSecret string
	jwtTTL    time.Duration
}

func New(
	catalog *service.CatalogService,
	resources *service.ResourceService,
	clients *service.ClientService,
	bookings *service.BookingService,
	cal *service.CalendarService,
	wiz *wizard.Store,
	users auth.UserStore,
	hub *ws.Hub,
	jwtSecret string,
	jwtTTL time.Duration,
) *API {
	return &API{
		catalog:   catalog,
		resources: resources,
		clients:   clients,
		bookings:  bookings,
		calendar:  cal,
		wizard:    wiz,
		users:     users,
		hub:       hub,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
	}
}

// Router регистрирует все маршруты. Чтение каталога и календаря открыто
// (витрина мини-аппа), изменения — только администратору, мастер записи —
// любому аутентифицированному пользователю.
func (a *API) Router() http.Handler {
	r := httprouter.New()

	r.GET("/healthz", a.health)
	r.POST("/api/auth/telegram", a.authTelegram)

	// Каталог услуг и комплексов.
	r.GET("/api/services", a.listServices)
	r.GET("/api/services/:id", a.getService)
	r.POST("/api/services", a.admin(a.createService))
	r.PATCH("/api/services/:id", a.admin(a.updateService))
	r.DELETE("/api/services/:id", a.admin(a.deleteService))

	r.GET("/api/bundles", a.listBundles)
	r.GET("/api/bundles/:id", a.getBundle)
	r.GET("/api/bundles/:id/quote", a.quoteBundle)
	r.POST("/api/bundles", a.admin(a.createBundle))
	r.PATCH("/api/bundles/:id", a.admin(a.updateBundle))
	r.DELETE("/api/bundles/:id", a.admin(a.deleteBundle))

	// Ресурсы.
	r.GET("/api/resources", a.listResources)
	r.GET("/api/resources/:id", a.getResource)
	r.POST("/api/resources", a.admin(a.createResource))
	r.PATCH("/api/resources/:id", a.admin(a.updateResource))
	r.DELETE("/api/resources/:id", a.admin(a.deleteResource))

	// Клиенты.
	r.GET("/api/clients", a.admin(a.listClients))
	r.GET("/api/clients/:id", a.admin(a.getClient))
	r.POST("/api/clients", a.admin(a.createClient))
	r.PATCH("/api/clients/:id", a.admin(a.updateClient))
	r.DELETE("/api/clients/:id", a.admin(a.deleteClient))

	// Записи.
	r.GET("/api/bookings", a.admin(a.listBookings))
	r.GET("/api/bookings/:id", a.admin(a.getBooking))
	r.POST("/api/bookings", a.admin(a.createBooking))
	r.POST("/api/bookings/:id/cancel", a.admin(a.cancelBooking))
	r.POST("/api/bookings/:id/reschedule", a.admin(a.rescheduleBooking))
	r.POST("/api/bookings/:id/complete", a.admin(a.completeBooking))
	r.DELETE("/api/bookings/:id", a.admin(a.deleteBooking))

	// Журнал аудита.
	r.GET("/api/events", a.admin(a.listEvents))

	// Календарь.
	r.GET("/api/calendar/grid", a.calendarGrid)
	r.GET("/api/calendar/free", a.calendarFree)
	r.GET("/api/calendar/hot", a.calendarHot)

	// Мастер записи клиента.
	r.POST("/api/wizard/start", a.authed(a.wizardStart))
	r.POST("/api/wizard/select", a.authed(a.wizardSelect))
	r.POST("/api/wizard/extend", a.authed(a.wizardExtend))
	r.POST("/api/wizard/addon", a.authed(a.wizardAddOn))
	r.POST("/api/wizard/back", a.authed(a.wizardBack))
	r.POST("/api/wizard/confirm", a.authed(a.wizardConfirm))
	r.GET("/api/wizard/state", a.authed(a.wizardState))

	// Живые обновления календаря.
	r.GET("/ws/calendar", func(w http.ResponseWriter, req *http.Request, _ httprouter.Params) {
		a.hub.ServeWS(w, req)
	})

	return r
}

func (a *API) health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
