package api

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/Leganyst/booking-core/internal/model"
	"github.com/Leganyst/booking-core/internal/service"
)

func (a *API) listClients(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset := listParams(r)
	items, total, err := a.clients.List(r.Context(), limit, offset)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listBody[model.Client]{Items: items, Total: total, Limit: limit, Offset: offset})
}

func (a *API) getClient(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	c, err := a.clients.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// createClient дедуплицирует по телефону: существующий клиент
// возвращается с кодом 200, новый — с 201.
func (a *API) createClient(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in service.ClientInput
	if !decodeBody(w, r, &in) {
		return
	}
	c, created, err := a.clients.Create(r.Context(), in)
	if err != nil {
		fail(w, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, c)
}

func (a *API) updateClient(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var in service.ClientInput
	if !decodeBody(w, r, &in) {
		return
	}
	c, err := a.clients.Update(r.Context(), ps.ByName("id"), in)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (a *API) deleteClient(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := a.clients.Delete(r.Context(), ps.ByName("id")); err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
