package api

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/Leganyst/booking-core/internal/model"
	"github.com/Leganyst/booking-core/internal/service"
)

func (a *API) listResources(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if t := r.URL.Query().Get("type"); t != "" {
		items, err := a.resources.ListByType(r.Context(), model.ResourceType(t))
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, listBody[model.Resource]{Items: items, Total: int64(len(items)), Limit: len(items)})
		return
	}

	limit, offset := listParams(r)
	items, total, err := a.resources.List(r.Context(), limit, offset)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listBody[model.Resource]{Items: items, Total: total, Limit: limit, Offset: offset})
}

func (a *API) getResource(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := a.resources.Get(r.Context(), ps.ByName("id"))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *API) createResource(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in service.ResourceInput
	if !decodeBody(w, r, &in) {
		return
	}
	res, err := a.resources.Create(r.Context(), in)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (a *API) updateResource(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var in service.ResourceInput
	if !decodeBody(w, r, &in) {
		return
	}
	res, err := a.resources.Update(r.Context(), ps.ByName("id"), in)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *API) deleteResource(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := a.resources.Delete(r.Context(), ps.ByName("id")); err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
