package api

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/Leganyst/booking-core/internal/model"
	"github.com/Leganyst/booking-core/internal/service"
)

// listBody — конверт списочных ответов с общим количеством в БД.
type listBody[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

func listParams(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func onlyActive(r *http.Request) bool {
	return r.URL.Query().Get("active") != "false"
}

func (a *API) listServices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset := listParams(r)
	items, total, err := a.catalog.ListServices(r.Context(), onlyActive(r), limit, offset)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listBody[model.Service]{Items: items, Total: total, Limit: limit, Offset: offset})
}

func (a *API) getService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	svc, err := a.catalog.GetService(r.Context(), ps.ByName("id"))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

func (a *API) createService(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in service.ServiceInput
	if !decodeBody(w, r, &in) {
		return
	}
	svc, err := a.catalog.CreateService(r.Context(), in)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, svc)
}

func (a *API) updateService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var in service.ServiceInput
	if !decodeBody(w, r, &in) {
		return
	}
	svc, err := a.catalog.UpdateService(r.Context(), ps.ByName("id"), in)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

func (a *API) deleteService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := a.catalog.DeleteService(r.Context(), ps.ByName("id")); err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (a *API) listBundles(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if serviceID := r.URL.Query().Get("service"); serviceID != "" {
		items, err := a.catalog.BundlesByService(r.Context(), serviceID)
		if err != nil {
			fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, listBody[model.Bundle]{Items: items, Total: int64(len(items)), Limit: len(items)})
		return
	}

	limit, offset := listParams(r)
	items, total, err := a.catalog.ListBundles(r.Context(), onlyActive(r), limit, offset)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listBody[model.Bundle]{Items: items, Total: total, Limit: limit, Offset: offset})
}

func (a *API) getBundle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	b, err := a.catalog.GetBundle(r.Context(), ps.ByName("id"))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (a *API) quoteBundle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	q, err := a.catalog.QuoteBundle(r.Context(), ps.ByName("id"))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (a *API) createBundle(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in service.BundleInput
	if !decodeBody(w, r, &in) {
		return
	}
	b, err := a.catalog.CreateBundle(r.Context(), in)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (a *API) updateBundle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var in service.BundleInput
	if !decodeBody(w, r, &in) {
		return
	}
	b, err := a.catalog.UpdateBundle(r.Context(), ps.ByName("id"), in)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (a *API) deleteBundle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := a.catalog.DeleteBundle(r.Context(), ps.ByName("id")); err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
