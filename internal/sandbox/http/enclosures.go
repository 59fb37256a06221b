package http

import (
	"net/http"

	"github.com/finconsgroup/zooadmin/internal/sandbox/domain"
	"github.com/finconsgroup/zooadmin/internal/sandbox/store"
	"github.com/finconsgroup/zooadmin/pkg/httpx"
	"github.com/finconsgroup/zooadmin/pkg/zoosdk"
)

type EnclosuresHandler struct {
	Store store.Store
}

// toAPIEnclosure builds the wire shape, which carries the housed animal
// ids alongside the enclosure's own fields.
func (h *EnclosuresHandler) toAPIEnclosure(r *http.Request, e domain.Enclosure) (zoosdk.Enclosure, error) {
	animals, err := h.Store.Animals().ListByEnclosure(r.Context(), e.ID)
	if err != nil {
		return zoosdk.Enclosure{}, err
	}

	ids := make([]int64, len(animals))
	for i, a := range animals {
		ids[i] = a.ID
	}

	return zoosdk.Enclosure{
		ID:          e.ID,
		Name:        e.Name,
		Area:        e.Area,
		Description: e.Description,
		User:        e.UserID,
		Animals:     ids,
	}, nil
}

func fromAPIEnclosure(e zoosdk.Enclosure) domain.Enclosure {
	return domain.Enclosure{
		ID:          e.ID,
		Name:        e.Name,
		Area:        e.Area,
		Description: e.Description,
		UserID:      e.User,
	}
}

func (h *EnclosuresHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	enclosures, err := h.Store.Enclosures().List(r.Context())
	if err != nil {
		writeStoreError(w, r, err, "enclosures")
		return
	}

	out := make([]zoosdk.Enclosure, len(enclosures))
	for i, e := range enclosures {
		out[i], err = h.toAPIEnclosure(r, e)
		if err != nil {
			writeStoreError(w, r, err, "enclosures")
			return
		}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *EnclosuresHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid enclosure id")
		return
	}

	enclosure, err := h.Store.Enclosures().GetByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, "enclosure")
		return
	}

	out, err := h.toAPIEnclosure(r, enclosure)
	if err != nil {
		writeStoreError(w, r, err, "enclosure")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *EnclosuresHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var in zoosdk.Enclosure
	if err := decodeBody(r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed enclosure")
		return
	}

	enclosure := fromAPIEnclosure(in)
	id, err := h.Store.Enclosures().Create(r.Context(), enclosure)
	if err != nil {
		writeStoreError(w, r, err, "enclosure")
		return
	}
	enclosure.ID = id

	out, err := h.toAPIEnclosure(r, enclosure)
	if err != nil {
		writeStoreError(w, r, err, "enclosure")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *EnclosuresHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid enclosure id")
		return
	}

	var in zoosdk.Enclosure
	if err := decodeBody(r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed enclosure")
		return
	}

	enclosure := fromAPIEnclosure(in)
	enclosure.ID = id
	if err := h.Store.Enclosures().Update(r.Context(), enclosure); err != nil {
		writeStoreError(w, r, err, "enclosure")
		return
	}

	out, err := h.toAPIEnclosure(r, enclosure)
	if err != nil {
		writeStoreError(w, r, err, "enclosure")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *EnclosuresHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid enclosure id")
		return
	}

	if err := h.Store.Enclosures().Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, err, "enclosure")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}
