package http

import (
	"net/http"

	"github.com/finconsgroup/zooadmin/internal/sandbox/store"
	"github.com/finconsgroup/zooadmin/pkg/httpx"
	"github.com/finconsgroup/zooadmin/pkg/zoosdk"
)

type AnimalsHandler struct {
	Store store.Store
}

func (h *AnimalsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	animals, err := h.Store.Animals().List(r.Context())
	if err != nil {
		writeStoreError(w, r, err, "animals")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAPIAnimals(animals))
}

func (h *AnimalsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid animal id")
		return
	}

	animal, err := h.Store.Animals().GetByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, "animal")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAPIAnimal(animal))
}

func (h *AnimalsHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var in zoosdk.Animal
	if err := decodeBody(r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed animal")
		return
	}

	animal := fromAPIAnimal(in)
	id, err := h.Store.Animals().Create(r.Context(), animal)
	if err != nil {
		writeStoreError(w, r, err, "animal")
		return
	}
	animal.ID = id
	httpx.WriteJSON(w, http.StatusOK, toAPIAnimal(animal))
}

func (h *AnimalsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid animal id")
		return
	}

	var in zoosdk.Animal
	if err := decodeBody(r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed animal")
		return
	}

	animal := fromAPIAnimal(in)
	animal.ID = id
	if err := h.Store.Animals().Update(r.Context(), animal); err != nil {
		writeStoreError(w, r, err, "animal")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAPIAnimal(animal))
}

func (h *AnimalsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid animal id")
		return
	}

	if err := h.Store.Animals().Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, err, "animal")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}
