package http

import (
	"net/http"

	"github.com/finconsgroup/zooadmin/internal/sandbox/domain"
	"github.com/finconsgroup/zooadmin/internal/sandbox/store"
	"github.com/finconsgroup/zooadmin/pkg/cryptox"
	"github.com/finconsgroup/zooadmin/pkg/httpx"
	"github.com/finconsgroup/zooadmin/pkg/slogx"
	"github.com/finconsgroup/zooadmin/pkg/zoosdk"
)

type UsersHandler struct {
	Store store.Store
}

// toAPIUser builds the full output shape with the user's owned records
// nested. The password hash never leaves the store layer.
func (h *UsersHandler) toAPIUser(r *http.Request, u domain.User) (zoosdk.User, error) {
	ctx := r.Context()

	animals, err := h.Store.Animals().ListByUser(ctx, u.ID)
	if err != nil {
		return zoosdk.User{}, err
	}

	enclosures, err := h.Store.Enclosures().ListByUser(ctx, u.ID)
	if err != nil {
		return zoosdk.User{}, err
	}

	tickets, err := h.Store.Tickets().ListByUser(ctx, u.ID)
	if err != nil {
		return zoosdk.User{}, err
	}

	out := zoosdk.User{
		ID:           u.ID,
		Name:         u.Name,
		LastName:     u.LastName,
		Username:     u.Username,
		Role:         u.Role,
		OperatorType: u.OperatorType,
		Animals:      toAPIAnimals(animals),
		Enclosures:   make([]zoosdk.Enclosure, len(enclosures)),
		Tickets:      toAPITickets(tickets),
	}
	for i, e := range enclosures {
		out.Enclosures[i] = zoosdk.Enclosure{
			ID:          e.ID,
			Name:        e.Name,
			Area:        e.Area,
			Description: e.Description,
			User:        e.UserID,
		}
	}
	return out, nil
}

func fromAPIUser(in zoosdk.UserInput) domain.User {
	u := domain.User{
		ID:           in.ID,
		Name:         in.Name,
		LastName:     in.LastName,
		Username:     in.Username,
		Role:         in.Role,
		OperatorType: in.OperatorType,
	}
	// The subtype only makes sense for operators.
	if u.Role != zoosdk.RoleOperator {
		u.OperatorType = nil
	}
	return u
}

func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.Users().List(r.Context())
	if err != nil {
		writeStoreError(w, r, err, "users")
		return
	}

	out := make([]zoosdk.User, len(users))
	for i, u := range users {
		out[i], err = h.toAPIUser(r, u)
		if err != nil {
			writeStoreError(w, r, err, "users")
			return
		}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	u, err := h.Store.Users().GetByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, "user")
		return
	}

	out, err := h.toAPIUser(r, u)
	if err != nil {
		writeStoreError(w, r, err, "user")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *UsersHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var in zoosdk.UserInput
	if err := decodeBody(r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed user")
		return
	}
	if in.Username == "" || in.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		slogx.FromContext(r.Context()).Error("password hash failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	u := fromAPIUser(in)
	u.PasswordHash = hash
	id, err := h.Store.Users().Create(r.Context(), u)
	if err != nil {
		writeStoreError(w, r, err, "user")
		return
	}
	u.ID = id

	out, err := h.toAPIUser(r, u)
	if err != nil {
		writeStoreError(w, r, err, "user")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var in zoosdk.UserInput
	if err := decodeBody(r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed user")
		return
	}

	u := fromAPIUser(in)
	u.ID = id

	// An omitted password keeps the stored hash.
	if in.Password != "" {
		hash, err := cryptox.HashPassword(in.Password)
		if err != nil {
			slogx.FromContext(r.Context()).Error("password hash failed", "error", err)
			httpx.WriteError(w, http.StatusInternalServerError, "internal error")
			return
		}
		u.PasswordHash = hash
	}

	if err := h.Store.Users().Update(r.Context(), u); err != nil {
		writeStoreError(w, r, err, "user")
		return
	}

	out, err := h.toAPIUser(r, u)
	if err != nil {
		writeStoreError(w, r, err, "user")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.Store.Users().Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, err, "user")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}
