package http

import (
	"net/http"
	"time"

	"github.com/finconsgroup/zooadmin/internal/sandbox/store"
	"github.com/finconsgroup/zooadmin/pkg/httpx"
	"github.com/finconsgroup/zooadmin/pkg/slogx"
	"github.com/finconsgroup/zooadmin/pkg/zoosdk"
)

type TicketsHandler struct {
	Store store.Store
}

// HandleDashboard returns the shared pool of unassigned tickets.
func (h *TicketsHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.Store.Tickets().ListUnassigned(r.Context())
	if err != nil {
		writeStoreError(w, r, err, "tickets")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAPITickets(tickets))
}

// HandleMyTickets returns the tickets the caller has accepted.
func (h *TicketsHandler) HandleMyTickets(w http.ResponseWriter, r *http.Request) {
	identity, _ := httpx.IdentityFromCtx(r.Context())

	tickets, err := h.Store.Tickets().ListByUser(r.Context(), identity.ID)
	if err != nil {
		writeStoreError(w, r, err, "tickets")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAPITickets(tickets))
}

func (h *TicketsHandler) HandleAll(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.Store.Tickets().List(r.Context())
	if err != nil {
		writeStoreError(w, r, err, "tickets")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAPITickets(tickets))
}

func (h *TicketsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid ticket id")
		return
	}

	ticket, err := h.Store.Tickets().GetByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, "ticket")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAPITicket(ticket))
}

func (h *TicketsHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var in zoosdk.Ticket
	if err := decodeBody(r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed ticket")
		return
	}

	ticket := fromAPITicket(in)
	if ticket.CreationDate == "" {
		ticket.CreationDate = time.Now().Format("2006-01-02")
	}

	id, err := h.Store.Tickets().Create(r.Context(), ticket)
	if err != nil {
		writeStoreError(w, r, err, "ticket")
		return
	}
	ticket.ID = id
	httpx.WriteJSON(w, http.StatusOK, toAPITicket(ticket))
}

func (h *TicketsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid ticket id")
		return
	}

	var in zoosdk.Ticket
	if err := decodeBody(r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed ticket")
		return
	}

	ticket := fromAPITicket(in)
	ticket.ID = id
	if err := h.Store.Tickets().Update(r.Context(), ticket); err != nil {
		writeStoreError(w, r, err, "ticket")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAPITicket(ticket))
}

func (h *TicketsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid ticket id")
		return
	}

	if err := h.Store.Tickets().Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, err, "ticket")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

// HandleAccept assigns an unassigned ticket to the calling operator.
// Accepting an already-assigned ticket answers 409 so two operators
// cannot both claim it.
func (h *TicketsHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid ticket id")
		return
	}
	identity, _ := httpx.IdentityFromCtx(r.Context())

	ticket, err := h.Store.Tickets().GetByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, "ticket")
		return
	}
	if ticket.UserID != nil {
		httpx.WriteError(w, http.StatusConflict, "ticket already assigned")
		return
	}

	if err := h.Store.Tickets().Assign(r.Context(), id, identity.ID); err != nil {
		writeStoreError(w, r, err, "ticket")
		return
	}

	slogx.FromContext(r.Context()).Info("ticket accepted",
		"ticket_id", id, "username", identity.Username)
	ticket.UserID = &identity.ID
	httpx.WriteJSON(w, http.StatusOK, toAPITicket(ticket))
}

// HandleComplete closes a ticket the calling operator owns, removing it.
// Completing someone else's ticket answers 403.
func (h *TicketsHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid ticket id")
		return
	}
	identity, _ := httpx.IdentityFromCtx(r.Context())

	ticket, err := h.Store.Tickets().GetByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, "ticket")
		return
	}
	if ticket.UserID == nil || *ticket.UserID != identity.ID {
		httpx.WriteError(w, http.StatusForbidden, "ticket is not assigned to you")
		return
	}

	if err := h.Store.Tickets().Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, err, "ticket")
		return
	}

	slogx.FromContext(r.Context()).Info("ticket completed",
		"ticket_id", id, "username", identity.Username)
	httpx.WriteJSON(w, http.StatusOK, toAPITicket(ticket))
}
