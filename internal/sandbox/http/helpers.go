package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/finconsgroup/zooadmin/internal/sandbox/domain"
	"github.com/finconsgroup/zooadmin/internal/sandbox/store"
	"github.com/finconsgroup/zooadmin/pkg/httpx"
	"github.com/finconsgroup/zooadmin/pkg/slogx"
	"github.com/finconsgroup/zooadmin/pkg/zoosdk"
)

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// writeStoreError maps store errors to the response the dashboard client
// expects: 404 for missing records, 500 for everything else.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error, what string) {
	log := slogx.FromContext(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, what+" not found")
		return
	}
	log.Error("store operation failed", "what", what, "error", err)
	httpx.WriteError(w, http.StatusInternalServerError, "internal error")
}

func toAPIAnimal(a domain.Animal) zoosdk.Animal {
	return zoosdk.Animal{
		ID:        a.ID,
		Name:      a.Name,
		Category:  a.Category,
		Weight:    a.Weight,
		User:      a.UserID,
		Enclosure: a.EnclosureID,
	}
}

func toAPIAnimals(animals []domain.Animal) []zoosdk.Animal {
	out := make([]zoosdk.Animal, len(animals))
	for i, a := range animals {
		out[i] = toAPIAnimal(a)
	}
	return out
}

func fromAPIAnimal(a zoosdk.Animal) domain.Animal {
	return domain.Animal{
		ID:          a.ID,
		Name:        a.Name,
		Category:    a.Category,
		Weight:      a.Weight,
		UserID:      a.User,
		EnclosureID: a.Enclosure,
	}
}

func toAPITicket(t domain.Ticket) zoosdk.Ticket {
	return zoosdk.Ticket{
		ID:              t.ID,
		Title:           t.Title,
		RecommendedRole: t.RecommendedRole,
		Urgency:         t.Urgency,
		CreationDate:    t.CreationDate,
		Description:     t.Description,
		User:            t.UserID,
	}
}

func toAPITickets(tickets []domain.Ticket) []zoosdk.Ticket {
	out := make([]zoosdk.Ticket, len(tickets))
	for i, t := range tickets {
		out[i] = toAPITicket(t)
	}
	return out
}

func fromAPITicket(t zoosdk.Ticket) domain.Ticket {
	return domain.Ticket{
		ID:              t.ID,
		Title:           t.Title,
		RecommendedRole: t.RecommendedRole,
		Urgency:         t.Urgency,
		CreationDate:    t.CreationDate,
		Description:     t.Description,
		UserID:          t.User,
	}
}
