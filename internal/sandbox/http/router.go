// Package http wires the sandbox backend's REST surface: the exact paths
// and response shapes the dashboard client talks to, backed by the
// sqlite store.
package http

import (
	"log/slog"
	"net/http"

	"github.com/finconsgroup/zooadmin/internal/sandbox/service"
	"github.com/finconsgroup/zooadmin/internal/sandbox/store"
	"github.com/finconsgroup/zooadmin/pkg/httpx"
	"github.com/finconsgroup/zooadmin/pkg/slogx"
	"github.com/finconsgroup/zooadmin/pkg/zoosdk"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	logger *slog.Logger
	store  store.Store

	AuthService *service.AuthService
}

func NewRouter(st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:    http.NewServeMux(),
		store:  st,
		logger: logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerAnimals()
	r.registerEnclosures()
	r.registerUsers()
	r.registerTickets()
}

// secured wraps a handler with Basic authn and, when roles are given,
// role enforcement. The role table mirrors the backend's per-endpoint
// annotations: edits need ADMIN or MANAGER, adds and deletes need ADMIN,
// ticket accept/complete need OPERATOR.
func (r *Router) secured(h http.HandlerFunc, roles ...zoosdk.Role) http.Handler {
	middlewares := []httpx.Middleware{httpx.AuthnMiddleware(r.AuthService)}
	if len(roles) > 0 {
		middlewares = append(middlewares, httpx.RequireRole(roles...))
	}
	return httpx.Chain(h, middlewares...)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Login is the only unauthenticated endpoint and the one worth
	// brute forcing, so it is the only rate-limited one.
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimit(httpx.LoginLimit),
		),
	)

	r.Mux.Handle("POST /auth/logout", r.secured(h.HandleLogout))
	r.Mux.Handle("GET /auth/test", r.secured(h.HandleTest))
}

func (r *Router) registerAnimals() {
	h := &AnimalsHandler{Store: r.store}

	r.Mux.Handle("GET /animal/list", r.secured(h.HandleList))
	r.Mux.Handle("GET /animal/{id}", r.secured(h.HandleGet))
	r.Mux.Handle("POST /animal/add",
		r.secured(h.HandleAdd, zoosdk.RoleAdmin))
	r.Mux.Handle("PUT /animal/update/{id}",
		r.secured(h.HandleUpdate, zoosdk.RoleAdmin, zoosdk.RoleManager))
	r.Mux.Handle("DELETE /animal/delete/{id}",
		r.secured(h.HandleDelete, zoosdk.RoleAdmin))
}

func (r *Router) registerEnclosures() {
	h := &EnclosuresHandler{Store: r.store}

	r.Mux.Handle("GET /enclosure/list", r.secured(h.HandleList))
	r.Mux.Handle("GET /enclosure/{id}", r.secured(h.HandleGet))
	r.Mux.Handle("POST /enclosure/add",
		r.secured(h.HandleAdd, zoosdk.RoleAdmin))
	r.Mux.Handle("PUT /enclosure/{id}",
		r.secured(h.HandleUpdate, zoosdk.RoleAdmin, zoosdk.RoleManager))
	r.Mux.Handle("DELETE /enclosure/{id}",
		r.secured(h.HandleDelete, zoosdk.RoleAdmin))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{Store: r.store}

	r.Mux.Handle("GET /user/list",
		r.secured(h.HandleList, zoosdk.RoleAdmin, zoosdk.RoleManager))
	r.Mux.Handle("GET /user/{id}",
		r.secured(h.HandleGet, zoosdk.RoleAdmin, zoosdk.RoleManager))
	r.Mux.Handle("POST /user/add",
		r.secured(h.HandleAdd, zoosdk.RoleAdmin))
	r.Mux.Handle("PUT /user/update/{id}",
		r.secured(h.HandleUpdate, zoosdk.RoleAdmin, zoosdk.RoleManager))
	r.Mux.Handle("DELETE /user/delete/{id}",
		r.secured(h.HandleDelete, zoosdk.RoleAdmin))
}

func (r *Router) registerTickets() {
	h := &TicketsHandler{Store: r.store}

	r.Mux.Handle("GET /ticket/dashboard", r.secured(h.HandleDashboard))
	r.Mux.Handle("GET /ticket/my-tickets", r.secured(h.HandleMyTickets))
	r.Mux.Handle("GET /ticket/all",
		r.secured(h.HandleAll, zoosdk.RoleAdmin, zoosdk.RoleManager))
	r.Mux.Handle("GET /ticket/{id}", r.secured(h.HandleGet))
	r.Mux.Handle("POST /ticket/add",
		r.secured(h.HandleAdd, zoosdk.RoleAdmin, zoosdk.RoleManager))
	r.Mux.Handle("PUT /ticket/{id}",
		r.secured(h.HandleUpdate, zoosdk.RoleAdmin, zoosdk.RoleManager))
	r.Mux.Handle("DELETE /ticket/{id}",
		r.secured(h.HandleDelete, zoosdk.RoleAdmin))
	r.Mux.Handle("POST /ticket/{id}/accept",
		r.secured(h.HandleAccept, zoosdk.RoleOperator))
	r.Mux.Handle("POST /ticket/{id}/complete",
		r.secured(h.HandleComplete, zoosdk.RoleOperator))
}
