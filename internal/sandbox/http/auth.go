package http

import (
	"errors"
	"net/http"

	"github.com/finconsgroup/zooadmin/internal/sandbox/service"
	"github.com/finconsgroup/zooadmin/pkg/httpx"
	"github.com/finconsgroup/zooadmin/pkg/slogx"
	"github.com/finconsgroup/zooadmin/pkg/zoosdk"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginUserResponse struct {
	ID           int64                `json:"id"`
	Username     string               `json:"username"`
	Name         string               `json:"name"`
	LastName     string               `json:"lastName"`
	Role         zoosdk.Role          `json:"role"`
	OperatorType *zoosdk.OperatorType `json:"operatorType"`
}

type loginResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	User    loginUserResponse `json:"user"`
}

// HandleLogin verifies a username/password pair and returns the user
// record. Failures answer 400 regardless of cause so the response does
// not reveal whether the username exists.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed login request")
		return
	}

	u, err := h.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLogin) {
			log.Info("login rejected", "username", req.Username)
			httpx.WriteError(w, http.StatusBadRequest, "invalid credentials")
			return
		}
		log.Error("login failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	log.Info("login accepted", "username", u.Username, "role", u.Role)
	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		Success: true,
		Message: "login successful",
		User: loginUserResponse{
			ID:           u.ID,
			Username:     u.Username,
			Name:         u.Name,
			LastName:     u.LastName,
			Role:         u.Role,
			OperatorType: u.OperatorType,
		},
	})
}

// HandleLogout acknowledges the logout. Basic auth is stateless on the
// server, so there is no session to tear down; the client drops its
// stored credentials.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	identity, _ := httpx.IdentityFromCtx(r.Context())
	slogx.FromContext(r.Context()).Info("logout", "username", identity.Username)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "logged out",
	})
}

// HandleTest is the authenticated connectivity probe. It answers plain
// text, not JSON.
func (h *AuthHandler) HandleTest(w http.ResponseWriter, r *http.Request) {
	httpx.WriteText(w, http.StatusOK, "Connection OK")
}
