package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/meridian-legal/insights-backend/internal/api/httpx"
	"github.com/meridian-legal/insights-backend/internal/api/validate"
	"github.com/meridian-legal/insights-backend/internal/middleware"
	repo "github.com/meridian-legal/insights-backend/internal/repository"
	"github.com/meridian-legal/insights-backend/internal/services"
)

type AuthHandler struct {
	svc *services.AdminService
}

func NewAuthHandler(svc *services.AdminService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Collect(
		validate.Email("email", req.Email),
		validate.Required("password", req.Password),
	); errs != nil {
		httpx.FailFields(w, errs)
		return
	}

	sess, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		httpx.Fail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		storageFail(w, "logging in", err)
		return
	}
	httpx.OK(w, http.StatusOK, httpx.M{"token": sess.Token, "admin": sess.Admin})
}

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := validate.Collect(
		validate.MinLen("username", req.Username, 3),
		validate.Email("email", req.Email),
		validate.MinLen("password", req.Password, 6),
	); errs != nil {
		httpx.FailFields(w, errs)
		return
	}

	sess, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password)
	if errors.Is(err, repo.ErrConflict) {
		httpx.Fail(w, http.StatusConflict, "Admin already exists")
		return
	}
	if err != nil {
		storageFail(w, "registering admin", err)
		return
	}
	httpx.OK(w, http.StatusCreated, httpx.M{"token": sess.Token, "admin": sess.Admin})
}

// Me handles GET /auth/me; the auth guard has already resolved the
// principal.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.Principal(r.Context())
	if !ok {
		httpx.Fail(w, http.StatusUnauthorized, "not authorized")
		return
	}
	httpx.OK(w, http.StatusOK, httpx.M{"admin": admin})
}

// Logout handles POST /auth/logout. Tokens are stateless, so the server has
// nothing to revoke; the client discards its copy.
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	httpx.OK(w, http.StatusOK, httpx.M{"message": "Logged out successfully"})
}
