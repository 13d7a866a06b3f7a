package api

import (
	"log/slog"
	"net/http"

	"github.com/contactdesk/contacts-api/internal/api/shared"
	"github.com/contactdesk/contacts-api/internal/domain"
	"github.com/contactdesk/contacts-api/internal/service"
)

// UserHandler serves the user account endpoints.
type UserHandler struct {
	userService *service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userService *service.UserService, log *slog.Logger) *UserHandler {
	if log == nil {
		log = slog.Default()
	}
	return &UserHandler{
		userService: userService,
		logger:      log.With(slog.String("component", "user_handler")),
	}
}

// Register handles POST /api/users.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	user, err := h.userService.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, userToResponse(user))
}

// Login handles POST /api/users/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	user, token, err := h.userService.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, LoginResponse{
		Username: user.Username,
		Token:    token,
	})
}

// Current handles GET /api/users/current.
func (h *UserHandler) Current(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		HandleServiceError(w, r, domain.ErrUnauthorized)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, userToResponse(user))
}

// Update handles PATCH /api/users/current.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		HandleServiceError(w, r, domain.ErrUnauthorized)
		return
	}

	var req UpdateUserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	updated, err := h.userService.Update(r.Context(), user.Username, service.UpdateUserInput{
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, userToResponse(updated))
}

// Logout handles DELETE /api/users/logout.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		HandleServiceError(w, r, domain.ErrUnauthorized)
		return
	}

	if err := h.userService.Logout(r.Context(), user.Username); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "OK")
}
