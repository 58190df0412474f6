package user

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/user-administration/internal/auth"
	"github.com/frahmantamala/user-administration/internal/transport"
	"github.com/frahmantamala/user-administration/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetAllUsers() ([]*User, error)
	GetByID(id int64) (*User, error)
	CreateUser(ctx context.Context, dto *CreateUserDTO) (*User, error)
	UpdateUser(ctx context.Context, id int64, dto *UpdateUserDTO) (*User, error)
	DeleteUser(ctx context.Context, id, actorID int64) error
	ResetPassword(ctx context.Context, id int64, dto *ResetPasswordDTO, actorID int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// GetUsers handles GET /users
func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.GetAllUsers()
	if err != nil {
		h.Logger.Error("GetUsers: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, UsersResponse{Users: users})
}

// GetUser handles GET /users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	u, err := h.Service.GetByID(id)
	if err != nil {
		h.Logger.Error("GetUser: service error", "error", err, "user_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

// GetCurrentUser handles GET /users/me
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.Service.GetByID(actor.ID)
	if err != nil {
		h.Logger.Error("GetCurrentUser: service error", "error", err, "user_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

// CreateUser handles POST /users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var dto CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateUser: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateUser(r.Context(), &dto)
	if err != nil {
		h.Logger.Error("CreateUser: service error", "error", err, "username", dto.Username)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateUser: user created",
		"user_id", created.ID,
		"username", created.Username,
		"role", created.Role)

	h.WriteJSON(w, http.StatusCreated, created)
}

// UpdateUser handles PUT /users/{id}
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	var dto UpdateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateUser: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateUser(r.Context(), id, &dto)
	if err != nil {
		h.Logger.Error("UpdateUser: service error", "error", err, "user_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

// DeleteUser handles DELETE /users/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, okID := h.userIDParam(w, r)
	if !okID {
		return
	}

	if err := h.Service.DeleteUser(r.Context(), id, actor.ID); err != nil {
		h.Logger.Error("DeleteUser: service error", "error", err, "user_id", id, "actor_id", actor.ID)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ResetPassword handles POST /users/{id}/reset-password
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, okID := h.userIDParam(w, r)
	if !okID {
		return
	}

	var dto ResetPasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("ResetPassword: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ResetPassword(r.Context(), id, &dto, actor.ID); err != nil {
		h.Logger.Error("ResetPassword: service error", "error", err, "user_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) userIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid user ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid user ID")
		return 0, false
	}
	return id, true
}
