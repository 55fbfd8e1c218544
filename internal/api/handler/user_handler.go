package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"taskflow/internal/auth"
	"taskflow/internal/domain"
	"taskflow/internal/pkg/logger"
	"taskflow/internal/service"
)

type UserHandler struct {
	userService *service.UserService
	logger      *logger.Logger
}

func NewUserHandler(userService *service.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger.Component("handler/user"),
	}
}

func (h *UserHandler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.List)

	return r
}

type ListUsersResponse struct {
	Users []*domain.User `json:"users"`
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	users, err := h.userService.List(r.Context(), actor)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(ListUsersResponse{Users: users}); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
