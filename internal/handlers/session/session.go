package sessionhandler

import (
	"context"
	"log/slog"
	"net/http"

	"koistore/internal/handlers/response"
	"koistore/internal/models"
	"koistore/pkg/lib/urlparser"
)

type SessionService interface {
	Create(ctx context.Context) (string, error)
	Destroy(ctx context.Context, sessionId string) error
	Login(ctx context.Context, sessionId, email, password string) (models.User, error)
	Logout(ctx context.Context, sessionId string) error
	Me(ctx context.Context, sessionId string) (models.User, error)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Created struct {
	SessionId string `json:"sessionId"`
}

type Handler struct {
	log     *slog.Logger
	service SessionService
}

func New(log *slog.Logger, service SessionService) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// POST /sessions
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.session.Create"
	log := h.log.With("op", op)

	id, err := h.service.Create(r.Context())
	if err != nil {
		response.Error(w, log, err, "Failed to create session")
		return
	}
	response.JSON(w, log, http.StatusCreated, Created{SessionId: id})
}

// DELETE /sessions/{sid}
func (h *Handler) Destroy(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.session.Destroy"
	log := h.log.With("op", op)

	sid, err := urlparser.SessionID(r)
	if err != nil {
		response.Error(w, log, err, "")
		return
	}

	if err := h.service.Destroy(r.Context(), sid); err != nil {
		response.Error(w, log, err, "Failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /sessions/{sid}/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.session.Login"
	log := h.log.With("op", op)

	sid, err := urlparser.SessionID(r)
	if err != nil {
		response.Error(w, log, err, "")
		return
	}

	var req LoginRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, log, err, "")
		return
	}

	user, err := h.service.Login(r.Context(), sid, req.Email, req.Password)
	if err != nil {
		response.Error(w, log, err, "Failed to log in")
		return
	}
	response.OK(w, log, user)
}

// POST /sessions/{sid}/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.session.Logout"
	log := h.log.With("op", op)

	sid, err := urlparser.SessionID(r)
	if err != nil {
		response.Error(w, log, err, "")
		return
	}

	if err := h.service.Logout(r.Context(), sid); err != nil {
		response.Error(w, log, err, "Failed to log out")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /sessions/{sid}/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.session.Me"
	log := h.log.With("op", op)

	sid, err := urlparser.SessionID(r)
	if err != nil {
		response.Error(w, log, err, "")
		return
	}

	user, err := h.service.Me(r.Context(), sid)
	if err != nil {
		response.Error(w, log, err, "Failed to load profile")
		return
	}
	response.OK(w, log, user)
}
