package identity

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"assignment-service/internal/httputil"
	"assignment-service/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Handler issues access tokens when token-mode resolution is enabled. The
// exchange is deliberately unauthenticated (the caller names the user id it
// wants to act as); only the transport of the identity claim is hardened
// compared to the raw header.
type Handler struct {
	users    user.Repository
	secret   string
	ttl      time.Duration
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(users user.Repository, secret string, ttl time.Duration, logger *slog.Logger) *Handler {
	return &Handler{
		users:    users,
		secret:   secret,
		ttl:      ttl,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/auth/token", h.IssueToken)
}

type TokenRequest struct {
	UserID int `json:"userId" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}

func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || h.validate.Struct(&req) != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actor, err := h.users.GetByID(r.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			httputil.RespondWithError(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to look up user", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := GenerateToken(h.secret, actor.ID, h.ttl)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to sign token", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.InfoContext(r.Context(), "issued access token", "user_id", actor.ID, "role", actor.Role)
	httputil.RespondWithJSON(w, http.StatusOK, TokenResponse{AccessToken: token})
}
