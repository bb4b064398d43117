package assignment

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"assignment-service/internal/httputil"
	"assignment-service/internal/identity"
	"assignment-service/internal/metrics"
	"assignment-service/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  Service
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewHandler(service Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
		metrics:  metrics,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.With(identity.RequireRole(user.RoleStudent)).Post("/assignments", h.CreateAssignment)
	router.Get("/assignments", h.GetAssignments)
	router.Get("/assignments/{id}", h.GetAssignment)
}

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || h.validate.Struct(&req) != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The subject closed set is checked here, before the service call.
	subject, ok := ParseSubject(req.Subject)
	if !ok {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid subject")
		return
	}

	h.logger.InfoContext(r.Context(), "creating assignment", "student_id", req.StudentID, "subject", subject)
	created, err := h.service.CreateAssignment(r.Context(), req.StudentID, subject, req.Title, req.Content)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.metrics.RecordAssignmentCreated(r.Context())

	httputil.RespondWithJSON(w, http.StatusCreated, created)
}

// GetAssignments lists assignments, optionally filtered by subject, student
// or grading state. Filters are mutually exclusive; subject wins over
// studentId which wins over graded.
func (h *Handler) GetAssignments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if rawSubject := query.Get("subject"); rawSubject != "" {
		subject, ok := ParseSubject(rawSubject)
		if !ok {
			httputil.RespondWithError(w, http.StatusBadRequest, "invalid subject")
			return
		}
		h.respondWithList(w, r, func() ([]Assignment, error) {
			return h.service.GetAssignmentsBySubject(r.Context(), subject)
		})
		return
	}

	if rawStudentID := query.Get("studentId"); rawStudentID != "" {
		studentID, err := strconv.Atoi(rawStudentID)
		if err != nil {
			httputil.RespondWithError(w, http.StatusBadRequest, "invalid student ID")
			return
		}
		h.respondWithList(w, r, func() ([]Assignment, error) {
			return h.service.GetAssignmentsByStudentID(r.Context(), studentID)
		})
		return
	}

	if rawGraded := query.Get("graded"); rawGraded != "" {
		graded, err := strconv.ParseBool(rawGraded)
		if err != nil {
			httputil.RespondWithError(w, http.StatusBadRequest, "invalid graded filter")
			return
		}
		h.respondWithList(w, r, func() ([]Assignment, error) {
			if graded {
				return h.service.GetGradedAssignments(r.Context())
			}
			return h.service.GetUngradedAssignments(r.Context())
		})
		return
	}

	h.respondWithList(w, r, func() ([]Assignment, error) {
		return h.service.GetAllAssignments(r.Context())
	})
}

func (h *Handler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid assignment ID")
		return
	}

	h.logger.InfoContext(r.Context(), "fetching assignment by ID", "id", id)
	a, err := h.service.GetAssignmentByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.metrics.RecordAssignmentViewed(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, a)
}

func (h *Handler) respondWithList(w http.ResponseWriter, r *http.Request, fetch func() ([]Assignment, error)) {
	assignments, err := fetch()
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.metrics.RecordAssignmentViewed(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, assignments)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrAssignmentNotFound):
		h.logger.Info("assignment not found")
		httputil.RespondWithError(w, http.StatusNotFound, "assignment not found")
	case errors.Is(err, ErrMissingFields), errors.Is(err, ErrInvalidInput):
		h.logger.Info("invalid input", "error", err)
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("internal error", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, err.Error())
	}
}
